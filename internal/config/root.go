package config

const (
	// EnvConfigPath names the config file when --config is not given.
	EnvConfigPath = "FILTER_CONFIG"

	OutputFormatJson = "json"
	OutputFormatYaml = "yaml"
)

type OutputConfig struct {
	Format string `json:"format,omitempty" yaml:"format,omitempty" jsonschema:"enum=json,enum=yaml"`
}

type Root struct {
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
	Output  OutputConfig  `json:"output,omitempty" yaml:"output,omitempty"`
}

// Default is the configuration used when no file is given.
func Default() *Root {
	r := &Root{}
	r.applyDefaults()
	return r
}

func (r *Root) applyDefaults() {
	if r.Logging.Type == "" {
		r.Logging.Type = LoggingConfigTypeTint
	}
	if r.Logging.To == "" {
		r.Logging.To = OutputStderr
	}
	if r.Logging.Level == "" {
		r.Logging.Level = LevelWarn
	}
	if r.Output.Format == "" {
		r.Output.Format = OutputFormatJson
	}
}
