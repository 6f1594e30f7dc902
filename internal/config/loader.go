package config

import (
	"encoding/json"
	"os"

	"github.com/filterkata/filter/internal/util"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load resolves the config path from the flag value or FILTER_CONFIG. With
// neither set the defaults are returned.
func Load(flagPath string) (*Root, error) {
	path := flagPath
	if path == "" {
		path = util.GetEnvDefault(EnvConfigPath, "")
	}

	if path == "" {
		return Default(), nil
	}

	return LoadConfig(path)
}

func LoadConfig(path string) (*Root, error) {
	expanded, err := util.ExpandPath(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(expanded)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config '%s'", path)
	}

	root, err := ParseConfig(content)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config '%s'", path)
	}

	return root, nil
}

// ParseConfig validates YAML content against the config schema and decodes
// it, filling defaults for anything left unset.
func ParseConfig(content []byte) (*Root, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config schema")
	}

	configJsonBytes, err := util.YamlBytesToJSON(content)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert YAML to JSON for config schema validation")
	}

	var configAsParsedJson interface{}
	if err := json.Unmarshal(configJsonBytes, &configAsParsedJson); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config JSON for config schema validation")
	}

	if err := schema.Validate(configAsParsedJson); err != nil {
		return nil, errors.Wrap(err, "config schema validation failed")
	}

	root := &Root{}
	if err := yaml.Unmarshal(content, root); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	root.applyDefaults()

	return root, nil
}
