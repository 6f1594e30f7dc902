package main

import (
	"github.com/filterkata/filter/internal/config"
	"github.com/filterkata/filter/internal/predicate"
	"github.com/filterkata/filter/internal/seqio"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type options struct {
	where        []string
	matchAny     bool
	not          bool
	inputFormat  string
	outputFormat string
	configFile   string
	logLevel     string
}

func withFilterParams(cmd *cobra.Command) *options {
	o := options{}

	cmd.Flags().StringArrayVarP(&o.where, "where", "w", nil, "Expression an element must satisfy, e.g. '> 2' or '.name ~ ^b'. Repeatable; all must hold unless --any is set. Defaults to 'truthy'")
	cmd.Flags().BoolVar(&o.matchAny, "any", false, "Keep elements matching at least one --where expression")
	cmd.Flags().BoolVar(&o.not, "not", false, "Invert the combined expression")
	cmd.Flags().StringVarP(&o.inputFormat, "input-format", "i", "", "Input format: json or yaml. Defaults to the file extension, then yaml")
	cmd.Flags().StringVarP(&o.outputFormat, "output-format", "o", "", "Output format: json or yaml. Defaults to the config file, then json")
	cmd.Flags().StringVar(&o.configFile, "config", "", "Config file to use. Defaults to $"+config.EnvConfigPath)
	cmd.Flags().StringVar(&o.logLevel, "log-level", "", "Override the configured log level: debug, info, warn or error")

	return &o
}

func (o *options) resolveConfig() (*config.Root, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}

	if o.logLevel != "" {
		switch lvl := config.LoggingConfigLevel(o.logLevel); lvl {
		case config.LevelDebug, config.LevelInfo, config.LevelWarn, config.LevelError:
			cfg.Logging.Level = lvl
		default:
			return nil, errors.Errorf("invalid log level '%s'", o.logLevel)
		}
	}

	return cfg, nil
}

func (o *options) resolveFormats(path string, cfg *config.Root) (in seqio.Format, out seqio.Format, err error) {
	in = seqio.FormatFromPath(path, seqio.FormatYaml)
	if o.inputFormat != "" {
		if in, err = seqio.ParseFormat(o.inputFormat); err != nil {
			return "", "", errors.Wrap(err, "invalid --input-format")
		}
	}

	outName := cfg.Output.Format
	if o.outputFormat != "" {
		outName = o.outputFormat
	}
	if out, err = seqio.ParseFormat(outName); err != nil {
		return "", "", errors.Wrap(err, "invalid output format")
	}

	return in, out, nil
}

func (o *options) mode() predicate.Mode {
	return predicate.Mode{Any: o.matchAny, Negate: o.not}
}
