package seqio

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

type Format string

const (
	FormatJson Format = "json"
	FormatYaml Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown format")

func (f Format) String() string {
	return string(f)
}

// ParseFormat accepts json, yaml or yml in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJson, nil
	case "yaml", "yml":
		return FormatYaml, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "'%s'; expected json or yaml", s)
	}
}

// FormatFromPath picks a format from the extension of path, or returns
// fallback when the extension is not recognized.
func FormatFromPath(path string, fallback Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJson
	case ".yaml", ".yml":
		return FormatYaml
	default:
		return fallback
	}
}
