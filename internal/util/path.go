package util

import (
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// ExpandPath resolves a leading ~ to the user's home directory. The empty path
// and "-" (stdin/stdout) are returned unchanged.
func ExpandPath(path string) (string, error) {
	if path == "" || path == "-" {
		return path, nil
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to expand path '%s'", path)
	}

	return expanded, nil
}
