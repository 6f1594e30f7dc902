package util

import (
	"os"
	"strings"
)

// GetEnvDefault reads key from the environment, trimmed. Blank or unset
// variables yield fallback, so FILTER_CONFIG="  " behaves like no config.
func GetEnvDefault(key, fallback string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return val
}
