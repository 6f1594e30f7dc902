package util

import (
	"encoding/json"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// YamlBytesToJSON translates loaded YAML data to JSON as bytes. An empty
// document becomes an empty JSON object.
func YamlBytesToJSON(yamlData []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(yamlData, &v); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal YAML")
	}

	if v == nil {
		v = map[string]interface{}{}
	}

	j, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal to JSON")
	}

	return j, nil
}
