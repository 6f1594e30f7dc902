package config

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	jsonschemav5 "github.com/santhosh-tekuri/jsonschema/v5"
)

const SchemaId = "https://filterkata.dev/schemas/config.json"

var schemaOnce sync.Once
var schemaCompiled *jsonschemav5.Schema
var schemaErr error

// Schema returns the JSON Schema for the config file, reflected from Root.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
		// Nothing is required; missing values fall back to defaults.
		RequiredFromJSONSchemaTags: true,
	}

	s := r.Reflect(&Root{})
	s.ID = jsonschema.ID(SchemaId)
	s.Title = "filter configuration"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config schema")
	}

	return data, nil
}

func compiledSchema() (*jsonschemav5.Schema, error) {
	schemaOnce.Do(func() {
		data, err := Schema()
		if err != nil {
			schemaErr = err
			return
		}

		compiler := jsonschemav5.NewCompiler()
		if err := compiler.AddResource(SchemaId, bytes.NewReader(data)); err != nil {
			schemaErr = errors.Wrap(err, "failed to add config schema")
			return
		}

		schemaCompiled, err = compiler.Compile(SchemaId)
		if err != nil {
			schemaErr = errors.Wrap(err, "failed to compile config schema")
		}
	})

	return schemaCompiled, schemaErr
}
