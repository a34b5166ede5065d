package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["version", "recipes"],
	"properties": {
		"version": {"type": "string"},
		"recipes": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["id", "tier"],
				"properties": {
					"id":   {"type": "string", "minLength": 1},
					"tier": {"type": "integer", "minimum": 2, "maximum": 8}
				}
			}
		}
	}
}`

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	schemaPath := filepath.Join(t.TempDir(), "catalog.schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(content), 0644))
	return schemaPath
}

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	schemaPath := writeSchema(t, catalogSchema)
	v := NewSchemaValidator()

	tests := []struct {
		name     string
		data     string
		wantErr  bool
		errorMsg string
	}{
		{
			name:    "valid catalog",
			data:    `{"version": "1.0", "recipes": [{"id": "sword", "tier": 4}]}`,
			wantErr: false,
		},
		{
			name:     "missing required field",
			data:     `{"recipes": [{"id": "sword", "tier": 4}]}`,
			wantErr:  true,
			errorMsg: "required",
		},
		{
			name:     "empty recipe list",
			data:     `{"version": "1.0", "recipes": []}`,
			wantErr:  true,
			errorMsg: "validation failed",
		},
		{
			name:     "tier out of range",
			data:     `{"version": "1.0", "recipes": [{"id": "sword", "tier": 11}]}`,
			wantErr:  true,
			errorMsg: "/recipes/0",
		},
		{
			name:     "wrong type for field",
			data:     `{"version": "1.0", "recipes": [{"id": "sword", "tier": "four"}]}`,
			wantErr:  true,
			errorMsg: "/recipes/0",
		},
		{
			name:     "malformed JSON",
			data:     `{"version": "1.0", "recipes": }`,
			wantErr:  true,
			errorMsg: "parse JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), schemaPath)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSchemaValidator_MissingSchemaFile(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{}`), filepath.Join(t.TempDir(), "absent.schema.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}

func TestSchemaValidator_CachesCompiledSchemas(t *testing.T) {
	schemaPath := writeSchema(t, catalogSchema)
	v := NewSchemaValidator().(*schemaValidator)

	data := []byte(`{"version": "1.0", "recipes": [{"id": "sword", "tier": 4}]}`)
	require.NoError(t, v.ValidateBytes(data, schemaPath))
	assert.Len(t, v.schemas, 1)

	require.NoError(t, v.ValidateBytes(data, schemaPath))
	assert.Len(t, v.schemas, 1)
}
