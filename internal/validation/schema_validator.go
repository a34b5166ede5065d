package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaValidator validates JSON documents against JSON schema files.
type SchemaValidator interface {
	ValidateBytes(data []byte, schemaPath string) error
}

type schemaValidator struct {
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a validator that caches compiled schemas by path.
func NewSchemaValidator() SchemaValidator {
	return &schemaValidator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// ValidateBytes validates JSON data against the schema at schemaPath.
func (v *schemaValidator) ValidateBytes(data []byte, schemaPath string) error {
	schema, err := v.loadSchema(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to load schema %s: %w", schemaPath, err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func (v *schemaValidator) loadSchema(schemaPath string) (*jsonschema.Schema, error) {
	if schema, ok := v.schemas[schemaPath]; ok {
		return schema, nil
	}

	resolvedPath, err := resolveSchemaPath(schemaPath)
	if err != nil {
		return nil, err
	}

	schemaData, err := os.ReadFile(resolvedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var schemaDoc interface{}
	if err := json.Unmarshal(schemaData, &schemaDoc); err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	if err := v.compiler.AddResource(schemaPath, schemaDoc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	schema, err := v.compiler.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	v.schemas[schemaPath] = schema
	return schema, nil
}

func formatValidationError(err error) error {
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validation error: %w", err)
	}

	var messages []string
	collectErrors(validationErr, &messages)
	return fmt.Errorf("schema validation failed:\n%s", strings.Join(messages, "\n"))
}

func collectErrors(err *jsonschema.ValidationError, messages *[]string) {
	location := strings.Join(err.InstanceLocation, "/")
	if location == "" {
		location = "(root)"
	} else {
		location = "/" + location
	}

	keywords := ""
	if err.ErrorKind != nil {
		if keywordPath := err.ErrorKind.KeywordPath(); len(keywordPath) > 0 {
			keywords = strings.Join(keywordPath, ".")
		}
	}

	if keywords != "" {
		*messages = append(*messages, fmt.Sprintf("  - at %s: %s validation failed", location, keywords))
	} else {
		*messages = append(*messages, fmt.Sprintf("  - at %s: validation failed", location))
	}

	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}

// resolveSchemaPath resolves relative schema paths by walking up from the
// working directory until a go.mod marks the project root. Tests and the
// server binary run from different directories, so a plain relative path
// is not enough.
func resolveSchemaPath(schemaPath string) (string, error) {
	if filepath.IsAbs(schemaPath) {
		return schemaPath, nil
	}

	if _, err := os.Stat(schemaPath); err == nil {
		return schemaPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	dir := cwd
	for {
		testPath := filepath.Join(dir, schemaPath)
		if _, err := os.Stat(testPath); err == nil {
			return testPath, nil
		}

		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return "", fmt.Errorf("schema file not found: %s", schemaPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("schema file not found: %s", schemaPath)
		}
		dir = parent
	}
}
