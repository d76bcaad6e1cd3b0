package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/forcegrade/forcegrade/internal/models"
	"github.com/forcegrade/forcegrade/schemas"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// taskSchema is the compiled JSON Schema for task files.
var taskSchema *jsonschema.Schema

// drawingSchema is the compiled JSON Schema for drawing snapshots.
var drawingSchema *jsonschema.Schema

func init() {
	taskSchema = mustCompileSchema(schemas.TaskSchemaJSON, "task.schema.json")
	drawingSchema = mustCompileSchema(schemas.DrawingSchemaJSON, "drawing.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateTaskFile validates a task file at the given path. Schema errors come
// first; when the file is schema-valid the semantic checks of each task
// (anchor types, duplicate names, relation sides) are reported as well.
func ValidateTaskFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading task file: %w", err)
	}
	return ValidateTaskBytes(data), nil
}

// ValidateTaskBytes validates raw YAML or JSON bytes as a task file.
func ValidateTaskBytes(data []byte) []string {
	if errs := validateYAMLBytes(taskSchema, data); len(errs) > 0 {
		return errs
	}
	if _, err := models.ParseTaskSet(data); err != nil {
		return splitJoined(err)
	}
	return nil
}

// ValidateDrawingFile validates a drawing snapshot at the given path. gzip and
// zstd snapshots are decompressed first.
func ValidateDrawingFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading drawing: %w", err)
	}
	data, err := models.Decompress(raw)
	if err != nil {
		return []string{err.Error()}, nil
	}
	return ValidateDrawingBytes(data), nil
}

// ValidateDrawingBytes validates raw YAML or JSON bytes as a drawing snapshot.
// Compressed snapshots must be decompressed by the caller.
func ValidateDrawingBytes(data []byte) []string {
	return validateYAMLBytes(drawingSchema, data)
}

func validateYAMLBytes(schema *jsonschema.Schema, data []byte) []string {
	var yamlDoc any
	if err := yaml.Unmarshal(data, &yamlDoc); err != nil {
		return []string{fmt.Sprintf("YAML parse error: %v", err)}
	}
	if yamlDoc == nil {
		return []string{"/: empty document"}
	}

	jsonCompatible := convertToJSONCompatible(yamlDoc)

	return validateAgainstSchema(schema, jsonCompatible)
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

// splitJoined flattens an errors.Join tree into one message per line.
func splitJoined(err error) []string {
	var out []string
	for line := range strings.SplitSeq(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// convertToJSONCompatible converts YAML-decoded values to the types the
// validator understands. Integer keys of YAML mappings become strings.
func convertToJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[k] = convertToJSONCompatible(v2)
		}
		return result
	case map[any]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[fmt.Sprint(k)] = convertToJSONCompatible(v2)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v2 := range val {
			result[i] = convertToJSONCompatible(v2)
		}
		return result
	default:
		return val
	}
}
