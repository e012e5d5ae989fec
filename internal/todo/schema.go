package todo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// bundledStoreSchema describes the persisted store document.
const bundledStoreSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "tasklist store",
  "type": "object",
  "required": ["tasks", "groups", "projects"],
  "properties": {
    "tasks": {
      "type": "array",
      "items": { "$ref": "#/$defs/task" }
    },
    "groups": {
      "type": "array",
      "items": { "type": "string" }
    },
    "projects": {
      "type": "array",
      "items": { "$ref": "#/$defs/project" }
    }
  },
  "$defs": {
    "task": {
      "type": "object",
      "required": ["id", "content", "resolved", "project", "group"],
      "properties": {
        "id": { "type": "integer" },
        "content": { "type": "string" },
        "resolved": { "type": "boolean" },
        "project": { "type": "string" },
        "group": { "type": "string" }
      }
    },
    "project": {
      "type": "object",
      "required": ["name", "tag", "description"],
      "properties": {
        "name": { "type": "string" },
        "tag": { "type": "string" },
        "description": { "type": "string" }
      }
    }
  }
}`

const storeSchemaURL = "tasklist.schema.json"

var storeSchema = jsonschema.MustCompileString(storeSchemaURL, bundledStoreSchema)

// BundledSchema returns the embedded store schema JSON content.
func BundledSchema() []byte {
	return []byte(bundledStoreSchema)
}

// ValidationError is a schema violation at a location in the store document.
type ValidationError struct {
	Path string // dotted path, e.g. tasks[0].id
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateDocument checks a generic JSON value against the store schema and
// returns one error per violation.
func ValidateDocument(doc any) []error {
	err := storeSchema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []error{err}
	}
	var errs []error
	collectSchemaErrors(&errs, ve)
	return errs
}

func collectSchemaErrors(errs *[]error, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}

// jsonPointerToPath converts "/tasks/0/id" to "tasks[0].id".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
