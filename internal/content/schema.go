package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// postSchema mirrors the posts collection defined in the authoring CMS. Only
// the shape of each field is enforced here; the required title is checked when
// the post is built.
var postSchema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "object",
	"properties": map[string]any{
		"title":   map[string]any{"type": "string"},
		"slug":    map[string]any{"type": "string"},
		"excerpt": map[string]any{"type": []any{"string", "null"}},
		"author":  map[string]any{"type": []any{"string", "null"}},
		"published_date": map[string]any{
			"type":    []any{"string", "null"},
			"pattern": `^\d{4}-\d{2}-\d{2}`,
		},
		"featured_image": map[string]any{"type": []any{"string", "null"}},
		"tags": map[string]any{
			"type":  []any{"array", "null"},
			"items": map[string]any{"type": "string"},
		},
		"featured": map[string]any{"type": []any{"boolean", "null"}},
	},
}

var (
	compiledPostSchema     *jsonschema.Schema
	compiledPostSchemaErr  error
	compiledPostSchemaOnce sync.Once
)

func postSchemaValidator() (*jsonschema.Schema, error) {
	compiledPostSchemaOnce.Do(func() {
		encoded, err := json.Marshal(postSchema)
		if err != nil {
			compiledPostSchemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("post.json", bytes.NewReader(encoded)); err != nil {
			compiledPostSchemaErr = err
			return
		}
		compiledPostSchema, compiledPostSchemaErr = compiler.Compile("post.json")
	})
	return compiledPostSchema, compiledPostSchemaErr
}

// ValidateMetadata checks decoded frontmatter against the post schema. The
// returned error wraps ErrMetadataInvalid and lists each failing location.
func ValidateMetadata(meta map[string]any) error {
	schema, err := postSchemaValidator()
	if err != nil {
		return fmt.Errorf("content: compile post schema: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	if err := schema.Validate(meta); err != nil {
		return fmt.Errorf("%w: %s", ErrMetadataInvalid, describeValidation(err))
	}
	return nil
}

func describeValidation(err error) string {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return err.Error()
	}
	var issues []string
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			location := node.InstanceLocation
			if location == "" {
				location = "#"
			}
			issues = append(issues, fmt.Sprintf("%s: %s", location, strings.TrimSpace(node.Message)))
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(validationErr)
	return strings.Join(issues, "; ")
}
