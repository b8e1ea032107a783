package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
)

// ParseFrontMatter splits source into its metadata block and body. The
// metadata is normalised into JSON-compatible values (dates become ISO
// strings, nested maps get string keys) and validated against the post
// schema. A document without a frontmatter block yields empty metadata.
func ParseFrontMatter(source []byte) (map[string]any, []byte, error) {
	var raw map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(source), &raw)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	meta, err := toJSONValues(normalizeValue(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("normalize frontmatter: %w", err)
	}
	if err := ValidateMetadata(meta); err != nil {
		return nil, nil, err
	}
	return meta, body, nil
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		if v.Equal(v.Truncate(24*time.Hour)) && v.Location() == time.UTC {
			return v.Format(time.DateOnly)
		}
		return v.Format(time.RFC3339)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeValue(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}

// toJSONValues round-trips value through encoding/json so the schema
// validator only ever sees JSON types.
func toJSONValues(value any) (map[string]any, error) {
	if value == nil {
		return map[string]any{}, nil
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func stringField(meta map[string]any, key string) string {
	if value, ok := meta[key].(string); ok {
		return value
	}
	return ""
}

func boolField(meta map[string]any, key string) bool {
	value, _ := meta[key].(bool)
	return value
}

func stringsField(meta map[string]any, key string) []string {
	items, _ := meta[key].([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if value, ok := item.(string); ok {
			out = append(out, value)
		}
	}
	return out
}
