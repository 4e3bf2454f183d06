package openrpc

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/erraggy/rpcdoc/internal/maputil"
)

// Schema is a JSON-Schema-like structural type description.
//
// A boolean schema has Bool set (true accepts anything, false accepts
// nothing) and no other keywords. Keywords the engine does not interpret are
// kept verbatim in Extra.
//
// OriginalRef, Circular and Error are never read from documents; they are
// set by schema expansion to record provenance and to mark cycle and failure
// stubs in place.
type Schema struct {
	Bool *bool

	Ref                  string
	Type                 any // string or []any of strings
	Title                string
	Description          string
	Format               string
	Pattern              string
	Properties           map[string]*Schema
	Items                *Schema
	AdditionalProperties *Schema
	Required             []string
	Enum                 []any
	OneOf                []*Schema
	AnyOf                []*Schema
	AllOf                []*Schema
	Examples             []any
	Default              any
	Const                any
	Minimum              *float64
	Maximum              *float64
	ExclusiveMinimum     any // number, or bool in draft-04 documents
	ExclusiveMaximum     any
	MinLength            *int
	MaxLength            *int
	MinItems             *int
	MaxItems             *int
	Extra                map[string]any

	OriginalRef string
	Circular    bool
	Error       string
}

// BoolSchema returns a boolean schema.
func BoolSchema(b bool) *Schema {
	return &Schema{Bool: &b}
}

// IsBool reports whether s is a boolean schema.
func (s *Schema) IsBool() bool {
	return s != nil && s.Bool != nil
}

// Clone returns a shallow copy of s. Nested schemas and maps are shared.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// DecodeSchema converts a decoded JSON/YAML value into a Schema.
// Only booleans and objects are schemas; anything else is an error.
func DecodeSchema(raw any) (*Schema, error) {
	return decodeOne(raw, (*decoder).schema)
}

func (d *decoder) schema(raw any) *Schema {
	switch v := raw.(type) {
	case bool:
		return BoolSchema(v)
	case map[string]any:
		return d.schemaObject(v)
	default:
		d.failf("schema must be an object or boolean, got %s", Describe(raw))
		return nil
	}
}

// schemaMembers decodes a oneOf/anyOf/allOf list.
func (d *decoder) schemaMembers(val any, key string) []*Schema {
	list, ok := d.list(val, key)
	if !ok {
		return nil
	}
	d.path.Push(key)
	defer d.path.Pop()

	members := make([]*Schema, len(list))
	for i, item := range list {
		d.path.PushIndex(i)
		members[i] = d.schema(item)
		d.path.Pop()
	}
	return members
}

func (d *decoder) schemaObject(m map[string]any) *Schema {
	s := &Schema{}
	extra := func(k string, v any) {
		if s.Extra == nil {
			s.Extra = make(map[string]any)
		}
		s.Extra[k] = v
	}

	for _, key := range maputil.SortedKeys(m) {
		val := m[key]
		switch key {
		case "$ref":
			if ref, ok := val.(string); ok {
				s.Ref = ref
			} else {
				extra(key, val)
			}
		case "type":
			s.Type = val
		case "title", "description", "format", "pattern":
			str, ok := val.(string)
			if !ok {
				extra(key, val)
				continue
			}
			switch key {
			case "title":
				s.Title = str
			case "description":
				s.Description = str
			case "format":
				s.Format = str
			case "pattern":
				s.Pattern = str
			}
		case "properties":
			s.Properties = decodeNamed(d, val, "properties", (*decoder).schema)
		case "items":
			// Tuple-form items are kept verbatim.
			if _, ok := val.([]any); ok {
				extra(key, val)
				continue
			}
			d.path.Push(key)
			s.Items = d.schema(val)
			d.path.Pop()
		case "additionalProperties":
			d.path.Push(key)
			s.AdditionalProperties = d.schema(val)
			d.path.Pop()
		case "required":
			list, ok := val.([]any)
			if !ok {
				extra(key, val)
				continue
			}
			s.Required = make([]string, 0, len(list))
			for _, r := range list {
				if name, ok := r.(string); ok {
					s.Required = append(s.Required, name)
				}
			}
		case "enum":
			list, ok := val.([]any)
			if !ok {
				extra(key, val)
				continue
			}
			s.Enum = list
		case "examples":
			list, ok := val.([]any)
			if !ok {
				extra(key, val)
				continue
			}
			s.Examples = list
		case "oneOf":
			s.OneOf = d.schemaMembers(val, key)
		case "anyOf":
			s.AnyOf = d.schemaMembers(val, key)
		case "allOf":
			s.AllOf = d.schemaMembers(val, key)
		case "minimum", "maximum":
			f, ok := toFloat(val)
			if !ok {
				extra(key, val)
				continue
			}
			if key == "minimum" {
				s.Minimum = &f
			} else {
				s.Maximum = &f
			}
		case "default":
			s.Default = val
		case "const":
			s.Const = val
		case "exclusiveMinimum":
			s.ExclusiveMinimum = val
		case "exclusiveMaximum":
			s.ExclusiveMaximum = val
		case "minLength", "maxLength", "minItems", "maxItems":
			n, ok := toInt(val)
			if !ok {
				extra(key, val)
				continue
			}
			switch key {
			case "minLength":
				s.MinLength = &n
			case "maxLength":
				s.MaxLength = &n
			case "minItems":
				s.MinItems = &n
			case "maxItems":
				s.MaxItems = &n
			}
		default:
			extra(key, val)
		}
	}
	return s
}

// ToValue converts s back into plain JSON-compatible values, including the
// expansion annotations "originalRef", "circular" and "error".
func (s *Schema) ToValue() any {
	if s == nil {
		return nil
	}
	annotated := s.OriginalRef != "" || s.Circular || s.Error != ""
	if s.Bool != nil && !annotated {
		return *s.Bool
	}

	out := make(map[string]any, len(s.Extra)+8)
	maps.Copy(out, s.Extra)
	if s.Bool != nil && !*s.Bool {
		out["not"] = map[string]any{}
	}
	setString := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	setString("$ref", s.Ref)
	setString("title", s.Title)
	setString("description", s.Description)
	setString("format", s.Format)
	setString("pattern", s.Pattern)
	setString("originalRef", s.OriginalRef)
	setString("error", s.Error)
	if s.Circular {
		out["circular"] = true
	}
	if s.Type != nil {
		out["type"] = s.Type
	}
	if s.Properties != nil {
		props := make(map[string]any, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = p.ToValue()
		}
		out["properties"] = props
	}
	if s.Items != nil {
		out["items"] = s.Items.ToValue()
	}
	if s.AdditionalProperties != nil {
		out["additionalProperties"] = s.AdditionalProperties.ToValue()
	}
	if s.Required != nil {
		out["required"] = s.Required
	}
	if s.Enum != nil {
		out["enum"] = s.Enum
	}
	if s.Examples != nil {
		out["examples"] = s.Examples
	}
	for key, members := range map[string][]*Schema{"oneOf": s.OneOf, "anyOf": s.AnyOf, "allOf": s.AllOf} {
		if members == nil {
			continue
		}
		list := make([]any, len(members))
		for i, m := range members {
			list[i] = m.ToValue()
		}
		out[key] = list
	}
	if s.Default != nil {
		out["default"] = s.Default
	}
	if s.Const != nil {
		out["const"] = s.Const
	}
	if s.Minimum != nil {
		out["minimum"] = *s.Minimum
	}
	if s.Maximum != nil {
		out["maximum"] = *s.Maximum
	}
	if s.ExclusiveMinimum != nil {
		out["exclusiveMinimum"] = s.ExclusiveMinimum
	}
	if s.ExclusiveMaximum != nil {
		out["exclusiveMaximum"] = s.ExclusiveMaximum
	}
	for key, n := range map[string]*int{"minLength": s.MinLength, "maxLength": s.MaxLength, "minItems": s.MinItems, "maxItems": s.MaxItems} {
		if n != nil {
			out[key] = *n
		}
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToValue())
}

// MarshalYAML implements the yaml Marshaler interface.
func (s *Schema) MarshalYAML() (any, error) {
	return s.ToValue(), nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// Describe names the JSON kind of a decoded value ("object", "string", ...).
func Describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case int, int64, uint64, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
