package openrpc

import "encoding/json"

// Document is a loaded OpenRPC API description.
//
// A Document is immutable after load. The typed fields are decoded views of
// Raw; pointers are always resolved against Raw, so callers must never modify
// it.
type Document struct {
	OpenRPC      string          `json:"openrpc" yaml:"openrpc"`
	Info         *Info           `json:"info" yaml:"info"`
	Servers      []*Server       `json:"servers,omitempty" yaml:"servers,omitempty"`
	Methods      []OrRef[Method] `json:"methods" yaml:"methods"`
	Components   *Components     `json:"components,omitempty" yaml:"components,omitempty"`
	ExternalDocs *ExternalDocs   `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
	Raw          map[string]any  `json:"-" yaml:"-"`
	SourcePath   string          `json:"-" yaml:"-"`
	SourceSize   int64           `json:"-" yaml:"-"`
}

// ConcreteMethods returns the methods that are inline Method objects carrying
// both a name and a params list, in document order. Top-level method entries
// that are references are skipped and not followed.
func (d *Document) ConcreteMethods() []*Method {
	methods := make([]*Method, 0, len(d.Methods))
	for _, m := range d.Methods {
		if m.IsRef() || !m.Value.IsConcrete() {
			continue
		}
		methods = append(methods, m.Value)
	}
	return methods
}

// Info provides metadata about the API.
type Info struct {
	Title          string   `json:"title" yaml:"title" mapstructure:"title"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	TermsOfService string   `json:"termsOfService,omitempty" yaml:"termsOfService,omitempty" mapstructure:"termsOfService"`
	Contact        *Contact `json:"contact,omitempty" yaml:"contact,omitempty" mapstructure:"contact"`
	License        *License `json:"license,omitempty" yaml:"license,omitempty" mapstructure:"license"`
	Version        string   `json:"version" yaml:"version" mapstructure:"version"`
}

// Contact information for the exposed API.
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty" mapstructure:"url"`
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`
}

// License information for the exposed API.
type License struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty" mapstructure:"url"`
}

// Server describes an endpoint the API is served from.
type Server struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	URL         string `json:"url" yaml:"url" mapstructure:"url"`
	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty" mapstructure:"summary"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
}

// ExternalDocs points at additional documentation.
type ExternalDocs struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	URL         string `json:"url" yaml:"url" mapstructure:"url"`
}

// Tag groups methods for documentation purposes.
type Tag struct {
	Name         string        `json:"name" yaml:"name" mapstructure:"name"`
	Summary      string        `json:"summary,omitempty" yaml:"summary,omitempty" mapstructure:"summary"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty" mapstructure:"externalDocs"`
}

// Components holds reusable objects addressed by "#/components/..." pointers.
type Components struct {
	Schemas            map[string]*Schema            `json:"schemas,omitempty" yaml:"schemas,omitempty"`
	ContentDescriptors map[string]*ContentDescriptor `json:"contentDescriptors,omitempty" yaml:"contentDescriptors,omitempty"`
	Errors             map[string]*ErrorDef          `json:"errors,omitempty" yaml:"errors,omitempty"`
	Examples           map[string]*Example           `json:"examples,omitempty" yaml:"examples,omitempty"`
	ExamplePairings    map[string]*ExamplePairing    `json:"examplePairingObjects,omitempty" yaml:"examplePairingObjects,omitempty"`
	Tags               map[string]*Tag               `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Method describes a single callable RPC method.
// Name is a slash-segmented namespace path such as "eth/getBalance".
type Method struct {
	Name           string                     `json:"name" yaml:"name" mapstructure:"name"`
	Summary        string                     `json:"summary,omitempty" yaml:"summary,omitempty" mapstructure:"summary"`
	Description    string                     `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Tags           []OrRef[Tag]               `json:"tags,omitempty" yaml:"tags,omitempty" mapstructure:"-"`
	Params         []OrRef[ContentDescriptor] `json:"params" yaml:"params" mapstructure:"-"`
	Result         *OrRef[ContentDescriptor]  `json:"result,omitempty" yaml:"result,omitempty" mapstructure:"-"`
	Errors         []OrRef[ErrorDef]          `json:"errors,omitempty" yaml:"errors,omitempty" mapstructure:"-"`
	Examples       []OrRef[ExamplePairing]    `json:"examples,omitempty" yaml:"examples,omitempty" mapstructure:"-"`
	Deprecated     bool                       `json:"deprecated,omitempty" yaml:"deprecated,omitempty" mapstructure:"deprecated"`
	ParamStructure string                     `json:"paramStructure,omitempty" yaml:"paramStructure,omitempty" mapstructure:"paramStructure"`

	// concrete is recorded at decode time: the source object carried both
	// "name" and "params".
	concrete bool
}

// IsConcrete reports whether m is a complete method object with a name and a
// params list. Methods built in code count as concrete once both are set.
func (m *Method) IsConcrete() bool {
	if m == nil {
		return false
	}
	return m.concrete || (m.Name != "" && m.Params != nil)
}

// ContentDescriptor is a named, typed parameter or result.
type ContentDescriptor struct {
	Name        string  `json:"name" yaml:"name" mapstructure:"name"`
	Summary     string  `json:"summary,omitempty" yaml:"summary,omitempty" mapstructure:"summary"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Schema      *Schema `json:"schema" yaml:"schema" mapstructure:"-"`
	Required    bool    `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`
	Deprecated  bool    `json:"deprecated,omitempty" yaml:"deprecated,omitempty" mapstructure:"deprecated"`
}

// ErrorDef describes an application error a method may return.
// Code is usually an integer but string codes are preserved as-is.
type ErrorDef struct {
	Code    any    `json:"code" yaml:"code" mapstructure:"code"`
	Message string `json:"message" yaml:"message" mapstructure:"message"`
	Data    any    `json:"data,omitempty" yaml:"data,omitempty" mapstructure:"data"`
}

// Example is a single named example value.
type Example struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty" mapstructure:"summary"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Value       any    `json:"value" yaml:"value" mapstructure:"value"`
}

// ExamplePairing is a request/response example for a method.
type ExamplePairing struct {
	Name        string           `json:"name" yaml:"name" mapstructure:"name"`
	Summary     string           `json:"summary,omitempty" yaml:"summary,omitempty" mapstructure:"summary"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Params      []OrRef[Example] `json:"params" yaml:"params" mapstructure:"-"`
	Result      *OrRef[Example]  `json:"result,omitempty" yaml:"result,omitempty" mapstructure:"-"`
}

// OrRef is either a same-document reference or an inline value. The variant
// is fixed when the document is decoded: exactly one of Ref or Value is set.
type OrRef[T any] struct {
	Ref   string
	Value *T
}

// Ref returns a reference variant.
func Ref[T any](pointer string) OrRef[T] {
	return OrRef[T]{Ref: pointer}
}

// Inline returns an inline variant.
func Inline[T any](v *T) OrRef[T] {
	return OrRef[T]{Value: v}
}

// IsRef reports whether o is a reference.
func (o OrRef[T]) IsRef() bool {
	return o.Ref != ""
}

// MarshalJSON renders references as {"$ref": pointer} and inline values as themselves.
func (o OrRef[T]) MarshalJSON() ([]byte, error) {
	if o.IsRef() {
		return json.Marshal(map[string]string{"$ref": o.Ref})
	}
	return json.Marshal(o.Value)
}

// MarshalYAML mirrors MarshalJSON for YAML output.
func (o OrRef[T]) MarshalYAML() (any, error) {
	if o.IsRef() {
		return map[string]string{"$ref": o.Ref}, nil
	}
	return o.Value, nil
}
