package openrpc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/erraggy/rpcdoc/internal/maputil"
	"github.com/erraggy/rpcdoc/internal/pathutil"
	"github.com/erraggy/rpcdoc/rpcerrors"
)

// decoder turns raw decoded values into model types. It does not stop at the
// first bad value: every failure is recorded with the path it was found at,
// and the returned values are only meaningful when no violation was recorded.
//
// A container of the wrong kind is reported at the parent's path ("params
// must be an array"); a bad entry inside a container is reported at the
// entry's own path ("params[0]: ...").
type decoder struct {
	path       *pathutil.PathBuilder
	violations []rpcerrors.Violation
}

func newDecoder() *decoder {
	return &decoder{path: pathutil.Get()}
}

func (d *decoder) release() {
	pathutil.Put(d.path)
	d.path = nil
}

func (d *decoder) failf(format string, args ...any) {
	d.violations = append(d.violations, rpcerrors.Violation{
		Path:    d.path.String(),
		Pointer: d.path.Pointer(),
		Message: fmt.Sprintf(format, args...),
	})
}

// err joins the recorded violations into a single error, or returns nil.
func (d *decoder) err() error {
	if len(d.violations) == 0 {
		return nil
	}
	parts := make([]string, len(d.violations))
	for i, v := range d.violations {
		parts[i] = v.String()
	}
	return errors.New(strings.Join(parts, "; "))
}

// decodeOne runs fn on raw with a fresh decoder and reports its violations
// as an error relative to raw.
func decodeOne[T any](raw any, fn func(*decoder, any) *T) (*T, error) {
	d := newDecoder()
	defer d.release()

	v := fn(d, raw)
	if err := d.err(); err != nil {
		return nil, err
	}
	return v, nil
}

// flat copies the scalar fields of an object into out using its
// mapstructure tags. Fields tagged "-" are decoded by hand by the caller.
func (d *decoder) flat(raw map[string]any, out any) {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "mapstructure",
		Result:  out,
	})
	if err == nil {
		err = dec.Decode(raw)
	}
	if err != nil {
		d.failf("%v", err)
	}
}

func (d *decoder) object(raw any, kind string) (map[string]any, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		d.failf("%s must be an object, got %s", kind, Describe(raw))
	}
	return m, ok
}

func (d *decoder) list(raw any, field string) ([]any, bool) {
	list, ok := raw.([]any)
	if !ok {
		d.failf("%s must be an array, got %s", field, Describe(raw))
	}
	return list, ok
}

// RefOf returns the pointer of a {"$ref": "..."} object, if raw is one.
func RefOf(raw any) (string, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return "", false
	}
	ref, ok := m["$ref"].(string)
	return ref, ok
}

func decodeOrRef[T any](d *decoder, raw any, decode func(*decoder, any) *T) OrRef[T] {
	if ref, ok := RefOf(raw); ok {
		return OrRef[T]{Ref: ref}
	}
	return OrRef[T]{Value: decode(d, raw)}
}

func decodeOrRefList[T any](d *decoder, raw any, field string, decode func(*decoder, any) *T) []OrRef[T] {
	list, ok := d.list(raw, field)
	if !ok {
		return nil
	}
	d.path.Push(field)
	defer d.path.Pop()

	out := make([]OrRef[T], len(list))
	for i, item := range list {
		d.path.PushIndex(i)
		out[i] = decodeOrRef(d, item, decode)
		d.path.Pop()
	}
	return out
}

func decodeOptionalRef[T any](d *decoder, m map[string]any, field string, decode func(*decoder, any) *T) *OrRef[T] {
	raw, ok := m[field]
	if !ok || raw == nil {
		return nil
	}
	d.path.Push(field)
	defer d.path.Pop()
	r := decodeOrRef(d, raw, decode)
	return &r
}

// decodeNamed decodes a components section, visiting names in sorted order
// so violations come out in a stable order.
func decodeNamed[T any](d *decoder, raw any, section string, decode func(*decoder, any) *T) map[string]*T {
	m, ok := d.object(raw, section)
	if !ok {
		return nil
	}
	d.path.Push(section)
	defer d.path.Pop()

	out := make(map[string]*T, len(m))
	for _, name := range maputil.SortedKeys(m) {
		d.path.Push(name)
		out[name] = decode(d, m[name])
		d.path.Pop()
	}
	return out
}

// DecodeContentDescriptor decodes a content descriptor object.
func DecodeContentDescriptor(raw any) (*ContentDescriptor, error) {
	return decodeOne(raw, (*decoder).contentDescriptor)
}

func (d *decoder) contentDescriptor(raw any) *ContentDescriptor {
	m, ok := d.object(raw, "content descriptor")
	if !ok {
		return nil
	}
	cd := &ContentDescriptor{}
	d.flat(m, cd)
	if s, ok := m["schema"]; ok {
		d.path.Push("schema")
		cd.Schema = d.schema(s)
		d.path.Pop()
	}
	return cd
}

// DecodeErrorDef decodes an error object.
func DecodeErrorDef(raw any) (*ErrorDef, error) {
	return decodeOne(raw, (*decoder).errorDef)
}

func (d *decoder) errorDef(raw any) *ErrorDef {
	m, ok := d.object(raw, "error")
	if !ok {
		return nil
	}
	e := &ErrorDef{}
	d.flat(m, e)
	return e
}

// DecodeExample decodes an example object.
func DecodeExample(raw any) (*Example, error) {
	return decodeOne(raw, (*decoder).example)
}

func (d *decoder) example(raw any) *Example {
	m, ok := d.object(raw, "example")
	if !ok {
		return nil
	}
	ex := &Example{}
	d.flat(m, ex)
	return ex
}

// DecodeExamplePairing decodes an example pairing object.
func DecodeExamplePairing(raw any) (*ExamplePairing, error) {
	return decodeOne(raw, (*decoder).examplePairing)
}

func (d *decoder) examplePairing(raw any) *ExamplePairing {
	m, ok := d.object(raw, "example pairing")
	if !ok {
		return nil
	}
	ep := &ExamplePairing{}
	d.flat(m, ep)
	if params, ok := m["params"]; ok {
		ep.Params = decodeOrRefList(d, params, "params", (*decoder).example)
	}
	ep.Result = decodeOptionalRef(d, m, "result", (*decoder).example)
	return ep
}

// DecodeTag decodes a tag object.
func DecodeTag(raw any) (*Tag, error) {
	return decodeOne(raw, (*decoder).tag)
}

func (d *decoder) tag(raw any) *Tag {
	m, ok := d.object(raw, "tag")
	if !ok {
		return nil
	}
	t := &Tag{}
	d.flat(m, t)
	return t
}

// DecodeMethod decodes a method object. The method is concrete when the
// object carries both "name" and "params".
func DecodeMethod(raw any) (*Method, error) {
	return decodeOne(raw, (*decoder).method)
}

func (d *decoder) method(raw any) *Method {
	m, ok := d.object(raw, "method")
	if !ok {
		return nil
	}
	method := &Method{}
	d.flat(m, method)
	_, hasName := m["name"]
	params, hasParams := m["params"]
	method.concrete = hasName && hasParams

	if hasParams {
		method.Params = decodeOrRefList(d, params, "params", (*decoder).contentDescriptor)
	}
	method.Result = decodeOptionalRef(d, m, "result", (*decoder).contentDescriptor)
	if tags, ok := m["tags"]; ok {
		method.Tags = decodeOrRefList(d, tags, "tags", (*decoder).tag)
	}
	if errs, ok := m["errors"]; ok {
		method.Errors = decodeOrRefList(d, errs, "errors", (*decoder).errorDef)
	}
	if examples, ok := m["examples"]; ok {
		method.Examples = decodeOrRefList(d, examples, "examples", (*decoder).examplePairing)
	}
	return method
}

func (d *decoder) components(raw any) *Components {
	m, ok := d.object(raw, "components")
	if !ok {
		return nil
	}
	d.path.Push("components")
	defer d.path.Pop()

	c := &Components{}
	if v, ok := m["schemas"]; ok {
		c.Schemas = decodeNamed(d, v, "schemas", (*decoder).schema)
	}
	if v, ok := m["contentDescriptors"]; ok {
		c.ContentDescriptors = decodeNamed(d, v, "contentDescriptors", (*decoder).contentDescriptor)
	}
	if v, ok := m["errors"]; ok {
		c.Errors = decodeNamed(d, v, "errors", (*decoder).errorDef)
	}
	if v, ok := m["examples"]; ok {
		c.Examples = decodeNamed(d, v, "examples", (*decoder).example)
	}
	if v, ok := m["examplePairingObjects"]; ok {
		c.ExamplePairings = decodeNamed(d, v, "examplePairingObjects", (*decoder).examplePairing)
	}
	if v, ok := m["tags"]; ok {
		c.Tags = decodeNamed(d, v, "tags", (*decoder).tag)
	}
	return c
}

// flatField decodes the object at raw[field] into out.
func (d *decoder) flatField(raw map[string]any, field string, out any) bool {
	v, ok := raw[field]
	if !ok {
		return false
	}
	m, ok := d.object(v, field)
	if !ok {
		return false
	}
	d.path.Push(field)
	d.flat(m, out)
	d.path.Pop()
	return true
}

// decodeDocument builds the typed view of a validated raw document. Every
// value that cannot be represented is reported; the document is only usable
// when no violations are returned.
func decodeDocument(raw map[string]any) (*Document, []rpcerrors.Violation) {
	d := newDecoder()
	defer d.release()

	doc := &Document{Raw: raw}
	doc.OpenRPC, _ = raw["openrpc"].(string)

	info := &Info{}
	if d.flatField(raw, "info", info) {
		doc.Info = info
	}
	ext := &ExternalDocs{}
	if d.flatField(raw, "externalDocs", ext) {
		doc.ExternalDocs = ext
	}
	if v, ok := raw["servers"]; ok {
		if list, ok := d.list(v, "servers"); ok {
			d.path.Push("servers")
			for i, item := range list {
				d.path.PushIndex(i)
				if m, ok := d.object(item, "server"); ok {
					srv := &Server{}
					d.flat(m, srv)
					doc.Servers = append(doc.Servers, srv)
				}
				d.path.Pop()
			}
			d.path.Pop()
		}
	}

	doc.Methods = decodeOrRefList(d, raw["methods"], "methods", (*decoder).method)

	if v, ok := raw["components"]; ok {
		doc.Components = d.components(v)
	}
	return doc, d.violations
}
