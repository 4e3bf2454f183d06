package resolve

import (
	"fmt"

	"github.com/erraggy/rpcdoc/openrpc"
	"github.com/erraggy/rpcdoc/rpcerrors"
)

// ContentDescriptor returns the content descriptor o stands for.
//
// An inline value is returned as-is (the same pointer). A reference must
// resolve to an object carrying "name" and "schema"; anything else is a
// *rpcerrors.ShapeError. A missing target is a *rpcerrors.ResolutionError.
func (r *Resolver) ContentDescriptor(o openrpc.OrRef[openrpc.ContentDescriptor]) (*openrpc.ContentDescriptor, error) {
	return resolveAs(r, o, "ContentDescriptor", []string{"name", "schema"}, openrpc.DecodeContentDescriptor)
}

// ErrorDef returns the error object o stands for. A reference target must
// carry "code" and "message".
func (r *Resolver) ErrorDef(o openrpc.OrRef[openrpc.ErrorDef]) (*openrpc.ErrorDef, error) {
	return resolveAs(r, o, "Error", []string{"code", "message"}, openrpc.DecodeErrorDef)
}

// Example returns the example o stands for. A reference target must carry "value".
func (r *Resolver) Example(o openrpc.OrRef[openrpc.Example]) (*openrpc.Example, error) {
	return resolveAs(r, o, "Example", []string{"value"}, openrpc.DecodeExample)
}

// ExamplePairing returns the example pairing o stands for. A reference
// target must carry "name" and "params".
func (r *Resolver) ExamplePairing(o openrpc.OrRef[openrpc.ExamplePairing]) (*openrpc.ExamplePairing, error) {
	return resolveAs(r, o, "ExamplePairing", []string{"name", "params"}, openrpc.DecodeExamplePairing)
}

// Tag returns the tag o stands for. A reference target must carry "name".
func (r *Resolver) Tag(o openrpc.OrRef[openrpc.Tag]) (*openrpc.Tag, error) {
	return resolveAs(r, o, "Tag", []string{"name"}, openrpc.DecodeTag)
}

// resolveAs implements the shared resolve-check-decode path. Decoded targets
// are memoized per kind and pointer alongside the raw pointer cache.
func resolveAs[T any](r *Resolver, o openrpc.OrRef[T], kind string, required []string, decode func(any) (*T, error)) (*T, error) {
	if !o.IsRef() {
		return o.Value, nil
	}

	key := decodedKey{kind: kind, pointer: o.Ref}
	if v, ok := r.decoded[key]; ok {
		return v.(*T), nil
	}

	raw, err := r.Resolve(o.Ref)
	if err != nil {
		return nil, err
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, &rpcerrors.ShapeError{Pointer: o.Ref, Expected: kind, Got: openrpc.Describe(raw)}
	}
	for _, field := range required {
		if _, ok := m[field]; !ok {
			return nil, &rpcerrors.ShapeError{
				Pointer:  o.Ref,
				Expected: kind,
				Got:      fmt.Sprintf("object without %q", field),
			}
		}
	}

	v, err := decode(m)
	if err != nil {
		return nil, &rpcerrors.ShapeError{Pointer: o.Ref, Expected: kind, Got: err.Error()}
	}
	r.decoded[key] = v
	return v, nil
}
