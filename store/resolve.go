package store

import "github.com/erraggy/rpcdoc/openrpc"

// ResolveReference returns the raw value addressed by pointer.
// Failures are *rpcerrors.ResolutionError.
func (s *Store) ResolveReference(pointer string) (any, error) {
	return s.resolver.Resolve(pointer)
}

// ResolveContentDescriptor returns the content descriptor o stands for.
// Inline values are returned unchanged.
func (s *Store) ResolveContentDescriptor(o openrpc.OrRef[openrpc.ContentDescriptor]) (*openrpc.ContentDescriptor, error) {
	return s.resolver.ContentDescriptor(o)
}

// ResolveError returns the error object o stands for.
func (s *Store) ResolveError(o openrpc.OrRef[openrpc.ErrorDef]) (*openrpc.ErrorDef, error) {
	return s.resolver.ErrorDef(o)
}

// ResolveExample returns the example o stands for.
func (s *Store) ResolveExample(o openrpc.OrRef[openrpc.Example]) (*openrpc.Example, error) {
	return s.resolver.Example(o)
}

// ResolveExamplePairing returns the example pairing o stands for.
func (s *Store) ResolveExamplePairing(o openrpc.OrRef[openrpc.ExamplePairing]) (*openrpc.ExamplePairing, error) {
	return s.resolver.ExamplePairing(o)
}

// ResolveTag returns the tag o stands for.
func (s *Store) ResolveTag(o openrpc.OrRef[openrpc.Tag]) (*openrpc.Tag, error) {
	return s.resolver.Tag(o)
}

// ResolveSchemaWithReferences returns a copy of schema with references
// inlined. Cycles and failures are marked in place; it never fails.
func (s *Store) ResolveSchemaWithReferences(schema *openrpc.Schema) *openrpc.Schema {
	return s.expander.Expand(schema)
}

// ResolveSchemaRef expands the schema addressed by pointer.
func (s *Store) ResolveSchemaRef(pointer string) *openrpc.Schema {
	return s.expander.ExpandRef(pointer)
}
