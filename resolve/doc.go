// Package resolve follows same-document "$ref" pointers in OpenRPC documents.
//
// A Resolver walks JSON pointers ("#/components/schemas/Block") against the
// raw decoded document and memoizes the results. On top of it, the Resolver
// turns OrRef values into concrete content descriptors, errors, examples,
// example pairings and tags, checking that each target has the right shape.
//
// An Expander uses a Resolver to inline references inside schemas for
// display. Cycles terminate with a stub whose Circular field is set, and
// unresolvable references become stubs whose Error field says why, so
// expansion always produces a finite tree:
//
//	r := resolve.New(doc.Raw)
//	e := resolve.NewExpander(r)
//	block := e.ExpandRef("#/components/schemas/Block")
//
// Both types cache for their whole lifetime and are intended to live exactly
// as long as the document they were built for. Neither is safe for
// concurrent use.
package resolve
