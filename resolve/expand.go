package resolve

import (
	"maps"

	"github.com/erraggy/rpcdoc/openrpc"
)

// Expansion failure markers recorded in Schema.Error.
const (
	ErrorUnresolved       = "unresolved"
	ErrorMaxDepthExceeded = "max depth exceeded"
)

// visitedSet holds the pointers already entered on the current path. It is
// never modified after creation; entering a reference makes a copy.
type visitedSet map[string]struct{}

func (v visitedSet) with(pointer string) visitedSet {
	next := make(visitedSet, len(v)+1)
	maps.Copy(next, v)
	next[pointer] = struct{}{}
	return next
}

// Expander inlines "$ref" pointers inside schemas.
//
// Expansion never fails: a reference that cannot be followed is replaced by a
// stub carrying Ref and Error, and a reference already being expanded higher
// up the same path is replaced by a stub with Circular set. Each branch of
// the schema (every property, items, additionalProperties and every
// composition member) tracks its own path, so a schema used twice by siblings
// is expanded in both places.
//
// Decoded schema targets are kept in a pointer-indexed arena for the
// Expander's lifetime. An Expander is not safe for concurrent use.
type Expander struct {
	resolver *Resolver
	arena    map[string]*openrpc.Schema
	maxDepth int
	log      openrpc.Logger
}

// NewExpander returns an Expander that follows pointers through r.
func NewExpander(r *Resolver, opts ...Option) *Expander {
	cfg := newConfig(opts)
	return &Expander{
		resolver: r,
		arena:    make(map[string]*openrpc.Schema),
		maxDepth: cfg.maxDepth,
		log:      cfg.logger.With("component", "expander"),
	}
}

// ArenaLen returns the number of decoded schema targets held by e.
func (e *Expander) ArenaLen() int {
	return len(e.arena)
}

// Expand returns a copy of s with every reachable reference inlined.
// The expanded target of a reference records the pointer in OriginalRef.
// s and the document are never modified.
func (e *Expander) Expand(s *openrpc.Schema) *openrpc.Schema {
	return e.expand(s, visitedSet{})
}

// ExpandRef expands the schema addressed by pointer.
func (e *Expander) ExpandRef(pointer string) *openrpc.Schema {
	return e.Expand(&openrpc.Schema{Ref: pointer})
}

func (e *Expander) expand(s *openrpc.Schema, visited visitedSet) *openrpc.Schema {
	if s == nil {
		return nil
	}
	if s.IsBool() {
		return s.Clone()
	}
	if s.Ref != "" {
		return e.expandRef(s.Ref, visited)
	}

	out := s.Clone()
	if s.Properties != nil {
		out.Properties = make(map[string]*openrpc.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = e.expand(p, visited)
		}
	}
	out.Items = e.expand(s.Items, visited)
	if s.AdditionalProperties != nil && !s.AdditionalProperties.IsBool() {
		out.AdditionalProperties = e.expand(s.AdditionalProperties, visited)
	}
	out.OneOf = e.expandAll(s.OneOf, visited)
	out.AnyOf = e.expandAll(s.AnyOf, visited)
	out.AllOf = e.expandAll(s.AllOf, visited)
	return out
}

func (e *Expander) expandAll(members []*openrpc.Schema, visited visitedSet) []*openrpc.Schema {
	if members == nil {
		return nil
	}
	out := make([]*openrpc.Schema, len(members))
	for i, m := range members {
		out[i] = e.expand(m, visited)
	}
	return out
}

func (e *Expander) expandRef(pointer string, visited visitedSet) *openrpc.Schema {
	if _, seen := visited[pointer]; seen {
		e.log.Debug("circular reference", "pointer", pointer, "depth", len(visited))
		return &openrpc.Schema{Ref: pointer, Circular: true}
	}
	if len(visited) >= e.maxDepth {
		e.log.Warn("reference chain too deep", "pointer", pointer, "max", e.maxDepth)
		return &openrpc.Schema{Ref: pointer, Error: ErrorMaxDepthExceeded}
	}

	target, err := e.schemaAt(pointer)
	if err != nil {
		e.log.Debug("unresolved schema reference", "pointer", pointer, "error", err)
		return &openrpc.Schema{Ref: pointer, Error: ErrorUnresolved}
	}

	out := e.expand(target, visited.with(pointer))
	out.OriginalRef = pointer
	return out
}

// schemaAt returns the decoded schema addressed by pointer, decoding it into
// the arena on first use.
func (e *Expander) schemaAt(pointer string) (*openrpc.Schema, error) {
	if s, ok := e.arena[pointer]; ok {
		return s, nil
	}
	raw, err := e.resolver.Resolve(pointer)
	if err != nil {
		return nil, err
	}
	s, err := openrpc.DecodeSchema(raw)
	if err != nil {
		return nil, err
	}
	e.arena[pointer] = s
	return s, nil
}
