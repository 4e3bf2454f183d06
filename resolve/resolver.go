package resolve

import (
	"fmt"
	"strconv"

	"github.com/erraggy/rpcdoc/internal/pathutil"
	"github.com/erraggy/rpcdoc/openrpc"
	"github.com/erraggy/rpcdoc/rpcerrors"
)

// Resolver walks same-document pointers against a raw document and
// memoizes every successful lookup for its lifetime.
//
// The cache is keyed by the exact pointer string; "#/a" and "#/a/" are
// distinct entries even when they address the same node. A Resolver is not
// safe for concurrent use.
type Resolver struct {
	root    map[string]any
	cache   map[string]any
	decoded map[decodedKey]any
	log     openrpc.Logger
}

type decodedKey struct {
	kind    string
	pointer string
}

// New returns a Resolver for root. The document must not be modified while
// the Resolver is in use.
func New(root map[string]any, opts ...Option) *Resolver {
	cfg := newConfig(opts)
	return &Resolver{
		root:    root,
		cache:   make(map[string]any),
		decoded: make(map[decodedKey]any),
		log:     cfg.logger.With("component", "resolver"),
	}
}

// CacheLen returns the number of memoized pointers.
func (r *Resolver) CacheLen() int {
	return len(r.cache)
}

// Resolve returns the value addressed by pointer.
//
// The pointer must start with "#". The remainder is split on "/" and each
// token is unescaped ("~1" to "/", "~0" to "~") before being used as a map key
// or a sequence index. "#" and "#/" address the document root. Failures are
// reported as *rpcerrors.ResolutionError and are not cached.
func (r *Resolver) Resolve(pointer string) (any, error) {
	if v, ok := r.cache[pointer]; ok {
		r.log.Debug("pointer cache hit", "pointer", pointer)
		return v, nil
	}
	if !pathutil.IsLocalRef(pointer) {
		return nil, &rpcerrors.ResolutionError{
			Pointer: pointer,
			Message: "only same-document pointers starting with '#' are supported",
		}
	}

	tokens := pathutil.SplitPointer(pointer)
	current := any(r.root)
	for i, tok := range tokens {
		switch v := current.(type) {
		case map[string]any:
			next, ok := v[tok]
			if !ok {
				return nil, &rpcerrors.ResolutionError{Pointer: pointer, Segment: tok}
			}
			current = next

		case []any:
			// Handle array indexing per RFC 6901 (JSON Pointer)
			index, err := strconv.Atoi(tok)
			if err != nil || index < 0 {
				return nil, &rpcerrors.ResolutionError{
					Pointer: pointer,
					Segment: tok,
					Message: "invalid array index (must be a non-negative integer)",
				}
			}
			if index >= len(v) {
				return nil, &rpcerrors.ResolutionError{
					Pointer: pointer,
					Segment: tok,
					Message: fmt.Sprintf("array index %d out of bounds (length %d)", index, len(v)),
				}
			}
			current = v[index]

		default:
			return nil, &rpcerrors.ResolutionError{
				Pointer: pointer,
				Segment: tok,
				Message: fmt.Sprintf("cannot traverse into %s at %s",
					openrpc.Describe(v), pathutil.JoinPointer(tokens[:i]...)),
			}
		}
	}

	r.cache[pointer] = current
	r.log.Debug("pointer resolved", "pointer", pointer, "cached", len(r.cache))
	return current, nil
}
