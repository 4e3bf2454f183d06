package store

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/erraggy/rpcdoc/internal/maputil"
	"github.com/erraggy/rpcdoc/internal/pathutil"
	"github.com/erraggy/rpcdoc/methodtree"
	"github.com/erraggy/rpcdoc/openrpc"
	"github.com/erraggy/rpcdoc/resolve"
)

// Store holds one loaded document together with everything derived from
// it: the concrete method list, the pointer cache, the decoded schema arena
// and the method tree.
//
// The derived state lives exactly as long as the Store. Loading a different
// document means building a new Store. A Store is not safe for concurrent
// use; callers that share one must serialize access.
type Store struct {
	doc        *openrpc.Document
	methods    []*openrpc.Method
	byName     map[string]*openrpc.Method
	searchable []SearchableMethod
	resolver   *resolve.Resolver
	expander   *resolve.Expander
	tree       *methodtree.Node
	log        openrpc.Logger
}

// SearchableMethod is the flattened view of a method used by search UIs.
type SearchableMethod struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Path        string `json:"path" yaml:"path"`
}

// Stats reports the size of a Store's derived state.
type Stats struct {
	Methods        int `json:"methods" yaml:"methods"`
	CachedPointers int `json:"cachedPointers" yaml:"cachedPointers"`
	DecodedSchemas int `json:"decodedSchemas" yaml:"decodedSchemas"`
}

// New wraps a loaded document. doc must not be modified afterwards.
func New(doc *openrpc.Document, opts ...Option) *Store {
	cfg := newConfig(opts)
	start := time.Now()

	s := &Store{
		doc:     doc,
		methods: doc.ConcreteMethods(),
		log:     cfg.logger,
	}
	s.resolver = resolve.New(doc.Raw, resolve.WithLogger(cfg.logger))
	s.expander = resolve.NewExpander(s.resolver,
		resolve.WithLogger(cfg.logger),
		resolve.WithMaxDepth(cfg.maxExpandDepth),
	)

	s.byName = make(map[string]*openrpc.Method, len(s.methods))
	s.searchable = make([]SearchableMethod, 0, len(s.methods))
	for _, m := range s.methods {
		if _, dup := s.byName[m.Name]; !dup {
			s.byName[m.Name] = m
		}
		s.searchable = append(s.searchable, SearchableMethod{
			Name:        m.Name,
			Description: m.Summary,
			Path:        "/methods/" + m.Name,
		})
	}
	s.tree = methodtree.Build(s.methods)

	s.log.Debug("store ready",
		"source", doc.SourcePath,
		"methods", len(s.methods),
		"folders", len(methodtree.ExpandAll(s.tree)),
		"elapsed", time.Since(start),
	)
	return s
}

// Load parses a document and wraps it in a Store.
func Load(opts ...openrpc.Option) (*Store, error) {
	doc, err := openrpc.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	return New(doc), nil
}

// Document returns the loaded document.
func (s *Store) Document() *openrpc.Document {
	return s.doc
}

// Methods returns the concrete methods in document order. Top-level method
// references are not included.
func (s *Store) Methods() []*openrpc.Method {
	return slices.Clone(s.methods)
}

// Method returns the first concrete method with the given name.
func (s *Store) Method(name string) (*openrpc.Method, bool) {
	m, ok := s.byName[name]
	return m, ok
}

// SearchableMethodData returns one entry per concrete method: its name, its
// summary as description (empty when absent) and its "/methods/<name>" path.
func (s *Store) SearchableMethodData() []SearchableMethod {
	return slices.Clone(s.searchable)
}

// Search returns the searchable entries whose name or description contains
// query, compared with Unicode case folding. An empty query matches all.
func (s *Store) Search(query string) []SearchableMethod {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.SearchableMethodData()
	}
	fold := cases.Fold()
	needle := fold.String(query)

	var out []SearchableMethod
	for _, m := range s.searchable {
		if strings.Contains(fold.String(m.Name), needle) ||
			strings.Contains(fold.String(m.Description), needle) {
			out = append(out, m)
		}
	}
	s.log.Debug("method search", "query", query, "matches", len(out))
	return out
}

// MethodTree returns the namespace tree built at construction.
func (s *Store) MethodTree() *methodtree.Node {
	return s.tree
}

// ComponentPointers returns a pointer for every reusable component, grouped
// by section in document order and sorted by name within a section.
func (s *Store) ComponentPointers() []string {
	c := s.doc.Components
	if c == nil {
		return nil
	}
	var out []string
	out = appendPointers(out, c.Schemas, pathutil.SchemaRef)
	out = appendPointers(out, c.ContentDescriptors, pathutil.ContentDescriptorRef)
	out = appendPointers(out, c.Errors, pathutil.ErrorRef)
	out = appendPointers(out, c.Examples, pathutil.ExampleRef)
	out = appendPointers(out, c.ExamplePairings, pathutil.ExamplePairingRef)
	out = appendPointers(out, c.Tags, pathutil.TagRef)
	return out
}

func appendPointers[V any](out []string, section map[string]V, ref func(string) string) []string {
	for _, name := range maputil.SortedKeys(section) {
		out = append(out, ref(name))
	}
	return out
}

// Stats reports the current size of the store's caches.
func (s *Store) Stats() Stats {
	return Stats{
		Methods:        len(s.methods),
		CachedPointers: s.resolver.CacheLen(),
		DecodedSchemas: s.expander.ArenaLen(),
	}
}
