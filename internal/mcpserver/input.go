package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/erraggy/rpcdoc/openrpc"
	"github.com/erraggy/rpcdoc/store"
)

// specInput represents the two ways a document can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenRPC file on disk (JSON or YAML, optionally .gz or .zst)"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenRPC document content (JSON or YAML)"`
}

// loadedDoc is a cached store. The store's resolver caches are not safe for
// concurrent use, so tool handlers hold mu while they query it.
type loadedDoc struct {
	mu    sync.Mutex
	store *store.Store
}

// makeCacheKey creates a cache key for the given input, or "" when the
// input cannot be cached.
func makeCacheKey(s specInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return fmt.Sprintf("content:%s", hex.EncodeToString(h[:]))
	default:
		return ""
	}
}

// resolve loads the document from whichever input was provided, using the
// cache when it is enabled.
func (s specInput) resolve() (*loadedDoc, error) {
	count := 0
	if s.File != "" {
		count++
	}
	if s.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file or content must be provided (got %d)", count)
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
	}
	if key != "" {
		if cached := docCache.get(key); cached != nil {
			logger.Debug("document cache hit", "key", key)
			return cached, nil
		}
	}

	opts := []openrpc.Option{openrpc.WithLogger(logger)}
	switch {
	case s.File != "":
		opts = append(opts, openrpc.WithFilePath(s.File))
	case s.Content != "":
		opts = append(opts,
			openrpc.WithReader(strings.NewReader(s.Content)),
			openrpc.WithSourceName("content"),
		)
	}

	doc, err := openrpc.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	loaded := &loadedDoc{store: store.New(doc,
		store.WithLogger(logger),
		store.WithMaxExpandDepth(cfg.MaxExpandDepth),
	)}

	if key != "" {
		docCache.putWithTTL(key, loaded, cfg.CacheTTL)
	}
	return loaded, nil
}
