package openrpc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/rpcdoc/internal/options"
	"github.com/erraggy/rpcdoc/rpcerrors"
)

// DefaultMaxFileSize is the largest input accepted after decompression.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte
	data     map[string]any

	validator   Validator
	logger      Logger
	maxFileSize int64

	// Source identification
	sourceName *string
}

// ParseWithOptions loads an OpenRPC document using functional options.
//
// The input is decoded (YAML or JSON, optionally gzip or zstd compressed),
// checked by the configured Validator and decoded into a Document. A
// validation failure is fatal and reports every violation at once.
//
// Example:
//
//	doc, err := openrpc.ParseWithOptions(
//	    openrpc.WithFilePath("openrpc.json"),
//	)
func ParseWithOptions(opts ...Option) (*Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	log := cfg.logger

	start := time.Now()
	var (
		raw        map[string]any
		sourcePath string
		sourceSize int64
	)
	switch {
	case cfg.filePath != nil:
		sourcePath = *cfg.filePath
		var data []byte
		data, err = readFile(sourcePath, cfg.maxFileSize)
		if err == nil {
			sourceSize = int64(len(data))
			raw, err = decodeRaw(sourcePath, data, cfg.maxFileSize)
		}
	case cfg.reader != nil:
		sourcePath = "reader"
		var data []byte
		data, err = readAllLimited(cfg.reader, cfg.maxFileSize)
		if err != nil {
			err = &rpcerrors.ParseError{Path: sourcePath, Message: "failed to read input", Cause: err}
			break
		}
		sourceSize = int64(len(data))
		raw, err = decodeRaw(sourcePath, data, cfg.maxFileSize)
	case cfg.bytes != nil:
		sourcePath = "bytes"
		sourceSize = int64(len(cfg.bytes))
		raw, err = decodeRaw(sourcePath, cfg.bytes, cfg.maxFileSize)
	default:
		raw = cfg.data
		sourcePath = "data"
	}
	if err != nil {
		return nil, err
	}
	if cfg.sourceName != nil {
		sourcePath = *cfg.sourceName
	}
	log = log.With("source", sourcePath)
	log.Debug("decoded input", "bytes", sourceSize, "elapsed", time.Since(start))

	doc, err := buildDocument(raw, cfg.validator, log)
	if err != nil {
		return nil, err
	}
	doc.SourcePath = sourcePath
	doc.SourceSize = sourceSize
	return doc, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		validator:   StructuralValidator{},
		maxFileSize: DefaultMaxFileSize,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	cfg.logger = LoggerOrNop(cfg.logger)

	if err := options.ValidateSingleInputSource(
		options.Source{Name: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Name: "WithReader", Set: cfg.reader != nil},
		options.Source{Name: "WithBytes", Set: cfg.bytes != nil},
		options.Source{Name: "WithData", Set: cfg.data != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// buildDocument validates a raw document and decodes it.
func buildDocument(raw map[string]any, validator Validator, log Logger) (*Document, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	if validator != nil {
		if violations := validator.Validate(raw); len(violations) > 0 {
			log.Debug("document failed validation", "violations", len(violations))
			return nil, &rpcerrors.ValidationError{Violations: violations}
		}
	}

	// The validator may let through values the decoder cannot represent.
	doc, violations := decodeDocument(raw)
	if len(violations) > 0 {
		log.Debug("document failed to decode", "violations", len(violations))
		return nil, &rpcerrors.ValidationError{Violations: violations}
	}

	seen := make(map[string]int, len(doc.Methods))
	concrete := 0
	for i, m := range doc.Methods {
		if m.IsRef() || !m.Value.IsConcrete() {
			continue
		}
		concrete++
		if first, dup := seen[m.Value.Name]; dup {
			log.Warn("duplicate method name", "name", m.Value.Name, "first", first, "index", i)
			continue
		}
		seen[m.Value.Name] = i
	}
	log.Debug("loaded document",
		"openrpc", doc.OpenRPC,
		"methods", len(doc.Methods),
		"concrete", concrete,
	)
	return doc, nil
}

func readFile(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &rpcerrors.ParseError{Path: path, Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	data, err := readAllLimited(f, limit)
	if err != nil {
		return nil, &rpcerrors.ParseError{Path: path, Message: "failed to read file", Cause: err}
	}
	return data, nil
}

func readAllLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("input exceeds maximum size of %d bytes", limit)
	}
	return data, nil
}

// decompress returns data unchanged unless it starts with a gzip or zstd
// frame header (or the name says it is compressed), in which case it is
// inflated up to limit bytes.
func decompress(name string, data []byte, limit int64) ([]byte, error) {
	ext := filepath.Ext(name)
	switch {
	case ext == ".gz" || bytes.HasPrefix(data, gzipMagic):
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer func() { _ = zr.Close() }()
		return readAllLimited(zr, limit)
	case ext == ".zst" || bytes.HasPrefix(data, zstdMagic):
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(uint64(limit)))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		if int64(len(out)) > limit {
			return nil, fmt.Errorf("input exceeds maximum size of %d bytes", limit)
		}
		return out, nil
	}
	return data, nil
}

// decodeRaw decodes YAML or JSON bytes into a generic document map.
// Empty input decodes to an empty map.
func decodeRaw(source string, data []byte, limit int64) (map[string]any, error) {
	data, err := decompress(source, data, limit)
	if err != nil {
		return nil, &rpcerrors.ParseError{Path: source, Message: "failed to decompress input", Cause: err}
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, &rpcerrors.ParseError{Path: source, Message: "failed to decode document", Cause: err}
	}
	switch doc := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return doc, nil
	default:
		return nil, &rpcerrors.ParseError{
			Path:    source,
			Message: fmt.Sprintf("document must be an object, got %s", Describe(v)),
		}
	}
}

// WithFilePath specifies a local file as the input source.
// Files ending in ".gz" or ".zst" are decompressed.
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return &rpcerrors.ConfigError{Option: "WithReader", Message: "reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return &rpcerrors.ConfigError{Option: "WithBytes", Message: "bytes cannot be nil"}
		}
		cfg.bytes = data
		return nil
	}
}

// WithData specifies an already-decoded document. The map is used as the
// document's Raw value and must not be modified afterwards.
func WithData(data map[string]any) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return &rpcerrors.ConfigError{Option: "WithData", Message: "data cannot be nil"}
		}
		cfg.data = data
		return nil
	}
}

// WithValidator replaces the default StructuralValidator.
// Passing nil disables validation.
func WithValidator(v Validator) Option {
	return func(cfg *parseConfig) error {
		cfg.validator = v
		return nil
	}
}

// WithLogger sets a structured logger for parse diagnostics.
// Default: NopLogger
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxFileSize sets the maximum accepted input size in bytes.
// Default: 10MB
func WithMaxFileSize(n int64) Option {
	return func(cfg *parseConfig) error {
		if n <= 0 {
			return &rpcerrors.ConfigError{Option: "WithMaxFileSize", Value: n, Message: "must be positive"}
		}
		cfg.maxFileSize = n
		return nil
	}
}

// WithSourceName overrides the SourcePath recorded on the Document.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}
