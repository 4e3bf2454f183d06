// Package commands implements the rpcdoc command line.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/rpcdoc/openrpc"
	"github.com/erraggy/rpcdoc/store"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", bytes)
	return nil
}

// FormatSpecPath returns a display-friendly path for the document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// parseOptions returns the input options for specPath, reading stdin for "-".
func (a *app) parseOptions(specPath string) []openrpc.Option {
	opts := []openrpc.Option{openrpc.WithLogger(a.log)}
	if specPath == StdinFilePath {
		return append(opts,
			openrpc.WithReader(a.stdin),
			openrpc.WithSourceName(FormatSpecPath(specPath)),
		)
	}
	return append(opts, openrpc.WithFilePath(specPath))
}

// loadStore parses specPath and wraps it in a Store configured from the
// application settings.
func (a *app) loadStore(specPath string) (*store.Store, error) {
	doc, err := openrpc.ParseWithOptions(a.parseOptions(specPath)...)
	if err != nil {
		return nil, err
	}
	return store.New(doc,
		store.WithLogger(a.log),
		store.WithMaxExpandDepth(a.cfg.Expand.MaxDepth),
	), nil
}
