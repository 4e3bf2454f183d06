// Package options provides shared utilities for option validation across packages.
package options

import (
	"strings"

	"github.com/erraggy/rpcdoc/rpcerrors"
)

// Source names one input channel and whether the caller configured it.
type Source struct {
	Name string
	Set  bool
}

// ValidateSingleInputSource ensures exactly one input source is specified.
// The returned error is a *rpcerrors.ConfigError naming the offending options.
func ValidateSingleInputSource(sources ...Source) error {
	var set, all []string
	for _, s := range sources {
		all = append(all, s.Name)
		if s.Set {
			set = append(set, s.Name)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return &rpcerrors.ConfigError{
			Option:  "input",
			Message: "must specify an input source (use " + strings.Join(all, ", ") + ")",
		}
	default:
		return &rpcerrors.ConfigError{
			Option:  "input",
			Value:   strings.Join(set, ", "),
			Message: "must specify exactly one input source",
		}
	}
}
