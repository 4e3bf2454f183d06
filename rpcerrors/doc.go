// Package rpcerrors provides structured error types for rpcdoc.
//
// Import path: github.com/erraggy/rpcdoc/rpcerrors
//
// The types split into two groups. Fatal errors stop document loading
// entirely, so no partially initialized store is ever returned:
//
//   - [ParseError]: the input could not be read or decoded
//   - [ValidationError]: the document failed shape conformance; carries every [Violation]
//   - [ConfigError]: invalid options, such as zero or two input sources
//
// Local errors are returned by individual resolution calls and leave the rest
// of the document usable:
//
//   - [ResolutionError]: a pointer segment does not exist
//   - [ShapeError]: a pointer resolved, but not to the expected kind of object
//
// Reference cycles are not errors. Schema expansion marks them in place with
// a circular stub so rendering can continue.
//
// # Sentinel Errors
//
// Each type matches a sentinel through errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrValidation]: Matches any [ValidationError]
//   - [ErrResolution]: Matches any [ResolutionError]
//   - [ErrShape]: Matches any [ShapeError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage
//
//	st, err := store.Load(openrpc.WithFilePath("openrpc.json"))
//	var verr *rpcerrors.ValidationError
//	if errors.As(err, &verr) {
//	    for _, v := range verr.Violations {
//	        fmt.Println(v)
//	    }
//	}
//
//	cd, err := st.ResolveContentDescriptor(param)
//	if errors.Is(err, rpcerrors.ErrResolution) {
//	    // render a "broken reference" placeholder
//	}
package rpcerrors
