// Package openrpc provides loading and the typed document model for OpenRPC
// API descriptions.
//
// A document is read once from a file, reader, byte slice or pre-decoded map.
// YAML and JSON are both accepted, and gzip or zstd compressed input is
// detected from the file extension or the frame header.
//
// # Quick Start
//
//	doc, err := openrpc.ParseWithOptions(
//		openrpc.WithFilePath("openrpc.json"),
//	)
//	if err != nil {
//		var verr *rpcerrors.ValidationError
//		if errors.As(err, &verr) {
//			for _, v := range verr.Violations {
//				fmt.Println(v)
//			}
//		}
//		log.Fatal(err)
//	}
//	for _, m := range doc.ConcreteMethods() {
//		fmt.Println(m.Name)
//	}
//
// # Validation
//
// Before decoding, the raw document is passed to a Validator. The default
// StructuralValidator checks the required top-level fields, the shape of each
// method entry and that every "$ref" is a same-document pointer. Any
// violation aborts the load with a *rpcerrors.ValidationError that lists all
// of them. Use WithValidator to plug in a full meta-schema check.
//
// # References
//
// Fields that may be either a "$ref" or an inline object are decoded as
// OrRef values. The variant is fixed at decode time; resolving the reference
// is the job of the resolve package. Top-level method entries that are
// references are kept in Document.Methods but excluded from
// ConcreteMethods.
//
// The decoded Document keeps the untouched input in Raw. Pointers are always
// walked against Raw, so a Document must be treated as immutable.
package openrpc
