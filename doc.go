// Package webprint builds Brother Smooth Print URIs.
//
// A print URI tells the Brother web print application what and how to print:
//
//	brotherwebprint://print?filename=https%3A%2F%2Fexample.com%2FSimple.lbx&size=https%3A%2F%2Fexample.com%2F26x76.bin
//
// # Arguments
//
// [Args] describes a print job. The layout template and the media settings are
// exclusive pairs: exactly one of filename/fileattach and exactly one of
// size/sizeattach must be provided. [Args] encodes them as sum types, so
// providing both members of a pair is not representable:
//
//	u, err := webprint.Generate(webprint.Args{
//	    File:      webprint.Filename("https://example.com/Simple.lbx"),
//	    Size:      webprint.SizeAttach(base64Bin),
//	    Copies:    webprint.Ptr(2),
//	    Rotate180: webprint.Ptr(true),
//	    Objects:   []webprint.Object{webprint.Text("TITLE", "Hello")},
//	})
//
// Arguments from dynamic sources, like configuration files or request bodies,
// are represented by [Params], an ordered set of untyped values. [DecodeParams]
// reads them from YAML or JSON, [GenerateParams] validates and serializes them.
// Both paths enforce the exclusive pairs at runtime.
//
// # Serialization
//
// Strings are emitted as is, numbers in decimal notation, booleans as "1" or "0"
// (false is never omitted), absent values are skipped. Any other value shape
// fails with [ErrUnsupportedValueType]. Names and values are escaped with
// [net/url.QueryEscape].
//
// # Errors
//
// Exclusive pair violations are reported as [*MissingRequiredError] and
// [*ConflictingFieldsError]; when both pairs are violated the errors are joined.
// Use [errors.Is] with [ErrMissingRequired], [ErrConflictingFields],
// [ErrUnsupportedValueType], [ErrInvalidArgument] and [ErrInvalidURI] to classify failures.
//
// # Thread Safety
//
// All functions are pure, [URI] is immutable and safe to share across goroutines.
package webprint
