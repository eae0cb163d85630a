// Package errors provides the classified error primitives used across docsite.
//
// A ClassifiedError carries a category (config, validation, filesystem, emit, ...),
// a severity and a retry strategy next to the message and the wrapped cause.
// The CLI and HTTP adapters translate those classifications into exit codes and
// status codes.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "write emitted config").
//		WithContext("path", path).
//		Build()
package errors
