// Package errors provides the classified error primitives shared by sitegraph packages.
//
// A ClassifiedError carries a category (config, storage, schema, ...), a severity, a retry
// strategy and free-form context. Errors are created through the fluent ErrorBuilder:
//
//	err := errors.StorageError("query posts failed").
//		WithContext("content_types", types).
//		WithCause(dbErr).
//		Build()
//
// The HTTP and CLI adapters translate categories into status and exit codes.
package errors
