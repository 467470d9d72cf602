// Package schema defines the normalized model and endpoint shapes shared
// by every schema backend.
//
// Backends (OpenAPI documents, protobuf descriptors, scanned client
// packages) translate their native representation into ModelSchema and
// Endpoint values so synthesis and pagination never depend on where the
// metadata came from. The package also hosts the response-shape
// classifier that decides whether a list response is page-based or
// cursor-based.
package schema
