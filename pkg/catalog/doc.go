// Package catalog is the composition root for seedmock. It registers
// schema sources (OpenAPI documents, compiled proto schemas and scanned
// client packages) under a name, resolves item providers by source and
// model, and serves items and page, offset or cursor windows through one
// shared snapshot store.
//
// A Catalog is safe for concurrent use. Reset clears every snapshot and
// parsed cache; registered sources stay registered and client packages
// are rescanned on next use.
package catalog
