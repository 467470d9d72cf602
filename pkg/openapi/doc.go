// Package openapi turns OpenAPI 3.x and Swagger 2.0 documents into
// deterministic sample data.
//
// LoadFile and LoadData parse a document with kin-openapi, converting
// Swagger 2.0 to OpenAPI 3. The Generator walks schema nodes and produces
// a value for a seed; Models and Operations normalize the document into
// the shared schema package types, and NewProvider adapts a schema to
// provider.ItemProvider for pagination.
package openapi
