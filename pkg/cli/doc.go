// Package cli implements the seedmock command line.
//
// Sources are registered with repeatable flags, each taking an optional
// name prefix:
//
//	--openapi shop=api.yaml
//	--proto grpc=service.proto --import-path ./proto
//	--client web=./generated-client
//
// Without a prefix the source is named after the file or directory. When
// exactly one source is loaded it is used by default; otherwise commands
// that generate data need --source.
//
// Commands:
//   - sources: list loaded sources
//   - models: list models and their wire keys
//   - endpoints: list endpoints recovered from each source
//   - item: generate one item by index
//   - page: generate a page (or an offset window with --offset)
//   - cursor: walk a cursor-paginated listing
//   - serve-grpc: serve every method of a proto source over gRPC
//   - config: print the effective configuration
//   - version: show version information
//
// Any JSON output can be narrowed with --select, a JSONPath expression:
//
//	seedmock --openapi api.yaml page Product --select '$.items[*].id'
//	seedmock --openapi api.yaml cursor Product --select '$.nextCursor'
package cli
