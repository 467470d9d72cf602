// Package modelgen synthesizes items from normalized model schemas, such
// as the ones recovered from a scanned client package.
//
// Generation dispatches on each field's declared type and falls back to
// field-name heuristics when the type is too generic to be useful
// (any, or a number that is really a count). Optional fields are left
// out at a configurable rate. References recurse into the referenced
// model, guarded by a visited-model set and a maximum depth:
//
//	gen := modelgen.NewGenerator(pkg.Models, modelgen.DefaultOptions())
//	item := gen.Generate("Pet", rng.Hash("seed"))
package modelgen
