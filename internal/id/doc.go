// Package id provides identifier generation utilities.
//
// Every function draws from a caller-supplied *rng.Rand, so the same seed
// always yields the same identifier. The formats are:
//
//   - UUID: UUID v4 shaped strings (version and variant bits set)
//   - ULID: 26-character Crockford base32 identifiers; ULIDAt derives the
//     timestamp from an offset so identifiers sort by generation index
//   - NanoID: 21-character URL-safe identifiers
//   - Short: 16-character hex hash IDs
//   - Alphanumeric: configurable-length alphanumeric strings
//
// None of these are suitable where unpredictability matters.
package id
