// Package paginate builds page, offset and cursor windows over snapshots.
//
// A request resolves a snapshot through the snapshot store, slices its ID
// list and asks the ItemProvider for each item. Because items are a pure
// function of (id, index, seed), the same page or cursor always yields the
// same items for the lifetime of the snapshot.
//
// Cursors are opaque to callers. Three encodings are accepted when
// decoding, tried in order:
//
//   - structured: base64url JSON carrying the anchor ID, direction,
//     snapshot handle, issue time and optional sort info
//   - legacy: base64 of a decimal index
//   - raw: any token of at least eight non-space characters, taken as an
//     anchor ID
//
// Undecodable or expired cursors restart at the first item.
package paginate
