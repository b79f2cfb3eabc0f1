// Package codec converts native Go values to and from the restricted value
// alphabet of the Golem Base annotation store.
//
// The store only knows two scalar kinds: strings and integers. Everything else
// is carried through reversible sentinel encodings:
//
//   - nil          -> "null"
//   - true/false   -> "true"/"false"
//   - float        -> decimal string
//   - list         -> "__list__:" + JSON array (empty list collapses to "null")
//   - dict         -> "__dict__:" + JSON object (empty dict collapses to "null")
//   - blank string -> "null"
//
// Integers are never collapsed to booleans, and booleans are never collapsed
// to integers; the sentinel lookup is kind-exact.
//
// # Known ambiguity
//
// A plain string that happens to equal a sentinel ("null", "true", "false"),
// or that parses as a float (e.g. "1.5" or "-7"), is indistinguishable from the
// encoded form of the corresponding native value. Decode resolves these in
// favor of the native value. This matches the upstream store convention and
// is accepted as a limitation rather than worked around.
package codec
