// Package entity implements the normalized record model for files stored in
// Golem Base.
//
// A Record is built once from extracted file metadata and is immutable from
// then on. Construction is atomic: every field is encoded into the store
// alphabet, the schema version is stamped, the declared field-name list is
// snapshotted, both content checksums are derived, and all required-field,
// non-empty and size invariants are validated before a usable value is
// returned. A construction failure yields a ValidationError naming every
// offending field and no partial record.
//
// # Variants
//
// Records come in six shapes sharing the same system fields: other (the
// base), image, video, audio, text and json. Each variant carries its
// required and optional field set as data (see fields.go); one generic
// validator covers all of them.
//
// # Checksums
//
// The entity checksum covers every declared field plus the free-form
// additional fields, excluding the schema version, both checksums and the
// modification timestamp. The file checksum additionally excludes the
// field-name snapshot, parent file name, category and tags, so it only
// changes when the file content or its intrinsic metadata changes. Both are
// recomputed on every build and never carried over from remote data.
package entity
