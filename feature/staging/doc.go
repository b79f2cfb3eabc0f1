// Package staging loads locally staged record files and turns them into
// validated entity records.
//
// A staged record is one UTF-8 JSON file per source file whose keys are the
// flattened, prefix-qualified field names (_sys_file_name, _img_width, ...)
// and whose values are plain JSON types, not yet passed through the store
// codec. Keys outside the declared prefixes become free-form additional
// fields (e.g. NFT trait attributes).
//
// Staged records can be read from a local directory or from an object
// storage bucket. A file that fails to parse or validate is logged and
// skipped; a bad record never aborts the batch.
package staging
