package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/checksum"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/codec"
)

// ValidationError reports every field that failed record construction.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid record fields: " + strings.Join(e.Fields, ", ")
}

// Record is a fully validated, immutable file record. All field values are
// held in the store alphabet; accessors decode on read. The only way to
// obtain a Record is through New (or the staging/wire builders on top of it),
// so every Record in existence satisfies the construction invariants.
type Record struct {
	fileType   FileType
	fields     map[string]codec.Value
	additional map[string]codec.Value
}

// New builds a Record of the given variant from flattened, prefix-keyed raw
// metadata plus the free-form additional bag. Construction either succeeds
// completely or fails with a *ValidationError naming every offending field.
func New(ft FileType, flat map[string]any, additional map[string]any) (*Record, error) {
	specs := declaredFields(ft)
	specByName := make(map[string]FieldSpec, len(specs))
	for _, s := range specs {
		specByName[s.Name] = s
	}

	var problems []string

	// Unknown declared-prefix keys have no field to land in.
	for name := range flat {
		if _, ok := specByName[name]; !ok {
			problems = append(problems, fmt.Sprintf("'%s' is not a declared field", name))
		}
	}

	// Encode every field as it is set: input value, else declared default.
	fields := make(map[string]codec.Value, len(specs))
	for _, s := range specs {
		raw, ok := flat[s.Name]
		if !ok {
			if s.Required {
				continue // reported by the required-field check below
			}
			raw = s.Default
		}
		v, err := codec.Encode(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("'%s' %v", s.Name, err))
			continue
		}
		fields[s.Name] = v
	}

	// Version is never taken from input.
	fields["_sys_version"] = codec.Int(SchemaVersion)

	// Snapshot the declared field names before hashing; the snapshot is part
	// of the entity checksum.
	names, err := codec.Encode(declaredFieldNames(ft))
	if err != nil {
		return nil, err
	}
	fields["_sys_field_names"] = names

	add := make(map[string]codec.Value, len(additional))
	for k, raw := range additional {
		v, err := codec.Encode(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("additional field '%s' %v", k, err))
			continue
		}
		add[k] = v
	}

	entitySum, fileSum := computeChecksums(specs, fields, add)
	fields["_sys_entity_checksum"] = codec.String(entitySum)
	fields["_sys_file_checksum"] = codec.String(fileSum)

	// Required fields first, then the general non-empty sweep.
	problems = append(problems, validateRequired(specs, fields)...)
	problems = append(problems, validateNonEmpty(specs, fields)...)

	if len(problems) > 0 {
		return nil, &ValidationError{Fields: problems}
	}

	if err := validateSize(fields["_sys_file_size"].Int64()); err != nil {
		return nil, err
	}

	return &Record{fileType: ft, fields: fields, additional: add}, nil
}

// computeChecksums derives the entity and file checksums over the encoded
// field values merged with the additional bag, honoring both exclusion sets.
func computeChecksums(specs []FieldSpec, fields, additional map[string]codec.Value) (entitySum, fileSum string) {
	entityData := make(map[string]codec.Value, len(fields)+len(additional))
	fileData := make(map[string]codec.Value, len(fields)+len(additional))
	for k, v := range additional {
		entityData[k] = v
		fileData[k] = v
	}

	for _, s := range specs {
		v, ok := fields[s.Name]
		if !ok {
			continue
		}
		if _, skip := entityChecksumIgnored[s.Name]; skip {
			continue
		}
		entityData[s.Name] = v
		if _, skip := fileChecksumIgnored[s.Name]; skip {
			continue
		}
		fileData[s.Name] = v
	}

	return checksum.ContentHash(entityData), checksum.ContentHash(fileData)
}

// validateRequired checks presence, declared kind and substance of every
// required field.
func validateRequired(specs []FieldSpec, fields map[string]codec.Value) []string {
	var problems []string
	for _, s := range specs {
		if !s.Required {
			continue
		}
		v, ok := fields[s.Name]
		if !ok {
			problems = append(problems, fmt.Sprintf("'%s' is missing", s.Name))
			continue
		}
		if !kindMatches(s.Kind, v) {
			problems = append(problems, fmt.Sprintf("'%s' has incorrect type", s.Name))
			continue
		}
		if v.IsNull() {
			problems = append(problems, fmt.Sprintf("'%s' is null", s.Name))
		}
	}
	return problems
}

// validateNonEmpty rejects absent fields and blank string values. The null
// sentinel is a legitimate stored value for optional fields and passes.
func validateNonEmpty(specs []FieldSpec, fields map[string]codec.Value) []string {
	var problems []string
	for _, s := range specs {
		v, ok := fields[s.Name]
		if !ok {
			problems = append(problems, fmt.Sprintf("'%s' is not set", s.Name))
			continue
		}
		if !v.IsInt() && strings.TrimSpace(v.Str()) == "" {
			problems = append(problems, fmt.Sprintf("'%s' is empty string", s.Name))
		}
	}
	return problems
}

// validateSize enforces both size ceilings: the raw file size and its
// projected base64 expansion must fit under MaxFileSize.
func validateSize(fileSize int64) error {
	if fileSize > MaxFileSize {
		return &ValidationError{Fields: []string{
			fmt.Sprintf("'_sys_file_size' too large: %d bytes, max is %d bytes", fileSize, MaxFileSize),
		}}
	}
	expanded := float64(fileSize) * Base64ExpansionFactor
	if expanded > MaxFileSize {
		return &ValidationError{Fields: []string{
			fmt.Sprintf("'_sys_file_size' too large with base64 expansion: %.0f bytes, max is %d bytes", expanded, MaxFileSize),
		}}
	}
	return nil
}

// FileType returns the record's variant tag.
func (r *Record) FileType() FileType { return r.fileType }

// FileName returns the stored file name.
func (r *Record) FileName() string { return r.fields["_sys_file_name"].Str() }

// Category returns the stored category classification.
func (r *Record) Category() string { return r.fields["_sys_category"].Str() }

// FileSize returns the raw file size in bytes.
func (r *Record) FileSize() int64 { return r.fields["_sys_file_size"].Int64() }

// EntityChecksum returns the identity+content digest.
func (r *Record) EntityChecksum() string { return r.fields["_sys_entity_checksum"].Str() }

// FileChecksum returns the content-only digest.
func (r *Record) FileChecksum() string { return r.fields["_sys_file_checksum"].Str() }

// Field returns the decoded native value of a declared field. Decoding a
// malformed tagged container (possible when the record was rebuilt from a
// corrupt remote entity) returns a *codec.EncodingError.
func (r *Record) Field(name string) (any, error) {
	v, ok := r.fields[name]
	if !ok {
		return nil, fmt.Errorf("unknown field: %q", name)
	}
	return codec.Decode(v)
}

// RawField returns the stored (encoded) value of a declared field.
func (r *Record) RawField(name string) (codec.Value, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Fields returns a copy of the declared field map. Mutating the copy does
// not affect the record.
func (r *Record) Fields() map[string]codec.Value {
	out := make(map[string]codec.Value, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}

// AdditionalFields returns a copy of the free-form field bag.
func (r *Record) AdditionalFields() map[string]codec.Value {
	out := make(map[string]codec.Value, len(r.additional))
	for k, v := range r.additional {
		out[k] = v
	}
	return out
}

// FieldNames returns the declared field names of this record's variant in
// declaration order.
func (r *Record) FieldNames() []string {
	return declaredFieldNames(r.fileType)
}

// additionalKeysSorted returns the additional field names in stable order.
func (r *Record) additionalKeysSorted() []string {
	keys := make([]string, 0, len(r.additional))
	for k := range r.additional {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
