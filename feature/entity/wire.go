package entity

import (
	"fmt"

	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/golembase"
)

// WireForm renders the record in the store's native shape: a short
// human-readable payload plus string and numeric annotation lists covering
// every declared and additional field.
func (r *Record) WireForm() (payload string, strs []golembase.StringAnnotation, nums []golembase.NumericAnnotation) {
	payload = fmt.Sprintf("%s | %s | %s | %s | %d",
		r.Category(),
		r.fields["_sys_file_stem"].Str(),
		r.fields["_sys_file_extension"].Str(),
		r.fields["_sys_file_type"].Str(),
		r.FileSize(),
	)

	appendAnnotation := func(name string) {
		v := r.fields[name]
		if v.IsInt() {
			nums = append(nums, golembase.NumericAnnotation{Name: name, Value: v.Int64()})
		} else {
			strs = append(strs, golembase.StringAnnotation{Name: name, Value: v.Str()})
		}
	}

	for _, s := range declaredFields(r.fileType) {
		appendAnnotation(s.Name)
	}

	for _, k := range r.additionalKeysSorted() {
		v := r.additional[k]
		if v.IsInt() {
			nums = append(nums, golembase.NumericAnnotation{Name: k, Value: v.Int64()})
		} else {
			strs = append(strs, golembase.StringAnnotation{Name: k, Value: v.Str()})
		}
	}

	return payload, strs, nums
}

// FromEntity rebuilds a Record from a remote entity's annotations. The
// annotations are merged into one mapping, split into declared and
// additional fields by prefix membership, and passed back through the
// regular builder so every construction invariant re-validates on read.
// Checksums are recomputed, never trusted from the wire.
func FromEntity(e *golembase.Entity) (*Record, error) {
	merged := make(map[string]any, len(e.StringAnnotations)+len(e.NumericAnnotations))
	for _, a := range e.StringAnnotations {
		merged[a.Name] = a.Value
	}
	for _, a := range e.NumericAnnotations {
		merged[a.Name] = a.Value
	}
	declared, additional := SplitFlat(merged)

	rawType, ok := declared["_sys_file_type"].(string)
	if !ok || rawType == "" {
		return nil, &ValidationError{Fields: []string{"'_sys_file_type' is missing from entity annotations"}}
	}
	ft, err := ParseFileType(rawType)
	if err != nil {
		return nil, &ValidationError{Fields: []string{fmt.Sprintf("'_sys_file_type' %v", err)}}
	}

	return New(ft, declared, additional)
}
