package entity

import "fmt"

// Metadata category names used by the nested (pre-flattening) metadata shape.
const (
	CategorySystem     = "system"
	CategoryImage      = "image"
	CategoryVideo      = "video"
	CategoryAudio      = "audio"
	CategoryText       = "text"
	CategoryJSON       = "json"
	CategoryAdditional = "additional"
)

// categoryPrefixes maps each metadata category onto its field-name prefix.
// The additional category has no prefix; its keys pass through verbatim.
var categoryPrefixes = map[string]string{
	CategorySystem: SysPrefix,
	CategoryImage:  ImgPrefix,
	CategoryVideo:  VidPrefix,
	CategoryAudio:  AudPrefix,
	CategoryText:   TxtPrefix,
	CategoryJSON:   JSONPrefix,
}

// SplitFlat partitions a flattened field mapping into declared fields and
// the free-form additional bag by prefix membership.
func SplitFlat(flat map[string]any) (declared, additional map[string]any) {
	declared = make(map[string]any)
	additional = make(map[string]any)
	for name, value := range flat {
		if hasMetadataPrefix(name) {
			declared[name] = value
		} else {
			additional[name] = value
		}
	}
	return declared, additional
}

// Build flattens nested category metadata into prefixed field names and
// constructs the record variant matching the file type. Unknown categories
// are ignored; the additional category becomes the free-form field bag.
func Build(ft FileType, nested map[string]map[string]any) (*Record, error) {
	flat := make(map[string]any)
	additional := map[string]any{}

	for category, values := range nested {
		if category == CategoryAdditional {
			additional = values
			continue
		}
		prefix, ok := categoryPrefixes[category]
		if !ok {
			continue
		}
		for key, value := range values {
			flat[prefix+key] = value
		}
	}

	return New(ft, flat, additional)
}

// BuildFromMetadata constructs a record from nested metadata alone, reading
// the file type out of the system category.
func BuildFromMetadata(nested map[string]map[string]any) (*Record, error) {
	sys, ok := nested[CategorySystem]
	if !ok {
		return nil, fmt.Errorf("system metadata is missing")
	}
	rawType, ok := sys["file_type"].(string)
	if !ok || rawType == "" {
		return nil, fmt.Errorf("file_type not found in system metadata")
	}
	ft, err := ParseFileType(rawType)
	if err != nil {
		return nil, err
	}
	return Build(ft, nested)
}
