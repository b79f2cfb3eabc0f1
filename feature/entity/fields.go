package entity

import (
	"fmt"
	"strings"

	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/codec"
)

// SchemaVersion is stamped into _sys_version on every build.
const SchemaVersion = 1

// Golem Base entity size limits, in bytes. The store caps entries at 140KiB;
// 10KiB is reserved for annotations and payload framing.
// TODO: measure whether 10KiB reservation matches real annotation overhead.
const (
	MaxEntrySize          = 140 * 1024
	ReservedMetadataSpace = 10 * 1024
	MaxFileSize           = MaxEntrySize - ReservedMetadataSpace

	// Base64ExpansionFactor approximates the size growth of base64 payloads.
	Base64ExpansionFactor = 1.34
)

// Field name prefixes, one per metadata category.
const (
	SysPrefix  = "_sys_"
	ImgPrefix  = "_img_"
	AudPrefix  = "_aud_"
	VidPrefix  = "_vid_"
	TxtPrefix  = "_txt_"
	JSONPrefix = "_json_"
)

// metadataPrefixes lists every declared-field prefix; annotation names outside
// these prefixes belong to the free-form additional bag.
var metadataPrefixes = []string{SysPrefix, ImgPrefix, AudPrefix, VidPrefix, TxtPrefix, JSONPrefix}

// hasMetadataPrefix reports whether a field name belongs to a declared category.
func hasMetadataPrefix(name string) bool {
	for _, p := range metadataPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// FileType classifies the source file.
type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
	FileTypeAudio FileType = "audio"
	FileTypeJSON  FileType = "json"
	FileTypeText  FileType = "text"
	FileTypeOther FileType = "other"
)

// ParseFileType maps a string onto a FileType, case-insensitively.
func ParseFileType(s string) (FileType, error) {
	switch FileType(strings.ToLower(s)) {
	case FileTypeImage, FileTypeVideo, FileTypeAudio, FileTypeJSON, FileTypeText, FileTypeOther:
		return FileType(strings.ToLower(s)), nil
	default:
		return "", fmt.Errorf("invalid file type: %q", s)
	}
}

// Status marks environment availability of a record.
type Status string

const (
	StatusNone    Status = "none"
	StatusStaging Status = "staging"
	StatusProd    Status = "prod"
	StatusBoth    Status = "both"
)

// Kind is the native type contract of a declared field.
type Kind uint8

const (
	// KindString fields hold store strings (including sentinel encodings).
	KindString Kind = iota
	// KindInt fields hold store integers.
	KindInt
	// KindBoolOrString fields accept booleans (which encode to sentinel
	// strings) or plain strings.
	KindBoolOrString
)

// FieldSpec declares one field of a record variant.
type FieldSpec struct {
	Name     string
	Kind     Kind
	Required bool
	// Default is the raw value applied when the input omits the field.
	// Only meaningful for optional fields.
	Default any
}

// Checksum exclusion sets. The entity checksum skips volatile bookkeeping
// fields; the file checksum additionally skips classification fields so it
// tracks file content only.
var entityChecksumIgnored = map[string]struct{}{
	"_sys_version":          {},
	"_sys_file_checksum":    {},
	"_sys_entity_checksum":  {},
	"_sys_file_modified_at": {},
}

var fileChecksumIgnored = map[string]struct{}{
	"_sys_field_names":      {},
	"_sys_parent_file_name": {},
	"_sys_category":         {},
	"_sys_tags":             {},
}

// systemFields is shared by every variant, in declaration order.
var systemFields = []FieldSpec{
	{Name: "_sys_file_name", Kind: KindString, Required: true},
	{Name: "_sys_file_stem", Kind: KindString, Required: true},
	{Name: "_sys_file_extension", Kind: KindString, Required: true},
	{Name: "_sys_file_type", Kind: KindString, Required: true},
	{Name: "_sys_mime_type", Kind: KindString, Required: true},
	{Name: "_sys_file_size", Kind: KindInt, Required: true},
	{Name: "_sys_file_modified_at", Kind: KindInt, Required: true},
	{Name: "_sys_category", Kind: KindString, Required: true},
	{Name: "_sys_version", Kind: KindInt, Default: SchemaVersion},
	{Name: "_sys_status", Kind: KindString, Default: string(StatusBoth)},
	{Name: "_sys_data", Kind: KindString, Default: nil},
	{Name: "_sys_compression_method", Kind: KindString, Default: nil},
	{Name: "_sys_compressed_data_size", Kind: KindInt, Default: nil},
	// Chunking is reserved; single-chunk records only for now.
	{Name: "_sys_total_chunks", Kind: KindInt, Default: 1},
	{Name: "_sys_chunk_index", Kind: KindInt, Default: 1},
	// Reserved for parent-child relationships.
	{Name: "_sys_parent_file_name", Kind: KindString, Default: nil},
	{Name: "_sys_tags", Kind: KindString, Default: nil},
	// Populated during construction, never taken from input.
	{Name: "_sys_field_names", Kind: KindString, Default: nil},
	{Name: "_sys_entity_checksum", Kind: KindString, Default: nil},
	{Name: "_sys_file_checksum", Kind: KindString, Default: nil},
}

// additionalFieldsName is the pseudo-field under which the free-form bag is
// tracked in the field-name snapshot.
const additionalFieldsName = "additional_fields"

var imageFields = []FieldSpec{
	{Name: "_img_width", Kind: KindInt, Required: true},
	{Name: "_img_height", Kind: KindInt, Required: true},
	{Name: "_img_format", Kind: KindString, Required: true},
	{Name: "_img_has_alpha", Kind: KindBoolOrString, Default: nil},
	{Name: "_img_mode", Kind: KindString, Default: nil},
	{Name: "_img_palette", Kind: KindString, Default: nil},
	{Name: "_img_n_frames", Kind: KindInt, Default: 1},
}

var videoFields = []FieldSpec{
	{Name: "_vid_width", Kind: KindInt, Required: true},
	{Name: "_vid_height", Kind: KindInt, Required: true},
	{Name: "_vid_codec", Kind: KindString, Required: true},
	{Name: "_vid_frame_rate", Kind: KindInt, Required: true},
	{Name: "_vid_duration", Kind: KindInt, Required: true},
	{Name: "_vid_format", Kind: KindString, Required: true},
	{Name: "_vid_has_audio", Kind: KindBoolOrString, Required: true},
	{Name: "_vid_pixel_format", Kind: KindString, Default: nil},
	{Name: "_vid_audio_codec", Kind: KindString, Default: nil},
	{Name: "_vid_audio_sample_rate", Kind: KindInt, Default: nil},
	{Name: "_vid_audio_channels", Kind: KindInt, Default: nil},
	{Name: "_vid_bitrate", Kind: KindInt, Default: nil},
}

var audioFields = []FieldSpec{
	{Name: "_aud_duration", Kind: KindInt, Required: true},
	{Name: "_aud_bitrate", Kind: KindInt, Default: nil},
	{Name: "_aud_sample_rate", Kind: KindInt, Default: nil},
	{Name: "_aud_channels", Kind: KindInt, Default: nil},
	{Name: "_aud_codec", Kind: KindString, Default: nil},
	{Name: "_aud_mode", Kind: KindString, Default: nil},
	{Name: "_aud_version", Kind: KindString, Default: nil},
	{Name: "_aud_layer", Kind: KindString, Default: nil},
}

var textFields = []FieldSpec{
	{Name: "_txt_content", Kind: KindString, Required: true},
	{Name: "_txt_line_count", Kind: KindInt, Required: true},
	{Name: "_txt_char_count", Kind: KindInt, Required: true},
	{Name: "_txt_word_count", Kind: KindInt, Required: true},
	{Name: "_txt_encoding_used", Kind: KindString, Default: nil},
}

var jsonFields = []FieldSpec{
	{Name: "_json_is_nft_metadata", Kind: KindBoolOrString, Required: true},
}

// variantFields maps each file type onto its variant-specific field set.
// FileTypeOther carries system fields only.
var variantFields = map[FileType][]FieldSpec{
	FileTypeImage: imageFields,
	FileTypeVideo: videoFields,
	FileTypeAudio: audioFields,
	FileTypeText:  textFields,
	FileTypeJSON:  jsonFields,
	FileTypeOther: nil,
}

// declaredFields returns the full ordered field list of a variant: system
// fields, the additional-fields slot, then variant fields. The order is part
// of the _sys_field_names snapshot and therefore of the entity checksum.
func declaredFields(ft FileType) []FieldSpec {
	variant := variantFields[ft]
	specs := make([]FieldSpec, 0, len(systemFields)+len(variant))
	specs = append(specs, systemFields...)
	specs = append(specs, variant...)
	return specs
}

// declaredFieldNames returns the field-name snapshot for a variant, with the
// additional-fields slot between system and variant fields.
func declaredFieldNames(ft FileType) []string {
	names := make([]string, 0, len(systemFields)+len(variantFields[ft])+1)
	for _, s := range systemFields {
		names = append(names, s.Name)
	}
	names = append(names, additionalFieldsName)
	for _, s := range variantFields[ft] {
		names = append(names, s.Name)
	}
	return names
}

// kindMatches checks a stored value against a declared kind. Booleans encode
// to sentinel strings, so KindBoolOrString accepts any string value.
func kindMatches(k Kind, v codec.Value) bool {
	switch k {
	case KindInt:
		return v.IsInt()
	default:
		return !v.IsInt()
	}
}
