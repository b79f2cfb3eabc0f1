package entity_test

import (
	"fmt"
	"testing"

	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/codec"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/feature/entity"

	"github.com/stretchr/testify/assert"
)

// imageMeta returns a minimal valid flattened metadata set for an image record.
func imageMeta() map[string]any {
	return map[string]any{
		"_sys_file_name":        "logo.png",
		"_sys_file_stem":        "logo",
		"_sys_file_extension":   ".png",
		"_sys_file_type":        "image",
		"_sys_mime_type":        "image/png",
		"_sys_file_size":        2048,
		"_sys_file_modified_at": 1700000000,
		"_sys_category":         "branding",
		"_img_width":            64,
		"_img_height":           64,
		"_img_format":           "PNG",
	}
}

func mustBuild(t *testing.T, flat map[string]any, additional map[string]any) *entity.Record {
	t.Helper()
	rec, err := entity.New(entity.FileTypeImage, flat, additional)
	assert.NoError(t, err)
	assert.NotNil(t, rec)
	return rec
}

func TestNew(t *testing.T) {
	rec := mustBuild(t, imageMeta(), nil)

	assert.Equal(t, entity.FileTypeImage, rec.FileType())
	assert.Equal(t, "logo.png", rec.FileName())
	assert.Equal(t, "branding", rec.Category())
	assert.EqualValues(t, 2048, rec.FileSize())

	t.Run("ChecksumsAreHexDigests", func(t *testing.T) {
		assert.Regexp(t, "^[0-9a-f]{64}$", rec.EntityChecksum())
		assert.Regexp(t, "^[0-9a-f]{64}$", rec.FileChecksum())
		assert.NotEqual(t, rec.EntityChecksum(), rec.FileChecksum())
	})

	t.Run("VersionIsStamped", func(t *testing.T) {
		v, ok := rec.RawField("_sys_version")
		assert.True(t, ok)
		assert.Equal(t, codec.Int(entity.SchemaVersion), v)
	})

	t.Run("DefaultsApplied", func(t *testing.T) {
		status, err := rec.Field("_sys_status")
		assert.NoError(t, err)
		assert.Equal(t, "both", status)

		frames, err := rec.Field("_img_n_frames")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), frames)

		chunks, err := rec.Field("_sys_total_chunks")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), chunks)

		data, err := rec.Field("_sys_data")
		assert.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("Deterministic", func(t *testing.T) {
		again := mustBuild(t, imageMeta(), nil)
		assert.Equal(t, rec.EntityChecksum(), again.EntityChecksum())
		assert.Equal(t, rec.FileChecksum(), again.FileChecksum())
	})
}

func TestNewValidation(t *testing.T) {
	t.Run("MissingRequiredFields", func(t *testing.T) {
		flat := imageMeta()
		delete(flat, "_sys_mime_type")
		delete(flat, "_img_width")

		_, err := entity.New(entity.FileTypeImage, flat, nil)
		var verr *entity.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Contains(t, err.Error(), "_sys_mime_type")
		assert.Contains(t, err.Error(), "_img_width")
	})

	t.Run("NullRequiredField", func(t *testing.T) {
		flat := imageMeta()
		flat["_img_format"] = nil

		_, err := entity.New(entity.FileTypeImage, flat, nil)
		assert.ErrorContains(t, err, "_img_format")
	})

	t.Run("BlankRequiredString", func(t *testing.T) {
		flat := imageMeta()
		flat["_sys_mime_type"] = "   "

		_, err := entity.New(entity.FileTypeImage, flat, nil)
		assert.ErrorContains(t, err, "_sys_mime_type")
	})

	t.Run("WrongKind", func(t *testing.T) {
		flat := imageMeta()
		flat["_img_width"] = "wide"

		_, err := entity.New(entity.FileTypeImage, flat, nil)
		assert.ErrorContains(t, err, "_img_width")
	})

	t.Run("UnknownDeclaredKey", func(t *testing.T) {
		flat := imageMeta()
		flat["_img_bogus"] = 1

		_, err := entity.New(entity.FileTypeImage, flat, nil)
		assert.ErrorContains(t, err, "_img_bogus")
	})

	t.Run("UnsupportedAdditionalValue", func(t *testing.T) {
		type opaque struct{}
		_, err := entity.New(entity.FileTypeImage, imageMeta(), map[string]any{"weird": opaque{}})
		assert.ErrorContains(t, err, "weird")
	})
}

func TestNewSizeLimits(t *testing.T) {
	withSize := func(n int64) map[string]any {
		flat := imageMeta()
		flat["_sys_file_size"] = n
		return flat
	}

	t.Run("LargestBuildableFile", func(t *testing.T) {
		// 99343 * 1.34 = 133119.62, just under the 133120 ceiling.
		rec, err := entity.New(entity.FileTypeImage, withSize(99343), nil)
		assert.NoError(t, err)
		assert.EqualValues(t, 99343, rec.FileSize())
	})

	t.Run("Base64ExpansionOverflows", func(t *testing.T) {
		_, err := entity.New(entity.FileTypeImage, withSize(100000), nil)
		assert.ErrorContains(t, err, "base64 expansion")
	})

	t.Run("RawSizeOverflows", func(t *testing.T) {
		_, err := entity.New(entity.FileTypeImage, withSize(entity.MaxFileSize+1), nil)
		var verr *entity.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.NotContains(t, err.Error(), "base64")
	})
}

func TestChecksumScope(t *testing.T) {
	base := mustBuild(t, imageMeta(), nil)

	t.Run("ModifiedAtExcludedFromEntityChecksum", func(t *testing.T) {
		flat := imageMeta()
		flat["_sys_file_modified_at"] = 1800000000
		rec := mustBuild(t, flat, nil)

		assert.Equal(t, base.EntityChecksum(), rec.EntityChecksum())
		assert.Equal(t, base.FileChecksum(), rec.FileChecksum())
	})

	t.Run("CategoryExcludedFromFileChecksum", func(t *testing.T) {
		flat := imageMeta()
		flat["_sys_category"] = "icons"
		rec := mustBuild(t, flat, nil)

		assert.NotEqual(t, base.EntityChecksum(), rec.EntityChecksum())
		assert.Equal(t, base.FileChecksum(), rec.FileChecksum())
	})

	t.Run("ContentChangesBothChecksums", func(t *testing.T) {
		flat := imageMeta()
		flat["_img_width"] = 128
		rec := mustBuild(t, flat, nil)

		assert.NotEqual(t, base.EntityChecksum(), rec.EntityChecksum())
		assert.NotEqual(t, base.FileChecksum(), rec.FileChecksum())
	})

	t.Run("AdditionalFieldsCovered", func(t *testing.T) {
		rec := mustBuild(t, imageMeta(), map[string]any{"trait_color": "red"})

		assert.NotEqual(t, base.EntityChecksum(), rec.EntityChecksum())
		assert.NotEqual(t, base.FileChecksum(), rec.FileChecksum())
	})
}

func TestRecordAccessorsCopy(t *testing.T) {
	rec := mustBuild(t, imageMeta(), map[string]any{"trait_rank": 5})

	fields := rec.Fields()
	fields["_sys_file_name"] = codec.String("hacked.png")
	assert.Equal(t, "logo.png", rec.FileName())

	add := rec.AdditionalFields()
	add["trait_rank"] = codec.Int(99)
	again := rec.AdditionalFields()
	assert.Equal(t, codec.Int(5), again["trait_rank"])
}

func TestFieldNames(t *testing.T) {
	rec := mustBuild(t, imageMeta(), nil)
	names := rec.FieldNames()

	assert.Equal(t, "_sys_file_name", names[0])

	// The additional-fields slot sits between system and variant fields.
	tail := []string{"additional_fields", "_img_width", "_img_height", "_img_format",
		"_img_has_alpha", "_img_mode", "_img_palette", "_img_n_frames"}
	assert.Equal(t, tail, names[len(names)-len(tail):])

	t.Run("SnapshotStoredAsTaggedList", func(t *testing.T) {
		raw, ok := rec.RawField("_sys_field_names")
		assert.True(t, ok)
		decoded, err := codec.Decode(raw)
		assert.NoError(t, err)

		list, ok := decoded.([]any)
		assert.True(t, ok)
		assert.Len(t, list, len(names))
	})
}

func TestFieldErrors(t *testing.T) {
	rec := mustBuild(t, imageMeta(), nil)

	_, err := rec.Field("_img_no_such_field")
	assert.Error(t, err)
	assert.Equal(t, fmt.Sprintf("unknown field: %q", "_img_no_such_field"), err.Error())
}

func TestParseFileType(t *testing.T) {
	ft, err := entity.ParseFileType("IMAGE")
	assert.NoError(t, err)
	assert.Equal(t, entity.FileTypeImage, ft)

	_, err = entity.ParseFileType("hologram")
	assert.Error(t, err)
}
