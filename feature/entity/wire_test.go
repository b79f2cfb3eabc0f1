package entity_test

import (
	"testing"

	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/golembase"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/feature/entity"

	"github.com/stretchr/testify/assert"
)

func annotationValue(strs []golembase.StringAnnotation, name string) (string, bool) {
	for _, a := range strs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func numericValue(nums []golembase.NumericAnnotation, name string) (int64, bool) {
	for _, a := range nums {
		if a.Name == name {
			return a.Value, true
		}
	}
	return 0, false
}

func TestWireForm(t *testing.T) {
	rec := mustBuild(t, imageMeta(), map[string]any{
		"trait_color": "red",
		"trait_rank":  5,
	})

	payload, strs, nums := rec.WireForm()

	t.Run("Payload", func(t *testing.T) {
		assert.Equal(t, "branding | logo | .png | image | 2048", payload)
	})

	t.Run("DeclaredFieldsSplitByKind", func(t *testing.T) {
		name, ok := annotationValue(strs, "_sys_file_name")
		assert.True(t, ok)
		assert.Equal(t, "logo.png", name)

		size, ok := numericValue(nums, "_sys_file_size")
		assert.True(t, ok)
		assert.EqualValues(t, 2048, size)

		version, ok := numericValue(nums, "_sys_version")
		assert.True(t, ok)
		assert.EqualValues(t, entity.SchemaVersion, version)

		sum, ok := annotationValue(strs, "_sys_entity_checksum")
		assert.True(t, ok)
		assert.Equal(t, rec.EntityChecksum(), sum)
	})

	t.Run("AdditionalFieldsIncluded", func(t *testing.T) {
		color, ok := annotationValue(strs, "trait_color")
		assert.True(t, ok)
		assert.Equal(t, "red", color)

		rank, ok := numericValue(nums, "trait_rank")
		assert.True(t, ok)
		assert.EqualValues(t, 5, rank)
	})

	t.Run("NoAnnotationNameAppearsTwice", func(t *testing.T) {
		seen := map[string]bool{}
		for _, a := range strs {
			assert.False(t, seen[a.Name], "duplicate annotation %s", a.Name)
			seen[a.Name] = true
		}
		for _, a := range nums {
			assert.False(t, seen[a.Name], "duplicate annotation %s", a.Name)
			seen[a.Name] = true
		}
	})
}

// An additional-bag key may collide with a declared field name. The bag is
// kept separate on purpose: the declared value wins inside both checksums,
// and the wire form carries both annotations. Known accepted ambiguity of
// the free-form bag, preserved as-is.
func TestWireFormAdditionalShadowsDeclaredName(t *testing.T) {
	base := mustBuild(t, imageMeta(), nil)
	rec := mustBuild(t, imageMeta(), map[string]any{"_sys_data": "shadow"})

	t.Run("DeclaredValueWinsInChecksums", func(t *testing.T) {
		assert.Equal(t, base.EntityChecksum(), rec.EntityChecksum())
		assert.Equal(t, base.FileChecksum(), rec.FileChecksum())
	})

	t.Run("BothAnnotationsEmitted", func(t *testing.T) {
		_, strs, _ := rec.WireForm()

		var values []string
		for _, a := range strs {
			if a.Name == "_sys_data" {
				values = append(values, a.Value)
			}
		}
		// Declared fields are emitted before the additional bag.
		assert.Equal(t, []string{"null", "shadow"}, values)
	})

	t.Run("BagKeepsTheShadow", func(t *testing.T) {
		shadow, ok := rec.AdditionalFields()["_sys_data"]
		assert.True(t, ok)
		assert.Equal(t, "shadow", shadow.Str())
	})
}

func TestFromEntity(t *testing.T) {
	rec := mustBuild(t, imageMeta(), map[string]any{"trait_color": "red"})
	payload, strs, nums := rec.WireForm()

	remote := &golembase.Entity{
		Key:                "0xabc",
		Payload:            []byte(payload),
		StringAnnotations:  strs,
		NumericAnnotations: nums,
	}

	t.Run("RoundTrip", func(t *testing.T) {
		rebuilt, err := entity.FromEntity(remote)
		assert.NoError(t, err)

		assert.Equal(t, rec.FileName(), rebuilt.FileName())
		assert.Equal(t, rec.Category(), rebuilt.Category())
		assert.Equal(t, rec.FileType(), rebuilt.FileType())
		assert.Equal(t, rec.EntityChecksum(), rebuilt.EntityChecksum())
		assert.Equal(t, rec.FileChecksum(), rebuilt.FileChecksum())

		color, ok := rebuilt.AdditionalFields()["trait_color"]
		assert.True(t, ok)
		assert.Equal(t, "red", color.Str())
	})

	t.Run("MissingFileType", func(t *testing.T) {
		stripped := &golembase.Entity{Key: "0xdef"}
		for _, a := range strs {
			if a.Name == "_sys_file_type" {
				continue
			}
			stripped.StringAnnotations = append(stripped.StringAnnotations, a)
		}
		stripped.NumericAnnotations = nums

		_, err := entity.FromEntity(stripped)
		assert.ErrorContains(t, err, "_sys_file_type")
	})

	t.Run("InvalidFileType", func(t *testing.T) {
		mangled := &golembase.Entity{Key: "0xdef", NumericAnnotations: nums}
		for _, a := range strs {
			if a.Name == "_sys_file_type" {
				a.Value = "hologram"
			}
			mangled.StringAnnotations = append(mangled.StringAnnotations, a)
		}

		_, err := entity.FromEntity(mangled)
		assert.ErrorContains(t, err, "_sys_file_type")
	})
}
