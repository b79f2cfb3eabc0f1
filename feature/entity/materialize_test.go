package entity_test

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/RealityMetaverse/realitymeta-golembase-tools/feature/entity"

	"github.com/stretchr/testify/assert"
)

func imageMetaWithData(data string) map[string]any {
	flat := imageMeta()
	flat["_sys_data"] = data
	return flat
}

func TestMaterialize(t *testing.T) {
	content := []byte("png bytes go here")

	t.Run("PlainBase64", func(t *testing.T) {
		dir := t.TempDir()
		rec := mustBuild(t, imageMetaWithData(base64.StdEncoding.EncodeToString(content)), nil)

		path, err := rec.Materialize(dir, false)
		assert.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "logo.png"), path)

		written, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Equal(t, content, written)
	})

	t.Run("OrganizeByCategory", func(t *testing.T) {
		dir := t.TempDir()
		rec := mustBuild(t, imageMetaWithData(base64.StdEncoding.EncodeToString(content)), nil)

		path, err := rec.Materialize(dir, true)
		assert.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "branding", "logo.png"), path)
	})

	t.Run("GzipTagged", func(t *testing.T) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write(content)
		assert.NoError(t, err)
		assert.NoError(t, zw.Close())

		encoded := entity.GzipPrefix + base64.StdEncoding.EncodeToString(buf.Bytes())
		dir := t.TempDir()
		rec := mustBuild(t, imageMetaWithData(encoded), nil)

		path, err := rec.Materialize(dir, false)
		assert.NoError(t, err)

		written, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Equal(t, content, written)
	})

	t.Run("NoData", func(t *testing.T) {
		rec := mustBuild(t, imageMeta(), nil)

		_, err := rec.Materialize(t.TempDir(), false)
		assert.ErrorContains(t, err, "no file data")
	})

	t.Run("BadBase64", func(t *testing.T) {
		rec := mustBuild(t, imageMetaWithData("%%% not base64 %%%"), nil)

		_, err := rec.Materialize(t.TempDir(), false)
		assert.ErrorContains(t, err, "decode data")
	})

	t.Run("CorruptGzip", func(t *testing.T) {
		encoded := entity.GzipPrefix + base64.StdEncoding.EncodeToString([]byte("not gzip"))
		rec := mustBuild(t, imageMetaWithData(encoded), nil)

		_, err := rec.Materialize(t.TempDir(), false)
		assert.ErrorContains(t, err, "decompress")
	})
}
