package staging_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	storagemocks "github.com/RealityMetaverse/realitymeta-golembase-tools/core/storage/mocks"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/feature/staging"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const stagedImage = `{
	"_sys_file_name": "logo.png",
	"_sys_file_stem": "logo",
	"_sys_file_extension": ".png",
	"_sys_file_type": "image",
	"_sys_mime_type": "image/png",
	"_sys_file_size": 2048,
	"_sys_file_modified_at": 1700000000,
	"_sys_category": "branding",
	"_img_width": 64,
	"_img_height": 64,
	"_img_format": "PNG",
	"trait_color": "red"
}`

func TestParse(t *testing.T) {
	loader := staging.NewLoader(zap.NewNop())

	t.Run("ValidRecord", func(t *testing.T) {
		rec, err := loader.Parse(strings.NewReader(stagedImage))
		assert.NoError(t, err)
		assert.Equal(t, "logo.png", rec.FileName())
		assert.EqualValues(t, 2048, rec.FileSize())

		// UseNumber keeps integer fields integral.
		width, err := rec.Field("_img_width")
		assert.NoError(t, err)
		assert.Equal(t, int64(64), width)

		color, ok := rec.AdditionalFields()["trait_color"]
		assert.True(t, ok)
		assert.Equal(t, "red", color.Str())
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		_, err := loader.Parse(strings.NewReader("{broken"))
		assert.ErrorContains(t, err, "parse staged record")
	})

	t.Run("MissingFileType", func(t *testing.T) {
		_, err := loader.Parse(strings.NewReader(`{"_sys_file_name": "x.png"}`))
		assert.ErrorContains(t, err, "_sys_file_type")
	})
}

func TestLoadDirectory(t *testing.T) {
	loader := staging.NewLoader(zap.NewNop())

	t.Run("SkipsBadFiles", func(t *testing.T) {
		dir := t.TempDir()
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "good.json"), []byte(stagedImage), 0o644))
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "corrupt.json"), []byte("{broken"), 0o644))
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

		records, err := loader.LoadDirectory(dir)
		assert.NoError(t, err)
		assert.Len(t, records, 1)
		assert.Equal(t, "logo.png", records[0].FileName())
	})

	t.Run("Recursive", func(t *testing.T) {
		dir := t.TempDir()
		sub := filepath.Join(dir, "nested")
		assert.NoError(t, os.MkdirAll(sub, 0o755))
		assert.NoError(t, os.WriteFile(filepath.Join(sub, "rec.json"), []byte(stagedImage), 0o644))

		records, err := loader.LoadDirectory(dir)
		assert.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		_, err := loader.LoadDirectory(filepath.Join(t.TempDir(), "absent"))
		assert.Error(t, err)
	})
}

func objectChannel(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func TestLoadBucket(t *testing.T) {
	loader := staging.NewLoader(zap.NewNop())
	ctx := context.Background()

	t.Run("LoadsJSONObjects", func(t *testing.T) {
		client := new(storagemocks.Client)
		client.On("BucketExists", mock.Anything, "staged-records").Return(true, nil)
		client.On("ListObjects", mock.Anything, "staged-records", mock.AnythingOfType("minio.ListObjectsOptions")).
			Return(objectChannel("world-42/logo.json", "world-42/readme.md"))
		client.On("GetObject", mock.Anything, "staged-records", "world-42/logo.json", mock.AnythingOfType("minio.GetObjectOptions")).
			Return(io.NopCloser(strings.NewReader(stagedImage)), nil)

		records, err := loader.LoadBucket(ctx, client, "staged-records", "world-42/")
		assert.NoError(t, err)
		assert.Len(t, records, 1)
		assert.Equal(t, "logo.png", records[0].FileName())
		client.AssertExpectations(t)
	})

	t.Run("MissingBucket", func(t *testing.T) {
		client := new(storagemocks.Client)
		client.On("BucketExists", mock.Anything, "absent").Return(false, nil)

		_, err := loader.LoadBucket(ctx, client, "absent", "")
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("SkipsBadObjects", func(t *testing.T) {
		client := new(storagemocks.Client)
		client.On("BucketExists", mock.Anything, "staged-records").Return(true, nil)
		client.On("ListObjects", mock.Anything, "staged-records", mock.AnythingOfType("minio.ListObjectsOptions")).
			Return(objectChannel("good.json", "corrupt.json"))
		client.On("GetObject", mock.Anything, "staged-records", "good.json", mock.AnythingOfType("minio.GetObjectOptions")).
			Return(io.NopCloser(strings.NewReader(stagedImage)), nil)
		client.On("GetObject", mock.Anything, "staged-records", "corrupt.json", mock.AnythingOfType("minio.GetObjectOptions")).
			Return(io.NopCloser(strings.NewReader("{broken")), nil)

		records, err := loader.LoadBucket(ctx, client, "staged-records", "")
		assert.NoError(t, err)
		assert.Len(t, records, 1)
	})
}
