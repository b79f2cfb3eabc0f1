package staging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/storage"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/feature/entity"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Loader builds entity records from staged JSON files.
type Loader struct {
	log *zap.Logger
}

// NewLoader creates a loader that reports per-file failures on the logger.
func NewLoader(log *zap.Logger) *Loader {
	return &Loader{log: log}
}

// LoadDirectory reads every .json file under dir (recursively) and builds a
// record from each. Files that fail to parse or validate are logged and
// skipped. The returned error only reflects an unwalkable directory.
func (l *Loader) LoadDirectory(dir string) ([]*entity.Record, error) {
	var records []*entity.Record

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			l.log.Error("failed to open staged record", zap.String("path", path), zap.Error(err))
			return nil
		}
		rec, err := l.Parse(f)
		f.Close()
		if err != nil {
			l.log.Error("failed to build record from staged file", zap.String("path", path), zap.Error(err))
			return nil
		}

		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk staging directory %s: %w", dir, err)
	}

	return records, nil
}

// LoadBucket reads every .json object under prefix in the given bucket and
// builds a record from each, with the same per-file failure isolation as
// LoadDirectory.
func (l *Loader) LoadBucket(ctx context.Context, client storage.Client, bucket, prefix string) ([]*entity.Record, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	var records []*entity.Record

	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return records, fmt.Errorf("list bucket %s: %w", bucket, obj.Err)
		}
		if !strings.EqualFold(filepath.Ext(obj.Key), ".json") {
			continue
		}

		reader, err := client.GetObject(ctx, bucket, obj.Key, minio.GetObjectOptions{})
		if err != nil {
			l.log.Error("failed to fetch staged record", zap.String("object", obj.Key), zap.Error(err))
			continue
		}
		rec, err := l.Parse(reader)
		reader.Close()
		if err != nil {
			l.log.Error("failed to build record from staged object", zap.String("object", obj.Key), zap.Error(err))
			continue
		}

		records = append(records, rec)
	}

	return records, nil
}

// Parse builds one record from a staged JSON document. Keys with a declared
// prefix become declared fields; everything else goes into the additional
// bag. Numbers are decoded with UseNumber so integers survive intact.
func (l *Loader) Parse(r io.Reader) (*entity.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var flat map[string]any
	if err := dec.Decode(&flat); err != nil {
		return nil, fmt.Errorf("parse staged record: %w", err)
	}

	declared, additional := entity.SplitFlat(flat)

	rawType, _ := declared["_sys_file_type"].(string)
	if rawType == "" {
		return nil, fmt.Errorf("staged record has no _sys_file_type")
	}
	ft, err := entity.ParseFileType(rawType)
	if err != nil {
		return nil, err
	}

	return entity.New(ft, declared, additional)
}
