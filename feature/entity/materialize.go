package entity

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// GzipPrefix tags _sys_data payloads that were gzip-compressed before
// base64 encoding.
const GzipPrefix = "__gzip__:"

// Materialize decodes the record's data payload and writes it to
// outputDir/fileName (or outputDir/category/fileName when
// organizeByCategory is set), creating directories as needed. It returns
// the written path, or an error when the record carries no data or
// decoding/writing fails.
func (r *Record) Materialize(outputDir string, organizeByCategory bool) (string, error) {
	data := r.fields["_sys_data"]
	if data.IsInt() || data.IsNull() || strings.TrimSpace(data.Str()) == "" {
		return "", fmt.Errorf("record %s contains no file data to materialize", r.FileName())
	}

	encoded := data.Str()
	compressed := false
	if rest, ok := strings.CutPrefix(encoded, GzipPrefix); ok {
		encoded = rest
		compressed = true
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode data for %s: %w", r.FileName(), err)
	}

	if compressed {
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return "", fmt.Errorf("decompress data for %s: %w", r.FileName(), err)
		}
		raw, err = io.ReadAll(zr)
		if cerr := zr.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return "", fmt.Errorf("decompress data for %s: %w", r.FileName(), err)
		}
	}

	dir := outputDir
	if organizeByCategory {
		dir = filepath.Join(outputDir, r.Category())
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, r.FileName())
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}
