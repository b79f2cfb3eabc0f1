// Package checksum derives deterministic content hashes from field mappings.
//
// The hash is the change-detection key for records stored in Golem Base: the
// same logical field set always produces the same digest regardless of map
// iteration order, and any single-field change produces a different one.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/codec"
)

// ContentHash hashes a field mapping into a lowercase hex SHA-256 digest.
//
// Keys are sorted bytewise and concatenated as "key:value|" before hashing.
// Values must already be in the store alphabet so their stringification is
// stable (tagged JSON strings rather than native container formatting).
func ContentHash(fields map[string]codec.Value) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte(':')
		sb.WriteString(fields[k].Text())
		sb.WriteByte('|')
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
