// Package fingerprint derives the deterministic 64-bit identifiers used
// throughout the application: record IDs, category and city IDs, and cache
// keys all go through the same FNV-1a function so they can be cross-checked.
package fingerprint

import (
	"encoding/hex"
	"hash/fnv"
)

// Sum64 returns the FNV-1a 64-bit sum of s.
func Sum64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// Hash returns the FNV-1a 64-bit sum of s as a 16-character lowercase hex
// string.
func Hash(s string) string {
	h := fnv.New64a()
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}
