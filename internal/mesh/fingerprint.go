package mesh

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2s"
)

// Fingerprint returns a short hex fingerprint of mesh file content.
//
// It hashes with BLAKE2s-256 and truncates to 10 bytes (20 hex chars),
// enough to tell mesh revisions apart in status output.
func Fingerprint(content []byte) string {
	sum := blake2s.Sum256(content)
	return hex.EncodeToString(sum[:10])
}
