package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds "prefix:<sha256 hex>" from the JSON encoding of parts.
// Render options and document hashes are folded into the digest, so keys
// never embed raw document content and stay safe for every backend's key
// syntax.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the 64-character hex SHA-256 digest of data. The pipeline
// uses it to fingerprint a document's canonical bytes; the full digest is
// kept so distinct documents cannot share an entry.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
