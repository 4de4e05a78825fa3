package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash identifies content by its hex-encoded SHA-256 digest. Plans are
// hashed this way before artifact keys are derived from them.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey namespaces the digest of the JSON-encoded parts under prefix, so
// plan and artifact keys cannot collide even for equal inputs.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
