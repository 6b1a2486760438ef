package lingo

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// DeriveKey generates a deterministic cache key from the normalized content,
// language pair and provider identity. Extra parameters (model name, style)
// may be appended to differentiate otherwise identical requests.
func DeriveKey(content, sourceLang, targetLang, providerID string, extra ...string) string {
	parts := []string{
		strings.TrimSpace(content),
		BaseLang(sourceLang),
		BaseLang(targetLang),
		providerID,
	}
	parts = append(parts, extra...)

	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}
