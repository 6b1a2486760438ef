package dictionary

import (
	"encoding/base64"
	"regexp"
	"strings"
)

// Exclusion markers wrap protected tokens in an opaque sentinel so a
// downstream translator has nothing recognizable to alter. The payload
// is the base64 of the original-cased token; RestoreExcluded decodes it
// verbatim. The round trip assumes the translator passes the sentinel
// through unmodified; an LLM backend that rephrases bracketed tokens
// can still corrupt it, which is why providers are also told not to
// translate the excluded terms.
const (
	markerPrefix = "[[!"
	markerSuffix = "!]]"
)

var markerRe = regexp.MustCompile(regexp.QuoteMeta(markerPrefix) + `([A-Za-z0-9+/=]+)` + regexp.QuoteMeta(markerSuffix))

// MarkExcluded wraps whole-word matches of the excluded terms
// (case-insensitive) in preservation markers, keeping each token's
// original casing inside the payload.
func (t *Table) MarkExcluded(content string) string {
	if t.excludedRe == nil {
		return content
	}
	return t.excludedRe.ReplaceAllStringFunc(content, func(token string) string {
		return markerPrefix + base64.StdEncoding.EncodeToString([]byte(token)) + markerSuffix
	})
}

// RestoreExcluded reverses MarkExcluded, restoring the original tokens
// regardless of what the translator did to the surrounding text.
// Markers whose payload fails to decode are left in place rather than
// silently dropped.
func (t *Table) RestoreExcluded(content string) string {
	return markerRe.ReplaceAllStringFunc(content, func(marker string) string {
		payload := strings.TrimSuffix(strings.TrimPrefix(marker, markerPrefix), markerSuffix)
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return marker
		}
		return string(decoded)
	})
}

// ExcludedTerms returns the configured excluded terms.
func (t *Table) ExcludedTerms() []string {
	return t.excluded
}

// compileExcluded builds a whole-word, case-insensitive alternation over
// the terms. Returns nil for an empty set.
func compileExcluded(terms []string) *regexp.Regexp {
	var quoted []string
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(term))
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}
