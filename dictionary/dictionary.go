// Package dictionary implements operator-defined translation overrides:
// exact matches, ordered partial (substring) replacements, wildcard
// patterns, and exclusion markers that protect terms from machine
// translation. Rules are checked before any cache or network cost is
// paid, in a fixed precedence: exact, then partial, then wildcard.
package dictionary

import (
	"fmt"
	"regexp"
	"strings"
)

// PartialRule replaces a substring wherever it appears in the content.
type PartialRule struct {
	Search        string
	Replace       string
	CaseSensitive bool
}

type partialRule struct {
	PartialRule
	re *regexp.Regexp // compiled case-insensitive matcher; nil for case-sensitive rules
}

type wildcardRule struct {
	pattern     string
	replacement string
	re          *regexp.Regexp
}

// Table is the rule table. Populate it with the Add methods at startup;
// lookups are safe for concurrent use once population is done, but the
// Add methods are not safe to interleave with lookups.
type Table struct {
	exact      map[string]map[string]string // lang pair → normalized source → translation
	partial    []partialRule
	wildcard   map[string][]wildcardRule
	excluded   []string
	excludedRe *regexp.Regexp
}

// New creates an empty rule table.
func New() *Table {
	return &Table{
		exact:    make(map[string]map[string]string),
		wildcard: make(map[string][]wildcardRule),
	}
}

// AddExact registers a fixed translation for an exact (case-insensitive,
// trimmed) source string.
func (t *Table) AddExact(sourceLang, targetLang, source, translation string) {
	pair := pairKey(sourceLang, targetLang)
	if t.exact[pair] == nil {
		t.exact[pair] = make(map[string]string)
	}
	t.exact[pair][normalize(source)] = translation
}

// AddPartial appends a substring replacement rule. Rules apply in the
// order they were added. Rules with an empty search string are ignored.
func (t *Table) AddPartial(rule PartialRule) {
	if rule.Search == "" {
		return
	}
	p := partialRule{PartialRule: rule}
	if !rule.CaseSensitive {
		// Unicode case mapping can change byte lengths, so folding is
		// done by the regexp engine rather than by index arithmetic on
		// a lowercased copy.
		p.re = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(rule.Search))
	}
	t.partial = append(t.partial, p)
}

// AddWildcard registers a pattern whose "*" tokens match any run of
// characters. Within a language pair, declaration order is the
// tie-break: the first matching pattern wins.
func (t *Table) AddWildcard(sourceLang, targetLang, pattern, replacement string) error {
	re, err := compileWildcard(pattern)
	if err != nil {
		return fmt.Errorf("compiling wildcard pattern %q: %w", pattern, err)
	}
	pair := pairKey(sourceLang, targetLang)
	t.wildcard[pair] = append(t.wildcard[pair], wildcardRule{
		pattern:     pattern,
		replacement: replacement,
		re:          re,
	})
	return nil
}

// SetExcludedTerms replaces the set of terms protected from machine
// translation by MarkExcluded.
func (t *Table) SetExcludedTerms(terms []string) {
	t.excluded = terms
	t.excludedRe = compileExcluded(terms)
}

// LookupExact returns the pinned translation for content, matched
// case-insensitively on the trimmed string.
func (t *Table) LookupExact(content, sourceLang, targetLang string) (string, bool) {
	rules, ok := t.exact[pairKey(sourceLang, targetLang)]
	if !ok {
		return "", false
	}
	translation, ok := rules[normalize(content)]
	return translation, ok
}

// ApplyPartial applies each partial rule in declared order. The caller
// can detect a no-op by comparing the result with the input.
func (t *Table) ApplyPartial(content string) string {
	for _, rule := range t.partial {
		if rule.CaseSensitive {
			content = strings.ReplaceAll(content, rule.Search, rule.Replace)
			continue
		}
		content = rule.re.ReplaceAllLiteralString(content, rule.Replace)
	}
	return content
}

// MatchWildcard returns the first declared wildcard rule whose pattern
// fully matches the content, with "*" slots in the replacement filled
// from the captured groups in order.
func (t *Table) MatchWildcard(content, sourceLang, targetLang string) (string, bool) {
	rules, ok := t.wildcard[pairKey(sourceLang, targetLang)]
	if !ok {
		return "", false
	}

	trimmed := strings.TrimSpace(content)
	for _, rule := range rules {
		m := rule.re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		return substitute(rule.replacement, m[1:]), true
	}
	return "", false
}

// compileWildcard turns a glob pattern into an anchored case-insensitive
// regular expression, each "*" becoming a capture group.
func compileWildcard(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?is)^")
	for _, part := range strings.Split(pattern, "*") {
		b.WriteString(regexp.QuoteMeta(part))
		b.WriteString("(.*)")
	}
	expr := strings.TrimSuffix(b.String(), "(.*)") + "$"
	return regexp.Compile(expr)
}

// substitute fills the replacement's "*" slots from captures in order.
// Extra "*" slots beyond the captures become empty strings.
func substitute(replacement string, captures []string) string {
	parts := strings.Split(replacement, "*")
	if len(parts) == 1 {
		return replacement
	}

	var b strings.Builder
	for i, part := range parts {
		b.WriteString(part)
		if i < len(parts)-1 {
			if i < len(captures) {
				b.WriteString(captures[i])
			}
		}
	}
	return b.String()
}

func pairKey(sourceLang, targetLang string) string {
	return strings.ToLower(sourceLang) + ">" + strings.ToLower(targetLang)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
