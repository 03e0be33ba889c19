package auditor

import (
	"strings"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold lower-cases s and strips diacritics so "hâte" matches "hate".
// Chained transformers carry state, so a new chain is built per call.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// keywordSet is an Aho-Corasick automaton over one keyword list.
type keywordSet struct {
	keywords []string
	matcher  *ahocorasick.Matcher
}

func newKeywordSet(words []string) *keywordSet {
	set := &keywordSet{keywords: make([]string, 0, len(words))}
	for _, w := range words {
		normalized := fold(strings.TrimSpace(w))
		if normalized == "" {
			continue
		}
		set.keywords = append(set.keywords, normalized)
	}
	if len(set.keywords) > 0 {
		set.matcher = ahocorasick.NewStringMatcher(set.keywords)
	}
	return set
}

// find returns the keywords occurring anywhere in folded text, in list order.
// Matching is by substring, so "fear" matches inside "fearless".
func (s *keywordSet) find(lowered []byte) []string {
	if s.matcher == nil {
		return nil
	}

	hits := s.matcher.MatchThreadSafe(lowered)
	if len(hits) == 0 {
		return nil
	}

	seen := make([]bool, len(s.keywords))
	for _, idx := range hits {
		if idx >= 0 && idx < len(seen) {
			seen[idx] = true
		}
	}

	found := make([]string, 0, len(hits))
	for i, kw := range s.keywords {
		if seen[i] {
			found = append(found, kw)
		}
	}
	return found
}

func (s *keywordSet) any(lowered []byte) bool {
	return len(s.find(lowered)) > 0
}
