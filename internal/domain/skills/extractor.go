package skills

import "strings"

// Extract returns the set of lexicon entries that occur in text as whole
// words. Matching is case-insensitive and empty text yields an empty set.
func (l Lexicon) Extract(text string) map[string]struct{} {
	found := make(map[string]struct{})
	if strings.TrimSpace(text) == "" {
		return found
	}

	lower := strings.ToLower(text)
	for i, re := range l.patterns {
		if re.MatchString(lower) {
			found[l.entries[i]] = struct{}{}
		}
	}
	return found
}

// ExtractOrdered is Extract with the matches returned in lexicon order
func (l Lexicon) ExtractOrdered(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lower := strings.ToLower(text)
	var out []string
	for i, re := range l.patterns {
		if re.MatchString(lower) {
			out = append(out, l.entries[i])
		}
	}
	return out
}
