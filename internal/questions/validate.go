package questions

import (
	"fmt"
	"strings"
	"unicode"
)

// normalizeAll trims whitespace and leading enumeration from every
// question. Entries left empty are kept so validation can reject them.
func normalizeAll(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = Question{
			Technology: strings.TrimSpace(q.Technology),
			Text:       stripEnumeration(strings.Join(strings.Fields(q.Text), " ")),
		}
	}
	return out
}

// stripEnumeration removes a leading "1." or "2)" marker.
func stripEnumeration(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) || (s[i] != '.' && s[i] != ')') {
		return s
	}
	return strings.TrimSpace(s[i+1:])
}

// dedupKey folds a question for duplicate detection: lower case, letters
// and digits only.
func dedupKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// validateSet rejects an empty set, a blank entry, duplicates after
// normalization, and a size outside [Min, Max].
func validateSet(qs []Question, cfg Config) *ValidationError {
	if len(qs) == 0 {
		return &ValidationError{Message: "no questions returned"}
	}
	seen := make(map[string]int, len(qs))
	for i, q := range qs {
		key := dedupKey(q.Text)
		if key == "" {
			return &ValidationError{Message: fmt.Sprintf("question %d is empty", i+1)}
		}
		if j, dup := seen[key]; dup {
			return &ValidationError{Message: fmt.Sprintf("question %d duplicates question %d", i+1, j+1)}
		}
		seen[key] = i
	}
	if len(qs) < cfg.Min || len(qs) > cfg.Max {
		return &ValidationError{Message: fmt.Sprintf("got %d questions, want %d to %d", len(qs), cfg.Min, cfg.Max)}
	}
	return nil
}
