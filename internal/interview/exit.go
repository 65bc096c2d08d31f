package interview

import (
	"slices"
	"strings"
	"unicode"
)

// Polite wrappers that may surround an exit keyword. Anything else around
// the keyword means the word is part of an answer ("stop the goroutine").
var (
	exitLeads = [][]string{
		{"ok"}, {"okay"}, {"alright"}, {"well"}, {"so"}, {"please"}, {"sorry"},
		{"i", "want", "to"}, {"i'd", "like", "to"}, {"i", "would", "like", "to"},
		{"i", "need", "to"}, {"i", "have", "to"}, {"i'm", "going", "to"},
		{"let's"}, {"can", "we"}, {"i'll"},
	}
	exitTrails = [][]string{
		{"please"}, {"now"}, {"then"}, {"for", "now"}, {"thanks"}, {"thank", "you"},
		{"the", "interview"}, {"this", "interview"},
	}
)

// exitMatcher recognizes exit keywords case-insensitively. The utterance
// must be the keyword itself, optionally wrapped in polite filler.
type exitMatcher struct {
	keywords [][]string
}

func newExitMatcher(keywords []string) exitMatcher {
	var m exitMatcher
	for _, k := range keywords {
		if ws := words(k); len(ws) > 0 {
			m.keywords = append(m.keywords, ws)
		}
	}
	return m
}

// Match reports whether the utterance asks to end the interview.
func (m exitMatcher) Match(utterance string) bool {
	ws := words(utterance)
	if len(ws) == 0 {
		return false
	}
	lead := trimLeading(ws)
	candidates := [][]string{ws, lead, trimTrailing(ws), trimTrailing(lead)}
	for _, k := range m.keywords {
		for _, c := range candidates {
			if slices.Equal(c, k) {
				return true
			}
		}
	}
	return false
}

// words lower-cases s and splits it on anything that is not a letter,
// digit or apostrophe.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func trimLeading(ws []string) []string {
	for {
		trimmed := false
		for _, p := range exitLeads {
			if len(ws) > len(p) && slices.Equal(ws[:len(p)], p) {
				ws = ws[len(p):]
				trimmed = true
			}
		}
		if !trimmed {
			return ws
		}
	}
}

func trimTrailing(ws []string) []string {
	for {
		trimmed := false
		for _, p := range exitTrails {
			if len(ws) > len(p) && slices.Equal(ws[len(ws)-len(p):], p) {
				ws = ws[:len(ws)-len(p)]
				trimmed = true
			}
		}
		if !trimmed {
			return ws
		}
	}
}
