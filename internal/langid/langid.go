// Package langid guesses the natural language of a candidate utterance.
//
// Detection is lexical: non-Latin scripts identify their language directly,
// Latin-script text is scored against per-language keyword sets. The result
// carries a confidence so callers can ignore weak guesses.
package langid

import (
	"strings"
	"unicode"
)

// Undetermined is returned for empty or unrecognized input.
const Undetermined = "und"

// Detector identifies the language of a piece of text.
type Detector interface {
	// Detect returns a language code and a confidence in [0,1]. Empty or
	// whitespace-only text yields Undetermined and 0.
	Detect(text string) (code string, confidence float64)
}

// KeywordDetector is the built-in Detector. The zero value is ready to use.
type KeywordDetector struct{}

// NewDetector returns the built-in keyword detector.
func NewDetector() *KeywordDetector { return &KeywordDetector{} }

func (KeywordDetector) Detect(text string) (string, float64) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Undetermined, 0
	}

	if code, conf, ok := detectScript(text); ok {
		return code, conf
	}
	return detectKeywords(text)
}

// scriptRule maps a Unicode script to a language when that script makes
// up the bulk of the letters.
type scriptRule struct {
	table *unicode.RangeTable
	code  string
}

var scriptRules = []scriptRule{
	{unicode.Hangul, "ko"},
	{unicode.Cyrillic, "ru"},
	{unicode.Bengali, "bn"},
	{unicode.Tamil, "ta"},
	{unicode.Telugu, "te"},
	{unicode.Gujarati, "gu"},
	{unicode.Kannada, "kn"},
	{unicode.Malayalam, "ml"},
	{unicode.Gurmukhi, "pa"},
}

// Letters specific to Urdu within the Arabic script.
const urduLetters = "ٹڈڑںھےۓہ"

func detectScript(text string) (string, float64, bool) {
	var letters, latin, han, kana, arabic, urdu, devanagari int
	counts := make([]int, len(scriptRules))

	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		switch {
		case unicode.Is(unicode.Latin, r):
			latin++
		case unicode.Is(unicode.Hiragana, r), unicode.Is(unicode.Katakana, r):
			kana++
		case unicode.Is(unicode.Han, r):
			han++
		case unicode.Is(unicode.Arabic, r):
			arabic++
			if strings.ContainsRune(urduLetters, r) {
				urdu++
			}
		case unicode.Is(unicode.Devanagari, r):
			devanagari++
		default:
			for i, rule := range scriptRules {
				if unicode.Is(rule.table, r) {
					counts[i]++
					break
				}
			}
		}
	}
	if letters == 0 || latin*2 >= letters {
		return "", 0, false
	}

	share := func(n int) float64 { return float64(n) / float64(letters) }

	switch {
	case kana > 0:
		return "ja", share(kana + han), true
	case han > 0 && han >= arabic && han >= devanagari:
		return "zh", share(han), true
	case arabic > 0 && arabic >= devanagari:
		if urdu > 0 {
			return "ur", share(arabic), true
		}
		return "ar", share(arabic), true
	case devanagari > 0:
		code, _ := detectKeywords(text)
		if code != "mr" {
			code = "hi"
		}
		return code, share(devanagari), true
	}

	best, bestN := -1, 0
	for i, n := range counts {
		if n > bestN {
			best, bestN = i, n
		}
	}
	if best < 0 {
		return "", 0, false
	}
	return scriptRules[best].code, share(bestN), true
}

// detectKeywords scores each language by the number of its keywords in the
// text. Confidence combines the winner's share of all hits with how much
// evidence there is: one matching word caps at 1/3, so a stray foreign
// word never reaches a switching threshold.
func detectKeywords(text string) (string, float64) {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsMark(r) && r != '\''
	})

	scores := make(map[string]int)
	total := 0
	for _, w := range words {
		for _, code := range keywordIndex[w] {
			scores[code]++
			total++
		}
	}
	if total == 0 {
		return Undetermined, 0
	}

	best, bestN := "", 0
	for _, code := range keywordOrder {
		if n := scores[code]; n > bestN {
			best, bestN = code, n
		}
	}

	evidence := float64(bestN) / 3
	if evidence > 1 {
		evidence = 1
	}
	return best, float64(bestN) / float64(total) * evidence
}
