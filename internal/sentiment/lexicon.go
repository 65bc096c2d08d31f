package sentiment

import (
	"context"
	"strings"
	"unicode"
)

// Lexicon is an offline analyzer that counts cue words per label. A
// negation directly before a cue flips positive and negative cues, turns a
// confident cue anxious ("not sure") and cancels an anxious one.
type Lexicon struct {
	labels LabelSet
}

// NewLexicon returns a lexicon analyzer restricted to labels.
func NewLexicon(labels LabelSet) *Lexicon {
	return &Lexicon{labels: labels}
}

// cueOrder breaks ties between labels with the same number of cues.
var cueOrder = []string{Anxious, Negative, Confident, Positive}

var cues = map[string][]string{
	Positive: {
		"happy", "glad", "excited", "exciting", "great", "love", "enjoy", "enjoyed",
		"awesome", "thanks", "thank", "wonderful", "fantastic", "good", "nice",
		"interesting", "fun", "pleased", "delighted", "passionate", "eager",
	},
	Negative: {
		"sad", "angry", "annoyed", "frustrated", "frustrating", "hate", "bad",
		"terrible", "awful", "boring", "unfair", "disappointed", "upset", "tired",
		"confusing", "confused", "difficult", "hard", "ridiculous", "waste",
	},
	Anxious: {
		"nervous", "anxious", "worried", "worry", "afraid", "scared", "unsure",
		"uncertain", "maybe", "hopefully", "stressed", "stress", "panic", "sorry",
		"guess", "idk", "hmm", "um", "uh", "overwhelmed",
	},
	Confident: {
		"confident", "certainly", "definitely", "sure", "absolutely", "expert",
		"mastered", "proficient", "strong", "extensive", "led", "designed",
		"architected", "built", "shipped", "easily", "comfortable", "proven",
	},
}

var negations = map[string]bool{
	"not": true, "no": true, "never": true, "don't": true, "didn't": true,
	"isn't": true, "wasn't": true, "can't": true, "cannot": true, "hardly": true,
}

var cueIndex = func() map[string]string {
	idx := make(map[string]string)
	for label, words := range cues {
		for _, w := range words {
			idx[w] = label
		}
	}
	return idx
}()

func (l *Lexicon) Analyze(_ context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return NeutralResult, nil
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	counts := make(map[string]int)
	for i, w := range words {
		label, ok := cueIndex[w]
		if !ok {
			continue
		}
		if i > 0 && negations[words[i-1]] {
			switch label {
			case Positive:
				label = Negative
			case Negative:
				label = Positive
			case Confident:
				label = Anxious
			default:
				continue
			}
		}
		counts[label]++
	}

	best, bestN := Neutral, 0
	for _, label := range cueOrder {
		if !l.labels.Contains(label) {
			continue
		}
		if n := counts[label]; n > bestN {
			best, bestN = label, n
		}
	}
	if bestN == 0 {
		return Result{Label: Neutral, Score: 0.5}, nil
	}

	// One cue is a clear signal; each further cue adds intensity.
	score := 0.6 + 0.15*float64(bestN)
	if score > 0.95 {
		score = 0.95
	}
	return Result{Label: best, Score: score}, nil
}
