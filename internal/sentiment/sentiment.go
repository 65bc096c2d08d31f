// Package sentiment classifies the emotional tone of candidate utterances
// into a closed label set.
package sentiment

import (
	"context"
	"fmt"
	"strings"
)

// Built-in labels. Neutral is always part of a LabelSet.
const (
	Neutral   = "neutral"
	Positive  = "positive"
	Negative  = "negative"
	Anxious   = "anxious"
	Confident = "confident"
)

// Result is one classification.
type Result struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// NeutralResult is returned for empty input.
var NeutralResult = Result{Label: Neutral, Score: 0}

// Analyzer maps an utterance to an emotion label and an intensity in [0,1].
// Empty input never fails and yields NeutralResult. Backend failures are
// returned as *ClassifierError.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Result, error)
}

// ClassifierError reports a failed classification by a backend.
type ClassifierError struct {
	Backend string
	Err     error
}

func (e *ClassifierError) Error() string {
	return fmt.Sprintf("%s classifier: %v", e.Backend, e.Err)
}

func (e *ClassifierError) Unwrap() error { return e.Err }

// LabelSet is the closed set of labels an analyzer may emit.
type LabelSet struct {
	labels []string
	index  map[string]bool
}

// NewLabelSet normalizes labels to lower case, drops duplicates and makes
// sure neutral is present.
func NewLabelSet(labels ...string) LabelSet {
	ls := LabelSet{index: make(map[string]bool)}
	for _, l := range append([]string{Neutral}, labels...) {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" || ls.index[l] {
			continue
		}
		ls.index[l] = true
		ls.labels = append(ls.labels, l)
	}
	return ls
}

// DefaultLabels is neutral, positive, negative, anxious and confident.
func DefaultLabels() LabelSet {
	return NewLabelSet(Positive, Negative, Anxious, Confident)
}

// Contains reports whether label is in the set.
func (s LabelSet) Contains(label string) bool {
	return s.index[strings.ToLower(label)]
}

// Labels returns the labels with neutral first.
func (s LabelSet) Labels() []string {
	return append([]string(nil), s.labels...)
}

// Coerce returns r unchanged when its label is in the set, otherwise a
// neutral result with the same score.
func (s LabelSet) Coerce(r Result) Result {
	r.Label = strings.ToLower(strings.TrimSpace(r.Label))
	if !s.Contains(r.Label) {
		r.Label = Neutral
	}
	r.Score = clamp(r.Score)
	return r
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
