package questions

import "fmt"

// ValidationError describes why a generated question set was rejected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "question set rejected: " + e.Message
}

// GenerationError reports that no usable question set could be produced.
type GenerationError struct {
	Attempts int
	Reason   string
	Err      error
}

func (e *GenerationError) Error() string {
	msg := "question generation failed"
	if e.Attempts > 0 {
		msg = fmt.Sprintf("%s after %d attempt(s)", msg, e.Attempts)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GenerationError) Unwrap() error { return e.Err }
