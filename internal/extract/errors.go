package extract

import "fmt"

// ValidationError reports a value that was found for a field but failed its
// format rules. The field stays pending.
type ValidationError struct {
	Field  Field
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}
