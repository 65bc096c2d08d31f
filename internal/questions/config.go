package questions

// Config controls question generation.
type Config struct {
	// Min and Max bound the size of an accepted question set.
	Min int
	Max int

	// RetryBudget is the number of extra attempts after the first rejected
	// response.
	RetryBudget int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config asking for 3 to 5 questions with a single
// retry.
func DefaultConfig() Config {
	return Config{
		Min:         3,
		Max:         5,
		RetryBudget: 1,
		MaxTokens:   1024,
		Temperature: 0.8,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Min <= 0 {
		c.Min = d.Min
	}
	if c.Max < c.Min {
		c.Max = max(c.Min, d.Max)
	}
	if c.RetryBudget < 0 {
		c.RetryBudget = 0
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = d.MaxTokens
	}
	return c
}
