package questions

import "fmt"

var templates = map[Level][]string{
	LevelEntry: {
		"What are the basic features of %s?",
		"Can you explain the main use cases for %s?",
		"How would you set up a simple project using %s?",
		"Can you describe a simple project you built using %s?",
		"What are some advantages of using %s compared to alternatives?",
	},
	LevelIntermediate: {
		"What are some best practices when working with %s?",
		"How would you optimize performance in a %s application?",
		"What are some common pitfalls to avoid when using %s?",
		"How do you handle error management in %s?",
		"How would you implement testing for a %s application?",
	},
	LevelAdvanced: {
		"Can you describe a complex technical challenge you solved using %s?",
		"How would you architect a scalable system using %s?",
		"How does %s work under the hood, and how has that shaped your designs?",
		"Can you discuss the trade-offs between different %s implementation strategies?",
		"How would you debug a complex production issue in a %s application?",
	},
}

var generalQuestions = []string{
	"Can you describe your experience with programming languages?",
	"How do you approach debugging complex technical issues?",
	"Describe a challenging technical project you worked on recently.",
}

// Fallback returns the deterministic placeholder set: one question per
// technology in declaration order, capped at limit. An empty stack yields
// the general questions.
func Fallback(stack []string, years, limit int) []string {
	if len(stack) == 0 {
		return append([]string(nil), generalQuestions...)
	}
	if limit <= 0 || limit > len(stack) {
		limit = len(stack)
	}
	set := templates[LevelFor(years)]
	out := make([]string, 0, limit)
	for i, tech := range stack[:limit] {
		out = append(out, fmt.Sprintf(set[i%len(set)], tech))
	}
	return out
}
