package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

var emailShapeRe = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}$`)

// nameDeny rejects replies that are clearly not a name.
var nameDeny = map[string]bool{
	"i": true, "don't": true, "dont": true, "know": true, "not": true, "no": true,
	"yes": true, "what": true, "why": true, "how": true, "hello": true, "hi": true,
	"hey": true, "sorry": true, "the": true, "is": true, "am": true, "are": true,
	"you": true, "ok": true, "okay": true, "sure": true, "skip": true, "pass": true,
	"later": true, "prefer": true, "rather": true, "thanks": true,
	"of": true, "experience": true, "years": true, "year": true, "email": true,
	"phone": true, "number": true, "my": true, "at": true, "in": true,
}

// ValidateName accepts letters, spaces, hyphens and apostrophes, up to five
// words.
func ValidateName(v string) *ValidationError {
	v = strings.TrimSpace(v)
	if v == "" {
		return &ValidationError{Field: FieldName, Reason: "name is empty"}
	}
	for _, r := range v {
		if !unicode.IsLetter(r) && !unicode.IsMark(r) && r != ' ' && r != '-' && r != '\'' && r != '’' {
			return &ValidationError{Field: FieldName, Value: v, Reason: "use letters, spaces, hyphens or apostrophes only"}
		}
	}
	words := strings.Fields(v)
	if len(words) > 5 {
		return &ValidationError{Field: FieldName, Value: v, Reason: "that looks like a sentence, not a name"}
	}
	for _, w := range words {
		if nameDeny[strings.ToLower(w)] {
			return &ValidationError{Field: FieldName, Value: v, Reason: "that does not look like a name"}
		}
	}
	return nil
}

// ValidateEmail checks the local@domain.tld shape.
func ValidateEmail(v string) *ValidationError {
	v = strings.TrimSpace(v)
	if !emailShapeRe.MatchString(v) || strings.Contains(v, "..") {
		return &ValidationError{Field: FieldEmail, Value: v, Reason: "expected an address like name@example.com"}
	}
	return nil
}

// NormalizePhone validates a phone number of 7 to 15 digits with optional
// separators. Numbers with a leading + are formatted as E.164 when the
// country code is recognized; others keep their original separators.
func NormalizePhone(v string) (string, *ValidationError) {
	v = strings.TrimSpace(v)
	digits := 0
	for _, r := range v {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')' || r == '+':
		default:
			return "", &ValidationError{Field: FieldPhone, Value: v, Reason: "only digits and separators are allowed"}
		}
	}
	if digits < 7 || digits > 15 {
		return "", &ValidationError{Field: FieldPhone, Value: v, Reason: "a phone number has 7 to 15 digits"}
	}
	if strings.Count(v, "+") > 1 || strings.Contains(v, "+") && !strings.HasPrefix(v, "+") {
		return "", &ValidationError{Field: FieldPhone, Value: v, Reason: "+ may only lead the number"}
	}

	if strings.HasPrefix(v, "+") {
		if num, err := phonenumbers.Parse(v, ""); err == nil && phonenumbers.IsPossibleNumber(num) {
			return phonenumbers.Format(num, phonenumbers.E164), nil
		}
	}
	return v, nil
}

var wordYears = map[string]int{
	"zero": 0, "one": 1, "a": 1, "an": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40,
	"fresher": 0,
}

// Articles only count as one when a unit follows ("a year", not "a").
var yearUnitRe = regexp.MustCompile(`(?i)\b(?:years?|yrs?)\b`)

var yearsTextRe = regexp.MustCompile(`(?i)^(?:about |around |roughly |approximately |nearly |almost |over |more than |i have |i've got |)(-?\d+(?:\.\d+)?|[a-z]+)\s*\+?(?:\s*(?:years?|yrs?))?(?:\s+(?:of )?(?:professional |work |industry )?experience)?$`)

// ParseYears parses a whole, non-negative number of years from a number or
// number word. Negative, fractional and non-numeric input is rejected, and
// so are bare answers like "no" or "none": zero years must be stated.
func (x *Extractor) ParseYears(raw string) (int, *ValidationError) {
	raw = strings.TrimSpace(raw)
	sub := yearsTextRe.FindStringSubmatch(raw)
	if sub == nil {
		return 0, &ValidationError{Field: FieldExperience, Value: raw, Reason: "expected a whole number of years"}
	}
	token := strings.ToLower(sub[1])

	if (token == "a" || token == "an") && !yearUnitRe.MatchString(raw) {
		return 0, &ValidationError{Field: FieldExperience, Value: raw, Reason: "expected a whole number of years"}
	}
	if n, ok := wordYears[token]; ok {
		return n, nil
	}
	if strings.HasPrefix(token, "-") {
		return 0, &ValidationError{Field: FieldExperience, Value: raw, Reason: "experience cannot be negative"}
	}
	if strings.Contains(token, ".") {
		return 0, &ValidationError{Field: FieldExperience, Value: raw, Reason: "expected a whole number of years"}
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, &ValidationError{Field: FieldExperience, Value: raw, Reason: "expected a whole number of years"}
	}
	if x.MaxYears > 0 && n > x.MaxYears {
		return 0, &ValidationError{Field: FieldExperience, Value: raw, Reason: "that is more years than a career allows"}
	}
	return n, nil
}

func itoa(n int) string { return strconv.Itoa(n) }
