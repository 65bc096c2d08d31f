package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// Assignment is one validated field value.
type Assignment struct {
	Field Field    `json:"field"`
	Value string   `json:"value,omitempty"`
	Years int      `json:"years,omitempty"`
	Tech  []string `json:"tech,omitempty"`
}

// Result is the outcome of one extraction attempt.
type Result struct {
	Assignments []Assignment
	Invalid     []*ValidationError
}

// Empty reports whether nothing was extracted.
func (r Result) Empty() bool { return len(r.Assignments) == 0 }

// Extractor finds pending fields in an utterance.
//
// Structured fields (email, phone, experience) and explicitly introduced
// values ("my name is ...", "based in ...") are found anywhere in the text.
// The focus field, the first pending one, additionally claims whatever text
// the other matches did not consume.
type Extractor struct {
	// MaxYears rejects implausible experience values.
	MaxYears int
}

// New returns an Extractor with default limits.
func New() *Extractor {
	return &Extractor{MaxYears: 60}
}

// Focus returns the first pending field in solicitation order, or "".
func Focus(pending []Field) Field {
	best := Field("")
	for _, f := range pending {
		if f.Order() < 0 {
			continue
		}
		if best == "" || f.Order() < best.Order() {
			best = f
		}
	}
	return best
}

// Extract returns every pending field the utterance satisfies. Each field is
// validated independently; failures for found or focused values are listed
// in Invalid and the field stays pending.
func (x *Extractor) Extract(pending []Field, utterance string) Result {
	var res Result
	text := strings.TrimSpace(utterance)
	if text == "" || len(pending) == 0 {
		return res
	}

	want := make(map[Field]bool, len(pending))
	for _, f := range pending {
		want[f] = true
	}
	focus := Focus(pending)
	m := newMask(text)

	add := func(a Assignment) {
		if want[a.Field] {
			res.Assignments = append(res.Assignments, a)
			want[a.Field] = false
		}
	}
	invalid := func(f Field, value, reason string) {
		if want[f] {
			res.Invalid = append(res.Invalid, &ValidationError{Field: f, Value: value, Reason: reason})
		}
	}

	x.extractEmail(m, add)
	x.extractExperience(m, add, invalid)
	x.extractPhone(m, focus, add, invalid)
	x.extractExplicit(m, want, add, invalid)

	if focus != "" && want[focus] {
		x.extractFocused(m, focus, add, invalid)
	}

	sortAssignments(res.Assignments)
	return res
}

func (x *Extractor) extractEmail(m *mask, add func(Assignment)) {
	found := false
	for _, loc := range emailRe.FindAllStringIndex(m.text(), -1) {
		v := m.orig[loc[0]:loc[1]]
		m.blank(loc)
		if !found {
			if err := ValidateEmail(v); err == nil {
				add(Assignment{Field: FieldEmail, Value: strings.ToLower(v)})
				found = true
			}
		}
	}
}

func (x *Extractor) extractExperience(m *mask, add func(Assignment), invalid func(Field, string, string)) {
	if loc := zeroExperienceRe.FindStringIndex(m.text()); loc != nil {
		m.blank(loc)
		add(Assignment{Field: FieldExperience, Years: 0, Value: "0"})
		return
	}
	if sub := rangeYearsRe.FindStringSubmatchIndex(m.text()); sub != nil {
		low := m.orig[sub[2]:sub[3]]
		m.blank(sub[:2])
		x.addYears(low, add, invalid)
		return
	}
	if sub := yearsRe.FindStringSubmatchIndex(m.text()); sub != nil {
		raw := m.orig[sub[0]:sub[1]]
		m.blank(sub[:2])
		x.addYears(raw, add, invalid)
	}
}

func (x *Extractor) addYears(raw string, add func(Assignment), invalid func(Field, string, string)) {
	years, err := x.ParseYears(raw)
	if err != nil {
		invalid(FieldExperience, raw, err.Reason)
		return
	}
	add(Assignment{Field: FieldExperience, Years: years, Value: itoa(years)})
}

func (x *Extractor) extractPhone(m *mask, focus Field, add func(Assignment), invalid func(Field, string, string)) {
	found := false
	var rejected string
	for _, loc := range phoneRe.FindAllStringIndex(m.text(), -1) {
		v := strings.TrimSpace(m.orig[loc[0]:loc[1]])
		normalized, err := NormalizePhone(v)
		if err != nil {
			rejected = v
			continue
		}
		m.blank(loc)
		if !found {
			add(Assignment{Field: FieldPhone, Value: normalized})
			found = true
		}
	}
	if !found && focus == FieldPhone {
		if rejected != "" {
			invalid(FieldPhone, rejected, "a phone number has 7 to 15 digits")
		} else if hasDigit(m.text()) {
			invalid(FieldPhone, strings.TrimSpace(m.orig), "no phone number found")
		}
	}
}

func (x *Extractor) extractExplicit(m *mask, want map[Field]bool, add func(Assignment), invalid func(Field, string, string)) {
	if want[FieldName] {
		if sub := nameIntroRe.FindStringSubmatchIndex(m.text()); sub != nil {
			v := cutName(m.orig[sub[2]:sub[3]])
			if err := ValidateName(v); err == nil {
				m.blankRange(sub[0], sub[2]+len(v))
				add(Assignment{Field: FieldName, Value: v})
			} else {
				invalid(FieldName, v, err.Reason)
			}
		}
	}
	if want[FieldPosition] {
		if sub := positionIntroRe.FindStringSubmatchIndex(m.text()); sub != nil {
			raw := cutClause(m.orig[sub[2]:sub[3]])
			if v := cleanFree(stripRoleSuffix(cleanFree(raw))); v != "" {
				m.blankRange(sub[0], sub[2]+len(raw))
				add(Assignment{Field: FieldPosition, Value: v})
			}
		}
	}
	if want[FieldLocation] {
		if sub := locationIntroRe.FindStringSubmatchIndex(m.text()); sub != nil {
			raw := cutClause(m.orig[sub[2]:sub[3]])
			if v := cleanFree(raw); v != "" {
				m.blankRange(sub[0], sub[2]+len(raw))
				add(Assignment{Field: FieldLocation, Value: v})
			}
		}
	}
	if want[FieldTechStack] {
		if sub := techIntroRe.FindStringSubmatchIndex(m.text()); sub != nil {
			if tech := SplitTechStack(m.orig[sub[2]:sub[3]]); len(tech) > 0 {
				m.blank(sub[:2])
				add(Assignment{Field: FieldTechStack, Tech: tech, Value: strings.Join(tech, ", ")})
			}
		}
	}
}

// extractFocused lets the focus field claim the unconsumed remainder.
func (x *Extractor) extractFocused(m *mask, focus Field, add func(Assignment), invalid func(Field, string, string)) {
	rest := cleanFree(m.text())
	if rest == "" {
		return
	}

	switch focus {
	case FieldName:
		var v string
		if sub := selfIntroRe.FindStringSubmatch(stripGreeting(rest)); sub != nil {
			v = cutName(sub[1])
		} else {
			v = cleanFree(stripGreeting(rest))
		}
		if err := ValidateName(v); err != nil {
			invalid(FieldName, v, err.Reason)
			return
		}
		add(Assignment{Field: FieldName, Value: v})

	case FieldExperience:
		// A leading minus sign must survive for the negativity check.
		raw := strings.TrimRightFunc(strings.Join(strings.Fields(m.text()), " "), unicode.IsPunct)
		years, err := x.ParseYears(raw)
		if err != nil {
			invalid(FieldExperience, raw, err.Reason)
			return
		}
		add(Assignment{Field: FieldExperience, Years: years, Value: itoa(years)})

	case FieldPosition:
		if v := cleanFree(stripRoleSuffix(cleanFree(stripLeadIn(rest, positionLeadRe)))); v != "" {
			add(Assignment{Field: FieldPosition, Value: v})
		}

	case FieldLocation:
		if v := cleanFree(stripLeadIn(rest, locationLeadRe)); v != "" {
			add(Assignment{Field: FieldLocation, Value: v})
		}

	case FieldTechStack:
		tech := SplitTechStack(rest)
		if len(tech) == 0 {
			invalid(FieldTechStack, rest, "list at least one technology")
			return
		}
		add(Assignment{Field: FieldTechStack, Tech: tech, Value: strings.Join(tech, ", ")})

	case FieldEmail:
		if looksLikeEmail(rest) {
			invalid(FieldEmail, rest, "expected an address like name@example.com")
		}

	case FieldPhone:
		// Handled with the structured matches.
	}
}

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\(?\d[\d\s().\-]{4,}\d`)

	numberWords = `zero|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen|twenty|thirty|forty|a|an`

	zeroExperienceRe = regexp.MustCompile(`(?i)\b(?:no (?:professional |prior |work )?experience|less than (?:a|one|1) years?|fresher|fresh graduate)\b`)
	rangeYearsRe     = regexp.MustCompile(`(?i)\b(\d+)\s*(?:-|–|to)\s*\d+\s*\+?\s*(?:years?|yrs?)\b`)
	yearsRe          = regexp.MustCompile(`(?i)(-?\d+(?:\.\d+)?|\b(?:` + numberWords + `))\s*\+?\s*(?:years?|yrs?)\b`)

	nameIntroRe = regexp.MustCompile(`(?i)\b(?:my name is|my name's|name is|name:|call me)\s+([\p{L}][\p{L}\s'’\-]*)`)
	selfIntroRe = regexp.MustCompile(`(?i)^(?:i'm|i am|im|this is|it's|it is)\s+([\p{L}][\p{L}\s'’\-]*)`)
	greetingRe  = regexp.MustCompile(`(?i)^(?:hi|hello|hey|greetings|good (?:morning|afternoon|evening))\b[\s,!.]*`)

	positionIntroRe = regexp.MustCompile(`(?i)\b(?:applying (?:for|as)|apply (?:for|as)|position is|position:|role is|role:|interested in (?:a |an |the )?(?:position|role) as)\s+(?:a |an |the )?((?:[^,.;!?\n]|\.[A-Za-z])+)`)
	positionLeadRe  = regexp.MustCompile(`(?i)^(?:i(?:'m| am) (?:looking for|interested in|applying for)|i want to be|i'd like to be|looking for)\s+(?:a |an |the )?(?:position |role |job )?(?:as )?(?:a |an )?`)
	roleSuffixRe    = regexp.MustCompile(`(?i)\s+(?:position|role|job)$`)

	locationIntroRe = regexp.MustCompile(`(?i)\b(?:based in|based out of|live in|living in|located in|location is|location:|relocating from)\s+((?:[^.;!?\n]|\.[A-Za-z])+)`)
	locationLeadRe  = regexp.MustCompile(`(?i)^(?:i(?:'m| am) (?:from|in|based in|located in|living in)|i live in|from)\s+`)

	techIntroRe = regexp.MustCompile(`(?i)\b(?:my |our )?(?:tech(?:nical)? stack|stack|skills|technologies)\s*(?:is|are|includes?|:)\s*(.+)$`)
)

func stripGreeting(s string) string {
	return strings.TrimSpace(greetingRe.ReplaceAllString(s, ""))
}

func stripLeadIn(s string, re *regexp.Regexp) string {
	return strings.TrimSpace(re.ReplaceAllString(s, ""))
}

func stripRoleSuffix(s string) string {
	return roleSuffixRe.ReplaceAllString(strings.TrimSpace(s), "")
}

// nameStop ends a captured name: "Jane Doe and I have ..." → "Jane Doe".
var nameStop = map[string]bool{
	"and": true, "i": true, "i'm": true, "im": true, "from": true, "with": true,
	"my": true, "email": true, "phone": true, "based": true, "living": true,
	"who": true, "here": true, "but": true, "so": true,
}

func cutName(s string) string {
	var kept []string
	for _, w := range strings.Fields(s) {
		if nameStop[strings.ToLower(w)] {
			break
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// cleanFree collapses whitespace and trims punctuation and dangling
// conjunctions from both ends. A leading dot survives for names like .NET.
func cleanFree(s string) string {
	junk := func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) && r != '#'
	}
	s = strings.Join(strings.Fields(s), " ")
	for {
		before := s
		s = strings.TrimRightFunc(s, junk)
		s = strings.TrimLeftFunc(s, func(r rune) bool { return r != '.' && junk(r) })
		lower := strings.ToLower(s)
		for _, c := range []string{"and", "also"} {
			if strings.HasSuffix(lower, " "+c) {
				s = s[:len(s)-len(c)-1]
				lower = strings.ToLower(s)
			}
			if strings.HasPrefix(lower, c+" ") {
				s = s[len(c)+1:]
				lower = strings.ToLower(s)
			}
		}
		if s == before {
			return s
		}
	}
}

// cutClause ends a free-text value at the first joined clause:
// "Berlin and I have ..." → "Berlin".
func cutClause(s string) string {
	lower := strings.ToLower(s)
	end := len(s)
	for _, sep := range []string{" and i ", " and my ", " but ", " with ", ", and ", " i have ", " i am ", " i'm "} {
		if i := strings.Index(lower, sep); i >= 0 && i < end {
			end = i
		}
	}
	return s[:end]
}

func looksLikeEmail(s string) bool {
	return strings.Contains(s, "@") || strings.Contains(strings.ToLower(s), " at ")
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func sortAssignments(as []Assignment) {
	for i := 1; i < len(as); i++ {
		for j := i; j > 0 && as[j].Field.Order() < as[j-1].Field.Order(); j-- {
			as[j], as[j-1] = as[j-1], as[j]
		}
	}
}

// mask tracks which parts of the utterance earlier matches consumed.
type mask struct {
	orig string
	buf  []byte
}

func newMask(s string) *mask {
	return &mask{orig: s, buf: []byte(s)}
}

func (m *mask) text() string { return string(m.buf) }

func (m *mask) blank(loc []int) { m.blankRange(loc[0], loc[1]) }

func (m *mask) blankRange(start, end int) {
	if end > len(m.buf) {
		end = len(m.buf)
	}
	for i := start; i < end; i++ {
		m.buf[i] = ' '
	}
}
