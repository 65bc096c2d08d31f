package langid

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language describes one supported interview language.
type Language struct {
	Code       string `json:"code" yaml:"code"`
	Name       string `json:"name" yaml:"name"`
	NativeName string `json:"native_name" yaml:"native_name"`
	Flag       string `json:"flag" yaml:"flag"`
}

// Catalog is the set of languages an interview may switch to.
type Catalog struct {
	langs []Language
	index map[string]int
}

// DefaultCodes lists every language with a localized greeting, in display
// order.
var DefaultCodes = []string{
	"en", "es", "fr", "de", "it", "pt", "ru", "zh", "ja", "ko", "hi",
	"bn", "ta", "te", "mr", "gu", "kn", "ml", "pa", "ur", "ar",
}

var flags = map[string]string{
	"en": "🇺🇸", "es": "🇪🇸", "fr": "🇫🇷", "de": "🇩🇪", "it": "🇮🇹", "pt": "🇵🇹",
	"ru": "🇷🇺", "zh": "🇨🇳", "ja": "🇯🇵", "ko": "🇰🇷", "ar": "🇸🇦",
	"hi": "🇮🇳", "bn": "🇮🇳", "ta": "🇮🇳", "te": "🇮🇳", "mr": "🇮🇳", "gu": "🇮🇳",
	"kn": "🇮🇳", "ml": "🇮🇳", "pa": "🇮🇳", "ur": "🇮🇳",
}

// NewCatalog builds a catalog from BCP 47 codes. An empty list selects
// DefaultCodes. Codes are canonicalized to their base language.
func NewCatalog(codes []string) (*Catalog, error) {
	if len(codes) == 0 {
		codes = DefaultCodes
	}

	c := &Catalog{index: make(map[string]int)}
	englishNames := display.English.Languages()
	for _, raw := range codes {
		tag, err := language.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("parsing language %q: %w", raw, err)
		}
		base, _ := tag.Base()
		code := base.String()
		if _, dup := c.index[code]; dup {
			continue
		}
		baseTag := language.Make(code)
		c.index[code] = len(c.langs)
		c.langs = append(c.langs, Language{
			Code:       code,
			Name:       englishNames.Name(baseTag),
			NativeName: display.Self.Name(baseTag),
			Flag:       flags[code],
		})
	}
	return c, nil
}

// Supported reports whether code is in the catalog.
func (c *Catalog) Supported(code string) bool {
	_, ok := c.index[code]
	return ok
}

// Lookup returns the language for code.
func (c *Catalog) Lookup(code string) (Language, bool) {
	i, ok := c.index[code]
	if !ok {
		return Language{}, false
	}
	return c.langs[i], true
}

// List returns the catalog in display order.
func (c *Catalog) List() []Language {
	return append([]Language(nil), c.langs...)
}

// Greeting returns the localized welcome line, or the English one when the
// language has none.
func Greeting(code string) string {
	if g, ok := greetings[code]; ok {
		return g
	}
	return greetings["en"]
}

// HasGreeting reports whether a localized greeting exists for code.
func HasGreeting(code string) bool {
	_, ok := greetings[code]
	return ok
}
