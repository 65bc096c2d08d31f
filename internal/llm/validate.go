package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds compiled schemas keyed by Schema.Name. Names are unique
// per request purpose (questions, sentiment, phrasing).
var compiled sync.Map // string -> *jsonschema.Schema

// decodeStructured turns a model's text into JSON content for a schema
// request. Models served through JSON-object mode (Groq, OpenRouter) often
// wrap the object in a markdown fence or surround it with whitespace; both
// are stripped before validation.
func decodeStructured(schema *Schema, text string) (json.RawMessage, error) {
	content := json.RawMessage(stripFence(text))
	if err := validateResponse(schema, content); err != nil {
		return nil, err
	}
	return content, nil
}

// stripFence removes a surrounding ```json ... ``` block.
func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Drop the info string ("json", "JSON", ...).
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// validateResponse checks raw against schema. A nil schema accepts
// anything. Failures are *ErrInvalidResponse carrying the raw content so
// the retry layer can decide whether to ask again.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := compileSchema(schema)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}
	if err := sch.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema %q: %w", schema.Name, err)}
	}
	return nil
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if sch, ok := compiled.Load(schema.Name); ok {
		return sch.(*jsonschema.Schema), nil
	}

	// AddResource wants a decoded JSON value, not Go maps with typed slices.
	b, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	def, err := jsonschema.UnmarshalJSON(strings.NewReader(string(b)))
	if err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := "schema://" + schema.Name + ".json"
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	compiled.Store(schema.Name, sch)
	return sch, nil
}
