package llm

import (
	"reflect"
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"technology": map[string]any{"type": "string"},
			"years":      map[string]any{"type": "integer"},
			"emotion":    map[string]any{"type": "string", "enum": []any{"neutral", "anxious", "confident"}},
			"questions": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"technology", "years"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["technology"].Type != "STRING" {
		t.Fatalf("expected STRING for technology, got %s", schema.Properties["technology"].Type)
	}
	if schema.Properties["years"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for years, got %s", schema.Properties["years"].Type)
	}
	if len(schema.Properties["emotion"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["emotion"].Enum))
	}
	if schema.Properties["questions"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for questions, got %s", schema.Properties["questions"].Type)
	}
	if schema.Properties["questions"].Items.Type != "STRING" {
		t.Fatalf("expected STRING for questions items, got %s", schema.Properties["questions"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiSchema_BoundsAndOrdering(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
			"label": map[string]any{"type": "string", "enum": []string{"neutral", "anxious"}},
			"notes": map[string]any{"type": "string"},
			"questions": map[string]any{
				"type": "array", "minItems": 3, "maxItems": 5.0,
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"label", "score", "missing"},
	}

	schema := buildGeminiSchema(def)

	score := schema.Properties["score"]
	if score.Minimum == nil || *score.Minimum != 0 || score.Maximum == nil || *score.Maximum != 1 {
		t.Fatalf("score bounds = %v..%v", score.Minimum, score.Maximum)
	}
	qs := schema.Properties["questions"]
	if qs.MinItems == nil || *qs.MinItems != 3 || qs.MaxItems == nil || *qs.MaxItems != 5 {
		t.Fatalf("questions bounds = %v..%v", qs.MinItems, qs.MaxItems)
	}
	if len(schema.Properties["label"].Enum) != 2 {
		t.Fatalf("enum = %v", schema.Properties["label"].Enum)
	}
	if !reflect.DeepEqual(schema.Required, []string{"label", "score"}) {
		t.Fatalf("required = %v", schema.Required)
	}
	want := []string{"label", "score", "notes", "questions"}
	if !reflect.DeepEqual(schema.PropertyOrdering, want) {
		t.Fatalf("ordering = %v, want %v", schema.PropertyOrdering, want)
	}
}
