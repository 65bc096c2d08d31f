package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key")
	if err := os.WriteFile(keyFile, []byte("  gsk-from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	emptyFile := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyFile, []byte("\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		src     Source
		want    string
		wantErr bool
	}{
		{"inline value", Source{Name: "key", Value: " gsk-inline "}, "gsk-inline", false},
		{"file wins over value", Source{Name: "key", Value: "inline", File: keyFile}, "gsk-from-file", false},
		{"missing file", Source{Name: "key", File: filepath.Join(dir, "nope")}, "", true},
		{"empty file", Source{Name: "key", File: emptyFile}, "", true},
		{"nothing set", Source{Name: "key"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("Load() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad_NotConfigured(t *testing.T) {
	_, err := Load(Source{Name: "server.api-key"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestLoadOptional(t *testing.T) {
	got, err := LoadOptional(Source{Name: "server.api-key"})
	if err != nil || got != "" {
		t.Fatalf("LoadOptional() = %q, %v; want empty and nil", got, err)
	}

	_, err = LoadOptional(Source{Name: "server.api-key", File: filepath.Join(t.TempDir(), "missing")})
	if err == nil {
		t.Fatal("expected error for a configured but missing file")
	}
}
