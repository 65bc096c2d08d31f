// Package secrets resolves API keys and passwords from inline values or
// files.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotConfigured is returned when a source has neither a file nor a value.
var ErrNotConfigured = errors.New("not configured")

// Source describes where a secret comes from.
type Source struct {
	// Name appears in error messages, e.g. "llm.groq.api-key".
	Name string
	// Value is an inline secret from configuration, env or flags.
	Value string
	// File holds the secret on disk. It takes precedence over Value.
	File string
}

// Load returns the trimmed secret. A configured file that is missing or
// empty is an error; so is a source with nothing set.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		return "", fmt.Errorf("%s: %w", name, ErrNotConfigured)
	}
	return secret, nil
}

// LoadOptional is Load for secrets that may legitimately be absent. An
// unset source yields "" and no error.
func LoadOptional(src Source) (string, error) {
	secret, err := Load(src)
	if errors.Is(err, ErrNotConfigured) {
		return "", nil
	}
	return secret, err
}
