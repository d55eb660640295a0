package utils

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadJSON reads the file at path and decodes it into target. Unknown
// fields are rejected so that typos in config files fail loudly instead
// of being silently dropped.
func LoadJSON(path string, target any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("failed to decode JSON from %s: %w", path, err)
	}
	return nil
}
