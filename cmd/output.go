package main

import (
	"fmt"
	"os"

	"prodgen/listing"
)

// writeListing writes the parsed listing as indented JSON. Output the model
// did not format as JSON is still written verbatim, and the parse error is
// returned.
func writeListing(path, raw string) error {
	data := []byte(raw)

	l, parseErr := listing.Normalize(raw)
	if parseErr == nil {
		indented, err := l.MarshalIndent()
		if err != nil {
			return fmt.Errorf("failed to encode listing: %w", err)
		}
		data = indented
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return parseErr
}
