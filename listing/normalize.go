package listing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Listing is the structured product listing produced by the model. Its
// fields are whatever the model chose to emit.
type Listing map[string]any

// StripFences removes a leading ```json (or bare ```) fence and a trailing
// ``` fence from raw model output.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// drop the language tag on the opening line
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			if tag := strings.TrimSpace(s[:i]); tag == "" || strings.EqualFold(tag, "json") {
				s = s[i+1:]
			}
		} else {
			s = strings.TrimPrefix(s, "json")
		}
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}

// Normalize strips code fences from the model's reply and parses the rest as
// a JSON object.
func Normalize(raw string) (Listing, error) {
	body := StripFences(raw)

	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()

	var listing Listing
	if err := dec.Decode(&listing); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if listing == nil {
		return nil, fmt.Errorf("%w: expected a JSON object, got null", ErrMalformedOutput)
	}

	// trailing data after the object means the reply was not pure JSON
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrMalformedOutput)
	}

	return listing, nil
}

// MarshalIndent renders the listing as two-space indented JSON without HTML
// escaping.
func (l Listing) MarshalIndent() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
