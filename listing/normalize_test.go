package listing

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FencedJSON(t *testing.T) {
	l, err := Normalize("```json\n{\"x\":1}\n```")
	require.NoError(t, err)
	assert.Equal(t, Listing{"x": json.Number("1")}, l)
}

func TestNormalize_Variants(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{"Plain", `{"product_name": "Banarasi Saree"}`},
		{"BareFence", "```\n{\"product_name\": \"Banarasi Saree\"}\n```"},
		{"UpperCaseTag", "```JSON\n{\"product_name\": \"Banarasi Saree\"}\n```"},
		{"SurroundingWhitespace", "\n\n  ```json\n{\"product_name\": \"Banarasi Saree\"}\n```  \n"},
		{"SingleLineFence", "```json{\"product_name\": \"Banarasi Saree\"}```"},
		{"OpeningFenceOnly", "```json\n{\"product_name\": \"Banarasi Saree\"}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := Normalize(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, "Banarasi Saree", l["product_name"])
		})
	}
}

func TestNormalize_Malformed(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{"Prose", "Here is your listing: Product Name: Saree"},
		{"Truncated", "```json\n{\"product_name\": \"Sar"},
		{"Array", `[{"product_name": "Saree"}]`},
		{"Scalar", `42`},
		{"Null", `null`},
		{"Empty", ""},
		{"TrailingCommentary", "{\"a\": 1}\nHope this helps!"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(tc.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedOutput)
		})
	}
}

func TestNormalize_NestedValuesPassThrough(t *testing.T) {
	raw := "```json\n" + `{
		"Product Regional Names": ["Banarasi Sari", "Benarasi Pattu"],
		"About Product": {"1": "Pure silk", "2": "Zari border"},
		"Pricing": 4999.5
	}` + "\n```"

	l, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, []any{"Banarasi Sari", "Benarasi Pattu"}, l["Product Regional Names"])
	assert.Equal(t, json.Number("4999.5"), l["Pricing"])

	out, err := l.MarshalIndent()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Pricing": 4999.5`)
}

func TestGenerationError(t *testing.T) {
	last := errors.New("upstream timeout")
	err := fmt.Errorf("pipeline: %w", GenerationError{Attempts: 2, Last: last})

	assert.EqualError(t, err, "pipeline: generation failed after 2 attempts: upstream timeout")
	assert.ErrorIs(t, err, last)

	var genErr GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 2, genErr.Attempts)
}
