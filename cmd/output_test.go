package main

import (
	"os"
	"path/filepath"
	"testing"

	"prodgen/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteListing_Indented(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.txt")

	require.NoError(t, writeListing(path, "```json\n{\"Product Name\":\"Banarasi <Silk> Saree\",\"Pricing\":4999.5}\n```"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"Pricing\": 4999.5,\n  \"Product Name\": \"Banarasi <Silk> Saree\"\n}\n", string(data))
}

func TestWriteListing_MalformedKeepsRawText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.txt")
	raw := "Product Name: Banarasi Saree"

	err := writeListing(path, raw)
	assert.ErrorIs(t, err, listing.ErrMalformedOutput)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, raw, string(data))
}

func TestWriteListing_UnwritablePath(t *testing.T) {
	err := writeListing(filepath.Join(t.TempDir(), "missing", "output.txt"), `{"a": 1}`)
	assert.ErrorContains(t, err, "failed to write output")
}
