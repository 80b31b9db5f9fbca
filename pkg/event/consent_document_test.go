package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/pkg/errors"
)

func TestNewConsentDocument(t *testing.T) {
	doc, err := NewConsentDocument("doc-1", "1-0-0")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID())
	assert.Equal(t, "1-0-0", doc.Version())
	assert.Empty(t, doc.Name())
	assert.Empty(t, doc.Description())
	assert.Equal(t, SchemaConsentDocument, doc.Schema())
}

func TestNewConsentDocumentValidation(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		version string
	}{
		{name: "empty id", id: "", version: "1-0-0"},
		{name: "empty version", id: "doc-1", version: ""},
		{name: "both empty", id: "", version: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewConsentDocument(tt.id, tt.version)
			assert.Nil(t, doc)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestConsentDocumentPayloadWithoutOptionalFields(t *testing.T) {
	doc, err := NewConsentDocument("doc-1", "1-0-0")
	require.NoError(t, err)

	data := doc.DataPayload()
	assert.Equal(t, map[string]interface{}{"id": "doc-1", "version": "1-0-0"}, data)
	assert.NotContains(t, data, KeyName)
	assert.NotContains(t, data, KeyDescription)
}

func TestConsentDocumentPayloadWithOptionalFields(t *testing.T) {
	doc, err := NewConsentDocument("doc-1", "1-0-0")
	require.NoError(t, err)

	same := doc.WithName("Privacy Policy").WithDescription("How we use your data")
	assert.Same(t, doc, same)

	assert.Equal(t, map[string]interface{}{
		"id":          "doc-1",
		"version":     "1-0-0",
		"name":        "Privacy Policy",
		"description": "How we use your data",
	}, doc.DataPayload())
}

func TestConsentDocumentMutatorsOverwriteAndClear(t *testing.T) {
	doc, err := NewConsentDocument("doc-1", "1-0-0")
	require.NoError(t, err)

	doc.WithName("first").WithName("second")
	assert.Equal(t, "second", doc.DataPayload()[KeyName])

	doc.WithName("").WithDescription("kept")
	data := doc.DataPayload()
	assert.NotContains(t, data, KeyName)
	assert.Equal(t, "kept", data[KeyDescription])
}
