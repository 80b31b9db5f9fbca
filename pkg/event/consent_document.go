package event

import (
	"tracker/pkg/errors"
)

// ConsentDocument describes one piece of consent metadata. It is attached to
// consent events as a context, never as part of the event's own data.
type ConsentDocument struct {
	id          string
	version     string
	name        string
	description string
}

func NewConsentDocument(id, version string) (*ConsentDocument, error) {
	if id == "" {
		return nil, errors.InvalidArgument("document_id", "document ID cannot be empty")
	}
	if version == "" {
		return nil, errors.InvalidArgument("document_version", "document version cannot be empty")
	}
	return &ConsentDocument{id: id, version: version}, nil
}

// WithName sets the document name; an empty name clears it.
func (d *ConsentDocument) WithName(name string) *ConsentDocument {
	d.name = name
	return d
}

// WithDescription sets the document description; an empty description
// clears it.
func (d *ConsentDocument) WithDescription(description string) *ConsentDocument {
	d.description = description
	return d
}

func (d *ConsentDocument) ID() string          { return d.id }
func (d *ConsentDocument) Version() string     { return d.version }
func (d *ConsentDocument) Name() string        { return d.name }
func (d *ConsentDocument) Description() string { return d.description }

func (d *ConsentDocument) Schema() string {
	return SchemaConsentDocument
}

// DataPayload always carries id and version. Name and description are left
// out when unset instead of being sent as nulls.
func (d *ConsentDocument) DataPayload() map[string]interface{} {
	data := map[string]interface{}{
		KeyID:      d.id,
		KeyVersion: d.version,
	}
	if d.name != "" {
		data[KeyName] = d.name
	}
	if d.description != "" {
		data[KeyDescription] = d.description
	}
	return data
}
