package event

import (
	"tracker/pkg/errors"
	"tracker/pkg/payload"
)

// ConsentGranted records that a user granted consent. The first document is
// described by the event's own fields; further documents may be attached
// with WithDocuments. All documents travel as contexts.
type ConsentGranted struct {
	Base

	expiry              string
	documentID          string
	documentVersion     string
	documentName        string
	documentDescription string
	documents           []*ConsentDocument
}

func NewConsentGranted(expiry, documentID, documentVersion string) (*ConsentGranted, error) {
	if expiry == "" {
		return nil, errors.InvalidArgument("expiry", "expiry cannot be empty")
	}
	if documentID == "" {
		return nil, errors.InvalidArgument("document_id", "document ID cannot be empty")
	}
	if documentVersion == "" {
		return nil, errors.InvalidArgument("document_version", "document version cannot be empty")
	}

	return &ConsentGranted{
		expiry:          expiry,
		documentID:      documentID,
		documentVersion: documentVersion,
	}, nil
}

func (e *ConsentGranted) WithDocumentName(name string) *ConsentGranted {
	e.documentName = name
	return e
}

func (e *ConsentGranted) WithDocumentDescription(description string) *ConsentGranted {
	e.documentDescription = description
	return e
}

// WithDocuments replaces the additional documents. Calling it with no
// documents clears them.
func (e *ConsentGranted) WithDocuments(documents ...*ConsentDocument) *ConsentGranted {
	e.documents = copyDocuments(documents)
	return e
}

func (e *ConsentGranted) Expiry() string              { return e.expiry }
func (e *ConsentGranted) DocumentID() string          { return e.documentID }
func (e *ConsentGranted) DocumentVersion() string     { return e.documentVersion }
func (e *ConsentGranted) DocumentName() string        { return e.documentName }
func (e *ConsentGranted) DocumentDescription() string { return e.documentDescription }

// AllDocuments returns the primary document built from the event's fields,
// followed by the additional documents in the order they were given.
func (e *ConsentGranted) AllDocuments() []*ConsentDocument {
	primary := &ConsentDocument{
		id:          e.documentID,
		version:     e.documentVersion,
		name:        e.documentName,
		description: e.documentDescription,
	}

	docs := make([]*ConsentDocument, 0, len(e.documents)+1)
	docs = append(docs, primary)
	return append(docs, e.documents...)
}

func (e *ConsentGranted) Schema() string {
	return SchemaConsentGranted
}

func (e *ConsentGranted) DataPayload() map[string]interface{} {
	return map[string]interface{}{
		KeyExpiry: e.expiry,
	}
}

func (e *ConsentGranted) BeginProcessing(Handle) {
	attachDocuments(&e.Base, e.AllDocuments())
}

func attachDocuments(b *Base, docs []*ConsentDocument) {
	for _, doc := range docs {
		b.AppendContext(payload.MustSelfDescribing(doc.Schema(), doc.DataPayload()))
	}
}

func copyDocuments(documents []*ConsentDocument) []*ConsentDocument {
	docs := make([]*ConsentDocument, 0, len(documents))
	for _, doc := range documents {
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	return docs
}
