package event

import (
	"tracker/pkg/errors"
)

// ConsentWithdrawn records that a user withdrew consent, either for the
// attached documents or, with all set, for everything.
type ConsentWithdrawn struct {
	Base

	all                 bool
	documentID          string
	documentVersion     string
	documentName        string
	documentDescription string
	documents           []*ConsentDocument
}

func NewConsentWithdrawn(all bool) *ConsentWithdrawn {
	return &ConsentWithdrawn{all: all}
}

// WithDocument sets the primary document the withdrawal refers to.
func (e *ConsentWithdrawn) WithDocument(documentID, documentVersion string) (*ConsentWithdrawn, error) {
	if documentID == "" {
		return nil, errors.InvalidArgument("document_id", "document ID cannot be empty")
	}
	if documentVersion == "" {
		return nil, errors.InvalidArgument("document_version", "document version cannot be empty")
	}
	e.documentID = documentID
	e.documentVersion = documentVersion
	return e, nil
}

func (e *ConsentWithdrawn) WithDocumentName(name string) *ConsentWithdrawn {
	e.documentName = name
	return e
}

func (e *ConsentWithdrawn) WithDocumentDescription(description string) *ConsentWithdrawn {
	e.documentDescription = description
	return e
}

func (e *ConsentWithdrawn) WithDocuments(documents ...*ConsentDocument) *ConsentWithdrawn {
	e.documents = copyDocuments(documents)
	return e
}

func (e *ConsentWithdrawn) All() bool { return e.all }

// AllDocuments lists the primary document, when one was set, followed by the
// additional documents.
func (e *ConsentWithdrawn) AllDocuments() []*ConsentDocument {
	docs := make([]*ConsentDocument, 0, len(e.documents)+1)
	if e.documentID != "" {
		docs = append(docs, &ConsentDocument{
			id:          e.documentID,
			version:     e.documentVersion,
			name:        e.documentName,
			description: e.documentDescription,
		})
	}
	return append(docs, e.documents...)
}

func (e *ConsentWithdrawn) Schema() string {
	return SchemaConsentWithdrawn
}

func (e *ConsentWithdrawn) DataPayload() map[string]interface{} {
	return map[string]interface{}{
		KeyAll: e.all,
	}
}

func (e *ConsentWithdrawn) BeginProcessing(Handle) {
	attachDocuments(&e.Base, e.AllDocuments())
}
