package event

import (
	"tracker/pkg/errors"
	"tracker/pkg/payload"
)

// SelfDescribing is a custom event whose schema and data are supplied by the
// caller.
type SelfDescribing struct {
	Base

	body payload.SelfDescribing
}

func NewSelfDescribing(body payload.SelfDescribing) (*SelfDescribing, error) {
	if body.IsZero() {
		return nil, errors.InvalidArgument("schema", "event schema cannot be empty")
	}
	return &SelfDescribing{body: body}, nil
}

func (e *SelfDescribing) Schema() string {
	return e.body.Schema()
}

func (e *SelfDescribing) DataPayload() map[string]interface{} {
	return e.body.Data()
}
