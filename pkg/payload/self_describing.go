package payload

import (
	"encoding/json"

	"tracker/pkg/errors"
)

// SelfDescribing pairs a schema identifier with the data it describes. It is
// used for an event's own payload as well as for every attached context.
type SelfDescribing struct {
	schema string
	data   map[string]interface{}
}

// NewSelfDescribing keeps a shallow copy of data, so later changes to the
// caller's map do not reach the payload.
func NewSelfDescribing(schema string, data map[string]interface{}) (SelfDescribing, error) {
	if schema == "" {
		return SelfDescribing{}, errors.InvalidArgument("schema", "schema cannot be empty")
	}
	copied := make(map[string]interface{}, len(data))
	for k, v := range data {
		copied[k] = v
	}
	return SelfDescribing{schema: schema, data: copied}, nil
}

// MustSelfDescribing is NewSelfDescribing for schemas that are package
// constants.
func MustSelfDescribing(schema string, data map[string]interface{}) SelfDescribing {
	sd, err := NewSelfDescribing(schema, data)
	if err != nil {
		panic(err)
	}
	return sd
}

func (s SelfDescribing) Schema() string {
	return s.schema
}

// Data returns a shallow copy of the payload mapping.
func (s SelfDescribing) Data() map[string]interface{} {
	out := make(map[string]interface{}, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

func (s SelfDescribing) IsZero() bool {
	return s.schema == ""
}

type wireSelfDescribing struct {
	Schema string                 `json:"schema"`
	Data   map[string]interface{} `json:"data"`
}

func (s SelfDescribing) MarshalJSON() ([]byte, error) {
	data := s.data
	if data == nil {
		data = map[string]interface{}{}
	}
	return json.Marshal(wireSelfDescribing{Schema: s.schema, Data: data})
}

func (s *SelfDescribing) UnmarshalJSON(b []byte) error {
	var w wireSelfDescribing
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	sd, err := NewSelfDescribing(w.Schema, w.Data)
	if err != nil {
		return err
	}
	*s = sd
	return nil
}
