package payload

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/pkg/errors"
)

const testSchema = "iglu:com.acme/button_click/jsonschema/1-0-0"

func TestNewSelfDescribing(t *testing.T) {
	sd, err := NewSelfDescribing(testSchema, map[string]interface{}{"id": "b1"})
	require.NoError(t, err)
	assert.Equal(t, testSchema, sd.Schema())
	assert.Equal(t, map[string]interface{}{"id": "b1"}, sd.Data())
	assert.False(t, sd.IsZero())
}

func TestNewSelfDescribingEmptySchema(t *testing.T) {
	_, err := NewSelfDescribing("", map[string]interface{}{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestNewSelfDescribingNilData(t *testing.T) {
	sd, err := NewSelfDescribing(testSchema, nil)
	require.NoError(t, err)
	assert.NotNil(t, sd.Data())
	assert.Empty(t, sd.Data())
}

func TestDataReturnsCopy(t *testing.T) {
	sd := MustSelfDescribing(testSchema, map[string]interface{}{"id": "b1"})

	data := sd.Data()
	data["id"] = "changed"
	data["extra"] = true

	assert.Equal(t, map[string]interface{}{"id": "b1"}, sd.Data())
}

func TestNewSelfDescribingCopiesData(t *testing.T) {
	data := map[string]interface{}{"id": "b1"}
	sd, err := NewSelfDescribing(testSchema, data)
	require.NoError(t, err)

	data["id"] = "changed"
	data["extra"] = true

	assert.Equal(t, map[string]interface{}{"id": "b1"}, sd.Data())
}

func TestMustSelfDescribingPanics(t *testing.T) {
	assert.Panics(t, func() { MustSelfDescribing("", nil) })
}

func TestSelfDescribingJSON(t *testing.T) {
	sd := MustSelfDescribing(testSchema, map[string]interface{}{"id": "b1"})

	b, err := json.Marshal(sd)
	require.NoError(t, err)
	assert.JSONEq(t, `{"schema":"iglu:com.acme/button_click/jsonschema/1-0-0","data":{"id":"b1"}}`, string(b))

	var decoded SelfDescribing
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, sd.Schema(), decoded.Schema())
	assert.Equal(t, sd.Data(), decoded.Data())
}

func TestUnmarshalRejectsMissingSchema(t *testing.T) {
	var sd SelfDescribing
	err := json.Unmarshal([]byte(`{"data":{}}`), &sd)
	assert.True(t, errors.IsInvalidArgument(err))
}
