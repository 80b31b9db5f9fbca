package event

const (
	SchemaConsentGranted   = "iglu:com.snowplowanalytics.snowplow/consent_granted/jsonschema/1-0-0"
	SchemaConsentWithdrawn = "iglu:com.snowplowanalytics.snowplow/consent_withdrawn/jsonschema/1-0-0"
	SchemaConsentDocument  = "iglu:com.snowplowanalytics.snowplow/consent_document/jsonschema/1-0-0"
)

// Payload keys.
const (
	KeyExpiry      = "expiry"
	KeyAll         = "all"
	KeyID          = "id"
	KeyVersion     = "version"
	KeyName        = "name"
	KeyDescription = "description"
)
