package payload

import (
	"fmt"
	"regexp"
	"strings"

	"tracker/pkg/errors"
)

const IgluPrefix = "iglu:"

var (
	schemaVersionPattern = regexp.MustCompile(`^[1-9][0-9]*-(0|[1-9][0-9]*)-(0|[1-9][0-9]*)$`)
	schemaPartPattern    = regexp.MustCompile(`^[a-zA-Z0-9_.\-]+$`)
)

// SchemaURI is a parsed iglu:vendor/name/format/model-revision-addition
// identifier.
type SchemaURI struct {
	Vendor  string
	Name    string
	Format  string
	Version string
}

func (u SchemaURI) String() string {
	return fmt.Sprintf("%s%s/%s/%s/%s", IgluPrefix, u.Vendor, u.Name, u.Format, u.Version)
}

func ParseSchemaURI(uri string) (SchemaURI, error) {
	if !strings.HasPrefix(uri, IgluPrefix) {
		return SchemaURI{}, errors.ErrInvalidSchema.
			WithDetail("schema", uri).
			WithMessage(fmt.Sprintf("schema %q must start with %q", uri, IgluPrefix))
	}

	parts := strings.Split(strings.TrimPrefix(uri, IgluPrefix), "/")
	if len(parts) != 4 {
		return SchemaURI{}, errors.ErrInvalidSchema.
			WithDetail("schema", uri).
			WithMessage(fmt.Sprintf("schema %q must have vendor/name/format/version", uri))
	}

	for _, part := range parts[:3] {
		if !schemaPartPattern.MatchString(part) {
			return SchemaURI{}, errors.ErrInvalidSchema.
				WithDetail("schema", uri).
				WithMessage(fmt.Sprintf("schema %q has an invalid segment %q", uri, part))
		}
	}

	if !schemaVersionPattern.MatchString(parts[3]) {
		return SchemaURI{}, errors.ErrInvalidSchema.
			WithDetail("schema", uri).
			WithMessage(fmt.Sprintf("schema %q has an invalid version %q", uri, parts[3]))
	}

	return SchemaURI{
		Vendor:  parts[0],
		Name:    parts[1],
		Format:  parts[2],
		Version: parts[3],
	}, nil
}

func ValidateSchemaURI(uri string) error {
	_, err := ParseSchemaURI(uri)
	return err
}
