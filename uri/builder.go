package uri

import (
	"fmt"

	"github.com/MinBZK/regelrecht-mvp-sub000/rrerr"
)

// Builder constructs a regelrecht:// URI, validating law_id/output/field
// as it goes rather than leaving assembly to raw string concatenation.
type Builder struct {
	lawID, output, field string
	hasField             bool
}

// NewBuilder starts a builder for law_id/output. Returns InvalidUri if
// either is empty.
func NewBuilder(lawID, output string) (Builder, error) {
	if lawID == "" {
		return Builder{}, rrerr.ErrInvalidUri("cannot build URI: law_id is empty")
	}
	if output == "" {
		return Builder{}, rrerr.ErrInvalidUri("cannot build URI: output is empty")
	}
	return Builder{lawID: lawID, output: output}, nil
}

// WithField attaches a field fragment. Returns InvalidUri if field is
// empty.
func (b Builder) WithField(field string) (Builder, error) {
	if field == "" {
		return Builder{}, rrerr.ErrInvalidUri("cannot build URI: field is empty")
	}
	b.field = field
	b.hasField = true
	return b, nil
}

// Build renders the URI string.
func (b Builder) Build() string {
	s := fmt.Sprintf("regelrecht://%s/%s", b.lawID, b.output)
	if b.hasField {
		s += "#" + b.field
	}
	return s
}

// BuildParsed builds and re-parses the URI, guaranteed to succeed since
// the builder only ever assembles well-formed components — this is the
// round-trip invariant the URI format promises.
func (b Builder) BuildParsed() RegelrechtUri {
	parsed, err := Parse(b.Build())
	if err != nil {
		panic(fmt.Sprintf("uri: builder produced an unparseable URI %q: %v", b.Build(), err))
	}
	return parsed
}

// InternalReference builds a "#output" internal-reference string.
func InternalReference(output string) string {
	return "#" + output
}
