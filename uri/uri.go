// Package uri parses and builds the three reference formats a law's
// Resolve/ActionValue entries can point at:
//
//	regelrecht://law_id/output#field   - external reference
//	regulation/nl/layer/law_id#field   - file path reference
//	#output_name                       - internal reference (same law)
//
// Grounded on original_source's uri.rs, re-expressed with Go's string
// splitting idioms rather than Rust's strip_prefix/split_at.
package uri

import (
	"strings"

	"github.com/MinBZK/regelrecht-mvp-sub000/rrerr"
)

type ReferenceType int

const (
	Internal ReferenceType = iota
	External
)

// RegelrechtUri is a parsed reference.
type RegelrechtUri struct {
	raw    string
	lawID  string
	output string
	field  string
	hasField bool
	refType ReferenceType
}

// Parse parses uri into its components, per the three supported
// formats. It fails with InvalidUri for anything else.
func Parse(uri string) (RegelrechtUri, error) {
	if output, ok := strings.CutPrefix(uri, "#"); ok {
		if output == "" {
			return RegelrechtUri{}, rrerr.ErrInvalidUri("internal reference cannot be empty")
		}
		return RegelrechtUri{
			raw:      uri,
			output:   output,
			field:    output,
			hasField: true,
			refType:  Internal,
		}, nil
	}

	pathPart := uri
	var field string
	var hasField bool
	if hashPos := strings.IndexByte(uri, '#'); hashPos >= 0 {
		pathPart = uri[:hashPos]
		field = uri[hashPos+1:]
		hasField = true
	}

	if rest, ok := strings.CutPrefix(pathPart, "regelrecht://"); ok {
		return parseRegelrechtURI(uri, rest, field, hasField)
	}
	if strings.HasPrefix(pathPart, "regulation/nl/") {
		return parseFilePath(uri, pathPart, field, hasField)
	}
	return RegelrechtUri{}, rrerr.ErrInvalidUri(
		"invalid URI format: must be regelrecht://, regulation/nl/..., or #reference, got: %s", uri)
}

func parseRegelrechtURI(original, path, field string, hasField bool) (RegelrechtUri, error) {
	slashPos := strings.IndexByte(path, '/')
	if slashPos < 0 {
		return RegelrechtUri{}, rrerr.ErrInvalidUri(
			"invalid regelrecht URI: must contain law_id/output, got: %s", original)
	}
	lawID := path[:slashPos]
	output := path[slashPos+1:]
	if lawID == "" {
		return RegelrechtUri{}, rrerr.ErrInvalidUri("invalid regelrecht URI: law_id cannot be empty, got: %s", original)
	}
	if output == "" {
		return RegelrechtUri{}, rrerr.ErrInvalidUri("invalid regelrecht URI: output cannot be empty, got: %s", original)
	}
	return RegelrechtUri{
		raw:      original,
		lawID:    lawID,
		output:   output,
		field:    field,
		hasField: hasField,
		refType:  External,
	}, nil
}

func parseFilePath(original, path, field string, hasField bool) (RegelrechtUri, error) {
	parts := strings.Split(path, "/")
	if len(parts) < 4 {
		return RegelrechtUri{}, rrerr.ErrInvalidUri(
			"invalid file path reference: expected regulation/nl/layer/law_id, got: %s", original)
	}
	lawID := parts[len(parts)-1]
	output := lawID
	if hasField {
		output = field
	}
	return RegelrechtUri{
		raw:      original,
		lawID:    lawID,
		output:   output,
		field:    field,
		hasField: hasField,
		refType:  External,
	}, nil
}

func (u RegelrechtUri) String() string   { return u.raw }
func (u RegelrechtUri) LawID() string    { return u.lawID }
func (u RegelrechtUri) Output() string   { return u.output }
func (u RegelrechtUri) Field() (string, bool) { return u.field, u.hasField }
func (u RegelrechtUri) ReferenceType() ReferenceType { return u.refType }
func (u RegelrechtUri) IsInternal() bool { return u.refType == Internal }
func (u RegelrechtUri) IsExternal() bool { return u.refType == External }
