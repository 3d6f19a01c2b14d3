package ingest

import (
	"errors"
	"strings"
)

// Kind classifies an ingestion failure. Kinds are errors themselves so callers
// can branch with errors.Is(err, ingest.NoValidRows).
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	// UnsupportedFormat indicates the file extension is not recognized.
	UnsupportedFormat Kind = "unsupported file type"

	// DecodeFailure indicates the text or binary decoder failed
	// (malformed JSON, corrupt spreadsheet, read error).
	DecodeFailure Kind = "decode failure"

	// InvalidShape indicates parsed JSON is neither a FeatureCollection,
	// a Feature, nor an array of records.
	InvalidShape Kind = "invalid JSON format"

	// NoCoordinateColumns indicates column inference found no validated
	// latitude/longitude pair.
	NoCoordinateColumns Kind = "no valid latitude/longitude columns found"

	// NoValidRows indicates coordinate columns exist but no row passed
	// numeric and range validation.
	NoValidRows Kind = "no valid rows found with coordinates within acceptable ranges"
)

// Error is the single error type returned by the ingestion facade.
type Error struct {
	Kind   Kind
	File   string
	Column string // offending column(s), when known
	Detail string // human-readable explanation
	Err    error  // underlying cause, if any
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	if e.Detail != "" {
		b.WriteString(e.Detail)
	} else {
		b.WriteString(string(e.Kind))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf reports the Kind of an ingestion error.
func KindOf(err error) (Kind, bool) {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind, true
	}
	var k Kind
	if errors.As(err, &k) {
		return k, true
	}
	return "", false
}

func newError(kind Kind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: cause}
}

// withFile stamps the file name onto err when it is an *Error.
func withFile(err error, name string) error {
	var ie *Error
	if errors.As(err, &ie) && ie.File == "" {
		ie.File = name
	}
	return err
}
