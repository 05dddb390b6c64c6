package slides

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when the source cannot be parsed into a document tree.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoTargetElement is reported when an attribute marker has no element to attach to.
	// It never aborts a conversion; the marker is replaced by a system message.
	ErrNoTargetElement = errors.New("no target element")

	// ErrInvalidDirective is reported for a directive with bad arguments. The
	// directive is replaced by a system message.
	ErrInvalidDirective = errors.New("invalid directive")

	// ErrMalformedMetadataField is returned when a metadata line is not "field = value".
	ErrMalformedMetadataField = errors.New("malformed metadata field")

	// ErrUnbalancedSectionNesting means a section was exited without being entered.
	ErrUnbalancedSectionNesting = errors.New("unbalanced section nesting")
)

// MetadataFieldError describes the metadata line that failed to parse.
type MetadataFieldError struct {
	Line int
	Text string
}

func (e *MetadataFieldError) Error() string {
	return fmt.Sprintf("%s at line %d: %q", ErrMalformedMetadataField, e.Line, e.Text)
}

func (e *MetadataFieldError) Unwrap() error {
	return ErrMalformedMetadataField
}
