package dotmap

import (
	"fmt"
)

// A ParseError is returned when the input is not well-formed XML
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "scene parse error: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// A MissingFieldError is returned when a scene node lacks a child element or
// an attribute that the conversion needs. Node is the zero-based index of the
// offending node, or -1 if the problem is with the document itself.
type MissingFieldError struct {
	Node int

	// The child slot, or "container" for the top-level node list
	Field string

	// The tag of the element in that slot, if there is one
	Tag string

	// The missing attribute. Empty if the element itself is missing.
	Attr string
}

func (e *MissingFieldError) Error() string {
	where := "scene"
	if e.Node >= 0 {
		where = fmt.Sprintf("node %d", e.Node)
	}

	if e.Attr == "" {
		return fmt.Sprintf("%s: missing %s element", where, e.Field)
	}
	return fmt.Sprintf("%s: %s element <%s> has no '%s' attribute", where, e.Field, e.Tag, e.Attr)
}
