package tiled

import "errors"

var (
	// ErrMalformedAttributes reports a required attribute that is missing or
	// fails type coercion, or a structural constraint violation such as a
	// collection tileset without an explicit column count.
	ErrMalformedAttributes = errors.New("malformed attributes")

	// ErrPathIsNotFile reports a document path with no parent directory, so
	// relative resource paths inside the document cannot be resolved.
	ErrPathIsNotFile = errors.New("path is not a file")
)
