package Models

import "errors"

// Error kinds the controllers translate into HTTP responses. Wrap them with
// fmt.Errorf("%w: ...") so errors.Is keeps working through the detail text.
var (
	// ErrValidation marks bad or missing input on a request.
	ErrValidation = errors.New("validation error")

	// ErrStateConflict marks an operation the current document status forbids,
	// e.g. editing an accepted quote or creating a second advance invoice.
	ErrStateConflict = errors.New("state conflict")

	// ErrNotFound marks a missing record.
	ErrNotFound = errors.New("not found")
)
