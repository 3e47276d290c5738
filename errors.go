package ringct

import "errors"

var (
	// ErrMalformedInput reports a byte buffer whose width is wrong or a
	// pair of parallel sequences whose lengths disagree. It is always
	// raised before any curve operation runs.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidEncoding reports a buffer of the right width that does not
	// decode to a scalar or point under the curve's encoding rules.
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrSigningFailure reports that the proving routine could not produce
	// a valid signature for the supplied private material. Callers must
	// fix their inputs; retrying the same call cannot succeed.
	ErrSigningFailure = errors.New("signing failure")
)
