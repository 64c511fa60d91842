// Package errs provides the error taxonomy shared by every layer of parcelhub.
//
// Each kind follows the same pattern:
//   - a sentinel error variable (e.g., ErrValueIsInvalid) for errors.Is checks
//   - a struct type carrying the details (field name, offending ID, cause)
//   - constructors with and without a cause
//   - an Unwrap method returning the sentinel
//
// The HTTP adapter maps the sentinels to status codes:
//   - ErrForbidden: 403
//   - ErrValueIsInvalid, ErrValueIsRequired, ErrValueIsOutOfRange: 400 (field keyed)
//   - ErrObjectNotFound: 404
//   - ErrConflict: 409
//
// Anything else is treated as an internal failure whose details never reach the caller.
package errs
