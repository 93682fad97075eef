package generator

import "errors"

// Classification and pipeline failures. All are per-file: the batch driver
// reports them and moves on.
var (
	// ErrBadExtension rejects filenames that are neither .c nor .h.
	ErrBadExtension = errors.New("unrecognized file extension")

	// ErrMalformedName rejects filenames outside the
	// <version>_<kind>_<peripheral> convention.
	ErrMalformedName = errors.New("malformed file name")

	// ErrExtensionModule marks *_ex files, which are covered by their
	// non-suffixed counterpart. Callers skip these silently.
	ErrExtensionModule = errors.New("extension module")

	// ErrUnknownKind rejects kinds other than hal and ll.
	ErrUnknownKind = errors.New("unknown api kind")

	// ErrNoHandleType means neither a handle class nor the static-namespace
	// fallback produced anything: nothing in the file matched the peripheral.
	ErrNoHandleType = errors.New("no handle type and no matching functions")
)
