package CS1D

import "errors"

// Sentinel errors returned by axis construction and the transform
// triplet. All are terminal: they reflect either a structural
// misconfiguration or caller misuse, never a transient condition, so
// nothing in this package retries.
var (
	// ErrConfiguration reports an invalid boundary-condition/cell-count
	// combination or malformed call parameters.
	ErrConfiguration = errors.New("CS1D: invalid axis configuration")
	// ErrSingularOperator reports a folded compact operator that is not
	// symmetric positive definite, aborting axis construction.
	ErrSingularOperator = errors.New("CS1D: compact operator is not positive definite")
	// ErrOutOfDomain reports an evaluation point outside [Xmin, Xmax].
	ErrOutOfDomain = errors.New("CS1D: evaluation point outside axis domain")
)
