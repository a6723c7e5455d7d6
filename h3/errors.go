package h3

import "errors"

// Errors returned by the grid operations. Callers match them with errors.Is;
// most are wrapped with the offending value.
var (
	ErrInvalidResolution  = errors.New("h3: invalid resolution")
	ErrInvalidBaseCell    = errors.New("h3: invalid base cell")
	ErrInvalidDigit       = errors.New("h3: invalid digit")
	ErrInvalidLatLng      = errors.New("h3: coordinate is not finite")
	ErrNegativeK          = errors.New("h3: k must not be negative")
	ErrMalformedIndex     = errors.New("h3: malformed index")
	ErrParse              = errors.New("h3: cannot parse index")
	ErrPentagon           = errors.New("h3: pentagon distortion encountered")
	ErrIncompatible       = errors.New("h3: cells are not comparable")
	ErrNotNeighbors       = errors.New("h3: cells are not neighbors")
	ErrDuplicateOrOverlap = errors.New("h3: duplicate or overlapping cells")
	ErrDisconnectedSet    = errors.New("h3: cell set does not form a single polygon")
)
