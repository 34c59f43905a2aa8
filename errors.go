package railalign

import (
	"github.com/pkg/errors"
)

// Kinds of failures. Call sites wrap these with the offending station or
// segment, so use errors.Cause (or errors.Is) to find out the kind.
var (
	// ErrFormat malformed station or angle string
	ErrFormat = errors.New("bad format")
	// ErrDegenerateReference two reference points share the same station (or the same coordinates)
	ErrDegenerateReference = errors.New("degenerate reference points")
	// ErrUncalibratedAlignment realization attempted without track parameters
	ErrUncalibratedAlignment = errors.New("alignment is not calibrated")
	// ErrEmptyAlignment realization attempted without segments
	ErrEmptyAlignment = errors.New("alignment has no segments")
	// ErrInvalidCurveParameters neither degree of curve nor radius given, or radius <= 0
	ErrInvalidCurveParameters = errors.New("invalid curve parameters")
	// ErrReferencePointNotFound no reference point with such name
	ErrReferencePointNotFound = errors.New("reference point not found")
	// ErrStationOrder segment ends before it starts
	ErrStationOrder = errors.New("stations are not increasing")
)
