package railalign

import (
	"strings"

	"github.com/golang/geo/s1"
	"github.com/pkg/errors"
)

// CurveDirection turning direction of spiral-curve-spiral segment.
//
// Sign convention: CURVE_RIGHT decreases bearing, CURVE_LEFT increases it.
// Spiral, arc and bearing hand-off code all use sign() so they stay consistent.
type CurveDirection uint16

const (
	CURVE_RIGHT = CurveDirection(iota + 1)
	CURVE_LEFT
)

func (iotaIdx CurveDirection) String() string {
	return [...]string{"right", "left"}[iotaIdx-1]
}

// sign returns multiplier applied to bearing deflections
func (iotaIdx CurveDirection) sign() float64 {
	if iotaIdx == CURVE_LEFT {
		return 1
	}
	return -1
}

// turn returns bearing (degrees) deflected by given angle in given direction
func (iotaIdx CurveDirection) turn(bearingDeg float64, deflection s1.Angle) float64 {
	return bearingDeg + iotaIdx.sign()*deflection.Degrees()
}

// ParseCurveDirection parses "right" / "left" (case insensitive)
func ParseCurveDirection(direction string) (CurveDirection, error) {
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "right", "r":
		return CURVE_RIGHT, nil
	case "left", "l":
		return CURVE_LEFT, nil
	default:
		return 0, errors.Wrapf(ErrInvalidCurveParameters, "Unknown curve direction '%s'", direction)
	}
}
