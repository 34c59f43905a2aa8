package railalign

import (
	"math"

	"github.com/pkg/errors"
)

// CurveGeometry realized spiral-curve-spiral transition
type CurveGeometry struct {
	EntrySpiral []GeoPoint
	CircularArc []GeoPoint
	ExitSpiral  []GeoPoint

	// Tangent to spiral
	TS GeoPoint
	// Spiral to curve
	SC GeoPoint
	// Curve to spiral
	CS GeoPoint
	// Spiral to tangent
	ST GeoPoint

	TSBearing float64
	SCBearing float64
	CSBearing float64
	STBearing float64
}

// AllCoords returns entry spiral, arc and exit spiral concatenated.
// Shared boundary points (SC, CS) are kept twice, as each sub-sequence starts with its own start point.
func (geom *CurveGeometry) AllCoords() []GeoPoint {
	coords := make([]GeoPoint, 0, len(geom.EntrySpiral)+len(geom.CircularArc)+len(geom.ExitSpiral))
	coords = append(coords, geom.EntrySpiral...)
	coords = append(coords, geom.CircularArc...)
	coords = append(coords, geom.ExitSpiral...)
	return coords
}

// TotalDeflection returns signed bearing change TS -> ST (degrees)
func (geom *CurveGeometry) TotalDeflection() float64 {
	return geom.STBearing - geom.TSBearing
}

// AssembleCurve chains entry spiral, circular arc and exit spiral starting at TS point with given bearing.
//
// Each part starts exactly at the end point and exit bearing of the previous one.
// Radius must be finite and positive, lengths must be non-negative.
func AssembleCurve(ts GeoPoint, tsBearing, entrySpiralFt, arcFt, exitSpiralFt, radiusFt float64, direction CurveDirection, sampling Sampling) (*CurveGeometry, error) {
	if math.IsNaN(radiusFt) || math.IsInf(radiusFt, 0) || radiusFt <= 0 {
		return nil, errors.Wrapf(ErrInvalidCurveParameters, "Radius must be finite and positive, got %f", radiusFt)
	}
	if entrySpiralFt < 0 || arcFt < 0 || exitSpiralFt < 0 {
		return nil, errors.Wrapf(ErrInvalidCurveParameters, "Negative curve part length (entry spiral %f, arc %f, exit spiral %f)", entrySpiralFt, arcFt, exitSpiralFt)
	}
	if direction != CURVE_RIGHT && direction != CURVE_LEFT {
		return nil, errors.Wrapf(ErrInvalidCurveParameters, "Unknown curve direction %d", direction)
	}
	sampling = sampling.normalized()

	geom := &CurveGeometry{
		TS:        ts,
		TSBearing: tsBearing,
	}

	geom.EntrySpiral, geom.SCBearing = GenerateSpiral(ts, tsBearing, entrySpiralFt, radiusFt, direction, sampling.SpiralSteps)
	geom.SC = geom.EntrySpiral[len(geom.EntrySpiral)-1]

	geom.CircularArc, geom.CSBearing = GenerateArc(geom.SC, geom.SCBearing, arcFt, radiusFt, direction, sampling.ArcSteps)
	geom.CS = geom.CircularArc[len(geom.CircularArc)-1]

	// Exit spiral reuses entry form: bearing at both of its ends matches neighbours, curvature at CS does not
	geom.ExitSpiral, geom.STBearing = GenerateSpiral(geom.CS, geom.CSBearing, exitSpiralFt, radiusFt, direction, sampling.SpiralSteps)
	geom.ST = geom.ExitSpiral[len(geom.ExitSpiral)-1]

	return geom, nil
}
