package railalign

import (
	"math"

	"github.com/golang/geo/s1"
)

// SpiralDeflection returns total deflection of a clothoid of given length
// reaching given radius at its far end: Ls^2 / (2*R*Ls) = Ls / (2*R) radians
func SpiralDeflection(lengthFt, radiusFt float64) s1.Angle {
	if lengthFt == 0 {
		return 0
	}
	return s1.Angle(lengthFt / (2 * radiusFt))
}

// spiralOffsets returns local tangent-frame offsets (feet) of clothoid with parameter A at arc distance s.
// Truncated Fresnel series; lateral offset is always positive here, caller applies direction.
func spiralOffsets(s, a float64) (x, y float64) {
	a2 := a * a
	a4 := a2 * a2
	a6 := a4 * a2
	a8 := a4 * a4
	s3 := s * s * s
	s5 := s3 * s * s
	s7 := s5 * s * s
	s9 := s7 * s * s
	x = s - s5/(40*a4) + s9/(3456*a8)
	y = s3/(6*a2) - s7/(336*a6)
	return x, y
}

// GenerateSpiral returns points of Euler spiral (clothoid) starting at start with entry bearing
// and its exit bearing. Curvature grows from zero to 1/radiusFt over lengthFt.
//
// Zero length gives the single start point. Infinite radius degenerates to a straight line.
func GenerateSpiral(start GeoPoint, bearingDeg, lengthFt, radiusFt float64, direction CurveDirection, steps int) ([]GeoPoint, float64) {
	exitBearing := direction.turn(bearingDeg, SpiralDeflection(lengthFt, radiusFt))
	if lengthFt == 0 {
		return []GeoPoint{start}, exitBearing
	}
	if steps < 1 {
		steps = DefaultSpiralSteps
	}
	a := math.Sqrt(radiusFt * lengthFt)
	theta := (s1.Angle(bearingDeg) * s1.Degree).Radians()
	sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)
	sign := direction.sign()

	coords := make([]GeoPoint, 0, steps+1)
	coords = append(coords, start)
	for i := 1; i <= steps; i++ {
		s := lengthFt * float64(i) / float64(steps)
		x, y := spiralOffsets(s, a)
		y *= sign
		// Rotate from tangent frame (x along bearing, y towards increasing bearing) to North/East
		north := x*cosTheta - y*sinTheta
		east := x*sinTheta + y*cosTheta
		coords = append(coords, offsetFeet(start, start.Lat, north, east))
	}
	return coords, exitBearing
}
