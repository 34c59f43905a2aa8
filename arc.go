package railalign

import (
	"math"

	"github.com/golang/geo/s1"
)

// GenerateArc returns points of circular arc starting at start (tangent to entry bearing) and its exit bearing.
//
// Each point is placed by chord: for arc distance d the subtended angle is d/R,
// chord length is 2R*sin(d/2R) and chord bearing is entry bearing deflected by half the angle.
// Zero length gives the single start point.
func GenerateArc(start GeoPoint, bearingDeg, lengthFt, radiusFt float64, direction CurveDirection, steps int) ([]GeoPoint, float64) {
	exitBearing := direction.turn(bearingDeg, s1.Angle(lengthFt/radiusFt))
	if lengthFt == 0 {
		return []GeoPoint{start}, exitBearing
	}
	if steps < 1 {
		steps = DefaultArcSteps
	}
	coords := make([]GeoPoint, 0, steps+1)
	coords = append(coords, start)
	for i := 1; i <= steps; i++ {
		arcDistance := lengthFt * float64(i) / float64(steps)
		chord := arcDistance
		var angle s1.Angle
		if !math.IsInf(radiusFt, 1) {
			angle = s1.Angle(arcDistance / radiusFt)
			chord = 2 * radiusFt * math.Sin(angle.Radians()/2)
		}
		chordBearing := direction.turn(bearingDeg, angle/2)
		coords = append(coords, Project(start, chordBearing, chord))
	}
	return coords, exitBearing
}
