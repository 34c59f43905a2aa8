package railalign

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

const (
	// FeetPerDegreeLatitude flat-earth scale of the local planar projection.
	// Longitude scale is FeetPerDegreeLatitude*cos(latitude) of the origin point.
	FeetPerDegreeLatitude = 364000.0
	feetPerMeter          = 3.28084
	pi180                 = math.Pi / 180.0
	pi180Rev              = 180.0 / math.Pi
)

// GeoPoint representation of point on Earth
type GeoPoint struct {
	Lat float64
	Lon float64
}

// String returns pretty printed value for for GeoPoint
func (gp GeoPoint) String() string {
	return fmt.Sprintf("Lat: %f | Lon: %f", gp.Lat, gp.Lon)
}

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// radiansTodegrees r = deg  * 180 / pi
func radiansTodegrees(d float64) float64 {
	return d * pi180Rev
}

// feetPerDegreeLongitude returns longitude scale at given latitude (degrees)
func feetPerDegreeLongitude(lat float64) float64 {
	return FeetPerDegreeLatitude * math.Cos(degreesToRadians(lat))
}

// Project returns point which is distanceFt away from origin along bearingDeg (0 = North, 90 = East, clockwise).
//
// Note: small-region flat-earth approximation, not geodetically exact
func Project(origin GeoPoint, bearingDeg, distanceFt float64) GeoPoint {
	theta := degreesToRadians(bearingDeg)
	north := distanceFt * math.Cos(theta)
	east := distanceFt * math.Sin(theta)
	return offsetFeet(origin, origin.Lat, north, east)
}

// offsetFeet shifts point by north/east offsets in feet. Longitude scale is taken at scaleLat.
func offsetFeet(pt GeoPoint, scaleLat, north, east float64) GeoPoint {
	return GeoPoint{
		Lat: pt.Lat + north/FeetPerDegreeLatitude,
		Lon: pt.Lon + east/feetPerDegreeLongitude(scaleLat),
	}
}

// localFeet returns north/east offsets (feet) of p relative to origin. Inverse of Project.
func localFeet(origin, p GeoPoint) (north, east float64) {
	north = (p.Lat - origin.Lat) * FeetPerDegreeLatitude
	east = (p.Lon - origin.Lon) * feetPerDegreeLongitude(origin.Lat)
	return north, east
}

// BearingTo returns bearing (degrees in [0, 360)) from p to q in the local planar projection
func BearingTo(p, q GeoPoint) float64 {
	north, east := localFeet(p, q)
	return NormalizeBearing(radiansTodegrees(math.Atan2(east, north)))
}

// DistanceFeet returns planar distance (feet) between two points in the local projection of p
func DistanceFeet(p, q GeoPoint) float64 {
	north, east := localFeet(p, q)
	return math.Hypot(north, east)
}

// NormalizeBearing maps bearing into [0, 360)
func NormalizeBearing(deg float64) float64 {
	angle := (s1.Angle(deg) * s1.Degree).Normalized()
	if angle < 0 {
		angle += 2 * math.Pi
	}
	normalized := angle.Degrees()
	if normalized >= 360 {
		return 0
	}
	return normalized
}

// findDistance returns distance between two points (assuming they are Euclidean: Lon == X, Lat == Y)
func findDistance(p, q GeoPoint) float64 {
	xdistance := p.Lon - q.Lon
	ydistance := p.Lat - q.Lat
	return math.Sqrt(xdistance*xdistance + ydistance*ydistance)
}

// pointOnSegmentByFraction returns a point on given segment using fraction of its length
func pointOnSegmentByFraction(p, q GeoPoint, fraction float64) GeoPoint {
	return GeoPoint{
		Lon: (1-fraction)*p.Lon + (fraction * q.Lon),
		Lat: (1-fraction)*p.Lat + (fraction * q.Lat),
	}
}
