package railalign

import (
	"math"

	"github.com/paulmach/orb"
)

// pointToOrb converts GeoPoint to orb.Point (X = Lon, Y = Lat)
func pointToOrb(pt GeoPoint) orb.Point {
	return orb.Point{pt.Lon, pt.Lat}
}

// lineToOrb converts line to orb.LineString (X = Lon, Y = Lat)
func lineToOrb(pts []GeoPoint) orb.LineString {
	line := make(orb.LineString, len(pts))
	for i, pt := range pts {
		line[i] = pointToOrb(pt)
	}
	return line
}

// pointToLocal converts point to local planar frame in feet (X = East, Y = North) around origin
func pointToLocal(origin, pt GeoPoint) orb.Point {
	north, east := localFeet(origin, pt)
	return orb.Point{east, north}
}

// lineToLocal converts line to local planar frame in feet (X = East, Y = North) around origin
func lineToLocal(origin GeoPoint, pts []GeoPoint) orb.LineString {
	line := make(orb.LineString, len(pts))
	for i, pt := range pts {
		line[i] = pointToLocal(origin, pt)
	}
	return line
}

// localToPoint is inverse of pointToLocal
func localToPoint(origin GeoPoint, pt orb.Point) GeoPoint {
	return offsetFeet(origin, origin.Lat, pt.Y(), pt.X())
}

// angleBetweenLines returs angle between two lines (radians, counter-clockwise positive)
//
// Note: panics if number of points in any line is less than 2
//
func angleBetweenLines(l1 orb.LineString, l2 orb.LineString) float64 {
	angle1 := math.Atan2(l1[len(l1)-1].Y()-l1[0].Y(), l1[len(l1)-1].X()-l1[0].X())
	angle2 := math.Atan2(l2[len(l2)-1].Y()-l2[0].Y(), l2[len(l2)-1].X()-l2[0].X())
	angle := angle2 - angle1
	if angle < -1*math.Pi {
		angle += 2 * math.Pi
	}
	if angle > math.Pi {
		angle -= 2 * math.Pi
	}
	return angle
}
