package railalign

import (
	"github.com/paulmach/orb/encoding/wkt"
)

// PrepareWKTLinestring returns WKT representation of LineString
func PrepareWKTLinestring(pts []GeoPoint) string {
	return wkt.MarshalString(lineToOrb(pts))
}

// PrepareWKTPoint returns WKT representation of Point
func PrepareWKTPoint(pt GeoPoint) string {
	return wkt.MarshalString(pointToOrb(pt))
}
