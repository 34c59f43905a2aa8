package railalign

import (
	"github.com/twpayne/go-polyline"
)

// PreparePolyline returns encoded polyline (precision 1e-5) representation of LineString
func PreparePolyline(pts []GeoPoint) string {
	coords := make([][]float64, len(pts))
	for i := range pts {
		coords[i] = []float64{pts[i].Lat, pts[i].Lon}
	}
	return string(polyline.EncodeCoords(coords))
}

// DecodePolyline is inverse of PreparePolyline
func DecodePolyline(encoded string) ([]GeoPoint, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	pts := make([]GeoPoint, len(coords))
	for i := range coords {
		pts[i] = GeoPoint{Lat: coords[i][0], Lon: coords[i][1]}
	}
	return pts, nil
}
