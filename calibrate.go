package railalign

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// TrackParameters global track direction and scale derived from two reference points
type TrackParameters struct {
	// BearingRad bearing of the reference vector, atan2(dLon, dLat)
	BearingRad float64
	// BearingDeg same as BearingRad but in degrees
	BearingDeg float64
	// Scale GIS units (degrees) per foot of station
	Scale float64
	// Direction unit vector {dLat, dLon} of the reference vector
	Direction [2]float64
}

// String returns pretty printed value for TrackParameters
func (params TrackParameters) String() string {
	return fmt.Sprintf("bearing: %.6f deg | scale: %.10f deg/ft | direction: [%.6f, %.6f]", params.BearingDeg, params.Scale, params.Direction[0], params.Direction[1])
}

// Calibrate derives TrackParameters from two points with known stations.
//
// The degree-space vector between points is treated as planar: this is exactly how linear
// station-to-point fallback works, so both must stay consistent. If the second station
// is smaller than the first one, points are swapped so that bearing always follows stationing.
func Calibrate(p1 GeoPoint, station1 float64, p2 GeoPoint, station2 float64) (TrackParameters, error) {
	if station1 == station2 {
		return TrackParameters{}, errors.Wrapf(ErrDegenerateReference, "Both reference points are at station %s", FormatStation(station1))
	}
	if station2 < station1 {
		p1, p2 = p2, p1
		station1, station2 = station2, station1
	}
	gisDistance := findDistance(p1, p2)
	if gisDistance == 0 {
		return TrackParameters{}, errors.Wrapf(ErrDegenerateReference, "Reference points at stations %s and %s share coordinates %s", FormatStation(station1), FormatStation(station2), p1)
	}
	dLat := p2.Lat - p1.Lat
	dLon := p2.Lon - p1.Lon
	bearingRad := math.Atan2(dLon, dLat)
	return TrackParameters{
		BearingRad: bearingRad,
		BearingDeg: radiansTodegrees(bearingRad),
		Scale:      gisDistance / (station2 - station1),
		Direction:  [2]float64{dLat / gisDistance, dLon / gisDistance},
	}, nil
}

// StationToPoint returns point for target station moving linearly from reference point along calibrated direction.
//
// Note: it is correct only when target station lies on the same straight line as calibration points.
// Use RealizedAlignment.PointAtStation to follow curves.
func StationToPoint(ref GeoPoint, refStation, targetStation float64, params TrackParameters) GeoPoint {
	gisDistance := (targetStation - refStation) * params.Scale
	return GeoPoint{
		Lat: ref.Lat + gisDistance*params.Direction[0],
		Lon: ref.Lon + gisDistance*params.Direction[1],
	}
}
