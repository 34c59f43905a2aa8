package railalign

import (
	"math"
	"sort"
)

// ProfilePoint elevation (feet, relative to sea level or to ground) at a station
type ProfilePoint struct {
	Station   float64
	Elevation float64
}

// Profile ordered list of elevation points along alignment
type Profile []ProfilePoint

// newProfile returns copy of points sorted by station
func newProfile(points []ProfilePoint) Profile {
	profile := make(Profile, len(points))
	copy(profile, points)
	sort.SliceStable(profile, func(i, j int) bool {
		return profile[i].Station < profile[j].Station
	})
	return profile
}

// ElevationAt returns linearly interpolated elevation at station.
// Values outside of profile are clamped to the first / last point. Returns false for empty profile.
func (profile Profile) ElevationAt(station float64) (float64, bool) {
	if len(profile) == 0 {
		return 0, false
	}
	return interpolateClamped(len(profile), func(i int) float64 { return profile[i].Station }, station, func(i, j int, ratio float64) float64 {
		return profile[i].Elevation + ratio*(profile[j].Elevation-profile[i].Elevation)
	}), true
}

// interpolateClamped finds bracket of station among n sorted keys and blends values.
// blend(i, j, ratio) must return value between items i and j.
func interpolateClamped(n int, key func(i int) float64, station float64, blend func(i, j int, ratio float64) float64) float64 {
	if station <= key(0) {
		return blend(0, 0, 0)
	}
	if station >= key(n-1) {
		return blend(n-1, n-1, 0)
	}
	// First key strictly greater than station
	j := sort.Search(n, func(k int) bool { return key(k) > station })
	i := j - 1
	span := key(j) - key(i)
	if span == 0 {
		return blend(i, i, 0)
	}
	return blend(i, j, (station-key(i))/span)
}

// maxIntervalStations upper bound of stations generated over a range
const maxIntervalStations = 1000000

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// stationsByInterval returns start, start+interval, ... up to end inclusive; end is always included.
// Non-positive or non-finite interval gives the range ends only. Non-finite range gives nothing.
func stationsByInterval(start, end, interval float64) []float64 {
	stations := []float64{}
	if !isFinite(start) || !isFinite(end) {
		return stations
	}
	if end <= start {
		return append(stations, start)
	}
	if !isFinite(interval) || interval <= 0 {
		interval = end - start
	}
	if (end-start)/interval > maxIntervalStations {
		interval = (end - start) / maxIntervalStations
	}
	for i := 0; ; i++ {
		station := start + float64(i)*interval
		if station > end {
			break
		}
		stations = append(stations, station)
	}
	if stations[len(stations)-1] != end {
		stations = append(stations, end)
	}
	return stations
}

// SetGroundProfile replaces ground elevation profile
func (alignment *Alignment) SetGroundProfile(points []ProfilePoint) {
	alignment.groundProfile = newProfile(points)
}

// SetTrackProfile replaces track (top of rail) elevation profile
func (alignment *Alignment) SetTrackProfile(points []ProfilePoint) {
	alignment.trackProfile = newProfile(points)
}

// GroundProfile returns ground elevation profile
func (alignment *Alignment) GroundProfile() Profile {
	return alignment.groundProfile
}

// TrackProfile returns track elevation profile
func (alignment *Alignment) TrackProfile() Profile {
	return alignment.trackProfile
}

// GroundElevationAt returns ground elevation at station
func (alignment *Alignment) GroundElevationAt(station float64) (float64, bool) {
	return alignment.groundProfile.ElevationAt(station)
}

// TrackElevationAt returns track elevation at station
func (alignment *Alignment) TrackElevationAt(station float64) (float64, bool) {
	return alignment.trackProfile.ElevationAt(station)
}

// RelativeElevationAt returns track elevation relative to ground (positive above ground, negative below)
func (alignment *Alignment) RelativeElevationAt(station float64) (float64, bool) {
	track, ok := alignment.TrackElevationAt(station)
	if !ok {
		return 0, false
	}
	ground, ok := alignment.GroundElevationAt(station)
	if !ok {
		return 0, false
	}
	return track - ground, true
}

// DepthPoint depth below ground (positive = below) at a station
type DepthPoint struct {
	Station float64
	Depth   float64
}

// ElevationPoint depth below ground together with absolute elevation at a station
type ElevationPoint struct {
	Station   float64
	Depth     float64
	Elevation float64
	// HasElevation is false when ground profile is not defined
	HasElevation bool
}

// GenerateDepthValues returns depths at regular interval varying linearly from depthStart to depthEnd.
// Intermediate depths are rounded to 0.1 ft; end station is always present with exact depthEnd.
func GenerateDepthValues(start, end, depthStart, depthEnd, interval float64) []DepthPoint {
	length := end - start
	stations := stationsByInterval(start, end, interval)
	values := make([]DepthPoint, 0, len(stations))
	for _, station := range stations {
		if station == end {
			values = append(values, DepthPoint{Station: station, Depth: depthEnd})
			continue
		}
		ratio := 0.0
		if length > 0 {
			ratio = (station - start) / length
		}
		depth := depthStart + ratio*(depthEnd-depthStart)
		values = append(values, DepthPoint{Station: station, Depth: math.Round(depth*10) / 10})
	}
	return values
}

// GenerateElevationBasedDepths samples given track depths below ground over [start, end] and combines
// them with ground profile into absolute elevations.
//
// Track profile points inside [start, end] are replaced with computed elevations.
func (alignment *Alignment) GenerateElevationBasedDepths(start, end float64, trackDepths []DepthPoint, interval float64) []ElevationPoint {
	depths := make([]DepthPoint, len(trackDepths))
	copy(depths, trackDepths)
	sort.SliceStable(depths, func(i, j int) bool {
		return depths[i].Station < depths[j].Station
	})

	result := []ElevationPoint{}
	trackPoints := []ProfilePoint{}
	for _, station := range stationsByInterval(start, end, interval) {
		point := ElevationPoint{Station: station}
		if len(depths) != 0 {
			point.Depth = interpolateClamped(len(depths), func(i int) float64 { return depths[i].Station }, station, func(i, j int, ratio float64) float64 {
				return depths[i].Depth + ratio*(depths[j].Depth-depths[i].Depth)
			})
			if ground, ok := alignment.GroundElevationAt(station); ok {
				point.Elevation = ground - point.Depth
				point.HasElevation = true
				trackPoints = append(trackPoints, ProfilePoint{Station: station, Elevation: point.Elevation})
			}
		}
		result = append(result, point)
	}

	if len(trackPoints) != 0 {
		merged := make([]ProfilePoint, 0, len(alignment.trackProfile)+len(trackPoints))
		for _, existing := range alignment.trackProfile {
			if existing.Station < start || existing.Station > end {
				merged = append(merged, existing)
			}
		}
		merged = append(merged, trackPoints...)
		alignment.SetTrackProfile(merged)
	}
	return result
}
