package railalign

import (
	"math"
	"sort"
)

// fractionIndex maps fraction of segment span to index in coordinates of given length
func fractionIndex(fraction float64, length int) int {
	idx := int(math.Round(fraction * float64(length-1)))
	if idx < 0 {
		return 0
	}
	if idx > length-1 {
		return length - 1
	}
	return idx
}

// overlaps checks whether [start, end] genuinely overlaps segment [segStart, segEnd].
// Zero-length query overlaps when it lies inside the segment.
func overlaps(start, end, segStart, segEnd float64) bool {
	if start == end {
		return start >= segStart && start <= segEnd
	}
	return math.Min(end, segEnd)-math.Max(start, segStart) > 0
}

// CoordinatesForStationRange returns slice of realized polyline between two stations.
//
// Position inside a segment is mapped proportionally to the segment's coordinate indices.
// Ranges spanning several segments concatenate the partial slices. Range outside of the
// alignment gives empty slice. Reversed range is swapped.
func (realized *RealizedAlignment) CoordinatesForStationRange(start, end float64) []GeoPoint {
	if start > end {
		start, end = end, start
	}
	output := []GeoPoint{}
	for i := range realized.Segments {
		seg := &realized.Segments[i]
		segStart, segEnd := seg.StartStation, seg.EndStation()
		if !overlaps(start, end, segStart, segEnd) {
			continue
		}
		n := len(seg.Coords)
		if seg.Span <= 0 {
			output = append(output, seg.Coords...)
			continue
		}
		from := fractionIndex((math.Max(start, segStart)-segStart)/seg.Span, n)
		to := fractionIndex((math.Min(end, segEnd)-segStart)/seg.Span, n)
		output = append(output, seg.Coords[from:to+1]...)
		if start == end {
			break
		}
	}
	return output
}

// segmentAt returns index of realized segment containing station
func (realized *RealizedAlignment) segmentAt(station float64) (int, bool) {
	for i := range realized.Segments {
		seg := &realized.Segments[i]
		if station >= seg.StartStation && station <= seg.EndStation() {
			return i, true
		}
	}
	return -1, false
}

// PointAtStation returns point of realized geometry at station, interpolated between neighbouring coordinates.
// Inside curves the point is looked up within the proper part, so TS, SC, CS and ST stations hit the key points.
// Stations outside of alignment fall back to linear projection from the start reference point.
func (realized *RealizedAlignment) PointAtStation(station float64) GeoPoint {
	idx, ok := realized.segmentAt(station)
	if !ok {
		return StationToPoint(realized.Start.Point, realized.Start.Station, station, realized.Params)
	}
	seg := &realized.Segments[idx]
	n := len(seg.Coords)
	if n == 1 || seg.Span <= 0 {
		return seg.Coords[0]
	}
	stations := seg.coordinateStations()
	i := sort.SearchFloat64s(stations, station)
	if i == 0 {
		return seg.Coords[0]
	}
	if i >= n {
		return seg.Coords[n-1]
	}
	from, to := stations[i-1], stations[i]
	if to <= from {
		return seg.Coords[i]
	}
	return pointOnSegmentByFraction(seg.Coords[i-1], seg.Coords[i], (station-from)/(to-from))
}
