package railalign

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// Side of rectangle around a sample (feet). rtreego does not accept zero-size rectangles.
const sampleRectSide = 1e-6

// stationSample realized coordinate with its station, indexed in local feet frame
type stationSample struct {
	segment int
	idx     int
	station float64
	local   orb.Point
}

// Bounds implements rtreego.Spatial interface.
func (sample *stationSample) Bounds() rtreego.Rect {
	point := rtreego.Point{sample.local.X(), sample.local.Y()}
	lengths := []float64{sampleRectSide, sampleRectSide}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// stationIndex spatial index over realized coordinates
type stationIndex struct {
	origin  GeoPoint
	tree    *rtreego.Rtree
	samples [][]*stationSample
}

func newStationIndex(realized *RealizedAlignment) *stationIndex {
	index := &stationIndex{
		tree:    rtreego.NewTree(2, 25, 50),
		samples: make([][]*stationSample, len(realized.Segments)),
	}
	if len(realized.AllCoords) != 0 {
		index.origin = realized.AllCoords[0]
	}
	for i := range realized.Segments {
		seg := &realized.Segments[i]
		index.samples[i] = make([]*stationSample, len(seg.Coords))
		stations := seg.coordinateStations()
		for j, pt := range seg.Coords {
			sample := &stationSample{
				segment: i,
				idx:     j,
				station: stations[j],
				local:   pointToLocal(index.origin, pt),
			}
			index.samples[i][j] = sample
			index.tree.Insert(sample)
		}
	}
	return index
}

// stationIndex builds spatial index on first use
func (realized *RealizedAlignment) stationIndex() *stationIndex {
	realized.indexOnce.Do(func() {
		realized.index = newStationIndex(realized)
	})
	return realized.index
}

// StationFix point of realized alignment nearest to some external point
type StationFix struct {
	Station float64
	// Label formatted station
	Label        string
	Point        GeoPoint
	SegmentIndex int
	// OffsetFeet planar distance from external point to Point
	OffsetFeet float64
}

// projectOnChord returns projection parameter of p onto chord a-b clamped to [0, 1]
func projectOnChord(a, b, p orb.Point) float64 {
	dx, dy := b.X()-a.X(), b.Y()-a.Y()
	lengthSquared := dx*dx + dy*dy
	if lengthSquared == 0 {
		return 0
	}
	t := ((p.X()-a.X())*dx + (p.Y()-a.Y())*dy) / lengthSquared
	return math.Max(0, math.Min(1, t))
}

// NearestStation returns station of realized alignment closest to given point.
//
// Nearest coordinate is found via R-tree, then position is refined on the two chords adjacent to it.
func (realized *RealizedAlignment) NearestStation(pt GeoPoint) (StationFix, bool) {
	if len(realized.AllCoords) == 0 {
		return StationFix{}, false
	}
	index := realized.stationIndex()
	local := pointToLocal(index.origin, pt)
	nearest, ok := index.tree.NearestNeighbor(rtreego.Point{local.X(), local.Y()}).(*stationSample)
	if !ok || nearest == nil {
		return StationFix{}, false
	}

	samples := index.samples[nearest.segment]
	best := nearest
	bestT := 0.0
	var bestNext *stationSample
	bestDistance := planar.Distance(nearest.local, local)
	for _, j := range []int{nearest.idx - 1, nearest.idx} {
		if j < 0 || j+1 >= len(samples) {
			continue
		}
		a, b := samples[j], samples[j+1]
		distance := planar.DistanceFromSegment(a.local, b.local, local)
		if distance < bestDistance {
			bestDistance = distance
			best, bestNext = a, b
			bestT = projectOnChord(a.local, b.local, local)
		}
	}

	fix := StationFix{
		Station:      best.station,
		SegmentIndex: best.segment,
		OffsetFeet:   bestDistance,
	}
	onTrack := best.local
	if bestNext != nil {
		fix.Station = best.station + bestT*(bestNext.station-best.station)
		onTrack = orb.Point{
			best.local.X() + bestT*(bestNext.local.X()-best.local.X()),
			best.local.Y() + bestT*(bestNext.local.Y()-best.local.Y()),
		}
	}
	fix.Point = localToPoint(index.origin, onTrack)
	fix.Label = FormatStation(fix.Station)
	return fix, true
}

// Approach distance from external point (e.g. geocoded address) to alignment
type Approach struct {
	StationFix
	// DistanceMeters great-circle distance between external point and nearest on-track point
	DistanceMeters float64
	DistanceFeet   float64
}

// ClosestApproach returns nearest on-track point and distance to it
func (realized *RealizedAlignment) ClosestApproach(pt GeoPoint) (Approach, bool) {
	fix, ok := realized.NearestStation(pt)
	if !ok {
		return Approach{}, false
	}
	meters := geo.DistanceHaversine(pointToOrb(pt), pointToOrb(fix.Point))
	return Approach{
		StationFix:     fix,
		DistanceMeters: meters,
		DistanceFeet:   meters * feetPerMeter,
	}, true
}
