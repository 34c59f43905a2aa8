package railalign

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// RealizedSegment geometry of a single segment after placement
type RealizedSegment struct {
	Segment Segment
	// StartStation accumulated from the first segment start station
	StartStation float64
	// Span along the track (feet)
	Span   float64
	Coords []GeoPoint
	// Stations station of every coordinate. Curve parts (TS-SC, SC-CS, CS-ST) are spread uniformly each within its own span
	Stations     []float64
	EntryPoint   GeoPoint
	EntryBearing float64
	ExitPoint    GeoPoint
	ExitBearing  float64
	// Curve is nil for tangents
	Curve *CurveGeometry
}

// EndStation returns StartStation + Span
func (seg *RealizedSegment) EndStation() float64 {
	return seg.StartStation + seg.Span
}

// spreadStations returns n stations spread uniformly over [start, start+span]
func spreadStations(start, span float64, n int) []float64 {
	stations := make([]float64, n)
	for i := range stations {
		if n == 1 {
			stations[i] = start
			continue
		}
		stations[i] = start + span*float64(i)/float64(n-1)
	}
	return stations
}

// segmentStations returns station of every coordinate of segment placed at start station
func segmentStations(segment Segment, start float64, coords []GeoPoint, curve *CurveGeometry) []float64 {
	curveSegment, ok := segment.(*CurveSegment)
	if !ok || curve == nil {
		return spreadStations(start, segment.LengthFt(), len(coords))
	}
	sc := start + curveSegment.EntrySpiralLength()
	cs := sc + curveSegment.CircularArcLength()
	stations := make([]float64, 0, len(coords))
	stations = append(stations, spreadStations(start, curveSegment.EntrySpiralLength(), len(curve.EntrySpiral))...)
	stations = append(stations, spreadStations(sc, curveSegment.CircularArcLength(), len(curve.CircularArc))...)
	stations = append(stations, spreadStations(cs, curveSegment.ExitSpiralLength(), len(curve.ExitSpiral))...)
	return stations
}

// coordinateStations returns Stations or, when they are missing, stations spread uniformly over span
func (seg *RealizedSegment) coordinateStations() []float64 {
	if len(seg.Stations) == len(seg.Coords) {
		return seg.Stations
	}
	return spreadStations(seg.StartStation, seg.Span, len(seg.Coords))
}

// RealizedAlignment immutable placed geometry of alignment
type RealizedAlignment struct {
	Name          string
	Segments      []RealizedSegment
	SegmentCoords [][]GeoPoint
	// AllCoords concatenation of SegmentCoords
	AllCoords []GeoPoint
	Params    TrackParameters
	// Start reference point used to seed placement (and linear fallback)
	Start ReferencePoint
	// References all reference points of alignment at realization time
	References []ReferencePoint

	indexOnce sync.Once
	index     *stationIndex
}

type realizeConfig struct {
	sampling   Sampling
	verbose    bool
	references []ReferencePoint
}

// RealizeWithSampling sets density of generated coordinates
func RealizeWithSampling(sampling Sampling) func(*realizeConfig) {
	return func(cfg *realizeConfig) {
		cfg.sampling = sampling
	}
}

// RealizeWithVerbose prints progress
func RealizeWithVerbose(verbose bool) func(*realizeConfig) {
	return func(cfg *realizeConfig) {
		cfg.verbose = verbose
	}
}

// RealizeWithReferences attaches reference points (used for markers)
func RealizeWithReferences(references []ReferencePoint) func(*realizeConfig) {
	return func(cfg *realizeConfig) {
		cfg.references = references
	}
}

// Realize places segments one after another.
//
// First segment starts at the point linearly projected from start reference to its start station,
// with calibrated bearing. Every next segment starts exactly at the previous exit point with previous
// exit bearing (unless tangent has manual bearing). Segments are not modified.
func Realize(name string, segments []Segment, start ReferencePoint, params TrackParameters, options ...func(*realizeConfig)) (*RealizedAlignment, error) {
	if len(segments) == 0 {
		return nil, errors.Wrapf(ErrEmptyAlignment, "Can't realize alignment '%s'", name)
	}
	if params.Scale == 0 {
		return nil, errors.Wrapf(ErrUncalibratedAlignment, "Can't realize alignment '%s'", name)
	}
	cfg := &realizeConfig{
		sampling: DefaultSampling(),
	}
	for _, option := range options {
		option(cfg)
	}
	cfg.sampling = cfg.sampling.normalized()

	st := time.Now()
	if cfg.verbose {
		fmt.Printf("Realizing alignment '%s'...", name)
	}

	realized := &RealizedAlignment{
		Name:          name,
		Segments:      make([]RealizedSegment, 0, len(segments)),
		SegmentCoords: make([][]GeoPoint, 0, len(segments)),
		Params:        params,
		Start:         start,
		References:    append([]ReferencePoint{}, cfg.references...),
	}

	currentPoint := StationToPoint(start.Point, start.Station, segments[0].StartStation(), params)
	currentBearing := params.BearingDeg
	currentStation := segments[0].StartStation()
	for i, segment := range segments {
		geom, err := segment.realize(currentPoint, currentBearing, cfg.sampling)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't realize segment #%d of alignment '%s'", i, name)
		}
		coords := geom.coords
		realized.Segments = append(realized.Segments, RealizedSegment{
			Segment:      segment,
			StartStation: currentStation,
			Span:         segment.LengthFt(),
			Coords:       coords,
			Stations:     segmentStations(segment, currentStation, coords, geom.curve),
			EntryPoint:   currentPoint,
			EntryBearing: geom.entryBearing,
			ExitPoint:    coords[len(coords)-1],
			ExitBearing:  geom.exitBearing,
			Curve:        geom.curve,
		})
		realized.SegmentCoords = append(realized.SegmentCoords, coords)
		realized.AllCoords = append(realized.AllCoords, coords...)

		currentPoint = coords[len(coords)-1]
		currentBearing = geom.exitBearing
		currentStation += segment.LengthFt()
	}

	if cfg.verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
		fmt.Printf("\tSegments: %d\n\tPoints: %d\n", len(realized.Segments), len(realized.AllCoords))
	}
	return realized, nil
}

// RealizeAll realizes independent alignments concurrently. Result order matches input order.
func RealizeAll(ctx context.Context, alignments []*Alignment) ([]*RealizedAlignment, error) {
	output := make([]*RealizedAlignment, len(alignments))
	group, ctx := errgroup.WithContext(ctx)
	for i := range alignments {
		i := i
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			realized, err := alignments[i].Realize()
			if err != nil {
				return err
			}
			output[i] = realized
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, errors.Wrap(err, "Can't realize alignments")
	}
	return output, nil
}

// StartStation returns station of the first realized point
func (realized *RealizedAlignment) StartStation() float64 {
	if len(realized.Segments) == 0 {
		return 0
	}
	return realized.Segments[0].StartStation
}

// EndStation returns station of the last realized point
func (realized *RealizedAlignment) EndStation() float64 {
	if len(realized.Segments) == 0 {
		return 0
	}
	return realized.Segments[len(realized.Segments)-1].EndStation()
}

// LengthFt returns total length along the track
func (realized *RealizedAlignment) LengthFt() float64 {
	return realized.EndStation() - realized.StartStation()
}

// LengthMeters returns great-circle length of realized coordinates
func (seg *RealizedSegment) LengthMeters() float64 {
	return geo.Length(lineToOrb(seg.Coords))
}

// Bound returns extent of realized alignment (X = Lon, Y = Lat)
func (realized *RealizedAlignment) Bound() orb.Bound {
	return lineToOrb(realized.AllCoords).Bound()
}
