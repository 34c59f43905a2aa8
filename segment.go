package railalign

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/pkg/errors"
)

// SegmentKind kind of alignment segment
type SegmentKind uint16

const (
	SEGMENT_TANGENT = SegmentKind(iota + 1)
	SEGMENT_SPIRAL_CURVE_SPIRAL
)

func (iotaIdx SegmentKind) String() string {
	return [...]string{"tangent", "spiral_curve_spiral"}[iotaIdx-1]
}

// Segment is a piece of alignment between two stations.
//
// Implemented by *TangentSegment and *CurveSegment only.
type Segment interface {
	Kind() SegmentKind
	Name() string
	// StartStation returns station (feet) where segment begins
	StartStation() float64
	// EndStation returns station (feet) where segment ends
	EndStation() float64
	// LengthFt returns segment length along the track
	LengthFt() float64
	realize(start GeoPoint, bearingDeg float64, sampling Sampling) (segmentGeometry, error)
}

// segmentGeometry output of a single segment generator
type segmentGeometry struct {
	coords       []GeoPoint
	entryBearing float64
	exitBearing  float64
	curve        *CurveGeometry
}

type segmentConfig struct {
	name          string
	degreeOfCurve string
	radius        float64
	manualBearing *float64
}

// SegmentOption configures segment on creation
type SegmentOption func(*segmentConfig)

// WithSegmentName sets human readable name of segment
func WithSegmentName(name string) SegmentOption {
	return func(cfg *segmentConfig) {
		cfg.name = name
	}
}

// WithDegreeOfCurve sets degree of curve in "D M'S\"" notation. Takes precedence over WithRadius.
func WithDegreeOfCurve(dc string) SegmentOption {
	return func(cfg *segmentConfig) {
		cfg.degreeOfCurve = dc
	}
}

// WithRadius sets curve radius in feet
func WithRadius(radiusFt float64) SegmentOption {
	return func(cfg *segmentConfig) {
		cfg.radius = radiusFt
	}
}

// WithManualBearing overrides propagated bearing of tangent (degrees)
func WithManualBearing(bearingDeg float64) SegmentOption {
	return func(cfg *segmentConfig) {
		cfg.manualBearing = &bearingDeg
	}
}

func newSegmentConfig(options ...SegmentOption) *segmentConfig {
	cfg := &segmentConfig{}
	for _, option := range options {
		option(cfg)
	}
	return cfg
}

// parseStationPair parses two station strings and checks their order
func parseStationPair(start, end string) (float64, float64, error) {
	startValue, err := ParseStation(start)
	if err != nil {
		return 0, 0, errors.Wrap(err, "Can't parse start station")
	}
	endValue, err := ParseStation(end)
	if err != nil {
		return 0, 0, errors.Wrap(err, "Can't parse end station")
	}
	if endValue < startValue {
		return 0, 0, errors.Wrapf(ErrStationOrder, "Station '%s' is before station '%s'", end, start)
	}
	return startValue, endValue, nil
}

// TangentSegment straight piece of track
type TangentSegment struct {
	name          string
	start         string
	end           string
	startValue    float64
	endValue      float64
	manualBearing *float64
}

// NewTangentSegment creates tangent between two stations
func NewTangentSegment(start, end string, options ...SegmentOption) (*TangentSegment, error) {
	startValue, endValue, err := parseStationPair(start, end)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't create tangent %s - %s", start, end)
	}
	cfg := newSegmentConfig(options...)
	return &TangentSegment{
		name:          cfg.name,
		start:         start,
		end:           end,
		startValue:    startValue,
		endValue:      endValue,
		manualBearing: cfg.manualBearing,
	}, nil
}

func (seg *TangentSegment) Kind() SegmentKind {
	return SEGMENT_TANGENT
}

func (seg *TangentSegment) Name() string {
	if seg.name != "" {
		return seg.name
	}
	return fmt.Sprintf("Tangent %s - %s", seg.start, seg.end)
}

func (seg *TangentSegment) StartStation() float64 {
	return seg.startValue
}

func (seg *TangentSegment) EndStation() float64 {
	return seg.endValue
}

func (seg *TangentSegment) LengthFt() float64 {
	return seg.endValue - seg.startValue
}

// SetManualBearing overrides bearing propagated from previous segment
func (seg *TangentSegment) SetManualBearing(bearingDeg float64) {
	seg.manualBearing = &bearingDeg
}

// ClearManualBearing restores bearing propagation
func (seg *TangentSegment) ClearManualBearing() {
	seg.manualBearing = nil
}

// ManualBearing returns manual bearing if it has been set
func (seg *TangentSegment) ManualBearing() (float64, bool) {
	if seg.manualBearing == nil {
		return 0, false
	}
	return *seg.manualBearing, true
}

func (seg *TangentSegment) realize(start GeoPoint, bearingDeg float64, sampling Sampling) (segmentGeometry, error) {
	if manual, ok := seg.ManualBearing(); ok {
		bearingDeg = manual
	}
	coords, exitBearing := GenerateTangent(start, bearingDeg, seg.LengthFt(), sampling.TangentPoints)
	return segmentGeometry{
		coords:       coords,
		entryBearing: bearingDeg,
		exitBearing:  exitBearing,
	}, nil
}

// CurveSegment spiral-curve-spiral transition between two tangents
type CurveSegment struct {
	name      string
	ts        string
	sc        string
	cs        string
	st        string
	tsValue   float64
	scValue   float64
	csValue   float64
	stValue   float64
	direction CurveDirection
	degreeOfCurve s1.Angle
	radius        float64
}

// NewCurveSegment creates spiral-curve-spiral transition.
//
// Either WithDegreeOfCurve or WithRadius must be given; resulting radius must be finite and positive.
func NewCurveSegment(ts, sc, cs, st string, direction CurveDirection, options ...SegmentOption) (*CurveSegment, error) {
	seg := &CurveSegment{
		ts:        ts,
		sc:        sc,
		cs:        cs,
		st:        st,
		direction: direction,
	}
	stations := []string{ts, sc, cs, st}
	values := make([]float64, len(stations))
	for i := range stations {
		value, err := ParseStation(stations[i])
		if err != nil {
			return nil, errors.Wrapf(err, "Can't create curve %s - %s", ts, st)
		}
		if i > 0 && value < values[i-1] {
			return nil, errors.Wrapf(ErrStationOrder, "Can't create curve %s - %s: station '%s' is before station '%s'", ts, st, stations[i], stations[i-1])
		}
		values[i] = value
	}
	seg.tsValue, seg.scValue, seg.csValue, seg.stValue = values[0], values[1], values[2], values[3]

	if direction != CURVE_RIGHT && direction != CURVE_LEFT {
		return nil, errors.Wrapf(ErrInvalidCurveParameters, "Can't create curve %s - %s: unknown direction %d", ts, st, direction)
	}

	cfg := newSegmentConfig(options...)
	seg.name = cfg.name
	switch {
	case cfg.degreeOfCurve != "":
		dc, err := parseAngle(cfg.degreeOfCurve)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't create curve %s - %s: bad degree of curve", ts, st)
		}
		seg.degreeOfCurve = dc
		seg.radius = DegreeOfCurveToRadius(dc.Degrees())
	case cfg.radius != 0:
		seg.radius = cfg.radius
		seg.degreeOfCurve = s1.Angle(RadiusToDegreeOfCurve(cfg.radius)) * s1.Degree
	default:
		return nil, errors.Wrapf(ErrInvalidCurveParameters, "Can't create curve %s - %s: neither degree of curve nor radius given", ts, st)
	}
	if math.IsNaN(seg.radius) || math.IsInf(seg.radius, 0) || seg.radius <= 0 {
		return nil, errors.Wrapf(ErrInvalidCurveParameters, "Can't create curve %s - %s: radius %f", ts, st, seg.radius)
	}
	return seg, nil
}

func (seg *CurveSegment) Kind() SegmentKind {
	return SEGMENT_SPIRAL_CURVE_SPIRAL
}

func (seg *CurveSegment) Name() string {
	if seg.name != "" {
		return seg.name
	}
	return fmt.Sprintf("Curve %s - %s", seg.ts, seg.st)
}

func (seg *CurveSegment) StartStation() float64 {
	return seg.tsValue
}

func (seg *CurveSegment) EndStation() float64 {
	return seg.stValue
}

func (seg *CurveSegment) LengthFt() float64 {
	return seg.stValue - seg.tsValue
}

// Stations returns TS, SC, CS and ST stations (feet)
func (seg *CurveSegment) Stations() (ts, sc, cs, st float64) {
	return seg.tsValue, seg.scValue, seg.csValue, seg.stValue
}

// EntrySpiralLength TS -> SC length (feet)
func (seg *CurveSegment) EntrySpiralLength() float64 {
	return seg.scValue - seg.tsValue
}

// CircularArcLength SC -> CS length (feet)
func (seg *CurveSegment) CircularArcLength() float64 {
	return seg.csValue - seg.scValue
}

// ExitSpiralLength CS -> ST length (feet)
func (seg *CurveSegment) ExitSpiralLength() float64 {
	return seg.stValue - seg.csValue
}

// Radius returns radius in feet
func (seg *CurveSegment) Radius() float64 {
	return seg.radius
}

// DegreeOfCurve returns degree of curve in decimal degrees
func (seg *CurveSegment) DegreeOfCurve() float64 {
	return seg.degreeOfCurve.Degrees()
}

// DegreeOfCurveAngle returns degree of curve as angle
func (seg *CurveSegment) DegreeOfCurveAngle() s1.Angle {
	return seg.degreeOfCurve
}

// TotalDeflection returns unsigned bearing change TS -> ST: Le/(2R) + Lc/R + Lx/(2R)
func (seg *CurveSegment) TotalDeflection() s1.Angle {
	return SpiralDeflection(seg.EntrySpiralLength(), seg.radius) +
		s1.Angle(seg.CircularArcLength()/seg.radius) +
		SpiralDeflection(seg.ExitSpiralLength(), seg.radius)
}

func (seg *CurveSegment) Direction() CurveDirection {
	return seg.direction
}

func (seg *CurveSegment) realize(start GeoPoint, bearingDeg float64, sampling Sampling) (segmentGeometry, error) {
	geom, err := AssembleCurve(start, bearingDeg, seg.EntrySpiralLength(), seg.CircularArcLength(), seg.ExitSpiralLength(), seg.radius, seg.direction, sampling)
	if err != nil {
		return segmentGeometry{}, errors.Wrapf(err, "Can't assemble curve '%s'", seg.Name())
	}
	return segmentGeometry{
		coords:       geom.AllCoords(),
		entryBearing: bearingDeg,
		exitBearing:  geom.STBearing,
		curve:        geom,
	}, nil
}
