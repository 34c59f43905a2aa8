package railalign

import (
	"fmt"

	"github.com/pkg/errors"
)

// ReferencePoint surveyed point with known station
type ReferencePoint struct {
	Name    string
	Point   GeoPoint
	Station float64
}

// Alignment ordered chain of segments together with reference points used to place it on the map
type Alignment struct {
	name     string
	color    string
	verbose  bool
	sampling Sampling

	segments        []Segment
	referencePoints []ReferencePoint
	referenceIndex  map[string]int

	calibrated     bool
	params         TrackParameters
	startReference string

	sections   []*TrackTypeSection
	trackTypes map[string][]*TrackTypeSection

	groundProfile Profile
	trackProfile  Profile

	portals []*Portal
}

// NewAlignment creates empty alignment
func NewAlignment(name string, options ...func(*Alignment)) *Alignment {
	alignment := &Alignment{
		name:           name,
		sampling:       DefaultSampling(),
		referenceIndex: make(map[string]int),
		trackTypes:     make(map[string][]*TrackTypeSection, len(DefaultTrackTypes)),
	}
	for _, trackType := range DefaultTrackTypes {
		alignment.trackTypes[trackType] = []*TrackTypeSection{}
	}
	for _, option := range options {
		option(alignment)
	}
	return alignment
}

// WithColor sets display color of alignment (exported as property only)
func WithColor(color string) func(*Alignment) {
	return func(alignment *Alignment) {
		alignment.color = color
	}
}

// WithVerbose prints progress of long-running operations
func WithVerbose(verbose bool) func(*Alignment) {
	return func(alignment *Alignment) {
		alignment.verbose = verbose
	}
}

// WithSampling overrides density of generated coordinates
func WithSampling(sampling Sampling) func(*Alignment) {
	return func(alignment *Alignment) {
		alignment.sampling = sampling.normalized()
	}
}

func (alignment *Alignment) Name() string {
	return alignment.name
}

func (alignment *Alignment) Color() string {
	return alignment.color
}

// Segments returns segments in physical order
func (alignment *Alignment) Segments() []Segment {
	return append([]Segment{}, alignment.segments...)
}

// AddReferencePoint adds (or replaces by name) surveyed point
func (alignment *Alignment) AddReferencePoint(name string, pt GeoPoint, station float64) {
	ref := ReferencePoint{
		Name:    name,
		Point:   pt,
		Station: station,
	}
	if idx, ok := alignment.referenceIndex[name]; ok {
		alignment.referencePoints[idx] = ref
		return
	}
	alignment.referenceIndex[name] = len(alignment.referencePoints)
	alignment.referencePoints = append(alignment.referencePoints, ref)
}

// ReferencePoint returns reference point by name
func (alignment *Alignment) ReferencePoint(name string) (ReferencePoint, bool) {
	idx, ok := alignment.referenceIndex[name]
	if !ok {
		return ReferencePoint{}, false
	}
	return alignment.referencePoints[idx], true
}

// ReferencePoints returns reference points in insertion order
func (alignment *Alignment) ReferencePoints() []ReferencePoint {
	return append([]ReferencePoint{}, alignment.referencePoints...)
}

// AddSegment appends already constructed segment
func (alignment *Alignment) AddSegment(segment Segment) {
	if alignment.verbose && len(alignment.segments) != 0 {
		prev := alignment.segments[len(alignment.segments)-1]
		if prev.EndStation() != segment.StartStation() {
			fmt.Printf("[WARNING]: Segment '%s' starts at %s while previous one ends at %s\n", segment.Name(), FormatStation(segment.StartStation()), FormatStation(prev.EndStation()))
		}
	}
	alignment.segments = append(alignment.segments, segment)
}

// AddTangent appends tangent between two stations
func (alignment *Alignment) AddTangent(start, end string, options ...SegmentOption) (*TangentSegment, error) {
	segment, err := NewTangentSegment(start, end, options...)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't add tangent to alignment '%s'", alignment.name)
	}
	alignment.AddSegment(segment)
	return segment, nil
}

// AddCurve appends spiral-curve-spiral transition
func (alignment *Alignment) AddCurve(ts, sc, cs, st string, direction CurveDirection, options ...SegmentOption) (*CurveSegment, error) {
	segment, err := NewCurveSegment(ts, sc, cs, st, direction, options...)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't add curve to alignment '%s'", alignment.name)
	}
	alignment.AddSegment(segment)
	return segment, nil
}

// CalculateTrackParams derives track parameters from two named reference points without storing them
func (alignment *Alignment) CalculateTrackParams(ref1, ref2 string) (TrackParameters, error) {
	first, ok := alignment.ReferencePoint(ref1)
	if !ok {
		return TrackParameters{}, errors.Wrapf(ErrReferencePointNotFound, "Alignment '%s' has no reference point '%s'", alignment.name, ref1)
	}
	second, ok := alignment.ReferencePoint(ref2)
	if !ok {
		return TrackParameters{}, errors.Wrapf(ErrReferencePointNotFound, "Alignment '%s' has no reference point '%s'", alignment.name, ref2)
	}
	params, err := Calibrate(first.Point, first.Station, second.Point, second.Station)
	if err != nil {
		return TrackParameters{}, errors.Wrapf(err, "Can't calibrate alignment '%s' by '%s' and '%s'", alignment.name, ref1, ref2)
	}
	return params, nil
}

// Calibrate derives and stores track parameters. First reference point becomes start reference of Realize.
func (alignment *Alignment) Calibrate(ref1, ref2 string) (TrackParameters, error) {
	params, err := alignment.CalculateTrackParams(ref1, ref2)
	if err != nil {
		return TrackParameters{}, err
	}
	alignment.params = params
	alignment.startReference = ref1
	alignment.calibrated = true
	if alignment.verbose {
		fmt.Printf("Alignment '%s' calibrated by '%s' and '%s': %s\n", alignment.name, ref1, ref2, params)
	}
	return params, nil
}

// TrackParams returns stored track parameters and start reference name
func (alignment *Alignment) TrackParams() (TrackParameters, string, bool) {
	return alignment.params, alignment.startReference, alignment.calibrated
}

// Realize places alignment using stored calibration
func (alignment *Alignment) Realize() (*RealizedAlignment, error) {
	if len(alignment.segments) == 0 {
		return nil, errors.Wrapf(ErrEmptyAlignment, "Can't realize alignment '%s'", alignment.name)
	}
	if !alignment.calibrated {
		return nil, errors.Wrapf(ErrUncalibratedAlignment, "Can't realize alignment '%s'", alignment.name)
	}
	return alignment.RealizeFrom(alignment.startReference, alignment.params)
}

// RealizeFrom places alignment starting at given reference point with given track parameters
func (alignment *Alignment) RealizeFrom(startReference string, params TrackParameters) (*RealizedAlignment, error) {
	if len(alignment.segments) == 0 {
		return nil, errors.Wrapf(ErrEmptyAlignment, "Can't realize alignment '%s'", alignment.name)
	}
	if params.Scale == 0 {
		return nil, errors.Wrapf(ErrUncalibratedAlignment, "Can't realize alignment '%s': zero scale", alignment.name)
	}
	ref, ok := alignment.ReferencePoint(startReference)
	if !ok {
		return nil, errors.Wrapf(ErrReferencePointNotFound, "Can't realize alignment '%s': no reference point '%s'", alignment.name, startReference)
	}
	return Realize(alignment.name, alignment.segments, ref, params,
		RealizeWithSampling(alignment.sampling),
		RealizeWithVerbose(alignment.verbose),
		RealizeWithReferences(alignment.ReferencePoints()),
	)
}
