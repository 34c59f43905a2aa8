package railalign

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// StationJSON station given either as "XX+YY.ZZ" string or as number of feet
type StationJSON float64

func (station *StationJSON) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		value, err := ParseStation(str)
		if err != nil {
			return err
		}
		*station = StationJSON(value)
		return nil
	}
	var value float64
	if err := json.Unmarshal(b, &value); err != nil {
		return errors.Wrapf(ErrFormat, "Station must be string or number, got %s", string(b))
	}
	*station = StationJSON(value)
	return nil
}

// ReferencePointDefinition surveyed point of alignment definition
type ReferencePointDefinition struct {
	Name    string      `json:"name"`
	Lat     float64     `json:"lat"`
	Lon     float64     `json:"lon"`
	Station StationJSON `json:"station"`
}

// SegmentDefinition tangent ("type": "tangent") or spiral-curve-spiral ("type": "curve")
type SegmentDefinition struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	// Tangent
	Start   string   `json:"start,omitempty"`
	End     string   `json:"end,omitempty"`
	Bearing *float64 `json:"bearing,omitempty"`
	// Curve
	TS            string  `json:"ts,omitempty"`
	SC            string  `json:"sc,omitempty"`
	CS            string  `json:"cs,omitempty"`
	ST            string  `json:"st,omitempty"`
	Direction     string  `json:"direction,omitempty"`
	DegreeOfCurve string  `json:"degree_of_curve,omitempty"`
	Radius        float64 `json:"radius,omitempty"`
}

// SectionDefinition track-type section of alignment definition
type SectionDefinition struct {
	TrackType string `json:"track_type"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Color     string `json:"color,omitempty"`
	Tooltip   string `json:"tooltip,omitempty"`
	DepthInfo string `json:"depth_info,omitempty"`
	// DepthValues list of [station, depth]
	DepthValues [][2]float64 `json:"depth_values,omitempty"`
	// ElevationValues list of [station, depth, elevation]
	ElevationValues [][3]float64 `json:"elevation_values,omitempty"`
	// Depths generates linear depth profile instead of DepthValues: [depth at start, depth at end, interval]
	Depths *[3]float64 `json:"depths,omitempty"`
	// TrackDepths list of [station, depth below ground]; combined with ground profile into elevation values
	TrackDepths [][2]float64 `json:"track_depths,omitempty"`
	// Interval of TrackDepths sampling (feet)
	Interval float64 `json:"interval,omitempty"`
}

// ProfilePointDefinition elevation at station
type ProfilePointDefinition struct {
	Station   StationJSON `json:"station"`
	Elevation float64     `json:"elevation"`
}

// PortalDefinition tunnel portal
type PortalDefinition struct {
	Name        string `json:"name"`
	Station     string `json:"station"`
	Description string `json:"description,omitempty"`
}

// AlignmentDefinition complete description of single alignment
type AlignmentDefinition struct {
	Name            string                     `json:"name"`
	Color           string                     `json:"color,omitempty"`
	ReferencePoints []ReferencePointDefinition `json:"reference_points"`
	// Calibration names of two reference points; first one is start reference
	Calibration   []string                 `json:"calibration"`
	Segments      []SegmentDefinition      `json:"segments"`
	Sections      []SectionDefinition      `json:"sections,omitempty"`
	GroundProfile []ProfilePointDefinition `json:"ground_profile,omitempty"`
	TrackProfile  []ProfilePointDefinition `json:"track_profile,omitempty"`
	Portals       []PortalDefinition       `json:"portals,omitempty"`
}

// Definitions root of definition file
type Definitions struct {
	Alignments []AlignmentDefinition `json:"alignments"`
}

// unmarshalJSON decodes JSON and reports line and character of syntax / type errors
func unmarshalJSON[T any](b []byte, out *T) error {
	err := json.Unmarshal(b, out)
	if err == nil {
		return nil
	}

	decodeOffset := func(offset int64) (line, char int) {
		line, char = 1, 1
		for i := 0; i < int(offset) && i < len(b); i++ {
			if b[i] == '\n' {
				line++
				char = 1
			} else {
				char++
			}
		}
		return
	}

	switch jerr := err.(type) {
	case *json.SyntaxError:
		line, char := decodeOffset(jerr.Offset)
		return errors.Wrapf(ErrFormat, "Error at line %d, character %d: %v", line, char, jerr)
	case *json.UnmarshalTypeError:
		line, char := decodeOffset(jerr.Offset)
		return errors.Wrapf(ErrFormat, "Error at line %d, character %d: %s value for %s.%s invalid for type %s",
			line, char, jerr.Value, jerr.Struct, jerr.Field, jerr.Type.String())
	default:
		return err
	}
}

// LoadOptions options of definition loading
type LoadOptions struct {
	Verbose  bool
	Sampling Sampling
}

// LoadDefinitions reads JSON file and builds calibrated alignments
func LoadDefinitions(fname string, options LoadOptions) ([]*Alignment, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read definitions file")
	}
	alignments, err := ParseDefinitions(b, options)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't parse definitions file '%s'", fname)
	}
	return alignments, nil
}

// ParseDefinitions builds calibrated alignments from JSON document
func ParseDefinitions(b []byte, options LoadOptions) ([]*Alignment, error) {
	var definitions Definitions
	if err := unmarshalJSON(b, &definitions); err != nil {
		return nil, err
	}
	alignments := make([]*Alignment, 0, len(definitions.Alignments))
	for i := range definitions.Alignments {
		alignment, err := definitions.Alignments[i].Build(options)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't build alignment #%d", i)
		}
		alignments = append(alignments, alignment)
	}
	return alignments, nil
}

// Build creates alignment from definition and calibrates it when calibration is given
func (def *AlignmentDefinition) Build(options LoadOptions) (*Alignment, error) {
	alignmentOptions := []func(*Alignment){
		WithColor(def.Color),
		WithVerbose(options.Verbose),
	}
	if options.Sampling != (Sampling{}) {
		alignmentOptions = append(alignmentOptions, WithSampling(options.Sampling))
	}
	alignment := NewAlignment(def.Name, alignmentOptions...)

	for _, ref := range def.ReferencePoints {
		alignment.AddReferencePoint(ref.Name, GeoPoint{Lat: ref.Lat, Lon: ref.Lon}, float64(ref.Station))
	}

	for i, segDef := range def.Segments {
		if err := segDef.addTo(alignment); err != nil {
			return nil, errors.Wrapf(err, "Can't add segment #%d", i)
		}
	}

	if len(def.GroundProfile) != 0 {
		alignment.SetGroundProfile(profileFromDefinition(def.GroundProfile))
	}
	if len(def.TrackProfile) != 0 {
		alignment.SetTrackProfile(profileFromDefinition(def.TrackProfile))
	}

	// Sections may update track profile, so ground profile goes first
	for i, sectionDef := range def.Sections {
		if err := sectionDef.addTo(alignment); err != nil {
			return nil, errors.Wrapf(err, "Can't add section #%d", i)
		}
	}

	for _, portalDef := range def.Portals {
		if _, err := alignment.AddPortal(portalDef.Name, portalDef.Station, portalDef.Description); err != nil {
			return nil, err
		}
	}

	switch len(def.Calibration) {
	case 0:
		if options.Verbose {
			fmt.Printf("[WARNING]: Alignment '%s' has no calibration\n", def.Name)
		}
	case 2:
		if _, err := alignment.Calibrate(def.Calibration[0], def.Calibration[1]); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Wrapf(ErrFormat, "Calibration of alignment '%s' must name exactly two reference points, got %d", def.Name, len(def.Calibration))
	}
	return alignment, nil
}

func (segDef *SegmentDefinition) addTo(alignment *Alignment) error {
	options := []SegmentOption{}
	if segDef.Name != "" {
		options = append(options, WithSegmentName(segDef.Name))
	}
	switch strings.ToLower(segDef.Type) {
	case "tangent":
		if segDef.Bearing != nil {
			options = append(options, WithManualBearing(*segDef.Bearing))
		}
		_, err := alignment.AddTangent(segDef.Start, segDef.End, options...)
		return err
	case "curve", "spiral_curve_spiral":
		direction, err := ParseCurveDirection(segDef.Direction)
		if err != nil {
			return err
		}
		if segDef.DegreeOfCurve != "" {
			options = append(options, WithDegreeOfCurve(segDef.DegreeOfCurve))
		}
		if segDef.Radius != 0 {
			options = append(options, WithRadius(segDef.Radius))
		}
		_, err = alignment.AddCurve(segDef.TS, segDef.SC, segDef.CS, segDef.ST, direction, options...)
		return err
	default:
		return errors.Wrapf(ErrFormat, "Unknown segment type '%s'", segDef.Type)
	}
}

func (sectionDef *SectionDefinition) addTo(alignment *Alignment) error {
	if sectionDef.Interval < 0 || (sectionDef.Depths != nil && sectionDef.Depths[2] < 0) {
		return errors.Wrapf(ErrFormat, "Negative interval of section '%s'", sectionDef.TrackType)
	}
	options := []SectionOption{
		WithSectionColor(sectionDef.Color),
		WithSectionTooltip(sectionDef.Tooltip),
		WithDepthInfo(sectionDef.DepthInfo),
	}
	switch {
	case len(sectionDef.DepthValues) != 0:
		depths := make([]DepthPoint, len(sectionDef.DepthValues))
		for i, value := range sectionDef.DepthValues {
			depths[i] = DepthPoint{Station: value[0], Depth: value[1]}
		}
		options = append(options, WithDepthValues(depths))
	case sectionDef.Depths != nil:
		start, end, err := parseStationPair(sectionDef.Start, sectionDef.End)
		if err != nil {
			return err
		}
		options = append(options, WithDepthValues(GenerateDepthValues(start, end, sectionDef.Depths[0], sectionDef.Depths[1], sectionDef.Depths[2])))
	}
	if len(sectionDef.TrackDepths) != 0 {
		start, end, err := parseStationPair(sectionDef.Start, sectionDef.End)
		if err != nil {
			return err
		}
		depths := make([]DepthPoint, len(sectionDef.TrackDepths))
		for i, value := range sectionDef.TrackDepths {
			depths[i] = DepthPoint{Station: value[0], Depth: value[1]}
		}
		elevations := []SectionElevation{}
		for _, point := range alignment.GenerateElevationBasedDepths(start, end, depths, sectionDef.Interval) {
			if point.HasElevation {
				elevations = append(elevations, SectionElevation{Station: point.Station, Depth: point.Depth, Elevation: point.Elevation})
			}
		}
		options = append(options, WithElevationValues(elevations))
	}
	if len(sectionDef.ElevationValues) != 0 {
		elevations := make([]SectionElevation, len(sectionDef.ElevationValues))
		for i, value := range sectionDef.ElevationValues {
			elevations[i] = SectionElevation{Station: value[0], Depth: value[1], Elevation: value[2]}
		}
		options = append(options, WithElevationValues(elevations))
	}
	_, err := alignment.AddTrackTypeSection(sectionDef.TrackType, sectionDef.Start, sectionDef.End, options...)
	return err
}

func profileFromDefinition(points []ProfilePointDefinition) []ProfilePoint {
	profile := make([]ProfilePoint, len(points))
	for i, point := range points {
		profile[i] = ProfilePoint{Station: float64(point.Station), Elevation: point.Elevation}
	}
	return profile
}

// ParseLatLon parses "lat,lon" pair
func ParseLatLon(str string) (GeoPoint, error) {
	parts := strings.Split(str, ",")
	if len(parts) != 2 {
		return GeoPoint{}, errors.Wrapf(ErrFormat, "Expected 'lat,lon', got '%s'", str)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return GeoPoint{}, errors.Wrapf(ErrFormat, "Bad latitude '%s'", parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return GeoPoint{}, errors.Wrapf(ErrFormat, "Bad longitude '%s'", parts[1])
	}
	return GeoPoint{Lat: lat, Lon: lon}, nil
}
