package railalign

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DefaultTrackTypes construction categories every alignment starts with
var DefaultTrackTypes = []string{
	"Standard Track",
	"Bridge",
	"Cut and Cover Tunnel",
	"Bored Tunnel",
	"U-Section",
	"Elevated",
}

// SectionElevation depth below ground and absolute elevation at a station
type SectionElevation struct {
	Station   float64
	Depth     float64
	Elevation float64
}

// TrackTypeSection annotates station range with construction type (tunnel, bridge, ...)
type TrackTypeSection struct {
	ID        uuid.UUID
	TrackType string
	Start     string
	End       string
	Color     string
	Tooltip   string
	DepthInfo string

	startValue      float64
	endValue        float64
	depthValues     []DepthPoint
	elevationValues []SectionElevation
}

type sectionConfig struct {
	color           string
	tooltip         string
	depthInfo       string
	depthValues     []DepthPoint
	elevationValues []SectionElevation
}

// SectionOption configures TrackTypeSection on creation
type SectionOption func(*sectionConfig)

func WithSectionColor(color string) SectionOption {
	return func(cfg *sectionConfig) {
		cfg.color = color
	}
}

func WithSectionTooltip(tooltip string) SectionOption {
	return func(cfg *sectionConfig) {
		cfg.tooltip = tooltip
	}
}

// WithDepthInfo sets free-form depth description
func WithDepthInfo(info string) SectionOption {
	return func(cfg *sectionConfig) {
		cfg.depthInfo = info
	}
}

// WithDepthValues sets detailed (station, depth) profile of section
func WithDepthValues(values []DepthPoint) SectionOption {
	return func(cfg *sectionConfig) {
		cfg.depthValues = values
	}
}

// WithElevationValues sets detailed (station, depth, elevation) profile of section
func WithElevationValues(values []SectionElevation) SectionOption {
	return func(cfg *sectionConfig) {
		cfg.elevationValues = values
	}
}

// NewTrackTypeSection creates section between two stations
func NewTrackTypeSection(trackType, start, end string, options ...SectionOption) (*TrackTypeSection, error) {
	startValue, endValue, err := parseStationPair(start, end)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't create '%s' section %s - %s", trackType, start, end)
	}
	cfg := &sectionConfig{}
	for _, option := range options {
		option(cfg)
	}
	section := &TrackTypeSection{
		ID:          uuid.New(),
		TrackType:   trackType,
		Start:       start,
		End:         end,
		Color:       cfg.color,
		Tooltip:     cfg.tooltip,
		DepthInfo:   cfg.depthInfo,
		startValue:  startValue,
		endValue:    endValue,
		depthValues: make([]DepthPoint, len(cfg.depthValues)),
	}
	if section.Tooltip == "" {
		section.Tooltip = fmt.Sprintf("%s (%s to %s)", trackType, start, end)
	}
	copy(section.depthValues, cfg.depthValues)
	sort.SliceStable(section.depthValues, func(i, j int) bool {
		return section.depthValues[i].Station < section.depthValues[j].Station
	})
	section.elevationValues = make([]SectionElevation, len(cfg.elevationValues))
	copy(section.elevationValues, cfg.elevationValues)
	sort.SliceStable(section.elevationValues, func(i, j int) bool {
		return section.elevationValues[i].Station < section.elevationValues[j].Station
	})
	return section, nil
}

// StartStation returns start station in feet
func (section *TrackTypeSection) StartStation() float64 {
	return section.startValue
}

// EndStation returns end station in feet
func (section *TrackTypeSection) EndStation() float64 {
	return section.endValue
}

func (section *TrackTypeSection) LengthFt() float64 {
	return section.endValue - section.startValue
}

// DepthValues returns detailed depth profile sorted by station
func (section *TrackTypeSection) DepthValues() []DepthPoint {
	return section.depthValues
}

// ElevationValues returns detailed elevation profile sorted by station
func (section *TrackTypeSection) ElevationValues() []SectionElevation {
	return section.elevationValues
}

// DepthAtStation returns interpolated depth. Stations outside of depth profile get nearest end value.
func (section *TrackTypeSection) DepthAtStation(station float64) (float64, bool) {
	values := section.depthValues
	if len(values) == 0 {
		return 0, false
	}
	return interpolateClamped(len(values), func(i int) float64 { return values[i].Station }, station, func(i, j int, ratio float64) float64 {
		return values[i].Depth + ratio*(values[j].Depth-values[i].Depth)
	}), true
}

// ElevationAtStation returns interpolated depth and elevation
func (section *TrackTypeSection) ElevationAtStation(station float64) (depth float64, elevation float64, ok bool) {
	values := section.elevationValues
	if len(values) == 0 {
		return 0, 0, false
	}
	key := func(i int) float64 { return values[i].Station }
	depth = interpolateClamped(len(values), key, station, func(i, j int, ratio float64) float64 {
		return values[i].Depth + ratio*(values[j].Depth-values[i].Depth)
	})
	elevation = interpolateClamped(len(values), key, station, func(i, j int, ratio float64) float64 {
		return values[i].Elevation + ratio*(values[j].Elevation-values[i].Elevation)
	})
	return depth, elevation, true
}

// AddTrackTypeSection registers new section under its track type. Unknown track types are created on the fly.
func (alignment *Alignment) AddTrackTypeSection(trackType, start, end string, options ...SectionOption) (*TrackTypeSection, error) {
	section, err := NewTrackTypeSection(trackType, start, end, options...)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't add section to alignment '%s'", alignment.name)
	}
	alignment.sections = append(alignment.sections, section)
	alignment.trackTypes[trackType] = append(alignment.trackTypes[trackType], section)
	return section, nil
}

// Sections returns all sections in order they were added
func (alignment *Alignment) Sections() []*TrackTypeSection {
	return alignment.sections
}

// TrackTypes returns sections grouped by track type, including empty default categories
func (alignment *Alignment) TrackTypes() map[string][]*TrackTypeSection {
	output := make(map[string][]*TrackTypeSection, len(alignment.trackTypes))
	for trackType, sections := range alignment.trackTypes {
		output[trackType] = append([]*TrackTypeSection{}, sections...)
	}
	return output
}

// SectionCoords section together with its slice of realized alignment
type SectionCoords struct {
	Section *TrackTypeSection
	Coords  []GeoPoint
}

// RenderTrackTypeSections resolves every section against realized geometry.
// Sections which do not overlap realized segments are skipped.
func (alignment *Alignment) RenderTrackTypeSections(realized *RealizedAlignment) []SectionCoords {
	output := make([]SectionCoords, 0, len(alignment.sections))
	for _, section := range alignment.sections {
		coords := realized.CoordinatesForStationRange(section.startValue, section.endValue)
		if len(coords) == 0 {
			if alignment.verbose {
				fmt.Printf("[WARNING]: Section '%s' (%s - %s) is outside of alignment '%s'\n", section.TrackType, section.Start, section.End, alignment.name)
			}
			continue
		}
		output = append(output, SectionCoords{
			Section: section,
			Coords:  coords,
		})
	}
	return output
}

// SectionProbe sample of section at a regular station interval
type SectionProbe struct {
	Station float64
	Label   string
	Point   GeoPoint
	// TrackElevation rounded to 5 ft
	TrackElevation float64
	HasElevation   bool
}

// ProbeSection samples section every interval feet (end station included).
// Track elevation is taken from given profile and rounded to 5 ft.
func (realized *RealizedAlignment) ProbeSection(section *TrackTypeSection, interval float64, trackProfile Profile) []SectionProbe {
	stations := stationsByInterval(section.startValue, section.endValue, interval)
	probes := make([]SectionProbe, 0, len(stations))
	for _, station := range stations {
		probe := SectionProbe{
			Station: station,
			Label:   FormatStation(station),
			Point:   realized.PointAtStation(station),
		}
		if elevation, ok := trackProfile.ElevationAt(station); ok {
			probe.TrackElevation = math.Round(elevation/5) * 5
			probe.HasElevation = true
		}
		probes = append(probes, probe)
	}
	return probes
}
