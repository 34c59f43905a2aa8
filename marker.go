package railalign

// MarkerKind kind of point of interest on alignment
type MarkerKind uint16

const (
	MARKER_REFERENCE = MarkerKind(iota + 1)
	MARKER_TS
	MARKER_SC
	MARKER_CS
	MARKER_ST
	MARKER_PORTAL
)

func (iotaIdx MarkerKind) String() string {
	return [...]string{"reference", "TS", "SC", "CS", "ST", "portal"}[iotaIdx-1]
}

// Marker named point of alignment
type Marker struct {
	Kind    MarkerKind
	Name    string
	Station float64
	Point   GeoPoint
	// Bearing is zero for reference points
	Bearing float64
}

// Markers returns reference points (if includeReferences) and curve key points (if includeTechnical).
// Reference markers go first in insertion order, then curve points in physical order.
func (realized *RealizedAlignment) Markers(includeReferences, includeTechnical bool) []Marker {
	markers := []Marker{}
	if includeReferences {
		for _, ref := range realized.References {
			markers = append(markers, Marker{
				Kind:    MARKER_REFERENCE,
				Name:    ref.Name,
				Station: ref.Station,
				Point:   ref.Point,
			})
		}
	}
	if !includeTechnical {
		return markers
	}
	for i := range realized.Segments {
		seg := &realized.Segments[i]
		curve, ok := seg.Segment.(*CurveSegment)
		if !ok || seg.Curve == nil {
			continue
		}
		ts, sc, cs, st := curve.Stations()
		geom := seg.Curve
		markers = append(markers,
			Marker{Kind: MARKER_TS, Name: "TS " + curve.ts, Station: ts, Point: geom.TS, Bearing: geom.TSBearing},
			Marker{Kind: MARKER_SC, Name: "SC " + curve.sc, Station: sc, Point: geom.SC, Bearing: geom.SCBearing},
			Marker{Kind: MARKER_CS, Name: "CS " + curve.cs, Station: cs, Point: geom.CS, Bearing: geom.CSBearing},
			Marker{Kind: MARKER_ST, Name: "ST " + curve.st, Station: st, Point: geom.ST, Bearing: geom.STBearing},
		)
	}
	return markers
}
