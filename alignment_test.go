package railalign

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

// newYellowAlignment first tangent and first curve of Del Mar yellow route
func newYellowAlignment(t *testing.T) *Alignment {
	t.Helper()
	alignment := NewAlignment("Yellow Route", WithColor("#FFD700"))
	alignment.AddReferencePoint("STA_2000", sta2000, 2000)
	alignment.AddReferencePoint("STA_2500", sta2500, 2500)
	if _, err := alignment.AddTangent("20+00", "24+04.67", WithSegmentName("Initial Tangent")); err != nil {
		t.Fatal(err)
	}
	if _, err := alignment.AddCurve("24+04.67", "25+44.67", "30+43.75", "31+83.75", CURVE_RIGHT, WithDegreeOfCurve("9°00'00\""), WithSegmentName("First Curve")); err != nil {
		t.Fatal(err)
	}
	if _, err := alignment.Calibrate("STA_2000", "STA_2500"); err != nil {
		t.Fatal(err)
	}
	return alignment
}

func TestRealizeScenario(t *testing.T) {
	alignment := newYellowAlignment(t)
	params, startRef, ok := alignment.TrackParams()
	if !ok || startRef != "STA_2000" {
		t.Errorf("Alignment must be calibrated from STA_2000, but got %t and '%s'", ok, startRef)
	}
	if params.BearingDeg == 0 || math.IsNaN(params.BearingDeg) || params.Scale == 0 || math.IsInf(params.Scale, 0) {
		t.Errorf("Track parameters must be finite and nonzero, but got %s", params)
	}

	realized, err := alignment.Realize()
	if err != nil {
		t.Error(err)
		return
	}
	if len(realized.Segments) != 2 {
		t.Errorf("Number of segments must be %d, but got %d", 2, len(realized.Segments))
		return
	}
	if len(realized.SegmentCoords[0]) != DefaultTangentPoints {
		t.Errorf("Number of tangent points must be %d, but got %d", DefaultTangentPoints, len(realized.SegmentCoords[0]))
	}
	if realized.SegmentCoords[0][0] != sta2000 {
		t.Errorf("Alignment must start at %v, but got %v", sta2000, realized.SegmentCoords[0][0])
	}

	curve, ok := realized.Segments[1].Segment.(*CurveSegment)
	if !ok {
		t.Errorf("Second segment must be curve, but got %s", realized.Segments[1].Segment.Kind())
		return
	}
	if math.Abs(curve.Radius()-636.62) > 0.01 {
		t.Errorf("Radius must be %f, but got %f", 636.62, curve.Radius())
	}
	lengths := []float64{curve.EntrySpiralLength(), curve.CircularArcLength(), curve.ExitSpiralLength()}
	expectedLengths := []float64{140, 499.08, 140}
	for i := range lengths {
		if math.Abs(lengths[i]-expectedLengths[i]) > 1e-6 {
			t.Errorf("Length of curve part #%d must be %f, but got %f", i, expectedLengths[i], lengths[i])
		}
	}

	// Curve goes on south-east and turns towards east
	geom := realized.Segments[1].Curve
	if geom.STBearing >= geom.TSBearing {
		t.Errorf("Right curve must decrease bearing, but got %f -> %f", geom.TSBearing, geom.STBearing)
	}
	chord := BearingTo(geom.TS, geom.ST)
	if chord < 90 || chord > 180 {
		t.Errorf("ST must be south-east of TS, but got bearing %f", chord)
	}

	// Tangent end drifts from linear fallback by calibration bearing error only
	linear := StationToPoint(sta2000, 2000, 2404.67, params)
	if d := DistanceFeet(realized.Segments[0].ExitPoint, linear); d > 25 {
		t.Errorf("Tangent end must be near linear station point, but got %f ft away", d)
	}
}

func TestRealizeContinuity(t *testing.T) {
	alignment := newYellowAlignment(t)
	if _, err := alignment.AddTangent("31+83.75", "37+45.96"); err != nil {
		t.Fatal(err)
	}
	realized, err := alignment.Realize()
	if err != nil {
		t.Error(err)
		return
	}
	total := 0
	for i := range realized.SegmentCoords {
		total += len(realized.SegmentCoords[i])
		if i == 0 {
			continue
		}
		prev := realized.SegmentCoords[i-1]
		if realized.SegmentCoords[i][0] != prev[len(prev)-1] {
			t.Errorf("Segment #%d must start at the end of previous one", i)
		}
		if realized.Segments[i].EntryBearing != realized.Segments[i-1].ExitBearing {
			t.Errorf("Segment #%d must start with exit bearing of previous one: %f vs %f", i, realized.Segments[i].EntryBearing, realized.Segments[i-1].ExitBearing)
		}
	}
	if total != len(realized.AllCoords) {
		t.Errorf("Number of all points must be %d, but got %d", total, len(realized.AllCoords))
	}
	for _, joint := range realized.Continuity() {
		if joint.GapFeet != 0 || joint.BearingJumpDeg != 0 {
			t.Errorf("Joint #%d must be continuous, but got %+v", joint.Index, joint)
		}
		// Sampled polyline can bend by half a step of full curvature at most
		if math.Abs(joint.KinkDeg) > 0.1 {
			t.Errorf("Joint #%d must have no kink, but got %f", joint.Index, joint.KinkDeg)
		}
	}
	if realized.StartStation() != 2000 || math.Abs(realized.EndStation()-3745.96) > 1e-6 {
		t.Errorf("Alignment must span 20+00 - 37+45.96, but got %s - %s", FormatStation(realized.StartStation()), FormatStation(realized.EndStation()))
	}
}

func TestRealizeManualBearing(t *testing.T) {
	alignment := newYellowAlignment(t)
	tangent, err := alignment.AddTangent("31+83.75", "37+45.96", WithManualBearing(142.25))
	if err != nil {
		t.Fatal(err)
	}
	realized, err := alignment.Realize()
	if err != nil {
		t.Error(err)
		return
	}
	last := realized.Segments[2]
	if last.EntryBearing != 142.25 || last.ExitBearing != 142.25 {
		t.Errorf("Manual bearing must be %f, but got %f / %f", 142.25, last.EntryBearing, last.ExitBearing)
	}
	joints := realized.Continuity()
	if joints[1].GapFeet != 0 {
		t.Errorf("Manual bearing must not break position continuity, but got gap %f", joints[1].GapFeet)
	}
	expectedJump := 142.25 - realized.Segments[1].ExitBearing
	if math.Abs(joints[1].BearingJumpDeg-expectedJump) > 1e-9 {
		t.Errorf("Bearing jump must be %f, but got %f", expectedJump, joints[1].BearingJumpDeg)
	}

	tangent.ClearManualBearing()
	if _, ok := tangent.ManualBearing(); ok {
		t.Errorf("Manual bearing must be cleared")
	}
	realized, err = alignment.Realize()
	if err != nil {
		t.Error(err)
		return
	}
	if realized.Segments[2].EntryBearing != realized.Segments[1].ExitBearing {
		t.Errorf("Bearing must be propagated after clearing manual one")
	}
}

func TestRealizeIsPure(t *testing.T) {
	alignment := newYellowAlignment(t)
	first, err := alignment.Realize()
	if err != nil {
		t.Error(err)
		return
	}
	second, err := alignment.Realize()
	if err != nil {
		t.Error(err)
		return
	}
	if diff := cmp.Diff(first.AllCoords, second.AllCoords); diff != "" {
		t.Errorf("Repeated realization must give same coordinates (-first +second):\n%s", diff)
	}
	if len(alignment.Segments()) != 2 {
		t.Errorf("Realization must not change segments")
	}
}

func TestRealizeErrors(t *testing.T) {
	empty := NewAlignment("Empty")
	empty.AddReferencePoint("A", sta2000, 2000)
	empty.AddReferencePoint("B", sta2500, 2500)
	if _, err := empty.Calibrate("A", "B"); err != nil {
		t.Fatal(err)
	}
	if _, err := empty.Realize(); errors.Cause(err) != ErrEmptyAlignment {
		t.Errorf("Empty alignment must fail with ErrEmptyAlignment, but got %v", err)
	}

	uncalibrated := NewAlignment("Uncalibrated")
	uncalibrated.AddReferencePoint("A", sta2000, 2000)
	if _, err := uncalibrated.AddTangent("20+00", "21+00"); err != nil {
		t.Fatal(err)
	}
	if _, err := uncalibrated.Realize(); errors.Cause(err) != ErrUncalibratedAlignment {
		t.Errorf("Uncalibrated alignment must fail with ErrUncalibratedAlignment, but got %v", err)
	}
	if _, err := uncalibrated.Calibrate("A", "B"); errors.Cause(err) != ErrReferencePointNotFound {
		t.Errorf("Unknown reference point must fail with ErrReferencePointNotFound, but got %v", err)
	}
	if _, err := uncalibrated.RealizeFrom("X", TrackParameters{Scale: 1}); errors.Cause(err) != ErrReferencePointNotFound {
		t.Errorf("Unknown start reference must fail with ErrReferencePointNotFound, but got %v", err)
	}
}

func TestAddSegmentErrors(t *testing.T) {
	alignment := NewAlignment("Errors")
	if _, err := alignment.AddTangent("24+00", "20+00"); errors.Cause(err) != ErrStationOrder {
		t.Errorf("Reversed tangent must fail with ErrStationOrder, but got %v", err)
	}
	if _, err := alignment.AddTangent("24+00", "bad"); errors.Cause(err) != ErrFormat {
		t.Errorf("Bad station must fail with ErrFormat, but got %v", err)
	}
	if _, err := alignment.AddCurve("24+04.67", "25+44.67", "30+43.75", "31+83.75", CURVE_RIGHT); errors.Cause(err) != ErrInvalidCurveParameters {
		t.Errorf("Curve without radius must fail with ErrInvalidCurveParameters, but got %v", err)
	}
	if _, err := alignment.AddCurve("24+04.67", "25+44.67", "30+43.75", "31+83.75", CURVE_RIGHT, WithDegreeOfCurve("0 00'00\"")); errors.Cause(err) != ErrInvalidCurveParameters {
		t.Errorf("Zero degree curve must fail with ErrInvalidCurveParameters, but got %v", err)
	}
	if _, err := alignment.AddCurve("24+04.67", "30+43.75", "25+44.67", "31+83.75", CURVE_LEFT, WithRadius(1000)); errors.Cause(err) != ErrStationOrder {
		t.Errorf("Unordered curve stations must fail with ErrStationOrder, but got %v", err)
	}
	if _, err := alignment.AddCurve("24+04.67", "25+44.67", "30+43.75", "31+83.75", CURVE_LEFT, WithDegreeOfCurve("x")); errors.Cause(err) != ErrFormat {
		t.Errorf("Bad degree of curve must fail with ErrFormat, but got %v", err)
	}
	if len(alignment.Segments()) != 0 {
		t.Errorf("Failed segments must not be added, but got %d", len(alignment.Segments()))
	}

	curve, err := alignment.AddCurve("24+04.67", "25+44.67", "30+43.75", "31+83.75", CURVE_LEFT, WithRadius(1000))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(curve.DegreeOfCurve()-5.729578) > 1e-9 {
		t.Errorf("Degree of curve must be %f, but got %f", 5.729578, curve.DegreeOfCurve())
	}
}

func TestReferencePoints(t *testing.T) {
	alignment := NewAlignment("Refs")
	alignment.AddReferencePoint("A", sta2000, 2000)
	alignment.AddReferencePoint("B", sta2500, 2500)
	alignment.AddReferencePoint("A", sta2500, 2100)
	refs := alignment.ReferencePoints()
	expected := []ReferencePoint{
		{Name: "A", Point: sta2500, Station: 2100},
		{Name: "B", Point: sta2500, Station: 2500},
	}
	if diff := cmp.Diff(expected, refs); diff != "" {
		t.Errorf("Reference points mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkers(t *testing.T) {
	realized, err := newYellowAlignment(t).Realize()
	if err != nil {
		t.Error(err)
		return
	}
	if n := len(realized.Markers(false, false)); n != 0 {
		t.Errorf("Number of markers must be %d, but got %d", 0, n)
	}
	if n := len(realized.Markers(true, false)); n != 2 {
		t.Errorf("Number of reference markers must be %d, but got %d", 2, n)
	}
	markers := realized.Markers(false, true)
	kinds := []MarkerKind{MARKER_TS, MARKER_SC, MARKER_CS, MARKER_ST}
	if len(markers) != len(kinds) {
		t.Errorf("Number of curve markers must be %d, but got %d", len(kinds), len(markers))
		return
	}
	for i := range kinds {
		if markers[i].Kind != kinds[i] {
			t.Errorf("Marker #%d must be %s, but got %s", i, kinds[i], markers[i].Kind)
		}
	}
	if markers[3].Point != realized.AllCoords[len(realized.AllCoords)-1] {
		t.Errorf("ST marker must be last point of alignment")
	}
}

func TestRealizeAll(t *testing.T) {
	first := newYellowAlignment(t)
	second := newYellowAlignment(t)
	if _, err := second.AddTangent("31+83.75", "37+45.96"); err != nil {
		t.Fatal(err)
	}
	realized, err := RealizeAll(context.Background(), []*Alignment{first, second})
	if err != nil {
		t.Error(err)
		return
	}
	if len(realized) != 2 || len(realized[0].Segments) != 2 || len(realized[1].Segments) != 3 {
		t.Errorf("Results must follow input order")
	}

	broken := NewAlignment("Broken")
	if _, err := broken.AddTangent("0+00", "1+00"); err != nil {
		t.Fatal(err)
	}
	_, err = RealizeAll(context.Background(), []*Alignment{first, broken})
	if errors.Cause(err) != ErrUncalibratedAlignment {
		t.Errorf("Broken alignment must fail with ErrUncalibratedAlignment, but got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err = RealizeAll(ctx, []*Alignment{first}); errors.Cause(err) != context.Canceled {
		t.Errorf("Cancelled context must fail with context.Canceled, but got %v", err)
	}
}

func TestCurveSegmentTotalDeflection(t *testing.T) {
	realized, err := newYellowAlignment(t).Realize()
	if err != nil {
		t.Error(err)
		return
	}
	curve, ok := realized.Segments[1].Segment.(*CurveSegment)
	if !ok {
		t.Errorf("Segment #1 must be curve, but got %s", realized.Segments[1].Segment.Kind())
		return
	}
	if math.Abs(curve.DegreeOfCurveAngle().Degrees()-9) > 1e-12 {
		t.Errorf("Degree of curve must be %f, but got %f", 9.0, curve.DegreeOfCurveAngle().Degrees())
	}
	// Right curve decreases bearing
	expected := -curve.TotalDeflection().Degrees()
	if got := realized.Segments[1].Curve.TotalDeflection(); math.Abs(got-expected) > 1e-9 {
		t.Errorf("Total deflection must be %f, but got %f", expected, got)
	}
}
