package railalign

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestAssembleCurve(t *testing.T) {
	entry, arc, exit := 140.0, 499.08, 140.0
	for _, direction := range []CurveDirection{CURVE_RIGHT, CURVE_LEFT} {
		geom, err := AssembleCurve(sta2000, testBearing, entry, arc, exit, testRadius, direction, DefaultSampling())
		if err != nil {
			t.Error(err)
			return
		}
		bearings := []float64{geom.TSBearing, geom.SCBearing, geom.CSBearing, geom.STBearing}
		for i := 1; i < len(bearings); i++ {
			step := (bearings[i] - bearings[i-1]) * direction.sign()
			if step <= 0 {
				t.Errorf("Bearings of %s curve must change monotonically, but got %v", direction, bearings)
			}
		}
		expectedTotal := direction.sign() * radiansTodegrees(entry/(2*testRadius)+arc/testRadius+exit/(2*testRadius))
		if math.Abs(geom.TotalDeflection()-expectedTotal) > 1e-9 {
			t.Errorf("Total deflection of %s curve must be %f, but got %f", direction, expectedTotal, geom.TotalDeflection())
		}
		if geom.EntrySpiral[0] != geom.TS || geom.CircularArc[0] != geom.SC || geom.ExitSpiral[0] != geom.CS {
			t.Errorf("Every part of %s curve must start at the end of previous part", direction)
		}
		if geom.EntrySpiral[len(geom.EntrySpiral)-1] != geom.SC || geom.CircularArc[len(geom.CircularArc)-1] != geom.CS || geom.ExitSpiral[len(geom.ExitSpiral)-1] != geom.ST {
			t.Errorf("Key points of %s curve must be ends of its parts", direction)
		}
		all := geom.AllCoords()
		if len(all) != 3*(DefaultSpiralSteps+1) {
			t.Errorf("Number of points must be %d, but got %d", 3*(DefaultSpiralSteps+1), len(all))
		}
	}
}

func TestAssembleCurveScenarioDirection(t *testing.T) {
	geom, err := AssembleCurve(sta2000, testBearing, 140, 499.08, 140, testRadius, CURVE_RIGHT, DefaultSampling())
	if err != nil {
		t.Error(err)
		return
	}
	if math.Abs(geom.STBearing-108.81) > 0.01 {
		t.Errorf("ST bearing must be %f, but got %f", 108.81, geom.STBearing)
	}
	// Heading stays in south-east quadrant along the whole curve
	chord := BearingTo(geom.TS, geom.ST)
	if chord <= geom.STBearing || chord >= geom.TSBearing {
		t.Errorf("Chord TS-ST must lie between %f and %f, but got %f", geom.STBearing, geom.TSBearing, chord)
	}
}

func TestAssembleCurveDegenerate(t *testing.T) {
	geom, err := AssembleCurve(sta2000, testBearing, 0, 0, 0, testRadius, CURVE_LEFT, DefaultSampling())
	if err != nil {
		t.Error(err)
		return
	}
	if len(geom.EntrySpiral) != 1 || len(geom.CircularArc) != 1 || len(geom.ExitSpiral) != 1 {
		t.Errorf("Every part of degenerate curve must be single point, but got %d, %d, %d", len(geom.EntrySpiral), len(geom.CircularArc), len(geom.ExitSpiral))
	}
	if geom.ST != geom.TS {
		t.Errorf("ST must be %v, but got %v", geom.TS, geom.ST)
	}
	if geom.STBearing != geom.TSBearing {
		t.Errorf("ST bearing must be %f, but got %f", geom.TSBearing, geom.STBearing)
	}
}

func TestAssembleCurveInvalid(t *testing.T) {
	for _, radius := range []float64{0, -10, math.Inf(1), math.NaN()} {
		_, err := AssembleCurve(sta2000, testBearing, 100, 100, 100, radius, CURVE_RIGHT, DefaultSampling())
		if errors.Cause(err) != ErrInvalidCurveParameters {
			t.Errorf("Radius %f must fail with ErrInvalidCurveParameters, but got %v", radius, err)
		}
	}
	_, err := AssembleCurve(sta2000, testBearing, -1, 100, 100, testRadius, CURVE_RIGHT, DefaultSampling())
	if errors.Cause(err) != ErrInvalidCurveParameters {
		t.Errorf("Negative length must fail with ErrInvalidCurveParameters, but got %v", err)
	}
}
