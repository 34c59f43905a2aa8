package railalign

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestParseStation(t *testing.T) {
	cases := []struct {
		station string
		value   float64
	}{
		{"24+04.67", 2404.67},
		{"20+00", 2000},
		{"0+00", 0},
		{"123+62.32", 12362.32},
		{" 5+00 ", 500},
	}
	for _, c := range cases {
		value, err := ParseStation(c.station)
		if err != nil {
			t.Errorf("Station '%s' must be parsed, but got error: %v", c.station, err)
			continue
		}
		if math.Abs(value-c.value) > 1e-9 {
			t.Errorf("Station '%s' must be %f, but got %f", c.station, c.value, value)
		}
	}
}

func TestParseStationErrors(t *testing.T) {
	for _, station := range []string{"", "2404.67", "24+04+67", "a+00", "24+b"} {
		_, err := ParseStation(station)
		if errors.Cause(err) != ErrFormat {
			t.Errorf("Station '%s' must fail with ErrFormat, but got %v", station, err)
		}
	}
}

func TestFormatStation(t *testing.T) {
	cases := []struct {
		value   float64
		station string
	}{
		{2404.67, "24+04.67"},
		{2000, "20+00.00"},
		{0, "0+00.00"},
		{2499.999, "25+00.00"},
		{12362.32, "123+62.32"},
	}
	for _, c := range cases {
		station := FormatStation(c.value)
		if station != c.station {
			t.Errorf("Station for %f must be '%s', but got '%s'", c.value, c.station, station)
		}
	}
}

func TestStationRoundTrip(t *testing.T) {
	for _, value := range []float64{0, 0.01, 99.99, 100, 2404.67, 3043.75, 30493.02} {
		parsed, err := ParseStation(FormatStation(value))
		if err != nil {
			t.Error(err)
			continue
		}
		if math.Abs(parsed-value) > 0.005 {
			t.Errorf("Round trip of %f must give same value, but got %f", value, parsed)
		}
	}
}

func TestParseAngle(t *testing.T) {
	cases := []struct {
		angle   string
		degrees float64
	}{
		{"9 00'00\"", 9},
		{"9°30'00\"", 9.5},
		{"2 24'00\"", 2.4},
		{"0 44'30\"", 44.0/60 + 30.0/3600},
		{"0 49'11\"", 49.0/60 + 11.0/3600},
		{"12", 12},
		{"12 30", 12.5},
		{"-1 30'00\"", -1.5},
	}
	for _, c := range cases {
		degrees, err := ParseAngle(c.angle)
		if err != nil {
			t.Errorf("Angle '%s' must be parsed, but got error: %v", c.angle, err)
			continue
		}
		if math.Abs(degrees-c.degrees) > 1e-9 {
			t.Errorf("Angle '%s' must be %f, but got %f", c.angle, c.degrees, degrees)
		}
	}
	for _, angle := range []string{"", "abc", "9 x'00\"", "1 2 3 4"} {
		_, err := ParseAngle(angle)
		if errors.Cause(err) != ErrFormat {
			t.Errorf("Angle '%s' must fail with ErrFormat, but got %v", angle, err)
		}
	}
}

func TestFormatAngle(t *testing.T) {
	if s := FormatAngle(9.5); s != "9 30'00.00\"" {
		t.Errorf("Angle must be formatted as %s, but got %s", "9 30'00.00\"", s)
	}
	degrees, err := ParseAngle(FormatAngle(0.8197222))
	if err != nil {
		t.Error(err)
	}
	if math.Abs(degrees-0.8197222) > 1e-5 {
		t.Errorf("Round trip of angle must give %f, but got %f", 0.8197222, degrees)
	}
}

func TestDegreeOfCurveToRadius(t *testing.T) {
	radius := DegreeOfCurveToRadius(9)
	if math.Abs(radius-636.62) > 0.01 {
		t.Errorf("Radius of 9 degree curve must be %f, but got %f", 636.62, radius)
	}
	if !math.IsInf(DegreeOfCurveToRadius(0), 1) {
		t.Errorf("Radius of 0 degree curve must be +Inf, but got %f", DegreeOfCurveToRadius(0))
	}
	if !math.IsInf(DegreeOfCurveToRadius(-1), 1) {
		t.Errorf("Radius of negative degree curve must be +Inf, but got %f", DegreeOfCurveToRadius(-1))
	}
	dc := RadiusToDegreeOfCurve(radius)
	if math.Abs(dc-9) > 1e-9 {
		t.Errorf("Degree of curve must be %f, but got %f", 9.0, dc)
	}
}
