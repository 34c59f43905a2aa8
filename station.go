package railalign

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s1"
	"github.com/pkg/errors"
)

const (
	// arcDefinitionConstant is 180*100/Pi: radius (ft) of the curve whose 100 ft arc subtends 1 degree
	arcDefinitionConstant = 5729.578
)

// ParseStation parses station notation "XX+YY.ZZ" into feet along the track.
//
// E.g. "24+04.67" -> 2404.67
func ParseStation(station string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(station), "+")
	if len(parts) != 2 {
		return 0, errors.Wrapf(ErrFormat, "Invalid station format: '%s'", station)
	}
	hundreds, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, errors.Wrapf(ErrFormat, "Invalid station hundreds in '%s'", station)
	}
	feet, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, errors.Wrapf(ErrFormat, "Invalid station feet in '%s'", station)
	}
	return hundreds*100 + feet, nil
}

// MustParseStation is ParseStation but panics on malformed input. For literals only.
func MustParseStation(station string) float64 {
	value, err := ParseStation(station)
	if err != nil {
		panic(err)
	}
	return value
}

// FormatStation returns station notation for given distance along the track (feet)
//
// E.g. 2404.67 -> "24+04.67"
func FormatStation(value float64) string {
	// Round to hundredths first so 2499.999 becomes "25+00.00" rather than "24+100.00"
	value = math.Round(value*100) / 100
	whole := math.Floor(value / 100)
	frac := value - whole*100
	return fmt.Sprintf("%d+%05.2f", int64(whole), frac)
}

// ParseAngle parses "D M'S\"" notation (degree sign, quotes or bare spaces as separators) into decimal degrees.
// Missing minutes and seconds default to zero.
func ParseAngle(angle string) (float64, error) {
	a, err := parseAngle(angle)
	if err != nil {
		return 0, err
	}
	return a.Degrees(), nil
}

func parseAngle(angle string) (s1.Angle, error) {
	replacer := strings.NewReplacer("°", " ", "'", " ", "\"", " ", "′", " ", "″", " ")
	tokens := strings.Fields(replacer.Replace(angle))
	if len(tokens) == 0 || len(tokens) > 3 {
		return 0, errors.Wrapf(ErrFormat, "Invalid angle format: '%s'", angle)
	}
	var parts [3]float64
	for i, token := range tokens {
		value, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrFormat, "Invalid angle token '%s' in '%s'", token, angle)
		}
		parts[i] = value
	}
	degrees := math.Abs(parts[0]) + parts[1]/60 + parts[2]/3600
	if strings.HasPrefix(tokens[0], "-") {
		degrees = -degrees
	}
	return s1.Angle(degrees) * s1.Degree, nil
}

// FormatAngle returns "D MM'SS\"" notation for given decimal degrees
func FormatAngle(degrees float64) string {
	sign := ""
	if degrees < 0 {
		sign = "-"
	}
	val := math.Abs(degrees)
	// Work in hundredths of an arc-second to avoid 59.9999" style output
	total := math.Round(val * 360000)
	d := math.Floor(total / 360000)
	total -= d * 360000
	m := math.Floor(total / 6000)
	total -= m * 6000
	s := total / 100
	return fmt.Sprintf("%s%d %02d'%05.2f\"", sign, int64(d), int64(m), s)
}

// DegreeOfCurveToRadius returns radius (feet) for given degree of curvature (arc definition).
// Non-positive degree of curvature means straight line, hence infinite radius.
func DegreeOfCurveToRadius(dc float64) float64 {
	if dc <= 0 {
		return math.Inf(1)
	}
	return arcDefinitionConstant / dc
}

// RadiusToDegreeOfCurve is inverse of DegreeOfCurveToRadius
func RadiusToDegreeOfCurve(radius float64) float64 {
	if radius <= 0 || math.IsInf(radius, 1) {
		return 0
	}
	return arcDefinitionConstant / radius
}
