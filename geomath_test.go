package railalign

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

var (
	sta2000 = GeoPoint{Lat: 32.9740081, Lon: -117.2669915}
	sta2500 = GeoPoint{Lat: 32.9726647, Lon: -117.2666647}
)

func TestProject(t *testing.T) {
	origin := GeoPoint{Lat: 33, Lon: -117}
	north := Project(origin, 0, 364000)
	if math.Abs(north.Lat-34) > 1e-12 || math.Abs(north.Lon-origin.Lon) > 1e-12 {
		t.Errorf("Point 364000 ft north must be %v, but got %v", GeoPoint{Lat: 34, Lon: -117}, north)
	}
	east := Project(origin, 90, 1000)
	if math.Abs(east.Lat-origin.Lat) > 1e-12 {
		t.Errorf("Latitude must not change moving east, but got %f", east.Lat)
	}
	expectedLon := origin.Lon + 1000/(FeetPerDegreeLatitude*math.Cos(33*math.Pi/180))
	if math.Abs(east.Lon-expectedLon) > 1e-12 {
		t.Errorf("Longitude must be %f, but got %f", expectedLon, east.Lon)
	}
}

func TestProjectInverse(t *testing.T) {
	for _, bearing := range []float64{0, 45, 90, 166.3, 270, 359} {
		p := Project(sta2000, bearing, 750)
		distance := DistanceFeet(sta2000, p)
		if math.Abs(distance-750) > 1e-6 {
			t.Errorf("Distance must be %f, but got %f", 750.0, distance)
		}
		back := BearingTo(sta2000, p)
		if math.Abs(back-NormalizeBearing(bearing)) > 1e-6 {
			t.Errorf("Bearing must be %f, but got %f", bearing, back)
		}
	}
}

func TestNormalizeBearing(t *testing.T) {
	cases := [][2]float64{{0, 0}, {360, 0}, {-90, 270}, {725, 5}, {166.5, 166.5}}
	for _, c := range cases {
		if v := NormalizeBearing(c[0]); math.Abs(v-c[1]) > 1e-9 {
			t.Errorf("Normalized bearing of %f must be %f, but got %f", c[0], c[1], v)
		}
	}
}

func TestPointOnSegmentByFraction(t *testing.T) {
	p := GeoPoint{Lat: 10, Lon: 20}
	q := GeoPoint{Lat: 12, Lon: 24}
	mid := pointOnSegmentByFraction(p, q, 0.5)
	if mid != (GeoPoint{Lat: 11, Lon: 22}) {
		t.Errorf("Middle point must be %v, but got %v", GeoPoint{Lat: 11, Lon: 22}, mid)
	}
	if pointOnSegmentByFraction(p, q, 0) != p || pointOnSegmentByFraction(p, q, 1) != q {
		t.Errorf("Fractions 0 and 1 must give ends of segment")
	}
}

func TestAngleBetweenLines(t *testing.T) {
	l1 := orb.LineString{{0, 0}, {1, 0}}
	l2 := orb.LineString{{1, 0}, {1, 1}}
	angle := angleBetweenLines(l1, l2)
	if math.Abs(angle-math.Pi/2) > 1e-12 {
		t.Errorf("Angle must be %f, but got %f", math.Pi/2, angle)
	}
	l3 := orb.LineString{{1, 0}, {1, -1}}
	angle = angleBetweenLines(l1, l3)
	if math.Abs(angle+math.Pi/2) > 1e-12 {
		t.Errorf("Angle must be %f, but got %f", -math.Pi/2, angle)
	}
}

func TestLocalRoundTrip(t *testing.T) {
	p := Project(sta2000, 123, 4321)
	back := localToPoint(sta2000, pointToLocal(sta2000, p))
	if math.Abs(back.Lat-p.Lat) > 1e-12 || math.Abs(back.Lon-p.Lon) > 1e-12 {
		t.Errorf("Point must be %v, but got %v", p, back)
	}
}
