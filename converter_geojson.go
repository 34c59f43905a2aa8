package railalign

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(pts []GeoPoint) string {
	b, err := geojson.NewLineStringGeometry(lineToCoords(pts)).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PrepareGeoJSONPoint returns GeoJSON representation of Point
func PrepareGeoJSONPoint(pt GeoPoint) string {
	b, err := geojson.NewPointGeometry([]float64{pt.Lon, pt.Lat}).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// lineToCoords converts line to GeoJSON positions (lon, lat)
func lineToCoords(pts []GeoPoint) [][]float64 {
	pts2d := make([][]float64, len(pts))
	for i := range pts {
		pts2d[i] = []float64{pts[i].Lon, pts[i].Lat}
	}
	return pts2d
}

// FeatureCollection returns realized segments, given sections and markers as GeoJSON features.
// Every feature carries "layer" property: "segment", "section" or "marker".
func (realized *RealizedAlignment) FeatureCollection(sections []SectionCoords, markers []Marker) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range realized.Segments {
		seg := &realized.Segments[i]
		feature := geojson.NewLineStringFeature(lineToCoords(seg.Coords))
		feature.SetProperty("layer", "segment")
		feature.SetProperty("alignment", realized.Name)
		feature.SetProperty("name", seg.Segment.Name())
		feature.SetProperty("kind", seg.Segment.Kind().String())
		feature.SetProperty("start_station", FormatStation(seg.Segment.StartStation()))
		feature.SetProperty("end_station", FormatStation(seg.Segment.EndStation()))
		feature.SetProperty("entry_bearing", seg.EntryBearing)
		feature.SetProperty("exit_bearing", seg.ExitBearing)
		if curve, ok := seg.Segment.(*CurveSegment); ok {
			feature.SetProperty("direction", curve.Direction().String())
			feature.SetProperty("radius_ft", curve.Radius())
			feature.SetProperty("degree_of_curve", FormatAngle(curve.DegreeOfCurve()))
		}
		fc.AddFeature(feature)
	}
	for _, sc := range sections {
		feature := geojson.NewLineStringFeature(lineToCoords(sc.Coords))
		feature.ID = sc.Section.ID.String()
		feature.SetProperty("layer", "section")
		feature.SetProperty("alignment", realized.Name)
		feature.SetProperty("track_type", sc.Section.TrackType)
		feature.SetProperty("start_station", sc.Section.Start)
		feature.SetProperty("end_station", sc.Section.End)
		feature.SetProperty("tooltip", sc.Section.Tooltip)
		if sc.Section.Color != "" {
			feature.SetProperty("color", sc.Section.Color)
		}
		if sc.Section.DepthInfo != "" {
			feature.SetProperty("depth_info", sc.Section.DepthInfo)
		}
		fc.AddFeature(feature)
	}
	for _, marker := range markers {
		feature := geojson.NewPointFeature([]float64{marker.Point.Lon, marker.Point.Lat})
		feature.SetProperty("layer", "marker")
		feature.SetProperty("alignment", realized.Name)
		feature.SetProperty("kind", marker.Kind.String())
		feature.SetProperty("name", marker.Name)
		feature.SetProperty("station", FormatStation(marker.Station))
		if marker.Kind != MARKER_REFERENCE && marker.Kind != MARKER_PORTAL {
			feature.SetProperty("bearing", marker.Bearing)
		}
		fc.AddFeature(feature)
	}
	return fc
}
