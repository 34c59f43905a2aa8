package railalign

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// PrepareGeometry returns line in requested format: "wkt" (default), "geojson" or "polyline"
func PrepareGeometry(pts []GeoPoint, geomFormat string) string {
	switch strings.ToLower(geomFormat) {
	case "geojson":
		return PrepareGeoJSONLinestring(pts)
	case "polyline":
		return PreparePolyline(pts)
	default:
		return PrepareWKTLinestring(pts)
	}
}

// preparePointGeometry returns point in requested format. Encoded polyline of single point is used for "polyline".
func preparePointGeometry(pt GeoPoint, geomFormat string) string {
	switch strings.ToLower(geomFormat) {
	case "geojson":
		return PrepareGeoJSONPoint(pt)
	case "polyline":
		return PreparePolyline([]GeoPoint{pt})
	default:
		return PrepareWKTPoint(pt)
	}
}

// ExportToCSV writes segments and markers of realized alignment.
// E.g.: if file name is 'yellow.csv' then 'yellow_segments.csv' and 'yellow_markers.csv' will be produced.
func (realized *RealizedAlignment) ExportToCSV(fname, geomFormat string) error {
	fnameParts := strings.Split(fname, ".csv")
	fnameSegments := fnameParts[0] + "_segments.csv"
	fnameMarkers := fnameParts[0] + "_markers.csv"

	err := realized.exportSegmentsToCSV(fnameSegments, geomFormat)
	if err != nil {
		return errors.Wrap(err, "Can't export segments")
	}

	err = realized.exportMarkersToCSV(fnameMarkers, geomFormat)
	if err != nil {
		return errors.Wrap(err, "Can't export markers")
	}
	return nil
}

func newCSVWriter(fname string) (*os.File, *csv.Writer, error) {
	file, err := os.Create(fname)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't create file")
	}
	writer := csv.NewWriter(file)
	writer.Comma = ';'
	return file, writer, nil
}

// flushCSV writes buffered records and reports write errors
func flushCSV(writer *csv.Writer) error {
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrap(err, "Can't flush CSV data")
	}
	return nil
}

func (realized *RealizedAlignment) exportSegmentsToCSV(fname, geomFormat string) error {
	file, writer, err := newCSVWriter(fname)
	if err != nil {
		return err
	}
	defer file.Close()

	err = writer.Write([]string{"alignment", "idx", "name", "kind", "start_station", "end_station", "length_ft", "length_meters", "entry_bearing", "exit_bearing", "direction", "radius_ft", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for i := range realized.Segments {
		seg := &realized.Segments[i]
		direction, radius := "", ""
		if curve, ok := seg.Segment.(*CurveSegment); ok {
			direction = curve.Direction().String()
			radius = fmt.Sprintf("%f", curve.Radius())
		}
		err = writer.Write([]string{
			realized.Name,
			fmt.Sprintf("%d", i),
			seg.Segment.Name(),
			seg.Segment.Kind().String(),
			FormatStation(seg.Segment.StartStation()),
			FormatStation(seg.Segment.EndStation()),
			fmt.Sprintf("%f", seg.Span),
			fmt.Sprintf("%f", seg.LengthMeters()),
			fmt.Sprintf("%f", seg.EntryBearing),
			fmt.Sprintf("%f", seg.ExitBearing),
			direction,
			radius,
			PrepareGeometry(seg.Coords, geomFormat),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write segment")
		}
	}
	return flushCSV(writer)
}

func (realized *RealizedAlignment) exportMarkersToCSV(fname, geomFormat string) error {
	file, writer, err := newCSVWriter(fname)
	if err != nil {
		return err
	}
	defer file.Close()

	err = writer.Write([]string{"alignment", "kind", "name", "station", "bearing", "longitude", "latitude", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, marker := range realized.Markers(true, true) {
		err = writer.Write([]string{
			realized.Name,
			marker.Kind.String(),
			marker.Name,
			FormatStation(marker.Station),
			fmt.Sprintf("%f", marker.Bearing),
			fmt.Sprintf("%f", marker.Point.Lon),
			fmt.Sprintf("%f", marker.Point.Lat),
			preparePointGeometry(marker.Point, geomFormat),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write marker")
		}
	}
	return flushCSV(writer)
}

// ExportSectionsToCSV writes resolved track-type sections
func ExportSectionsToCSV(fname string, alignmentName string, sections []SectionCoords, geomFormat string) error {
	file, writer, err := newCSVWriter(fname)
	if err != nil {
		return err
	}
	defer file.Close()

	err = writer.Write([]string{"id", "alignment", "track_type", "start_station", "end_station", "length_ft", "color", "tooltip", "depth_info", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, sc := range sections {
		err = writer.Write([]string{
			sc.Section.ID.String(),
			alignmentName,
			sc.Section.TrackType,
			sc.Section.Start,
			sc.Section.End,
			fmt.Sprintf("%f", sc.Section.LengthFt()),
			sc.Section.Color,
			sc.Section.Tooltip,
			sc.Section.DepthInfo,
			PrepareGeometry(sc.Coords, geomFormat),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write section")
		}
	}
	return flushCSV(writer)
}

// ExportProbesToCSV writes section probes
func ExportProbesToCSV(fname string, section *TrackTypeSection, probes []SectionProbe) error {
	file, writer, err := newCSVWriter(fname)
	if err != nil {
		return err
	}
	defer file.Close()

	err = writer.Write([]string{"section_id", "track_type", "station", "track_elevation", "longitude", "latitude"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, probe := range probes {
		elevation := ""
		if probe.HasElevation {
			elevation = fmt.Sprintf("%.0f", probe.TrackElevation)
		}
		err = writer.Write([]string{
			section.ID.String(),
			section.TrackType,
			probe.Label,
			elevation,
			fmt.Sprintf("%f", probe.Point.Lon),
			fmt.Sprintf("%f", probe.Point.Lat),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write probe")
		}
	}
	return flushCSV(writer)
}
