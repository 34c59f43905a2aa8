package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/LdDl/railalign"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

var (
	defFileName = flag.String("file", "", "Filename of JSON alignment definitions (env RAILALIGN_FILE)")
	out         = flag.String("out", "", "Filename of 'Comma-Separated Values' (CSV) formatted file. E.g.: if file name is 'yellow.csv' then 'yellow_<alignment>_segments.csv', 'yellow_<alignment>_markers.csv' and 'yellow_<alignment>_sections.csv' will be produced (env RAILALIGN_OUT)")
	geomFormat  = flag.String("geomf", "", "Format of output geometry. Expected values: wkt / geojson / polyline (env RAILALIGN_GEOMF)")
	osmOut      = flag.Bool("osm", false, "Write OSM XML file per alignment next to CSV files")
	geojsonOut  = flag.Bool("geojson", false, "Write GeoJSON FeatureCollection per alignment next to CSV files")
	pointStr    = flag.String("point", "", "External point 'lat,lon' to find closest approach for (e.g. geocoded address)")
	interval    = flag.Float64("interval", 5, "Station interval (feet) of section probes")
	verbose     = flag.Bool("verbose", false, "Print progress")
	logFile     = flag.String("logfile", "", "Log file (rotated). Logs go to stderr when empty")
	logLevel    = flag.String("loglevel", "info", "Log level: debug / info / warn / error")
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	logger := newLogger(*logFile, *logLevel)

	fname := valueOrEnv(*defFileName, "RAILALIGN_FILE", "alignments.json")
	outName := valueOrEnv(*out, "RAILALIGN_OUT", "alignments.csv")
	geomf := valueOrEnv(*geomFormat, "RAILALIGN_GEOMF", "wkt")

	st := time.Now()
	alignments, err := railalign.LoadDefinitions(fname, railalign.LoadOptions{Verbose: *verbose})
	if err != nil {
		logger.Error("Can't load definitions", slog.String("file", fname), slog.Any("err", err))
		os.Exit(1)
	}
	logger.Info("Definitions loaded", slog.String("file", fname), slog.Int("alignments", len(alignments)), slog.Duration("elapsed", time.Since(st)))

	realized, err := railalign.RealizeAll(context.Background(), alignments)
	if err != nil {
		logger.Error("Can't realize alignments", slog.Any("err", err))
		os.Exit(1)
	}

	var external *railalign.GeoPoint
	if *pointStr != "" {
		pt, err := railalign.ParseLatLon(*pointStr)
		if err != nil {
			logger.Error("Can't parse point", slog.String("point", *pointStr), slog.Any("err", err))
			os.Exit(1)
		}
		external = &pt
	}

	fnamePart := strings.Split(outName, ".csv") // to guarantee proper filename and its extension
	for i, alignment := range alignments {
		result := realized[i]
		prefix := fmt.Sprintf("%s_%s", fnamePart[0], slugify(alignment.Name()))
		err = export(alignment, result, prefix, geomf)
		if err != nil {
			logger.Error("Can't export alignment", slog.String("alignment", alignment.Name()), slog.Any("err", err))
			os.Exit(1)
		}
		logger.Info("Alignment exported",
			slog.String("alignment", alignment.Name()),
			slog.String("start", railalign.FormatStation(result.StartStation())),
			slog.String("end", railalign.FormatStation(result.EndStation())),
			slog.Int("segments", len(result.Segments)),
			slog.Int("points", len(result.AllCoords)),
			slog.String("prefix", prefix))

		for _, joint := range result.Continuity() {
			if joint.GapFeet > 1e-6 || joint.BearingJumpDeg != 0 {
				logger.Warn("Discontinuity between segments",
					slog.String("alignment", alignment.Name()),
					slog.Int("segment", joint.Index),
					slog.Float64("gap_ft", joint.GapFeet),
					slog.Float64("bearing_jump_deg", joint.BearingJumpDeg))
			}
		}

		if external != nil {
			approach, ok := result.ClosestApproach(*external)
			if !ok {
				continue
			}
			fmt.Printf("%s: closest approach at station %s, %.0f ft (%.0f m), %s\n", alignment.Name(), approach.Label, approach.DistanceFeet, approach.DistanceMeters, approach.Point)
		}
	}
	logger.Info("Done", slog.Duration("elapsed", time.Since(st)))
}

func export(alignment *railalign.Alignment, realized *railalign.RealizedAlignment, prefix, geomf string) error {
	err := realized.ExportToCSV(prefix+".csv", geomf)
	if err != nil {
		return errors.Wrap(err, "Can't export realized alignment")
	}

	sections := alignment.RenderTrackTypeSections(realized)
	err = railalign.ExportSectionsToCSV(prefix+"_sections.csv", alignment.Name(), sections, geomf)
	if err != nil {
		return errors.Wrap(err, "Can't export sections")
	}
	for _, sc := range sections {
		probes := realized.ProbeSection(sc.Section, *interval, alignment.TrackProfile())
		err = railalign.ExportProbesToCSV(fmt.Sprintf("%s_probes_%s.csv", prefix, sc.Section.ID), sc.Section, probes)
		if err != nil {
			return errors.Wrap(err, "Can't export section probes")
		}
	}

	if *osmOut {
		err = realized.ExportToOSM(prefix + ".osm")
		if err != nil {
			return errors.Wrap(err, "Can't export OSM")
		}
	}

	if *geojsonOut {
		markers := realized.Markers(true, true)
		for _, portal := range realized.LocatePortals(alignment) {
			markers = append(markers, portal.Marker())
		}
		b, err := realized.FeatureCollection(sections, markers).MarshalJSON()
		if err != nil {
			return errors.Wrap(err, "Can't marshal GeoJSON")
		}
		err = os.WriteFile(prefix+".geojson", b, 0644)
		if err != nil {
			return errors.Wrap(err, "Can't write GeoJSON")
		}
	}
	return nil
}

func valueOrEnv(value, env, fallback string) string {
	if value != "" {
		return value
	}
	if fromEnv := os.Getenv(env); fromEnv != "" {
		return fromEnv
	}
	return fallback
}

// slugify converts alignment name into file name part
func slugify(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "_") {
				sb.WriteRune('_')
			}
		}
	}
	return strings.Trim(sb.String(), "_")
}
