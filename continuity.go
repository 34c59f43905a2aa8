package railalign

import (
	"github.com/paulmach/orb"
)

// Joint continuity of two neighbouring realized segments
type Joint struct {
	// Index of the segment which starts at this joint
	Index int
	// GapFeet distance between exit point of previous segment and entry point of next one
	GapFeet float64
	// BearingJumpDeg entry bearing of next segment minus exit bearing of previous one (non-zero for manual bearings)
	BearingJumpDeg float64
	// KinkDeg compass angle between last chord of previous segment and first chord of next one
	KinkDeg float64
}

// lastChord returns last two distinct points of line
func lastChord(line orb.LineString) (orb.LineString, bool) {
	last := line[len(line)-1]
	for i := len(line) - 2; i >= 0; i-- {
		if line[i] != last {
			return orb.LineString{line[i], last}, true
		}
	}
	return nil, false
}

// firstChord returns first two distinct points of line
func firstChord(line orb.LineString) (orb.LineString, bool) {
	first := line[0]
	for i := 1; i < len(line); i++ {
		if line[i] != first {
			return orb.LineString{first, line[i]}, true
		}
	}
	return nil, false
}

// Continuity reports joints between every pair of neighbouring segments
func (realized *RealizedAlignment) Continuity() []Joint {
	if len(realized.Segments) < 2 {
		return []Joint{}
	}
	origin := realized.AllCoords[0]
	joints := make([]Joint, 0, len(realized.Segments)-1)
	for i := 1; i < len(realized.Segments); i++ {
		prev, next := &realized.Segments[i-1], &realized.Segments[i]
		joint := Joint{
			Index:          i,
			GapFeet:        DistanceFeet(prev.ExitPoint, next.Coords[0]),
			BearingJumpDeg: next.EntryBearing - prev.ExitBearing,
		}
		prevChord, okPrev := lastChord(lineToLocal(origin, prev.Coords))
		nextChord, okNext := firstChord(lineToLocal(origin, next.Coords))
		if okPrev && okNext {
			// Local frame is X = East, Y = North: counter-clockwise there is bearing decrease
			joint.KinkDeg = -radiansTodegrees(angleBetweenLines(prevChord, nextChord))
		}
		joints = append(joints, joint)
	}
	return joints
}
