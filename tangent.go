package railalign

// GenerateTangent returns numPoints evenly spaced points of a straight line and its exit bearing.
//
// Only the end point is projected; intermediate points are linear blends of the two ends,
// so rounding does not compound along the line. Zero length gives duplicates of the start point.
// Exit bearing always equals bearingDeg.
func GenerateTangent(start GeoPoint, bearingDeg, lengthFt float64, numPoints int) ([]GeoPoint, float64) {
	if numPoints < 2 {
		numPoints = 2
	}
	end := Project(start, bearingDeg, lengthFt)
	coords := make([]GeoPoint, numPoints)
	for i := 0; i < numPoints; i++ {
		fraction := float64(i) / float64(numPoints-1)
		coords[i] = pointOnSegmentByFraction(start, end, fraction)
	}
	// Make ends exact
	coords[0] = start
	coords[numPoints-1] = end
	return coords, bearingDeg
}
