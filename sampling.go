package railalign

const (
	// DefaultTangentPoints number of points generated along a tangent
	DefaultTangentPoints = 20
	// DefaultSpiralSteps number of steps along a spiral (steps + 1 points)
	DefaultSpiralSteps = 100
	// DefaultArcSteps number of steps along a circular arc (steps + 1 points)
	DefaultArcSteps = 100
)

// Sampling controls density of generated coordinates
type Sampling struct {
	TangentPoints int
	SpiralSteps   int
	ArcSteps      int
}

// DefaultSampling returns sampling used unless alignment is created with WithSampling
func DefaultSampling() Sampling {
	return Sampling{
		TangentPoints: DefaultTangentPoints,
		SpiralSteps:   DefaultSpiralSteps,
		ArcSteps:      DefaultArcSteps,
	}
}

// normalized replaces non-positive values with defaults. Tangents need at least two points.
func (sampling Sampling) normalized() Sampling {
	if sampling.TangentPoints < 2 {
		sampling.TangentPoints = DefaultTangentPoints
	}
	if sampling.SpiralSteps < 1 {
		sampling.SpiralSteps = DefaultSpiralSteps
	}
	if sampling.ArcSteps < 1 {
		sampling.ArcSteps = DefaultArcSteps
	}
	return sampling
}
