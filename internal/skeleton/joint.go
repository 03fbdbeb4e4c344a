package skeleton

import (
	"fmt"
	"math"
)

// JointFieldCount is the number of numeric fields on a joint line.
const JointFieldCount = 12

// TrackingState describes how confident the sensor is about a joint or body.
type TrackingState int

const (
	NotTracked TrackingState = iota
	Inferred
	Tracked
)

func (s TrackingState) String() string {
	switch s {
	case NotTracked:
		return "not_tracked"
	case Inferred:
		return "inferred"
	case Tracked:
		return "tracked"
	default:
		return fmt.Sprintf("tracking_state(%d)", int(s))
	}
}

// Joint is one tracked anatomical point of a body in a single frame.
type Joint struct {
	// X, Y, Z locate the joint in camera space, in meters.
	X, Y, Z float64
	// DepthX and DepthY locate the joint in the depth/IR frame.
	DepthX, DepthY float64
	// ColorX and ColorY locate the joint in the RGB frame.
	ColorX, ColorY float64

	OrientationW, OrientationX, OrientationY, OrientationZ float64

	TrackingState TrackingState
}

// NewJoint builds a Joint from the twelve values of a joint line.
func NewJoint(values []float64) (Joint, error) {
	if len(values) != JointFieldCount {
		return Joint{}, fmt.Errorf("joint vector has %d fields, want %d", len(values), JointFieldCount)
	}
	return Joint{
		X:             values[0],
		Y:             values[1],
		Z:             values[2],
		DepthX:        values[3],
		DepthY:        values[4],
		ColorX:        values[5],
		ColorY:        values[6],
		OrientationW:  values[7],
		OrientationX:  values[8],
		OrientationY:  values[9],
		OrientationZ:  values[10],
		TrackingState: TrackingState(int(values[11])),
	}, nil
}

// ColorPixel returns the joint position in the RGB frame rounded to the
// nearest pixel.
func (j Joint) ColorPixel() (int, int) {
	return roundPixel(j.ColorX), roundPixel(j.ColorY)
}

// maxPixel bounds rounded coordinates so far-off joints stay representable.
const maxPixel = 1 << 30

func roundPixel(v float64) int {
	if math.IsNaN(v) {
		return -maxPixel
	}
	return int(math.Max(-maxPixel, math.Min(maxPixel, v+0.5)))
}
