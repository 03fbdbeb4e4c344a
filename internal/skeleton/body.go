package skeleton

import "fmt"

// BodyFieldCount is the number of numeric fields on a body metadata line.
const BodyFieldCount = 10

// BodyInfo is the metadata line that precedes the joints of a body.
type BodyInfo struct {
	BodyID              uint64
	ClippedEdges        int
	HandLeftConfidence  int
	HandLeftState       int
	HandRightConfidence int
	HandRightState      int
	IsRestricted        int
	LeanX               float64
	LeanY               float64
	TrackingState       TrackingState
}

// Body is a single tracked person in one frame.
type Body struct {
	BodyInfo

	// JointCount is the declared number of joints; len(Joints) matches it
	// once parsing completes.
	JointCount int
	// TemporalPhase is the frame index divided by the clip frame count.
	TemporalPhase float64
	Joints        []Joint
}

func newBody(info BodyInfo, jointCount int, phase float64) *Body {
	return &Body{
		BodyInfo:      info,
		JointCount:    jointCount,
		TemporalPhase: phase,
		Joints:        make([]Joint, 0, min(jointCount, KinectJointCount)),
	}
}

func (b *Body) appendJoint(j Joint) error {
	if len(b.Joints) >= b.JointCount {
		return fmt.Errorf("body %d already holds %d joints", b.BodyID, b.JointCount)
	}
	b.Joints = append(b.Joints, j)
	return nil
}

// Joint returns the joint at index i.
func (b *Body) Joint(i int) (Joint, error) {
	if i < 0 || i >= len(b.Joints) {
		return Joint{}, fmt.Errorf("%w: joint %d of %d", ErrOutOfRange, i, len(b.Joints))
	}
	return b.Joints[i], nil
}

// Complete reports whether every declared joint has been appended.
func (b *Body) Complete() bool {
	return len(b.Joints) == b.JointCount
}
