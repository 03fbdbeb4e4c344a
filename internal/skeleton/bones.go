package skeleton

// Kinect v2 joint indices.
const (
	SpineBase = iota
	SpineMid
	Neck
	Head
	ShoulderLeft
	ElbowLeft
	WristLeft
	HandLeft
	ShoulderRight
	ElbowRight
	WristRight
	HandRight
	HipLeft
	KneeLeft
	AnkleLeft
	FootLeft
	HipRight
	KneeRight
	AnkleRight
	FootRight
	SpineShoulder
	HandTipLeft
	ThumbLeft
	HandTipRight
	ThumbRight

	KinectJointCount
)

// parentJoints maps each joint to the joint it connects to when drawing the
// skeleton. SpineBase connects to SpineMid.
var parentJoints = [KinectJointCount]int{
	SpineBase:     SpineMid,
	SpineMid:      SpineBase,
	Neck:          SpineShoulder,
	Head:          Neck,
	ShoulderLeft:  SpineShoulder,
	ElbowLeft:     ShoulderLeft,
	WristLeft:     ElbowLeft,
	HandLeft:      WristLeft,
	ShoulderRight: SpineShoulder,
	ElbowRight:    ShoulderRight,
	WristRight:    ElbowRight,
	HandRight:     WristRight,
	HipLeft:       SpineBase,
	KneeLeft:      HipLeft,
	AnkleLeft:     KneeLeft,
	FootLeft:      AnkleLeft,
	HipRight:      SpineBase,
	KneeRight:     HipRight,
	AnkleRight:    KneeRight,
	FootRight:     AnkleRight,
	SpineShoulder: SpineMid,
	HandTipLeft:   HandLeft,
	ThumbLeft:     HandLeft,
	HandTipRight:  HandRight,
	ThumbRight:    HandRight,
}

// ParentJoint returns the joint index that joint connects to, or false when
// joint is outside the Kinect v2 layout.
func ParentJoint(joint int) (int, bool) {
	if joint < 0 || joint >= KinectJointCount {
		return 0, false
	}
	return parentJoints[joint], true
}
