package review

import (
	"fmt"

	"skelreview/internal/skeleton"
)

// OpKind distinguishes draw operations.
type OpKind int

// Draw operation kinds.
const (
	OpMarker OpKind = iota
	OpLine
)

// DrawOp is one overlay primitive in color-frame pixels. Markers use only
// X0/Y0.
type DrawOp struct {
	Kind   OpKind
	Body   int
	Joint  int
	X0, Y0 int
	X1, Y1 int
}

// Bones maps a joint index to the joint it connects to.
type Bones func(joint int) (parent int, ok bool)

// Overlay is the planned drawing for one frame. Skipped counts joints whose
// bone could not be drawn because the parent was missing.
type Overlay struct {
	Ops     []DrawOp
	Skipped int
}

// PlanOverlay returns a marker and a bone line for every joint of every body
// in frame. A frame outside the document returns an error wrapping
// skeleton.ErrOutOfRange and no operations.
func PlanOverlay(doc *skeleton.Document, frame int, bones Bones) (Overlay, error) {
	bodies, err := doc.Bodies(frame)
	if err != nil {
		return Overlay{}, err
	}
	if bones == nil {
		bones = skeleton.ParentJoint
	}
	var overlay Overlay
	for b, body := range bodies {
		if body == nil {
			return overlay, fmt.Errorf("%w: empty body slot %d in frame %d", skeleton.ErrOutOfRange, b, frame)
		}
		for j, joint := range body.Joints {
			x, y := joint.ColorPixel()
			overlay.Ops = append(overlay.Ops, DrawOp{Kind: OpMarker, Body: b, Joint: j, X0: x, Y0: y})

			p, ok := bones(j)
			if !ok {
				overlay.Skipped++
				continue
			}
			parent, err := body.Joint(p)
			if err != nil {
				overlay.Skipped++
				continue
			}
			px, py := parent.ColorPixel()
			overlay.Ops = append(overlay.Ops, DrawOp{Kind: OpLine, Body: b, Joint: j, X0: x, Y0: y, X1: px, Y1: py})
		}
	}
	return overlay, nil
}
