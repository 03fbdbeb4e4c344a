package skeleton

import "fmt"

// Document is the parsed content of one skeleton file. Frames and bodies
// are indexed from zero in file order.
type Document struct {
	frames [][]*Body
}

// Up-front capacities are capped so a declared count never allocates more
// than the lines actually read justify.
const (
	maxPreallocFrames = 4096
	maxPreallocBodies = 6
)

func newDocument(frameCount int) *Document {
	return &Document{frames: make([][]*Body, 0, min(frameCount, maxPreallocFrames))}
}

// appendFrame opens the next frame.
func (d *Document) appendFrame(bodyCount int) {
	d.frames = append(d.frames, make([]*Body, 0, min(bodyCount, maxPreallocBodies)))
}

func (d *Document) place(frame, body int, b *Body) error {
	if frame < 0 || frame >= len(d.frames) {
		return fmt.Errorf("%w: frame %d of %d", ErrOutOfRange, frame, len(d.frames))
	}
	slots := d.frames[frame]
	if body != len(slots) {
		return fmt.Errorf("body %d placed out of order in frame %d (%d present)", body, frame, len(slots))
	}
	d.frames[frame] = append(slots, b)
	return nil
}

// FrameCount returns the number of frames declared by the file.
func (d *Document) FrameCount() int {
	if d == nil {
		return 0
	}
	return len(d.frames)
}

// BodyCount returns the number of bodies in frame f, or ErrOutOfRange.
func (d *Document) BodyCount(f int) (int, error) {
	if d == nil || f < 0 || f >= len(d.frames) {
		return 0, fmt.Errorf("%w: frame %d of %d", ErrOutOfRange, f, d.FrameCount())
	}
	return len(d.frames[f]), nil
}

// Body returns the body at (f, b).
func (d *Document) Body(f, b int) (*Body, error) {
	count, err := d.BodyCount(f)
	if err != nil {
		return nil, err
	}
	if b < 0 || b >= count {
		return nil, fmt.Errorf("%w: body %d of %d in frame %d", ErrOutOfRange, b, count, f)
	}
	return d.frames[f][b], nil
}

// Bodies returns the bodies of frame f in file order.
func (d *Document) Bodies(f int) ([]*Body, error) {
	if _, err := d.BodyCount(f); err != nil {
		return nil, err
	}
	out := make([]*Body, len(d.frames[f]))
	copy(out, d.frames[f])
	return out, nil
}

// Stats summarizes a document for reporting.
type Stats struct {
	Frames        int `json:"frames" yaml:"frames"`
	EmptyFrames   int `json:"empty_frames" yaml:"empty_frames"`
	MaxBodies     int `json:"max_bodies" yaml:"max_bodies"`
	TotalBodies   int `json:"total_bodies" yaml:"total_bodies"`
	TotalJoints   int `json:"total_joints" yaml:"total_joints"`
	DistinctIDs   int `json:"distinct_body_ids" yaml:"distinct_body_ids"`
	TrackedJoints int `json:"tracked_joints" yaml:"tracked_joints"`
}

// Stats walks the document once and returns its summary.
func (d *Document) Stats() Stats {
	stats := Stats{Frames: d.FrameCount()}
	if d == nil {
		return stats
	}
	ids := make(map[uint64]struct{})
	for _, bodies := range d.frames {
		if len(bodies) == 0 {
			stats.EmptyFrames++
		}
		if len(bodies) > stats.MaxBodies {
			stats.MaxBodies = len(bodies)
		}
		for _, body := range bodies {
			stats.TotalBodies++
			ids[body.BodyID] = struct{}{}
			stats.TotalJoints += len(body.Joints)
			for _, joint := range body.Joints {
				if joint.TrackingState == Tracked {
					stats.TrackedJoints++
				}
			}
		}
	}
	stats.DistinctIDs = len(ids)
	return stats
}
