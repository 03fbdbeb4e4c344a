package skeleton

import (
	"bufio"
	"io"
	"strconv"
)

// Write serializes doc in the skeleton file grammar.
func Write(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	line := make([]byte, 0, 256)

	writeInt := func(n int) error {
		line = strconv.AppendInt(line[:0], int64(n), 10)
		line = append(line, '\n')
		_, err := bw.Write(line)
		return err
	}

	if err := writeInt(doc.FrameCount()); err != nil {
		return err
	}
	for f := 0; f < doc.FrameCount(); f++ {
		bodies := doc.frames[f]
		if err := writeInt(len(bodies)); err != nil {
			return err
		}
		for _, body := range bodies {
			line = appendBodyInfo(line[:0], body.BodyInfo)
			if _, err := bw.Write(line); err != nil {
				return err
			}
			if err := writeInt(len(body.Joints)); err != nil {
				return err
			}
			for _, joint := range body.Joints {
				line = appendJoint(line[:0], joint)
				if _, err := bw.Write(line); err != nil {
					return err
				}
			}
		}
	}
	return bw.Flush()
}

func appendBodyInfo(dst []byte, info BodyInfo) []byte {
	dst = strconv.AppendUint(dst, info.BodyID, 10)
	for _, v := range []int{
		info.ClippedEdges,
		info.HandLeftConfidence,
		info.HandLeftState,
		info.HandRightConfidence,
		info.HandRightState,
		info.IsRestricted,
	} {
		dst = append(dst, ' ')
		dst = strconv.AppendInt(dst, int64(v), 10)
	}
	dst = appendFloat(dst, info.LeanX)
	dst = appendFloat(dst, info.LeanY)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(info.TrackingState), 10)
	return append(dst, '\n')
}

func appendJoint(dst []byte, j Joint) []byte {
	values := [...]float64{
		j.X, j.Y, j.Z,
		j.DepthX, j.DepthY,
		j.ColorX, j.ColorY,
		j.OrientationW, j.OrientationX, j.OrientationY, j.OrientationZ,
	}
	for i, v := range values {
		if i == 0 {
			dst = strconv.AppendFloat(dst, v, 'g', -1, 64)
			continue
		}
		dst = appendFloat(dst, v)
	}
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(j.TrackingState), 10)
	return append(dst, '\n')
}

func appendFloat(dst []byte, v float64) []byte {
	dst = append(dst, ' ')
	return strconv.AppendFloat(dst, v, 'g', -1, 64)
}
