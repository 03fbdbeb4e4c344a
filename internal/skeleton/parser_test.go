package skeleton

import (
	"errors"
	"io"
	"strings"
	"testing"
	"unicode/utf8"
)

const bodyLine = "72057594037931101 0 1 1 1 1 0 -0.2111 0.03479 2"

func jointLine(colorX, colorY string) string {
	return "0.2181 0.1726 3.785 277.1 191.1 " + colorX + " " + colorY + " -0.2633 0.03 0.9632 -0.03 2"
}

func TestParseTwoFrameScenario(t *testing.T) {
	input := strings.Join([]string{
		"2",
		"1",
		bodyLine,
		"2",
		jointLine("1036.5", "519.4"),
		jointLine("1038.2", "418.9"),
		"0",
	}, "\n") + "\n"

	doc, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if doc.FrameCount() != 2 {
		t.Fatalf("expected 2 frames, got %d", doc.FrameCount())
	}
	count, err := doc.BodyCount(0)
	if err != nil || count != 1 {
		t.Fatalf("expected 1 body in frame 0, got %d (%v)", count, err)
	}
	body, err := doc.Body(0, 0)
	if err != nil {
		t.Fatalf("Body(0,0): %v", err)
	}
	if body.BodyID != 72057594037931101 {
		t.Fatalf("unexpected body id %d", body.BodyID)
	}
	if body.JointCount != 2 || len(body.Joints) != 2 || !body.Complete() {
		t.Fatalf("expected 2 joints, got count=%d len=%d", body.JointCount, len(body.Joints))
	}
	if body.LeanX != -0.2111 || body.TrackingState != Tracked {
		t.Fatalf("unexpected body info: %+v", body.BodyInfo)
	}
	if body.TemporalPhase != 0 {
		t.Fatalf("expected phase 0, got %v", body.TemporalPhase)
	}
	x, y := body.Joints[0].ColorPixel()
	if x != 1037 || y != 519 {
		t.Fatalf("unexpected color pixel (%d, %d)", x, y)
	}
	if count, err := doc.BodyCount(1); err != nil || count != 0 {
		t.Fatalf("expected empty frame 1, got %d (%v)", count, err)
	}
	if _, err := doc.Body(1, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for (1,0), got %v", err)
	}
	if _, err := doc.BodyCount(2); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for frame 2, got %v", err)
	}
}

func TestParseTemporalPhase(t *testing.T) {
	var lines []string
	lines = append(lines, "4")
	for f := 0; f < 4; f++ {
		lines = append(lines, "1", bodyLine, "1", jointLine("10", "20"))
	}
	doc, err := Parse(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	for f, want := range []float64{0, 0.25, 0.5, 0.75} {
		body, err := doc.Body(f, 0)
		if err != nil {
			t.Fatalf("Body(%d,0): %v", f, err)
		}
		if body.TemporalPhase != want {
			t.Fatalf("frame %d: phase %v want %v", f, body.TemporalPhase, want)
		}
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		wantLine int
		wantEOF  bool
	}{
		{
			name:     "joint line with eleven fields",
			lines:    []string{"1", "1", bodyLine, "1", "1 2 3 4 5 6 7 8 9 10 2"},
			wantLine: 5,
		},
		{
			name:     "joint line with thirteen fields",
			lines:    []string{"1", "1", bodyLine, "1", jointLine("1", "2") + " 7"},
			wantLine: 5,
		},
		{
			name:     "body line with nine fields",
			lines:    []string{"1", "1", "1 0 1 1 1 1 0 0.1 2", "0"},
			wantLine: 3,
		},
		{
			name:     "non numeric joint value",
			lines:    []string{"1", "1", bodyLine, "1", strings.Replace(jointLine("1", "2"), "3.785", "abc", 1)},
			wantLine: 5,
		},
		{
			name:     "non numeric frame count",
			lines:    []string{"two"},
			wantLine: 1,
		},
		{
			name:     "negative body count",
			lines:    []string{"1", "-1"},
			wantLine: 2,
		},
		{
			name:     "truncated before joints",
			lines:    []string{"1", "1", bodyLine, "2", jointLine("1", "2")},
			wantLine: 6,
			wantEOF:  true,
		},
		{
			name:     "huge frame count in truncated file",
			lines:    []string{"99999999999999999"},
			wantLine: 2,
			wantEOF:  true,
		},
		{
			name:     "huge body count in truncated file",
			lines:    []string{"1", "99999999999999999"},
			wantLine: 3,
			wantEOF:  true,
		},
		{
			name:     "huge joint count in truncated file",
			lines:    []string{"1", "1", bodyLine, "99999999999999999", jointLine("1", "2")},
			wantLine: 6,
			wantEOF:  true,
		},
		{
			name:     "nan color coordinate",
			lines:    []string{"1", "1", bodyLine, "1", jointLine("NaN", "1e12")},
			wantLine: 5,
		},
		{
			name:     "infinite depth coordinate",
			lines:    []string{"1", "1", bodyLine, "1", strings.Replace(jointLine("1", "2"), "277.1", "+Inf", 1)},
			wantLine: 5,
		},
		{
			name:     "nan body lean",
			lines:    []string{"1", "1", strings.Replace(bodyLine, "-0.2111", "nan", 1), "0"},
			wantLine: 3,
		},
		{
			name:     "empty stream",
			lines:    nil,
			wantLine: 1,
			wantEOF:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Parse(strings.NewReader(strings.Join(tc.lines, "\n")))
			if err == nil {
				t.Fatal("expected error")
			}
			if doc != nil {
				t.Fatal("expected no document on failure")
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FormatError, got %T: %v", err, err)
			}
			if fe.Line != tc.wantLine {
				t.Fatalf("expected line %d, got %d (%v)", tc.wantLine, fe.Line, err)
			}
			if tc.wantEOF && !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Fatalf("expected unexpected EOF, got %v", err)
			}
		})
	}
}

func TestParseFileWrapsPath(t *testing.T) {
	_, err := ParseFile("/nonexistent/S001C001P001R001A022.skeleton")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if IsFormatError(err) {
		t.Fatalf("missing file should not be a format error: %v", err)
	}
}

func TestNewJointRequiresTwelveFields(t *testing.T) {
	if _, err := NewJoint(make([]float64, 11)); err == nil {
		t.Fatal("expected error for 11 fields")
	}
	joint, err := NewJoint([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 1})
	if err != nil {
		t.Fatalf("NewJoint: %v", err)
	}
	if joint.ColorX != 6 || joint.OrientationZ != 11 || joint.TrackingState != Inferred {
		t.Fatalf("unexpected joint: %+v", joint)
	}
}

func TestColorPixelStaysBounded(t *testing.T) {
	joint := Joint{ColorX: 1e300, ColorY: -1e300}
	x, y := joint.ColorPixel()
	if x != maxPixel || y != -maxPixel {
		t.Fatalf("expected clamped pixel, got (%d, %d)", x, y)
	}
}

func TestFormatErrorTextKeepsRunesWhole(t *testing.T) {
	line := strings.Repeat("a", maxErrorText-1) + strings.Repeat("é", 10)
	_, err := Parse(strings.NewReader(line + "\n"))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if !utf8.ValidString(fe.Text) {
		t.Fatalf("truncated text is not valid UTF-8: %q", fe.Text)
	}
	if !strings.HasSuffix(fe.Text, "...") || len(fe.Text) > maxErrorText+3 {
		t.Fatalf("unexpected truncation: %q", fe.Text)
	}
}

func TestParentJointTable(t *testing.T) {
	// 1-based parent indices as published with the dataset.
	published := []int{2, 1, 21, 3, 21, 5, 6, 7, 21, 9, 10, 11, 1, 13, 14, 15, 1, 17, 18, 19, 2, 8, 8, 12, 12}
	for joint, parent := range published {
		got, ok := ParentJoint(joint)
		if !ok {
			t.Fatalf("joint %d not in table", joint)
		}
		if got != parent-1 {
			t.Fatalf("joint %d: parent %d want %d", joint, got, parent-1)
		}
	}
	if _, ok := ParentJoint(KinectJointCount); ok {
		t.Fatal("expected joint 25 to be outside the table")
	}
}
