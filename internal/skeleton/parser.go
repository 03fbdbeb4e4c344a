package skeleton

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const maxLineBytes = 1 << 20

// ParseFile opens path and parses it as a skeleton file.
func ParseFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open skeleton: %w", err)
	}
	defer file.Close()

	doc, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Parse reads a complete skeleton document from r. Content after the last
// declared frame is ignored.
func Parse(r io.Reader) (*Document, error) {
	p := &parser{scanner: bufio.NewScanner(r)}
	p.scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	return p.document()
}

type parser struct {
	scanner *bufio.Scanner
	line    int
}

func (p *parser) document() (*Document, error) {
	frameCount, err := p.count("frame count")
	if err != nil {
		return nil, err
	}
	doc := newDocument(frameCount)
	for f := 0; f < frameCount; f++ {
		bodyCount, err := p.count(fmt.Sprintf("body count for frame %d", f))
		if err != nil {
			return nil, err
		}
		doc.appendFrame(bodyCount)
		phase := float64(f) / float64(frameCount)
		for b := 0; b < bodyCount; b++ {
			body, err := p.body(f, b, phase)
			if err != nil {
				return nil, err
			}
			if err := doc.place(f, b, body); err != nil {
				return nil, &FormatError{Line: p.line, Expected: "body slot in file order", Err: err}
			}
		}
	}
	return doc, nil
}

func (p *parser) body(f, b int, phase float64) (*Body, error) {
	fields, text, err := p.fields(BodyFieldCount, fmt.Sprintf("%d body fields (frame %d, body %d)", BodyFieldCount, f, b))
	if err != nil {
		return nil, err
	}
	info, err := parseBodyInfo(fields)
	if err != nil {
		return nil, &FormatError{Line: p.line, Expected: "numeric body fields", Text: clip(text), Err: err}
	}
	jointCount, err := p.count(fmt.Sprintf("joint count (frame %d, body %d)", f, b))
	if err != nil {
		return nil, err
	}
	body := newBody(info, jointCount, phase)
	for j := 0; j < jointCount; j++ {
		joint, err := p.joint(f, b, j)
		if err != nil {
			return nil, err
		}
		if err := body.appendJoint(joint); err != nil {
			return nil, &FormatError{Line: p.line, Expected: "declared joint count", Err: err}
		}
	}
	return body, nil
}

func (p *parser) joint(f, b, j int) (Joint, error) {
	expected := fmt.Sprintf("%d joint fields (frame %d, body %d, joint %d)", JointFieldCount, f, b, j)
	fields, text, err := p.fields(JointFieldCount, expected)
	if err != nil {
		return Joint{}, err
	}
	values := make([]float64, len(fields))
	for i, field := range fields {
		v, err := parseFinite(field)
		if err != nil {
			return Joint{}, &FormatError{Line: p.line, Expected: expected, Text: clip(text), Err: err}
		}
		values[i] = v
	}
	if _, err := strconv.Atoi(fields[JointFieldCount-1]); err != nil {
		return Joint{}, &FormatError{Line: p.line, Expected: "integer joint tracking state", Text: clip(text), Err: err}
	}
	joint, err := NewJoint(values)
	if err != nil {
		return Joint{}, &FormatError{Line: p.line, Expected: expected, Text: clip(text), Err: err}
	}
	return joint, nil
}

func (p *parser) count(expected string) (int, error) {
	fields, text, err := p.fields(1, expected)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, &FormatError{Line: p.line, Expected: expected, Text: clip(text), Err: err}
	}
	if n < 0 {
		return 0, &FormatError{Line: p.line, Expected: "non-negative " + expected, Text: clip(text)}
	}
	return n, nil
}

// fields reads the next line and splits it into exactly want fields.
func (p *parser) fields(want int, expected string) ([]string, string, error) {
	if !p.scanner.Scan() {
		cause := p.scanner.Err()
		if cause == nil {
			cause = io.ErrUnexpectedEOF
		}
		return nil, "", &FormatError{Line: p.line + 1, Expected: expected, Err: cause}
	}
	p.line++
	text := p.scanner.Text()
	fields := strings.Fields(text)
	if len(fields) != want {
		return nil, text, &FormatError{
			Line:     p.line,
			Expected: expected,
			Text:     clip(text),
			Err:      fmt.Errorf("found %d fields", len(fields)),
		}
	}
	return fields, text, nil
}

func parseBodyInfo(fields []string) (BodyInfo, error) {
	if len(fields) != BodyFieldCount {
		return BodyInfo{}, fmt.Errorf("body vector has %d fields, want %d", len(fields), BodyFieldCount)
	}
	var info BodyInfo
	var err error
	if info.BodyID, err = strconv.ParseUint(fields[0], 10, 64); err != nil {
		return BodyInfo{}, fmt.Errorf("body id: %w", err)
	}
	ints := []*int{
		&info.ClippedEdges,
		&info.HandLeftConfidence,
		&info.HandLeftState,
		&info.HandRightConfidence,
		&info.HandRightState,
		&info.IsRestricted,
	}
	for i, dst := range ints {
		if *dst, err = strconv.Atoi(fields[i+1]); err != nil {
			return BodyInfo{}, fmt.Errorf("field %d: %w", i+2, err)
		}
	}
	if info.LeanX, err = parseFinite(fields[7]); err != nil {
		return BodyInfo{}, fmt.Errorf("lean x: %w", err)
	}
	if info.LeanY, err = parseFinite(fields[8]); err != nil {
		return BodyInfo{}, fmt.Errorf("lean y: %w", err)
	}
	state, err := strconv.Atoi(fields[9])
	if err != nil {
		return BodyInfo{}, fmt.Errorf("tracking state: %w", err)
	}
	info.TrackingState = TrackingState(state)
	return info, nil
}

// parseFinite parses a float field and rejects NaN and infinities, which
// strconv accepts.
func parseFinite(field string) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", field)
	}
	return v, nil
}
