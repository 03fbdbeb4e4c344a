package media

import "math"

// DrawMarker paints a filled disc of radius centred on (x, y).
func DrawMarker(f *Frame, x, y, radius int, c Color) {
	if radius < 1 {
		f.Set(x, y, c)
		return
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= r2 {
				f.Set(x+dx, y+dy, c)
			}
		}
	}
}

// DrawLine paints a line from (x0, y0) to (x1, y1) with a square pen of the
// given width. The segment is clipped to the frame, widened by the pen, so
// the walk never leaves the visible area.
func DrawLine(f *Frame, x0, y0, x1, y1, width int, c Color) {
	x0, y0, x1, y1, ok := clipSegment(f, x0, y0, x1, y1, max(width, 1))
	if !ok {
		return
	}
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		pen(f, x0, y0, width, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipSegment trims the segment to the frame rectangle grown by pad on each
// side (Liang-Barsky). It reports false when nothing of the segment remains.
func clipSegment(f *Frame, x0, y0, x1, y1, pad int) (int, int, int, int, bool) {
	if f.Width <= 0 || f.Height <= 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY := -pad, -pad
	maxX, maxY := f.Width-1+pad, f.Height-1+pad
	fx0, fy0 := float64(x0), float64(y0)
	dx, dy := float64(x1)-fx0, float64(y1)-fy0

	// Each edge is (p, q, axis, bound); axis 0 is x.
	type edge struct {
		p, q  float64
		axis  int
		bound int
	}
	edges := [4]edge{
		{-dx, fx0 - float64(minX), 0, minX},
		{dx, float64(maxX) - fx0, 0, maxX},
		{-dy, fy0 - float64(minY), 1, minY},
		{dy, float64(maxY) - fy0, 1, maxY},
	}
	t0, t1 := 0.0, 1.0
	enter, leave := -1, -1
	for i, e := range edges {
		if e.p == 0 {
			if e.q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := e.q / e.p
		if e.p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0, enter = r, i
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1, leave = r, i
			}
		}
	}
	at := func(t float64, i int) (int, int) {
		x := int(math.Round(fx0 + t*dx))
		y := int(math.Round(fy0 + t*dy))
		if edges[i].axis == 0 {
			x = edges[i].bound
		} else {
			y = edges[i].bound
		}
		return clamp(x, minX, maxX), clamp(y, minY, maxY)
	}
	if enter >= 0 {
		x0, y0 = at(t0, enter)
	}
	if leave >= 0 {
		x1, y1 = at(t1, leave)
	}
	return x0, y0, x1, y1, true
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func pen(f *Frame, x, y, width int, c Color) {
	if width <= 1 {
		f.Set(x, y, c)
		return
	}
	lo := -(width - 1) / 2
	hi := lo + width
	for py := lo; py < hi; py++ {
		for px := lo; px < hi; px++ {
			f.Set(x+px, y+py, c)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Style sets the overlay geometry used by Canvas.
type Style struct {
	MarkerRadius int
	LineWidth    int
}

// Canvas draws overlay primitives with a fixed style and presents the result.
type Canvas struct {
	style     Style
	presenter *Presenter
}

// NewCanvas returns a canvas presenting through p.
func NewCanvas(style Style, p *Presenter) *Canvas {
	return &Canvas{style: style, presenter: p}
}

// DrawMarker paints a joint marker.
func (c *Canvas) DrawMarker(f *Frame, x, y int) {
	DrawMarker(f, x, y, c.style.MarkerRadius, MarkerColor)
}

// DrawLine paints a bone.
func (c *Canvas) DrawLine(f *Frame, x0, y0, x1, y1 int) {
	DrawLine(f, x0, y0, x1, y1, c.style.LineWidth, BoneColor)
}

// Present shows f.
func (c *Canvas) Present(f *Frame) error {
	return c.presenter.Present(f)
}

// Close shuts the presentation window.
func (c *Canvas) Close() error {
	return c.presenter.Close()
}
