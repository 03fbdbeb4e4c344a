package media

import "fmt"

// BytesPerPixel is the stride of one packed RGB24 pixel.
const BytesPerPixel = 3

// Frame is one decoded video frame in packed RGB24.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
	Index  int
}

// NewFrame allocates a black frame.
func NewFrame(width, height int) *Frame {
	return &Frame{Width: width, Height: height, Pix: make([]byte, width*height*BytesPerPixel)}
}

// Size returns the number of bytes a width x height frame occupies.
func Size(width, height int) int {
	return width * height * BytesPerPixel
}

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

// Overlay colors.
var (
	MarkerColor = Color{G: 255}
	BoneColor   = Color{R: 255}
)

// At returns the color at (x, y).
func (f *Frame) At(x, y int) (Color, error) {
	if !f.inside(x, y) {
		return Color{}, fmt.Errorf("pixel (%d,%d) outside %dx%d frame", x, y, f.Width, f.Height)
	}
	i := (y*f.Width + x) * BytesPerPixel
	return Color{f.Pix[i], f.Pix[i+1], f.Pix[i+2]}, nil
}

// Set paints (x, y); points outside the frame are ignored.
func (f *Frame) Set(x, y int, c Color) {
	if !f.inside(x, y) {
		return
	}
	i := (y*f.Width + x) * BytesPerPixel
	f.Pix[i] = c.R
	f.Pix[i+1] = c.G
	f.Pix[i+2] = c.B
}

func (f *Frame) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height && len(f.Pix) >= Size(f.Width, f.Height)
}
