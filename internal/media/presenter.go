package media

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"skelreview/internal/logging"
)

// Presenter shows frames in an ffplay window fed over stdin.
type Presenter struct {
	binary string
	title  string
	rate   int
	logger *slog.Logger

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	width  int
	height int
}

// NewPresenter constructs a presenter. The window opens on the first frame.
func NewPresenter(binary, title string, frameRate int, logger *slog.Logger) *Presenter {
	if strings.TrimSpace(binary) == "" {
		binary = "ffplay"
	}
	if frameRate <= 0 {
		frameRate = 30
	}
	return &Presenter{
		binary: binary,
		title:  title,
		rate:   frameRate,
		logger: logging.NewComponentLogger(logger, "presenter"),
	}
}

// Present writes f to the window, restarting ffplay when the frame size changes.
func (p *Presenter) Present(f *Frame) error {
	if f == nil {
		return errors.New("present: nil frame")
	}
	if p.cmd == nil || f.Width != p.width || f.Height != p.height {
		if err := p.start(f.Width, f.Height); err != nil {
			return err
		}
	}
	if _, err := p.stdin.Write(f.Pix); err != nil {
		return fmt.Errorf("present frame %d: %w", f.Index, err)
	}
	return nil
}

func (p *Presenter) start(width, height int) error {
	_ = p.Close()
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-window_title", p.title,
		"-f", "rawvideo",
		"-pixel_format", "rgb24",
		"-video_size", strconv.Itoa(width) + "x" + strconv.Itoa(height),
		"-framerate", strconv.Itoa(p.rate),
		"-i", "-",
	}
	cmd := exec.Command(p.binary, args...) //nolint:gosec
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("ffplay stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffplay: %w", err)
	}
	p.cmd = cmd
	p.stdin = stdin
	p.width = width
	p.height = height
	p.logger.Debug("window opened", logging.Int("width", width), logging.Int("height", height))
	return nil
}

// Close ends the window. It is safe to call when no window is open.
func (p *Presenter) Close() error {
	if p.cmd == nil {
		return nil
	}
	_ = p.stdin.Close()
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	_ = p.cmd.Wait()
	p.cmd = nil
	p.stdin = nil
	return nil
}
