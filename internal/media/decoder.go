package media

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"skelreview/internal/logging"
	"skelreview/internal/media/ffprobe"
)

// Decoder opens clips as RGB24 frame streams through ffmpeg.
type Decoder struct {
	ffmpeg  string
	ffprobe string
	logger  *slog.Logger
}

// NewDecoder constructs a decoder using the given ffmpeg and ffprobe binaries.
func NewDecoder(ffmpegBinary, ffprobeBinary string, logger *slog.Logger) *Decoder {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = "ffmpeg"
	}
	return &Decoder{
		ffmpeg:  ffmpegBinary,
		ffprobe: ffprobeBinary,
		logger:  logging.NewComponentLogger(logger, "decoder"),
	}
}

// Video is an open decode of one clip. It is not safe for concurrent use.
type Video struct {
	path   string
	width  int
	height int
	rate   float64
	cmd    *exec.Cmd
	cancel context.CancelFunc
	stdout io.ReadCloser
	reader *bufio.Reader
	stderr bytes.Buffer
	index  int
	logger *slog.Logger

	waitOnce sync.Once
	waitErr  error
	closed   bool
}

// OpenVideo probes path for its geometry and starts decoding it.
func (d *Decoder) OpenVideo(ctx context.Context, path string) (*Video, error) {
	probe, err := ffprobe.Inspect(ctx, d.ffprobe, path)
	if err != nil {
		return nil, err
	}
	stream, err := probe.VideoStream()
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}

	decodeCtx, cancel := context.WithCancel(ctx)
	args := []string{
		"-hide_banner", "-nostdin", "-v", "error",
		"-i", path,
		"-map", "0:v:0",
		"-f", "rawvideo", "-pix_fmt", "rgb24",
		"-",
	}
	cmd := exec.CommandContext(decodeCtx, d.ffmpeg, args...) //nolint:gosec
	v := &Video{
		path:   path,
		width:  stream.Width,
		height: stream.Height,
		rate:   stream.FrameRate(),
		cmd:    cmd,
		cancel: cancel,
		logger: d.logger.With(logging.String(logging.FieldClip, path)),
	}
	cmd.Stderr = &v.stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}
	v.stdout = stdout
	v.reader = bufio.NewReaderSize(stdout, Size(stream.Width, stream.Height))
	v.logger.Debug("video opened",
		logging.Int("width", v.width),
		logging.Int("height", v.height),
		logging.Float64("frame_rate", v.rate),
		logging.Int("declared_frames", stream.FrameCount()),
	)
	return v, nil
}

// Width returns the frame width in pixels.
func (v *Video) Width() int { return v.width }

// Height returns the frame height in pixels.
func (v *Video) Height() int { return v.height }

// FrameRate returns the probed frame rate, or 0 when unknown.
func (v *Video) FrameRate() float64 { return v.rate }

// ReadFrame returns the next frame. It returns io.EOF at end of stream; a
// truncated trailing frame is treated as end of stream.
func (v *Video) ReadFrame() (*Frame, error) {
	if v.closed {
		return nil, io.EOF
	}
	frame := NewFrame(v.width, v.height)
	if _, err := io.ReadFull(v.reader, frame.Pix); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			if waitErr := v.wait(); waitErr != nil && v.index == 0 {
				return nil, fmt.Errorf("decode %s: %w: %s", v.path, waitErr, strings.TrimSpace(v.stderr.String()))
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				v.logger.Debug("dropping truncated trailing frame", logging.Int(logging.FieldFrame, v.index))
			}
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read frame %d: %w", v.index, err)
	}
	frame.Index = v.index
	v.index++
	return frame, nil
}

// Close stops ffmpeg and releases the pipe. It is safe to call repeatedly.
func (v *Video) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	v.cancel()
	_ = v.wait()
	return nil
}

func (v *Video) wait() error {
	v.waitOnce.Do(func() {
		v.waitErr = v.cmd.Wait()
	})
	return v.waitErr
}
