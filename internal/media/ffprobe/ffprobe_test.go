package ffprobe

import (
	"errors"
	"math"
	"testing"
)

const sampleOutput = `{
  "streams": [
    {"index": 0, "codec_type": "audio", "codec_name": "pcm_s16le"},
    {"index": 1, "codec_type": "video", "codec_name": "mpeg4", "width": 1920, "height": 1080,
     "pix_fmt": "yuv420p", "r_frame_rate": "30/1", "avg_frame_rate": "30000/1001", "nb_frames": "103"}
  ],
  "format": {"filename": "S001C001P001R001A022_rgb.avi", "nb_streams": 2, "duration": "3.433333", "format_name": "avi"}
}`

func TestParseSelectsVideoStream(t *testing.T) {
	result, err := Parse([]byte(sampleOutput))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	stream, err := result.VideoStream()
	if err != nil {
		t.Fatalf("VideoStream returned error: %v", err)
	}
	if stream.Width != 1920 || stream.Height != 1080 {
		t.Fatalf("unexpected size %dx%d", stream.Width, stream.Height)
	}
	if stream.FrameCount() != 103 {
		t.Fatalf("unexpected frame count %d", stream.FrameCount())
	}
	if rate := stream.FrameRate(); math.Abs(rate-29.97) > 0.01 {
		t.Fatalf("unexpected frame rate %v", rate)
	}
	if result.DurationSeconds() != 3.433333 {
		t.Fatalf("unexpected duration %v", result.DurationSeconds())
	}
	if len(result.RawJSON()) == 0 {
		t.Fatal("expected raw JSON to be retained")
	}
}

func TestVideoStreamMissing(t *testing.T) {
	result := Result{Streams: []Stream{{CodecType: "audio"}}}
	if _, err := result.VideoStream(); !errors.Is(err, ErrNoVideoStream) {
		t.Fatalf("expected ErrNoVideoStream, got %v", err)
	}
	result = Result{Streams: []Stream{{CodecType: "video"}}}
	if _, err := result.VideoStream(); err == nil {
		t.Fatal("expected error for zero-sized stream")
	}
}

func TestStreamHelpersHandleInvalidNumbers(t *testing.T) {
	stream := Stream{RFrameRate: "0/0", AvgFrameRate: "bad", NBFrames: "N/A"}
	if stream.FrameRate() != 0 {
		t.Fatalf("expected frame rate 0, got %v", stream.FrameRate())
	}
	if stream.FrameCount() != 0 {
		t.Fatalf("expected frame count 0, got %d", stream.FrameCount())
	}
	if !math.IsNaN(Result{Format: Format{Duration: "bad"}}.DurationSeconds()) {
		t.Fatal("expected duration NaN")
	}
	if (Stream{RFrameRate: "25"}).FrameRate() != 25 {
		t.Fatal("expected plain rate to parse")
	}
}
