package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skelreview/internal/ledger"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// SkeletonText renders a well-formed skeleton file with the given number of
// frames, bodies per frame and joints per body. Joint j of frame f sits at
// color pixel (100+10j, 200+f).
func SkeletonText(frames, bodies, joints int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n", frames)
	for f := 0; f < frames; f++ {
		fmt.Fprintf(&b, "%d\n", bodies)
		for body := 0; body < bodies; body++ {
			fmt.Fprintf(&b, "%d 0 1 1 1 1 0 0.02 -0.1 2\n", 72057594037931100+body)
			fmt.Fprintf(&b, "%d\n", joints)
			for j := 0; j < joints; j++ {
				fmt.Fprintf(&b, "0.1 0.2 3.5 250.5 180.25 %d %d 0.9 0.01 0.02 0.03 2\n", 100+10*j, 200+f)
			}
		}
	}
	return b.String()
}

// WriteSkeleton writes a Kinect skeleton file with one 25-joint body per frame.
func WriteSkeleton(t testing.TB, path string, frames int) string {
	t.Helper()
	return WriteFile(t, path, SkeletonText(frames, 1, 25))
}

// WriteClip creates <stem>_rgb.avi and <stem>.skeleton in dir. The video is a
// placeholder; tests decode it through a fake video source.
func WriteClip(t testing.TB, dir, stem string, frames int) ledger.Clip {
	t.Helper()
	return ledger.Clip{
		Video:    WriteFile(t, filepath.Join(dir, stem+"_rgb.avi"), "RIFF"),
		Skeleton: WriteSkeleton(t, filepath.Join(dir, stem+".skeleton"), frames),
	}
}
