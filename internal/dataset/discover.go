package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"skelreview/internal/ledger"
	"skelreview/internal/logging"
)

// ErrPairMismatch reports differing numbers of videos and skeleton files.
var ErrPairMismatch = errors.New("video and skeleton counts differ")

// videoSuffix is the marker NTU appends to RGB video stems.
const videoSuffix = "_rgb"

// List returns the sorted video and skeleton paths directly inside dir.
// Extensions match case-insensitively; subdirectories are ignored.
func List(dir, videoExt, skeletonExt string) (videos, skeletons []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read clip directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		switch {
		case strings.EqualFold(ext, videoExt):
			videos = append(videos, filepath.Join(dir, name))
		case strings.EqualFold(ext, skeletonExt):
			skeletons = append(skeletons, filepath.Join(dir, name))
		}
	}
	slices.Sort(videos)
	slices.Sort(skeletons)
	return videos, skeletons, nil
}

// Pair zips index-aligned video and skeleton lists into clips. A clip whose
// stems disagree is still paired; the mismatch is logged so the operator can
// fix the directory.
func Pair(videos, skeletons []string, logger *slog.Logger) ([]ledger.Clip, error) {
	if len(videos) != len(skeletons) {
		return nil, fmt.Errorf("%w: %d videos, %d skeleton files", ErrPairMismatch, len(videos), len(skeletons))
	}
	clips := make([]ledger.Clip, len(videos))
	for i := range videos {
		clips[i] = ledger.Clip{Video: videos[i], Skeleton: skeletons[i]}
		if Stem(videos[i]) != Stem(skeletons[i]) && logger != nil {
			logging.WarnWithContext(logger, "clip names disagree", "clip_pair_mismatch",
				logging.Int(logging.FieldClipIndex, i),
				logging.String("video", videos[i]),
				logging.String("skeleton", skeletons[i]),
				logging.String(logging.FieldErrorHint, "check the directory for a missing or extra file"),
				logging.String(logging.FieldImpact, "overlay may not match the video"),
			)
		}
	}
	return clips, nil
}

// Discover lists and pairs the clips in dir.
func Discover(dir, videoExt, skeletonExt string, logger *slog.Logger) ([]ledger.Clip, error) {
	videos, skeletons, err := List(dir, videoExt, skeletonExt)
	if err != nil {
		return nil, err
	}
	clips, err := Pair(videos, skeletons, logger)
	if err != nil {
		return nil, fmt.Errorf("pair clips in %s: %w", dir, err)
	}
	if logger != nil {
		logger.Debug("clips discovered", logging.String("dir", dir), logging.Int("count", len(clips)))
	}
	return clips, nil
}

// Stem returns the clip name of a video or skeleton path: the base name
// without extension or the RGB marker.
func Stem(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSuffix(base, videoSuffix)
}

// Find returns the clip whose video or skeleton matches ref. ref may be
// either file path or a bare clip name.
func Find(clips []ledger.Clip, ref string) (ledger.Clip, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ledger.Clip{}, false
	}
	name := Stem(ref)
	for _, clip := range clips {
		if clip.Video == ref || clip.Skeleton == ref {
			return clip, true
		}
	}
	for _, clip := range clips {
		if Stem(clip.Video) == name || Stem(clip.Skeleton) == name {
			return clip, true
		}
	}
	return ledger.Clip{}, false
}
