package ledger

import (
	"errors"
	"slices"
)

// ErrIncludeNotAllowed is returned when a clip is re-included outside a
// review of the excluded clips.
var ErrIncludeNotAllowed = errors.New("include is only available when reviewing excluded clips")

// Clip identifies an excluded clip by its video and skeleton paths.
type Clip struct {
	Video    string `json:"video" yaml:"video"`
	Skeleton string `json:"skeleton" yaml:"skeleton"`
}

// Ledger is the set of clips excluded for one action class.
type Ledger struct {
	videos    *PathSet
	skeletons *PathSet
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{videos: NewPathSet(), skeletons: NewPathSet()}
}

// FromLists builds a ledger from persisted video and skeleton path lists.
// Duplicates and blank lines are dropped.
func FromLists(videos, skeletons []string) *Ledger {
	return &Ledger{videos: NewPathSet(videos...), skeletons: NewPathSet(skeletons...)}
}

// Exclude records clip and reports whether either path was new.
func (l *Ledger) Exclude(clip Clip) bool {
	addedVideo := l.videos.Insert(clip.Video)
	addedSkeleton := l.skeletons.Insert(clip.Skeleton)
	return addedVideo || addedSkeleton
}

// Include removes clip by identity and reports whether anything was removed.
func (l *Ledger) Include(clip Clip) bool {
	removedVideo := l.videos.Remove(clip.Video)
	removedSkeleton := l.skeletons.Remove(clip.Skeleton)
	return removedVideo || removedSkeleton
}

// Contains reports whether either path of clip is excluded.
func (l *Ledger) Contains(clip Clip) bool {
	if l == nil {
		return false
	}
	return l.videos.Contains(clip.Video) || l.skeletons.Contains(clip.Skeleton)
}

// Merge unions other into l.
func (l *Ledger) Merge(other *Ledger) {
	if other == nil {
		return
	}
	l.videos.Union(other.videos)
	l.skeletons.Union(other.skeletons)
}

// Videos returns the excluded video paths in sorted order.
func (l *Ledger) Videos() []string {
	return l.videos.Sorted()
}

// Skeletons returns the excluded skeleton paths in sorted order.
func (l *Ledger) Skeletons() []string {
	return l.skeletons.Sorted()
}

// Len returns the number of excluded videos and skeleton files.
func (l *Ledger) Len() (videos, skeletons int) {
	if l == nil {
		return 0, 0
	}
	return l.videos.Len(), l.skeletons.Len()
}

// Empty reports whether nothing is excluded.
func (l *Ledger) Empty() bool {
	v, s := l.Len()
	return v == 0 && s == 0
}

// Clone returns an independent copy of l.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{videos: l.videos.Clone(), skeletons: l.skeletons.Clone()}
}

// Equal reports whether both ledgers hold the same paths.
func (l *Ledger) Equal(other *Ledger) bool {
	return slices.Equal(l.Videos(), other.Videos()) && slices.Equal(l.Skeletons(), other.Skeletons())
}
