package ledger

import (
	"slices"
	"testing"
)

func TestExcludeThenIncludeRestoresLedger(t *testing.T) {
	l := FromLists([]string{"/db/a_rgb.avi"}, []string{"/db/a.skeleton"})
	before := l.Clone()

	clip := Clip{Video: "/db/b_rgb.avi", Skeleton: "/db/b.skeleton"}
	if !l.Exclude(clip) {
		t.Fatal("expected exclude to add paths")
	}
	if !l.Contains(clip) {
		t.Fatal("expected ledger to contain clip")
	}
	if !l.Include(clip) {
		t.Fatal("expected include to remove paths")
	}
	if !l.Equal(before) {
		t.Fatalf("expected ledger restored, got videos=%v skeletons=%v", l.Videos(), l.Skeletons())
	}
}

func TestExcludeIsIdempotent(t *testing.T) {
	l := New()
	clip := Clip{Video: "v.avi", Skeleton: "v.skeleton"}
	l.Exclude(clip)
	if l.Exclude(clip) {
		t.Fatal("expected second exclude to be a no-op")
	}
	if v, s := l.Len(); v != 1 || s != 1 {
		t.Fatalf("expected 1/1 entries, got %d/%d", v, s)
	}
}

func TestMergeIsSetUnion(t *testing.T) {
	persisted := FromLists([]string{"B", "A", "B"}, []string{"b", "a", "a"})
	session := FromLists([]string{"C", "A"}, []string{"c"})

	session.Merge(persisted)
	if got := session.Videos(); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("unexpected videos %v", got)
	}
	if got := session.Skeletons(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected skeletons %v", got)
	}
}

func TestContainsMatchesEitherPath(t *testing.T) {
	l := FromLists([]string{"v1.avi"}, []string{"s2.skeleton"})
	if !l.Contains(Clip{Video: "v1.avi", Skeleton: "other"}) {
		t.Fatal("expected match on video path")
	}
	if !l.Contains(Clip{Video: "other", Skeleton: "s2.skeleton"}) {
		t.Fatal("expected match on skeleton path")
	}
	if l.Contains(Clip{Video: "x", Skeleton: "y"}) {
		t.Fatal("unexpected match")
	}
}

func TestPathSetIgnoresBlankAndTrims(t *testing.T) {
	s := NewPathSet("  a ", "", "a", "\t")
	if s.Len() != 1 || !s.Contains("a") {
		t.Fatalf("unexpected set %v", s.Sorted())
	}
	if s.Remove("missing") {
		t.Fatal("expected remove of missing path to report false")
	}
}
