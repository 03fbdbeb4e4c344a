package ledger

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"skelreview/internal/logging"
)

func TestLoadMissingLedgerIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "ledgers"), logging.NewNop())
	l, err := store.Load("A022")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !l.Empty() {
		t.Fatalf("expected empty ledger, got %v", l.Videos())
	}
}

func TestSaveLoadSaveIsByteIdentical(t *testing.T) {
	store := NewStore(t.TempDir(), logging.NewNop())
	l := FromLists([]string{"/db/c_rgb.avi", "/db/a_rgb.avi", "/db/c_rgb.avi"}, []string{"/db/c.skeleton", "/db/a.skeleton"})
	if err := store.Save("A031", l); err != nil {
		t.Fatalf("Save: %v", err)
	}
	videoPath, skeletonPath := store.Paths("A031")
	firstVideo := readFile(t, videoPath)
	firstSkeleton := readFile(t, skeletonPath)
	if string(firstVideo) != "/db/a_rgb.avi\n/db/c_rgb.avi\n" {
		t.Fatalf("unexpected video list %q", firstVideo)
	}

	loaded, err := store.Load("A031")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.Equal(l) {
		t.Fatalf("round trip changed ledger: %v", loaded.Videos())
	}
	if err := store.Save("A031", loaded); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if !bytes.Equal(firstVideo, readFile(t, videoPath)) || !bytes.Equal(firstSkeleton, readFile(t, skeletonPath)) {
		t.Fatal("expected second save to be byte-identical")
	}
}

func TestSaveMergedUnionsWithPersisted(t *testing.T) {
	store := NewStore(t.TempDir(), logging.NewNop())
	if err := store.Save("A022", FromLists([]string{"B", "A"}, []string{"b", "a"})); err != nil {
		t.Fatalf("Save: %v", err)
	}

	session := New()
	session.Exclude(Clip{Video: "C", Skeleton: "c"})
	session.Exclude(Clip{Video: "A", Skeleton: "a"})
	merged, err := store.SaveMerged("A022", session)
	if err != nil {
		t.Fatalf("SaveMerged: %v", err)
	}
	if got := merged.Videos(); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("unexpected merged videos %v", got)
	}

	loaded, err := store.Load("A022")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := loaded.Skeletons(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected persisted skeletons %v", got)
	}
	if v, _ := session.Len(); v != 2 {
		t.Fatalf("SaveMerged must not modify the session ledger, got %d videos", v)
	}
}

func TestUpdateAppliesUnderLock(t *testing.T) {
	store := NewStore(t.TempDir(), logging.NewNop())
	if err := store.Save("A022", FromLists([]string{"A", "B"}, []string{"a", "b"})); err != nil {
		t.Fatalf("Save: %v", err)
	}
	updated, err := store.Update("A022", func(l *Ledger) error {
		l.Include(Clip{Video: "A", Skeleton: "a"})
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !slices.Equal(updated.Videos(), []string{"B"}) {
		t.Fatalf("unexpected updated videos %v", updated.Videos())
	}
	loaded, err := store.Load("A022")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.Equal(updated) {
		t.Fatalf("persisted ledger %v differs from update %v", loaded.Videos(), updated.Videos())
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, logging.NewNop())
	videoPath, _ := store.Paths("A001")
	if err := os.WriteFile(videoPath, []byte("x.avi\n\n  \ny.avi\r\nx.avi\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := store.Load("A001")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := l.Videos(); !slices.Equal(got, []string{"x.avi", "y.avi"}) {
		t.Fatalf("unexpected videos %v", got)
	}
}

func TestStoreRejectsBadAction(t *testing.T) {
	store := NewStore(t.TempDir(), logging.NewNop())
	if _, err := store.Load(""); err == nil {
		t.Fatal("expected error for empty action")
	}
	if err := store.Save("../A001", New()); err == nil {
		t.Fatal("expected error for action with separator")
	}
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}
