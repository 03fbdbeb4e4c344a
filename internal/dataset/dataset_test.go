package dataset_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"skelreview/internal/config"
	"skelreview/internal/dataset"
	"skelreview/internal/ledger"
	"skelreview/internal/logging"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func fiveClips(t *testing.T) (string, []ledger.Clip) {
	t.Helper()
	dir := t.TempDir()
	var clips []ledger.Clip
	for _, stem := range []string{
		"S001C001P001R001A022",
		"S001C001P001R002A022",
		"S001C002P001R001A022",
		"S002C001P003R001A022",
		"S003C003P008R002A022",
	} {
		clips = append(clips, ledger.Clip{
			Video:    touch(t, dir, stem+"_rgb.avi"),
			Skeleton: touch(t, dir, stem+".skeleton"),
		})
	}
	return dir, clips
}

func TestDiscoverPairsSortedFiles(t *testing.T) {
	dir, want := fiveClips(t)
	touch(t, dir, "notes.txt")
	if err := os.Mkdir(filepath.Join(dir, "nested.avi"), 0o755); err != nil {
		t.Fatal(err)
	}

	clips, err := dataset.Discover(dir, ".avi", ".skeleton", logging.NewNop())
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(clips) != len(want) {
		t.Fatalf("expected %d clips, got %d", len(want), len(clips))
	}
	for i := range want {
		if clips[i] != want[i] {
			t.Fatalf("clip %d: got %+v want %+v", i, clips[i], want[i])
		}
	}
}

func TestDiscoverRejectsUnevenLists(t *testing.T) {
	dir, _ := fiveClips(t)
	touch(t, dir, "S009C001P001R001A022_rgb.avi")

	_, err := dataset.Discover(dir, ".avi", ".skeleton", logging.NewNop())
	if !errors.Is(err, dataset.ErrPairMismatch) {
		t.Fatalf("expected ErrPairMismatch, got %v", err)
	}
}

func TestDiscoverMissingDirectory(t *testing.T) {
	if _, err := dataset.Discover(filepath.Join(t.TempDir(), "A099"), ".avi", ".skeleton", nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestSelectByMode(t *testing.T) {
	_, clips := fiveClips(t)
	excluded := ledger.New()
	excluded.Exclude(clips[1])
	excluded.Exclude(ledger.Clip{Video: clips[3].Video})
	excluded.Exclude(ledger.Clip{Video: "/elsewhere/S099C001P001R001A022_rgb.avi", Skeleton: "/elsewhere/S099C001P001R001A022.skeleton"})

	tests := []struct {
		mode string
		want []ledger.Clip
	}{
		{config.ModeAll, clips},
		{config.ModeGood, []ledger.Clip{clips[0], clips[2], clips[4]}},
		{config.ModeBad, []ledger.Clip{clips[1], clips[3]}},
	}
	for _, tc := range tests {
		t.Run(tc.mode, func(t *testing.T) {
			got, err := dataset.Select(tc.mode, clips, excluded)
			if err != nil {
				t.Fatalf("Select returned error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d clips, got %d: %+v", len(tc.want), len(got), got)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("clip %d: got %+v want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}

	if _, err := dataset.Select("sometimes", clips, excluded); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestSelectWithNilLedger(t *testing.T) {
	_, clips := fiveClips(t)
	good, err := dataset.Select(config.ModeGood, clips, nil)
	if err != nil || len(good) != len(clips) {
		t.Fatalf("good with nil ledger: %d clips, err=%v", len(good), err)
	}
	bad, err := dataset.Select(config.ModeBad, clips, nil)
	if err != nil || len(bad) != 0 {
		t.Fatalf("bad with nil ledger: %d clips, err=%v", len(bad), err)
	}
}

func TestParseClipID(t *testing.T) {
	id, err := dataset.ParseClipID("/data/A022/S001C002P003R002A022_rgb.avi")
	if err != nil {
		t.Fatalf("ParseClipID returned error: %v", err)
	}
	want := dataset.ClipID{Setup: 1, Camera: 2, Performer: 3, Replication: 2, Action: 22}
	if id != want {
		t.Fatalf("got %+v want %+v", id, want)
	}
	if id.String() != "S001C002P003R002A022" {
		t.Fatalf("unexpected String(): %q", id.String())
	}
	if _, err := dataset.ParseClipID("clip.skeleton"); err == nil {
		t.Fatal("expected error for unrecognised name")
	}
}

func TestStemAndActionLabel(t *testing.T) {
	if got := dataset.Stem("/x/S001C001P001R001A031_rgb.avi"); got != "S001C001P001R001A031" {
		t.Fatalf("unexpected video stem %q", got)
	}
	if got := dataset.Stem("S001C001P001R001A031.skeleton"); got != "S001C001P001R001A031" {
		t.Fatalf("unexpected skeleton stem %q", got)
	}
	if got := dataset.ActionLabel(7); got != "A007" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestFindMatchesPathOrName(t *testing.T) {
	_, clips := fiveClips(t)
	got, ok := dataset.Find(clips, clips[2].Skeleton)
	if !ok || got != clips[2] {
		t.Fatalf("find by skeleton path: %+v ok=%v", got, ok)
	}
	got, ok = dataset.Find(clips, "S002C001P003R001A022_rgb.avi")
	if !ok || got != clips[3] {
		t.Fatalf("find by video name: %+v ok=%v", got, ok)
	}
	if _, ok := dataset.Find(clips, "S009C001P001R001A022"); ok {
		t.Fatal("expected unknown clip to be missing")
	}
}
