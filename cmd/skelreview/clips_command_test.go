package main

import (
	"encoding/json"
	"testing"

	"skelreview/internal/ledger"
	"skelreview/internal/testsupport"
)

func writeThreeClips(t *testing.T, env *cliTestEnv) []ledger.Clip {
	t.Helper()
	dir := env.cfg.ClipDir()
	return []ledger.Clip{
		testsupport.WriteClip(t, dir, "S001C001P001R001A022", 3),
		testsupport.WriteClip(t, dir, "S001C001P001R002A022", 3),
		testsupport.WriteClip(t, dir, "S001C002P004R001A022", 3),
	}
}

func TestClipsListsWorkingList(t *testing.T) {
	env := setupCLITestEnv(t)
	clips := writeThreeClips(t, env)
	testsupport.SeedLedger(t, testsupport.NewLedgerStore(env.cfg), "A022", clips[1])

	out, _, err := runCLI(t, []string{"clips"}, env.configPath)
	if err != nil {
		t.Fatalf("clips: %v", err)
	}
	requireContains(t, out, "S001C001P001R001A022")
	requireContains(t, out, "3 all clips (1 excluded)")

	out, _, err = runCLI(t, []string{"clips", "--mode", "good", "--format", "json"}, env.configPath)
	if err != nil {
		t.Fatalf("clips --mode good: %v", err)
	}
	var views []clipView
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("decode clips json: %v\n%s", err, out)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 good clips, got %d", len(views))
	}
	if views[1].Video != clips[2].Video || views[1].Excluded {
		t.Fatalf("unexpected second good clip %+v", views[1])
	}
	if views[1].ID == nil || views[1].ID.Performer != 4 {
		t.Fatalf("expected parsed clip id, got %+v", views[1].ID)
	}

	out, _, err = runCLI(t, []string{"clips", "--mode", "bad"}, env.configPath)
	if err != nil {
		t.Fatalf("clips --mode bad: %v", err)
	}
	requireContains(t, out, "1 bad clips (1 excluded)")
}

func TestClipsRejectsUnknownFormat(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"clips", "--format", "xml"}, env.configPath)
	if err == nil {
		t.Fatal("expected format error")
	}
	requireContains(t, err.Error(), "--format")
}

func TestClipsEmptyDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"clips"}, env.configPath)
	if err != nil {
		t.Fatalf("clips: %v", err)
	}
	requireContains(t, out, "No all clips in")
}
