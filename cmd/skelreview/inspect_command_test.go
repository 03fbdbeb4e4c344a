package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"skelreview/internal/testsupport"
)

func TestInspectJSONReport(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteSkeleton(t, filepath.Join(env.baseDir, "S001C002P003R004A022.skeleton"), 4)

	out, _, err := runCLI(t, []string{"inspect", path, "--frames", "--format", "json"}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var report inspectReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode inspect json: %v\n%s", err, out)
	}
	if report.Stats.Frames != 4 || report.Stats.TotalJoints != 100 || report.Stats.DistinctIDs != 1 {
		t.Fatalf("unexpected stats %+v", report.Stats)
	}
	if report.Clip == nil || report.Clip.Camera != 2 || report.Clip.Replication != 4 {
		t.Fatalf("unexpected clip id %+v", report.Clip)
	}
	if len(report.Frames) != 4 || len(report.Frames[0].Bodies) != 1 {
		t.Fatalf("unexpected frames %+v", report.Frames)
	}
	body := report.Frames[0].Bodies[0]
	if body.Joints != 25 || body.Tracked != 25 || body.TrackingState != "tracked" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestInspectTableReport(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteSkeleton(t, filepath.Join(env.baseDir, "clip.skeleton"), 2)

	out, _, err := runCLI(t, []string{"inspect", path}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "Skeleton: "+path)
	requireContains(t, out, "Tracked joints")
}

func TestInspectMalformedFile(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteFile(t, filepath.Join(env.baseDir, "bad.skeleton"), "2\n1\nnot a body line\n")
	_, _, err := runCLI(t, []string{"inspect", path}, env.configPath)
	if err == nil {
		t.Fatal("expected parse error")
	}
	requireContains(t, err.Error(), "skeleton line")
}
