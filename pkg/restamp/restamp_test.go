package restamp

import (
	"errors"
	"reflect"
	"testing"
)

type fakeTool struct {
	writes map[string]string
	failOn string
}

func (f *fakeTool) Write(path, timestamp string) error {
	if path == f.failOn {
		return errors.New("boom")
	}
	if f.writes == nil {
		f.writes = make(map[string]string)
	}
	f.writes[path] = timestamp
	return nil
}

type fakeReader struct {
	stamped map[string]bool
}

func (f fakeReader) HasTimestamp(path string) bool {
	return f.stamped[path]
}

func TestPlan(t *testing.T) {
	mapping := map[string]string{
		"photo1.jpg": "2012:05:18 16:09:00",
		"clip.mp4":   "2012:05:20 08:00:15",
		"ghost.png":  "2012:05:19 09:01:00",
	}
	index := map[string][]string{
		"photo1.jpg": {"album/photo1.jpg", "photo1.jpg"},
		"clip.mp4":   {"videos/clip.mp4"},
	}

	got := Plan(mapping, index)

	want := []Operation{
		{Filename: "clip.mp4", Path: "videos/clip.mp4", Timestamp: "2012:05:20 08:00:15"},
		{Filename: "ghost.png", Timestamp: "2012:05:19 09:01:00"},
		{Filename: "photo1.jpg", Path: "album/photo1.jpg", Timestamp: "2012:05:18 16:09:00"},
		{Filename: "photo1.jpg", Path: "photo1.jpg", Timestamp: "2012:05:18 16:09:00"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected plan\n got: %v\nwant: %v", got, want)
	}
}

func TestApply_Decisions(t *testing.T) {
	ops := []Operation{
		{Filename: "a.jpg", Path: "a.jpg", Timestamp: "2012:05:18 16:09:00"},
		{Filename: "b.jpg", Path: "b.jpg", Timestamp: "2012:05:19 10:00:00"},
		{Filename: "c.jpg", Timestamp: "2012:05:20 08:00:15"},
		{Filename: "d.jpg", Path: "d.jpg", Timestamp: "2012:05:21 11:30:00"},
	}

	tool := &fakeTool{failOn: "d.jpg"}
	reader := fakeReader{stamped: map[string]bool{"b.jpg": true}}

	decisions, summary, err := Apply(ops, Options{Tool: tool, Reader: reader})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantActions := []Action{ActionWritten, ActionSkippedStamped, ActionMissing, ActionFailed}
	for i, d := range decisions {
		if d.Action != wantActions[i] {
			t.Fatalf("decision %d: got %q, want %q", i, d.Action, wantActions[i])
		}
	}
	if decisions[3].Error == nil {
		t.Fatal("expected failed decision to carry an error")
	}

	wantSummary := Summary{Total: 4, Written: 1, Skipped: 1, Missing: 1, Failed: 1}
	if summary != wantSummary {
		t.Fatalf("unexpected summary\n got: %+v\nwant: %+v", summary, wantSummary)
	}

	if ts := tool.writes["a.jpg"]; ts != "2012:05:18 16:09:00" {
		t.Fatalf("unexpected write for a.jpg: %q", ts)
	}
	if _, ok := tool.writes["b.jpg"]; ok {
		t.Fatal("already-stamped file must not be written")
	}
}

func TestApply_Force(t *testing.T) {
	ops := []Operation{
		{Filename: "b.jpg", Path: "b.jpg", Timestamp: "2012:05:19 10:00:00"},
	}

	tool := &fakeTool{}
	reader := fakeReader{stamped: map[string]bool{"b.jpg": true}}

	_, summary, err := Apply(ops, Options{Tool: tool, Reader: reader, Force: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Written != 1 || summary.Skipped != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if _, ok := tool.writes["b.jpg"]; !ok {
		t.Fatal("force must write already-stamped files")
	}
}

func TestApply_DryRunNeedsNoTool(t *testing.T) {
	ops := []Operation{
		{Filename: "a.jpg", Path: "a.jpg", Timestamp: "2012:05:18 16:09:00"},
	}

	decisions, summary, err := Apply(ops, Options{DryRun: true, Reader: fakeReader{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decisions[0].Action != ActionDryRun {
		t.Fatalf("got %q, want %q", decisions[0].Action, ActionDryRun)
	}
	if summary.Written != 1 {
		t.Fatalf("dry-run writes should count as written, got %+v", summary)
	}
}

func TestApply_MissingToolIsAnError(t *testing.T) {
	if _, _, err := Apply(nil, Options{}); err == nil {
		t.Fatal("expected an error when no tool is configured outside dry-run")
	}
}

func TestExifTool_Args(t *testing.T) {
	tool := &ExifTool{Path: "/usr/bin/exiftool"}

	got := tool.Args("album/photo1.jpg", "2012:05:18 16:09:00")
	want := []string{
		"-DateTimeOriginal=2012:05:18 16:09:00",
		"-CreateDate=2012:05:18 16:09:00",
		"-ModifyDate=2012:05:18 16:09:00",
		"-overwrite_original",
		"album/photo1.jpg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected args\n got: %v\nwant: %v", got, want)
	}
}
