package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestVideoTrackerUnseenAndPersist(t *testing.T) {
	dir := t.TempDir()

	tracker, err := NewVideoTracker(dir, 0)
	if err != nil {
		t.Fatalf("NewVideoTracker() error: %v", err)
	}

	ids := []string{"a", "b", "c"}
	if got := tracker.Unseen(ids); len(got) != 3 {
		t.Fatalf("Unseen() on empty tracker = %v, want all IDs", got)
	}

	if err := tracker.MarkSeen([]string{"a", "b"}); err != nil {
		t.Fatalf("MarkSeen() error: %v", err)
	}

	reopened, err := NewVideoTracker(dir, 0)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	if reopened.Count() != 2 {
		t.Errorf("Count() = %d, want 2", reopened.Count())
	}

	got := reopened.Unseen([]string{"c", "a", "d"})
	want := []string{"c", "d"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Unseen() = %v, want %v", got, want)
	}
}

func TestVideoTrackerPrunesOldEntries(t *testing.T) {
	dir := t.TempDir()

	tracked := []TrackedVideo{
		{VideoID: "old", FirstSeenAt: time.Now().Add(-48 * time.Hour)},
		{VideoID: "recent", FirstSeenAt: time.Now().Add(-time.Hour)},
	}
	data, _ := json.Marshal(tracked)
	if err := os.WriteFile(filepath.Join(dir, "seen_videos.json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	tracker, err := NewVideoTracker(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewVideoTracker() error: %v", err)
	}

	if tracker.Count() != 1 {
		t.Errorf("Count() = %d, want 1 after pruning", tracker.Count())
	}
	if unseen := tracker.Unseen([]string{"old"}); len(unseen) != 1 {
		t.Error("pruned video should be reported as unseen")
	}
}

func TestVideoTrackerCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "seen_videos.json"), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewVideoTracker(dir, 0); err == nil {
		t.Error("expected error for corrupt tracker file")
	}
}
