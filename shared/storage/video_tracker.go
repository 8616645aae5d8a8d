package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// VideoTracker remembers which video IDs earlier watch runs have already
// seen, so a run can tell new uploads apart from the back catalogue.
type VideoTracker struct {
	filePath string
	seen     map[string]time.Time
	mu       sync.RWMutex
	maxAge   time.Duration
}

// TrackedVideo is the on-disk form of one seen video.
type TrackedVideo struct {
	VideoID     string    `json:"video_id"`
	FirstSeenAt time.Time `json:"first_seen_at"`
}

// NewVideoTracker opens (or starts) the tracker file inside dataDir.
// Entries older than maxAge are forgotten; zero keeps them forever.
func NewVideoTracker(dataDir string, maxAge time.Duration) (*VideoTracker, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	tracker := &VideoTracker{
		filePath: filepath.Join(dataDir, "seen_videos.json"),
		seen:     make(map[string]time.Time),
		maxAge:   maxAge,
	}

	if err := tracker.load(); err != nil {
		return nil, fmt.Errorf("failed to load video tracker data: %w", err)
	}
	tracker.prune(time.Now())

	return tracker, nil
}

// Unseen returns the IDs not recorded by a previous run, in input order.
func (vt *VideoTracker) Unseen(videoIDs []string) []string {
	vt.mu.RLock()
	defer vt.mu.RUnlock()

	var fresh []string
	for _, id := range videoIDs {
		if _, ok := vt.seen[id]; !ok {
			fresh = append(fresh, id)
		}
	}
	return fresh
}

// MarkSeen records the IDs and persists the tracker. IDs already present
// keep their original first-seen time.
func (vt *VideoTracker) MarkSeen(videoIDs []string) error {
	vt.mu.Lock()
	defer vt.mu.Unlock()

	now := time.Now()
	for _, id := range videoIDs {
		if _, ok := vt.seen[id]; !ok {
			vt.seen[id] = now
		}
	}
	return vt.save()
}

// Count returns the number of tracked videos.
func (vt *VideoTracker) Count() int {
	vt.mu.RLock()
	defer vt.mu.RUnlock()
	return len(vt.seen)
}

func (vt *VideoTracker) prune(now time.Time) {
	if vt.maxAge <= 0 {
		return
	}
	cutoff := now.Add(-vt.maxAge)
	for id, firstSeen := range vt.seen {
		if firstSeen.Before(cutoff) {
			delete(vt.seen, id)
		}
	}
}

func (vt *VideoTracker) load() error {
	file, err := os.Open(vt.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open tracker file: %w", err)
	}
	defer file.Close()

	var tracked []TrackedVideo
	if err := json.NewDecoder(file).Decode(&tracked); err != nil {
		return fmt.Errorf("failed to decode tracker data: %w", err)
	}

	for _, tv := range tracked {
		vt.seen[tv.VideoID] = tv.FirstSeenAt
	}
	return nil
}

func (vt *VideoTracker) save() error {
	tracked := make([]TrackedVideo, 0, len(vt.seen))
	for id, firstSeen := range vt.seen {
		tracked = append(tracked, TrackedVideo{VideoID: id, FirstSeenAt: firstSeen})
	}
	sort.Slice(tracked, func(i, j int) bool { return tracked[i].VideoID < tracked[j].VideoID })

	file, err := os.Create(vt.filePath)
	if err != nil {
		return fmt.Errorf("failed to create tracker file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tracked)
}
