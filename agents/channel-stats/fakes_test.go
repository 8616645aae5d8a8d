package channelstats

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"channel-stats/internal/models"
)

var errQuota = errors.New("quota exceeded")

type fakeSource struct {
	mu       sync.Mutex
	ids      []string
	listErr  error
	failIDs  map[string]bool
	calls    []string
	lastChan string
}

func (f *fakeSource) ListVideoIDs(_ context.Context, channelID string) ([]string, error) {
	f.lastChan = channelID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ids, nil
}

func (f *fakeSource) VideoDetails(_ context.Context, videoID string) (*models.VideoRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, videoID)
	f.mu.Unlock()

	if f.failIDs[videoID] {
		return nil, errQuota
	}
	n := int64(len(f.calls))
	return &models.VideoRecord{
		ID:          videoID,
		Title:       fmt.Sprintf("Video %s", videoID),
		PublishedAt: time.Date(2024, 5, int(n), 10, 0, 0, 0, time.UTC),
		Views:       100 * n,
		Likes:       10 * n,
		Comments:    n,
	}, nil
}

type fakeLookup struct {
	byName    map[string]string
	byKeyword map[string]string
	err       error
	nameCalls int
	kwCalls   int
}

func (f *fakeLookup) ChannelIDByUsername(_ context.Context, name string) (string, error) {
	f.nameCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.byName[name], nil
}

func (f *fakeLookup) SearchChannelID(_ context.Context, keyword string) (string, error) {
	f.kwCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.byKeyword[keyword], nil
}
