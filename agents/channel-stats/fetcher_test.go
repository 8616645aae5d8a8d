package channelstats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchChannelVideos(t *testing.T) {
	src := &fakeSource{ids: []string{"v1", "v2", "v3"}}

	result := NewFetcher(src).FetchChannelVideos(context.Background(), "UC123")

	assert.Equal(t, "UC123", src.lastChan)
	assert.Equal(t, 3, result.Listed)
	assert.Zero(t, result.Failed)
	require.Len(t, result.Videos, 3)
	for i, id := range []string{"v1", "v2", "v3"} {
		assert.Equal(t, id, result.Videos[i].ID)
	}
}

func TestFetchChannelVideosOmitsFailedVideo(t *testing.T) {
	src := &fakeSource{
		ids:     []string{"v1", "v2", "v3"},
		failIDs: map[string]bool{"v2": true},
	}

	result := NewFetcher(src).FetchChannelVideos(context.Background(), "UC123")

	assert.Equal(t, []string{"v1", "v2", "v3"}, src.calls, "every listed video is requested once")
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Videos, 2)
	assert.Equal(t, "v1", result.Videos[0].ID)
	assert.Equal(t, "v3", result.Videos[1].ID)
}

func TestFetchChannelVideosListingError(t *testing.T) {
	src := &fakeSource{ids: []string{"v1"}, listErr: errQuota}

	result := NewFetcher(src).FetchChannelVideos(context.Background(), "UC123")

	assert.Empty(t, result.Videos)
	assert.Zero(t, result.Listed)
	assert.Empty(t, src.calls)
}

func TestFetchChannelVideosEmptyChannel(t *testing.T) {
	result := NewFetcher(&fakeSource{}).FetchChannelVideos(context.Background(), "UCempty")

	assert.Empty(t, result.Videos)
	assert.Zero(t, result.Failed)
}
