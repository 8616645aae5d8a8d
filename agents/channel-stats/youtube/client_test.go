package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"channel-stats/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), &config.YouTubeConfig{
		APIKey:   "test-key",
		Endpoint: srv.URL + "/",
		PageSize: 2,
	})
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), &config.YouTubeConfig{})
	assert.True(t, errors.Is(err, config.ErrMissingCredentials))
}

func TestChannelIDByUsername(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/channels", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		switch r.URL.Query().Get("forUsername") {
		case "GoogleDevelopers":
			writeJSON(w, http.StatusOK, `{"items":[{"id":"UC_x5XG1OV2P6uZZ5FSM9Ttw"}]}`)
		default:
			writeJSON(w, http.StatusOK, `{"items":[]}`)
		}
	})
	client := newTestClient(t, mux)

	id, err := client.ChannelIDByUsername(context.Background(), "GoogleDevelopers")
	require.NoError(t, err)
	assert.Equal(t, "UC_x5XG1OV2P6uZZ5FSM9Ttw", id)

	id, err = client.ChannelIDByUsername(context.Background(), "nobody-here")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestSearchChannelIDReturnsTopHit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "channel", q.Get("type"))
		assert.Equal(t, "1", q.Get("maxResults"))
		if q.Get("q") == "golang" {
			writeJSON(w, http.StatusOK, `{"items":[{"id":{"kind":"youtube#channel","channelId":"UCgo"},"snippet":{"channelId":"UCgo","title":"The Go Programming Language"}}]}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"items":[]}`)
	})
	client := newTestClient(t, mux)

	id, err := client.SearchChannelID(context.Background(), "golang")
	require.NoError(t, err)
	assert.Equal(t, "UCgo", id)

	id, err = client.SearchChannelID(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestListVideoIDsFollowsPagination(t *testing.T) {
	pages := map[string]string{
		"":   `{"nextPageToken":"p2","items":[{"id":{"videoId":"v1"},"snippet":{"title":"One"}},{"id":{"videoId":"v2"},"snippet":{"title":"Two"}}]}`,
		"p2": `{"nextPageToken":"p3","items":[{"id":{"videoId":"v2"},"snippet":{"title":"Two"}},{"id":{"videoId":"v3"},"snippet":{"title":"Three"}}]}`,
		"p3": `{"items":[{"id":{"videoId":"v4"},"snippet":{"title":"Four"}}]}`,
	}
	var requests int

	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/search", func(w http.ResponseWriter, r *http.Request) {
		requests++
		q := r.URL.Query()
		assert.Equal(t, "UCchan", q.Get("channelId"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "date", q.Get("order"))
		assert.Equal(t, "2", q.Get("maxResults"))

		body, ok := pages[q.Get("pageToken")]
		if !ok {
			writeJSON(w, http.StatusBadRequest, `{"error":{"code":400,"message":"bad page token"}}`)
			return
		}
		writeJSON(w, http.StatusOK, body)
	})
	client := newTestClient(t, mux)

	ids, err := client.ListVideoIDs(context.Background(), "UCchan")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2", "v3", "v4"}, ids)
	assert.Equal(t, 3, requests)
}

func TestListVideoIDsEmptyChannel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/search", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"items":[]}`)
	})
	client := newTestClient(t, mux)

	ids, err := client.ListVideoIDs(context.Background(), "UCempty")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestVideoDetails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/videos", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.ElementsMatch(t, []string{"snippet", "statistics"}, q["part"])
		switch q.Get("id") {
		case "full":
			writeJSON(w, http.StatusOK, `{"items":[{"id":"full","snippet":{"title":"Full stats","publishedAt":"2024-03-01T12:00:00Z"},"statistics":{"viewCount":"1500","likeCount":"120","commentCount":"8"}}]}`)
		case "hidden":
			writeJSON(w, http.StatusOK, `{"items":[{"id":"hidden","snippet":{"title":"Likes hidden","publishedAt":"2024-03-02T08:30:00+02:00"},"statistics":{"viewCount":"42"}}]}`)
		case "quota":
			writeJSON(w, http.StatusForbidden, `{"error":{"code":403,"message":"quotaExceeded"}}`)
		default:
			writeJSON(w, http.StatusOK, `{"items":[]}`)
		}
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	t.Run("AllStatistics", func(t *testing.T) {
		video, err := client.VideoDetails(ctx, "full")
		require.NoError(t, err)
		assert.Equal(t, "full", video.ID)
		assert.Equal(t, "Full stats", video.Title)
		assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), video.PublishedAt)
		assert.Equal(t, int64(1500), video.Views)
		assert.Equal(t, int64(120), video.Likes)
		assert.Equal(t, int64(8), video.Comments)
	})

	t.Run("MissingCountsDefaultToZero", func(t *testing.T) {
		video, err := client.VideoDetails(ctx, "hidden")
		require.NoError(t, err)
		assert.Equal(t, int64(42), video.Views)
		assert.Zero(t, video.Likes)
		assert.Zero(t, video.Comments)
		assert.Equal(t, time.Date(2024, 3, 2, 6, 30, 0, 0, time.UTC), video.PublishedAt)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := client.VideoDetails(ctx, "gone")
		assert.True(t, errors.Is(err, ErrVideoNotFound))
	})

	t.Run("RemoteError", func(t *testing.T) {
		_, err := client.VideoDetails(ctx, "quota")
		require.Error(t, err)
		assert.Equal(t, "HTTP 403: quotaExceeded", DescribeError(err))
	})
}

func TestDescribeErrorPlain(t *testing.T) {
	assert.Equal(t, "boom", DescribeError(errors.New("boom")))
}
