package youtube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"channel-stats/internal/models"
	"channel-stats/shared/config"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// ErrVideoNotFound is returned when the details call yields no item for an ID.
var ErrVideoNotFound = errors.New("video not found")

type Client struct {
	service  *youtube.Service
	pageSize int64
}

// NewClient builds a YouTube Data API client. An API key is preferred; when
// only OAuth client credentials are configured the device flow is used.
func NewClient(ctx context.Context, cfg *config.YouTubeConfig) (*Client, error) {
	var opts []option.ClientOption

	switch {
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	case cfg.UsesOAuth():
		httpClient, err := oauthHTTPClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithHTTPClient(httpClient))
	default:
		return nil, config.ErrMissingCredentials
	}

	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	return &Client{
		service:  service,
		pageSize: pageSize,
	}, nil
}

// ChannelIDByUsername looks up a channel by its legacy username.
// An empty string with a nil error means no channel matched.
func (c *Client) ChannelIDByUsername(ctx context.Context, name string) (string, error) {
	resp, err := c.service.Channels.List([]string{"id"}).
		ForUsername(name).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to look up channel %q: %w", name, err)
	}

	if len(resp.Items) == 0 {
		return "", nil
	}
	return resp.Items[0].Id, nil
}

// SearchChannelID returns the channel of the single top search hit for keyword.
// The top hit is not guaranteed to be the channel the caller meant.
func (c *Client) SearchChannelID(ctx context.Context, keyword string) (string, error) {
	resp, err := c.service.Search.List([]string{"snippet"}).
		Q(keyword).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to search channels for %q: %w", keyword, err)
	}

	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return "", nil
	}
	return resp.Items[0].Snippet.ChannelId, nil
}

// ListVideoIDs pages through the channel's videos, newest first, until no
// continuation token remains. IDs repeated across pages are kept once.
func (c *Client) ListVideoIDs(ctx context.Context, channelID string) ([]string, error) {
	call := c.service.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		Type("video").
		Order("date").
		MaxResults(c.pageSize)

	var ids []string
	seen := make(map[string]bool)
	pages := 0

	err := call.Pages(ctx, func(resp *youtube.SearchListResponse) error {
		pages++
		for _, item := range resp.Items {
			if item.Id == nil || item.Id.VideoId == "" {
				continue
			}
			videoID := item.Id.VideoId
			if seen[videoID] {
				continue
			}
			seen[videoID] = true
			ids = append(ids, videoID)

			title := ""
			if item.Snippet != nil {
				title = item.Snippet.Title
			}
			log.Printf("Found video: %s (ID: %s)", title, videoID)
		}
		return nil
	})
	if err != nil {
		return ids, fmt.Errorf("failed to list videos for channel %s: %w", channelID, err)
	}

	log.Printf("Listed %d videos for channel %s across %d page(s)", len(ids), channelID, pages)
	return ids, nil
}

// VideoDetails fetches snippet and statistics for a single video.
// Like and comment counts that the API omits are left at zero.
func (c *Client) VideoDetails(ctx context.Context, videoID string) (*models.VideoRecord, error) {
	resp, err := c.service.Videos.List([]string{"snippet", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch details for video ID %s: %w", videoID, err)
	}

	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video ID %s: %w", videoID, ErrVideoNotFound)
	}

	return toVideoRecord(resp.Items[0])
}

func toVideoRecord(item *youtube.Video) (*models.VideoRecord, error) {
	if item.Snippet == nil {
		return nil, fmt.Errorf("video ID %s: response has no snippet", item.Id)
	}

	publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("video ID %s: invalid publishedAt %q: %w", item.Id, item.Snippet.PublishedAt, err)
	}

	record := &models.VideoRecord{
		ID:          item.Id,
		Title:       item.Snippet.Title,
		PublishedAt: publishedAt.UTC(),
	}

	if item.Statistics != nil {
		record.Views = int64(item.Statistics.ViewCount)
		record.Likes = int64(item.Statistics.LikeCount)
		record.Comments = int64(item.Statistics.CommentCount)
	}

	return record, nil
}

// DescribeError renders a remote failure for log output, including the HTTP
// status when the API returned one.
func DescribeError(err error) string {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		msg := strings.TrimSpace(apiErr.Message)
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Sprintf("HTTP %d: %s", apiErr.Code, msg)
	}
	return err.Error()
}
