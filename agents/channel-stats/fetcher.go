package channelstats

import (
	"context"
	"log"

	"channel-stats/agents/channel-stats/youtube"
	"channel-stats/internal/models"
)

// VideoSource is the part of the YouTube client the fetcher needs.
type VideoSource interface {
	ListVideoIDs(ctx context.Context, channelID string) ([]string, error)
	VideoDetails(ctx context.Context, videoID string) (*models.VideoRecord, error)
}

// FetchResult is the outcome of one channel fetch.
type FetchResult struct {
	Videos []*models.VideoRecord
	Listed int // distinct video IDs returned by the search pages
	Failed int // videos whose details call failed and were omitted
}

type Fetcher struct {
	source VideoSource
}

func NewFetcher(source VideoSource) *Fetcher {
	return &Fetcher{source: source}
}

// FetchChannelVideos collects every video of a channel, newest first. A
// listing failure yields an empty result; a details failure drops only that
// video. Nothing is retried.
func (f *Fetcher) FetchChannelVideos(ctx context.Context, channelID string) *FetchResult {
	result := &FetchResult{}

	ids, err := f.source.ListVideoIDs(ctx, channelID)
	if err != nil {
		log.Printf("An error occurred while fetching videos: %s", youtube.DescribeError(err))
		return result
	}
	result.Listed = len(ids)

	for i, videoID := range ids {
		log.Printf("Fetching details for video %d/%d (ID: %s)", i+1, len(ids), videoID)

		video, err := f.source.VideoDetails(ctx, videoID)
		if err != nil {
			log.Printf("Failed to fetch details for video ID %s: %s", videoID, youtube.DescribeError(err))
			result.Failed++
			continue
		}

		log.Printf("Video details retrieved: %s", video.Title)
		result.Videos = append(result.Videos, video)
	}

	if result.Failed > 0 {
		log.Printf("Fetched %d of %d videos (%d failed)", len(result.Videos), result.Listed, result.Failed)
	}
	return result
}
