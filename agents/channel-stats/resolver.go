package channelstats

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"channel-stats/agents/channel-stats/youtube"
)

// ErrInvalidMode is returned for a lookup mode other than name or keyword.
var ErrInvalidMode = errors.New("invalid mode: use 'name' or 'keyword'")

type LookupMode string

const (
	ModeName    LookupMode = "name"
	ModeKeyword LookupMode = "keyword"
)

// ParseMode accepts "name" or "keyword" in any case.
func ParseMode(s string) (LookupMode, error) {
	switch mode := LookupMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ModeName, ModeKeyword:
		return mode, nil
	default:
		return "", ErrInvalidMode
	}
}

// ChannelLookup is the part of the YouTube client the resolver needs.
type ChannelLookup interface {
	ChannelIDByUsername(ctx context.Context, name string) (string, error)
	SearchChannelID(ctx context.Context, keyword string) (string, error)
}

type Resolver struct {
	lookup ChannelLookup
}

func NewResolver(lookup ChannelLookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve issues exactly one lookup and returns the channel ID, or false when
// nothing matched. Remote errors are logged and reported as no match.
func (r *Resolver) Resolve(ctx context.Context, mode LookupMode, value string) (string, bool) {
	var (
		channelID string
		err       error
	)

	switch mode {
	case ModeName:
		channelID, err = r.lookup.ChannelIDByUsername(ctx, value)
	case ModeKeyword:
		channelID, err = r.lookup.SearchChannelID(ctx, value)
	default:
		log.Printf("Unsupported lookup mode %q", mode)
		return "", false
	}

	if err != nil {
		log.Printf("An error occurred: %s", youtube.DescribeError(err))
		return "", false
	}
	return channelID, channelID != ""
}

// ResolutionMessage is the line printed to the user for a lookup outcome.
func ResolutionMessage(mode LookupMode, value, channelID string, found bool) string {
	if found {
		return fmt.Sprintf("Channel ID for '%s': %s", value, channelID)
	}
	return fmt.Sprintf("No channel found for the specified %s '%s'.", mode, value)
}
