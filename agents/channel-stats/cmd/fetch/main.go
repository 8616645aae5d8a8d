package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	channelstats "channel-stats/agents/channel-stats"
	"channel-stats/agents/channel-stats/youtube"
	"channel-stats/shared/config"
	"channel-stats/shared/storage"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: fetch <channel_id>")
		os.Exit(1)
	}
	channelID := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.ValidateYouTube(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client, err := youtube.NewClient(ctx, &cfg.YouTube)
	if err != nil {
		log.Fatalf("Failed to create YouTube client: %v", err)
	}

	result := channelstats.NewFetcher(client).FetchChannelVideos(ctx, channelID)

	written, err := storage.WriteVideosCSV(cfg.Files.VideosCSV, result.Videos)
	if err != nil {
		log.Fatalf("Failed to write %s: %v", cfg.Files.VideosCSV, err)
	}
	if !written {
		fmt.Println("No data to write to file.")
		return
	}
	fmt.Printf("Data successfully written to %s.\n", cfg.Files.VideosCSV)
}
