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
)

func main() {
	if len(os.Args) != 3 {
		fmt.Println("Usage: resolve <name|keyword> <value>")
		os.Exit(1)
	}

	mode, err := channelstats.ParseMode(os.Args[1])
	if err != nil {
		fmt.Println("Invalid mode. Use 'name' or 'keyword'.")
		os.Exit(1)
	}
	value := os.Args[2]

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

	channelID, found := channelstats.NewResolver(client).Resolve(ctx, mode, value)
	fmt.Println(channelstats.ResolutionMessage(mode, value, channelID, found))
}
