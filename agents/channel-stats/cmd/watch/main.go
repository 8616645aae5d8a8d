package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	channelstats "channel-stats/agents/channel-stats"
	"channel-stats/shared/config"
	"channel-stats/shared/scheduler"
)

func main() {
	var channelID string
	once := false
	for _, arg := range os.Args[1:] {
		switch {
		case arg == "--once":
			once = true
		case channelID == "":
			channelID = arg
		default:
			fmt.Println("Usage: watch <channel_id> [--once]")
			os.Exit(1)
		}
	}
	if channelID == "" {
		fmt.Println("Usage: watch <channel_id> [--once]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context that responds to signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	agent := channelstats.NewChannelStatsAgent(cfg, channelID)
	s := scheduler.New(cfg, agent)

	if once {
		fmt.Println("Running once...")
		if err := agent.Initialize(); err != nil {
			log.Fatalf("Failed to initialize agent: %v", err)
		}

		if err := s.RunOnce(ctx); err != nil {
			log.Fatalf("Failed to run: %v", err)
		}
		return
	}

	fmt.Println("Starting scheduler...")
	if err := s.Start(ctx, true); err != nil && ctx.Err() == nil {
		log.Fatalf("Scheduler failed: %v", err)
	}
}
