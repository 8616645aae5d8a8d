package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"channel-stats/shared/ai"
	"channel-stats/shared/config"
	"channel-stats/shared/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var insights report.InsightSource
	if cfg.AI.Enabled() {
		summarizer, err := ai.NewSummarizer(ctx, &cfg.AI)
		if err != nil {
			log.Printf("Warning: AI insights disabled: %v", err)
		} else {
			insights = summarizer
		}
	}

	// An optional argument labels the report with a channel.
	var channel string
	if len(os.Args) > 1 {
		channel = os.Args[1]
	}

	if _, err := report.NewGenerator(cfg.Files, insights).Generate(ctx, channel); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Printf("Report saved as %s\n", cfg.Files.ReportDocx)
}
