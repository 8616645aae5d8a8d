package channelstats

import (
	"context"
	"fmt"
	"log"
	"time"

	"channel-stats/agents/channel-stats/youtube"
	"channel-stats/internal/models"
	"channel-stats/shared/ai"
	"channel-stats/shared/config"
	"channel-stats/shared/email"
	"channel-stats/shared/report"
	"channel-stats/shared/scheduler"
	"channel-stats/shared/storage"
)

// ChannelStatsMetrics represents one watch run.
type ChannelStatsMetrics struct {
	Listed    int  `json:"listed"`
	Fetched   int  `json:"fetched"`
	Failed    int  `json:"failed"`
	NewVideos int  `json:"new_videos"`
	EmailSent bool `json:"email_sent"`
}

// GetSummary implements the scheduler.Metrics interface
func (m ChannelStatsMetrics) GetSummary() string {
	summary := fmt.Sprintf("fetched %d of %d videos, %d new", m.Fetched, m.Listed, m.NewVideos)
	if m.EmailSent {
		summary += ", report emailed"
	}
	return summary
}

// ReportGenerator builds the report from the videos file.
type ReportGenerator interface {
	Generate(ctx context.Context, channel string) (*models.Report, error)
}

// ReportSender delivers a finished report.
type ReportSender interface {
	SendReport(report *models.Report) error
}

// ChannelStatsAgent implements the scheduler.Agent interface: every run
// refreshes the videos file for one channel and rebuilds the report.
type ChannelStatsAgent struct {
	config    *config.Config
	channelID string
	source    VideoSource
	generator ReportGenerator
	sender    ReportSender
	tracker   *storage.VideoTracker
}

func NewChannelStatsAgent(cfg *config.Config, channelID string) *ChannelStatsAgent {
	return &ChannelStatsAgent{
		config:    cfg,
		channelID: channelID,
	}
}

func (a *ChannelStatsAgent) Name() string {
	return "Channel Stats"
}

func (a *ChannelStatsAgent) Initialize() error {
	log.Printf("Initializing %s...", a.Name())

	if a.channelID == "" {
		return fmt.Errorf("channel ID must be provided")
	}

	if a.source == nil {
		if err := a.config.ValidateWatch(); err != nil {
			return err
		}
		client, err := youtube.NewClient(context.Background(), &a.config.YouTube)
		if err != nil {
			return fmt.Errorf("failed to create YouTube client: %w", err)
		}
		a.source = client
		log.Println("YouTube client initialized")
	}

	if a.generator == nil {
		var insights report.InsightSource
		if a.config.AI.Enabled() {
			summarizer, err := ai.NewSummarizer(context.Background(), &a.config.AI)
			if err != nil {
				log.Printf("Warning: AI insights disabled: %v", err)
			} else {
				insights = summarizer
				log.Println("AI summarizer initialized")
			}
		}
		a.generator = report.NewGenerator(a.config.Files, insights)
	}

	if a.sender == nil && a.config.Email.Enabled() {
		a.sender = email.NewSender(&a.config.Email)
		log.Println("Email sender initialized")
	}

	if a.tracker == nil {
		tracker, err := storage.NewVideoTracker(a.config.Files.DataDir, 0)
		if err != nil {
			return fmt.Errorf("failed to create video tracker: %w", err)
		}
		a.tracker = tracker
		log.Printf("Video tracker initialized (%d videos tracked)", tracker.Count())
	}

	log.Printf("Watching channel %s", a.channelID)
	return nil
}

func (a *ChannelStatsAgent) RunOnce(ctx context.Context, events *scheduler.AgentEvents) error {
	startTime := time.Now()
	metrics := ChannelStatsMetrics{}

	critical := func(err error) error {
		if events != nil && events.OnCriticalFailure != nil {
			events.OnCriticalFailure(err, time.Since(startTime))
		}
		return err
	}
	partial := func(err error) {
		log.Printf("Warning: %v", err)
		if events != nil && events.OnPartialFailure != nil {
			events.OnPartialFailure(err, time.Since(startTime))
		}
	}

	log.Printf("Fetching videos for channel %s...", a.channelID)
	result := NewFetcher(a.source).FetchChannelVideos(ctx, a.channelID)
	metrics.Listed = result.Listed
	metrics.Fetched = len(result.Videos)
	metrics.Failed = result.Failed

	if len(result.Videos) == 0 {
		return critical(fmt.Errorf("no videos fetched for channel %s", a.channelID))
	}
	if result.Failed > 0 {
		partial(fmt.Errorf("%d of %d video details could not be fetched", result.Failed, result.Listed))
	}

	ids := make([]string, 0, len(result.Videos))
	for _, v := range result.Videos {
		ids = append(ids, v.ID)
	}
	fresh := a.tracker.Unseen(ids)
	metrics.NewVideos = len(fresh)
	for _, id := range fresh {
		log.Printf("New video: %s", id)
	}

	if _, err := storage.WriteVideosCSV(a.config.Files.VideosCSV, result.Videos); err != nil {
		return critical(fmt.Errorf("failed to write videos file: %w", err))
	}
	log.Printf("Data successfully written to %s.", a.config.Files.VideosCSV)

	rep, err := a.generator.Generate(ctx, a.channelID)
	if err != nil {
		return critical(fmt.Errorf("failed to generate report: %w", err))
	}
	rep.NewVideos = metrics.NewVideos

	// Only a completed report counts the videos as seen.
	if err := a.tracker.MarkSeen(ids); err != nil {
		log.Printf("Warning: Failed to mark videos as seen: %v", err)
	}

	if a.sender != nil {
		log.Println("Sending report email...")
		if err := a.sender.SendReport(rep); err != nil {
			partial(fmt.Errorf("failed to send email report: %w", err))
		} else {
			metrics.EmailSent = true
			log.Println("Email report sent successfully")
		}
	}

	duration := time.Since(startTime)
	if events != nil && events.OnSuccess != nil {
		events.OnSuccess(metrics, duration)
	}

	log.Printf("Run complete: %s", metrics.GetSummary())
	return nil
}
