package report

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"channel-stats/internal/models"
	"channel-stats/shared/config"
	"channel-stats/shared/storage"
)

// InsightSource writes a short narrative about a set of KPIs.
type InsightSource interface {
	Summarize(ctx context.Context, kpis []models.KPI) (string, error)
}

type Generator struct {
	files    config.FilesConfig
	insights InsightSource
	now      func() time.Time
}

// NewGenerator returns a generator reading and writing the configured files.
// insights may be nil.
func NewGenerator(files config.FilesConfig, insights InsightSource) *Generator {
	return &Generator{
		files:    files,
		insights: insights,
		now:      time.Now,
	}
}

// Generate loads the videos file, computes the KPIs, renders the chart and
// writes the document. The chart image is removed once embedded. Any error
// from the local data aborts the run; only the insights are best-effort.
func (g *Generator) Generate(ctx context.Context, channel string) (*models.Report, error) {
	table, err := storage.LoadVideoTable(g.files.VideosCSV)
	if err != nil {
		return nil, fmt.Errorf("failed to load videos: %w", err)
	}
	log.Printf("Loaded %d videos from %s", table.Len(), g.files.VideosCSV)
	for column, n := range table.Coerced {
		log.Printf("Warning: %d non-numeric value(s) in column %s were ignored", n, column)
	}

	report := &models.Report{
		GeneratedAt: g.now(),
		Channel:     channel,
		KPIs:        ComputeKPIs(table, g.now()),
		ChartFile:   g.files.ChartPNG,
	}

	for _, kpi := range report.KPIs {
		log.Println(kpi.String())
	}

	if g.insights != nil {
		text, err := g.insights.Summarize(ctx, report.KPIs)
		if err != nil {
			log.Printf("Warning: Failed to generate insights, continuing without them: %v", err)
		} else {
			report.Insights = text
		}
	}

	if err := RenderViewsChart(table, report.ChartFile); err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(report.ChartFile); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: Failed to remove chart %s: %v", report.ChartFile, err)
		}
	}()

	if err := WriteDocument(g.files.ReportDocx, report); err != nil {
		return nil, err
	}

	log.Printf("Report written to %s", g.files.ReportDocx)
	return report, nil
}
