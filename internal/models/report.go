package models

import (
	"fmt"
	"time"
)

// KPI is a single scalar summary statistic.
type KPI struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Integer bool    `json:"integer"` // rendered without decimals
}

func (k KPI) String() string {
	if k.Integer {
		return fmt.Sprintf("%s: %.0f", k.Name, k.Value)
	}
	return fmt.Sprintf("%s: %.2f", k.Name, k.Value)
}

// Report is the derived aggregate embedded into the output document.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	Channel     string    `json:"channel,omitempty"`
	KPIs        []KPI     `json:"kpis"`
	Insights    string    `json:"insights,omitempty"`
	ChartFile   string    `json:"chart_file"`
	NewVideos   int       `json:"new_videos,omitempty"`
}
