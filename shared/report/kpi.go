package report

import (
	"math"
	"sort"
	"time"

	"channel-stats/internal/models"
	"channel-stats/shared/storage"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// KPI names, in report order.
const (
	KPITotalVideos         = "Total Videos"
	KPITotalViews          = "Total Views"
	KPITotalLikes          = "Total Likes"
	KPITotalComments       = "Total Comments"
	KPIAvgViews            = "Average Views per Video"
	KPIAvgLikes            = "Average Likes per Video"
	KPIAvgComments         = "Average Comments per Video"
	KPIMostViews           = "Most Views"
	KPITopFivePercentViews = "Top 5% Average Views"
	KPIAvgAgeDays          = "Average Video Age (in days)"
	KPILikesPerView        = "Average Likes per View"
	KPICommentsPerView     = "Average Comments per View"
	KPIEngagementRate      = "Engagement Rate"
)

const topQuantile = 0.95

// ComputeKPIs derives the fixed KPI list from a loaded table. NaN cells are
// skipped by every aggregate; ratios divide by zero the IEEE way.
func ComputeKPIs(table *models.VideoTable, now time.Time) []models.KPI {
	views := dropNaN(table.Views)
	likes := dropNaN(table.Likes)
	comments := dropNaN(table.Comments)

	viewsClean := table.Coerced[storage.ColumnViews] == 0 && integral(views)
	likesClean := table.Coerced[storage.ColumnLikes] == 0 && integral(likes)
	commentsClean := table.Coerced[storage.ColumnComments] == 0 && integral(comments)

	totalViews := floats.Sum(views)
	totalLikes := floats.Sum(likes)
	totalComments := floats.Sum(comments)

	return []models.KPI{
		{Name: KPITotalVideos, Value: float64(table.Len()), Integer: true},
		{Name: KPITotalViews, Value: totalViews, Integer: viewsClean},
		{Name: KPITotalLikes, Value: totalLikes, Integer: likesClean},
		{Name: KPITotalComments, Value: totalComments, Integer: commentsClean},
		{Name: KPIAvgViews, Value: mean(views)},
		{Name: KPIAvgLikes, Value: mean(likes)},
		{Name: KPIAvgComments, Value: mean(comments)},
		{Name: KPIMostViews, Value: maxOf(views), Integer: viewsClean && len(views) > 0},
		{Name: KPITopFivePercentViews, Value: topMean(views, topQuantile)},
		{Name: KPIAvgAgeDays, Value: meanAgeDays(table.PublishedAt, now)},
		{Name: KPILikesPerView, Value: totalLikes / totalViews},
		{Name: KPICommentsPerView, Value: totalComments / totalViews},
		{Name: KPIEngagementRate, Value: (totalLikes + totalComments) / totalViews},
	}
}

// Lookup returns the KPI with the given name.
func Lookup(kpis []models.KPI, name string) (models.KPI, bool) {
	for _, k := range kpis {
		if k.Name == name {
			return k, true
		}
	}
	return models.KPI{}, false
}

func dropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

func integral(xs []float64) bool {
	for _, x := range xs {
		if math.IsInf(x, 0) || x != math.Trunc(x) {
			return false
		}
	}
	return true
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

func maxOf(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return floats.Max(xs)
}

// quantile interpolates linearly between the closest ranks, with the
// fractional rank taken as p*(n-1).
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// topMean averages the values at or above the p-quantile.
func topMean(xs []float64, p float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	threshold := quantile(sorted, p)
	if math.IsNaN(threshold) {
		return math.NaN()
	}

	var top []float64
	for _, x := range sorted {
		if x >= threshold {
			top = append(top, x)
		}
	}
	return mean(top)
}

// meanAgeDays averages whole elapsed days since publication. Rows without a
// timestamp are skipped.
func meanAgeDays(published []time.Time, now time.Time) float64 {
	var ages []float64
	for _, t := range published {
		if t.IsZero() {
			continue
		}
		ages = append(ages, math.Floor(now.Sub(t).Hours()/24))
	}
	return mean(ages)
}
