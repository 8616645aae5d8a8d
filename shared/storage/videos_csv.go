package storage

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"channel-stats/internal/models"
)

// Header is the fixed column order of the videos file.
var Header = []string{"id", "title", "published_at", "views", "likes", "comments"}

// Numeric column names, as used in VideoTable.Coerced.
const (
	ColumnViews    = "views"
	ColumnLikes    = "likes"
	ColumnComments = "comments"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// WriteVideosCSV writes one row per video under the fixed header. An empty
// list writes nothing and returns false.
func WriteVideosCSV(path string, videos []*models.VideoRecord) (bool, error) {
	if len(videos) == 0 {
		return false, nil
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(Header); err != nil {
		return false, fmt.Errorf("failed to write header: %w", err)
	}

	for _, v := range videos {
		row := []string{
			v.ID,
			v.Title,
			v.PublishedAt.UTC().Format(time.RFC3339),
			strconv.FormatInt(v.Views, 10),
			strconv.FormatInt(v.Likes, 10),
			strconv.FormatInt(v.Comments, 10),
		}
		if err := w.Write(row); err != nil {
			return false, fmt.Errorf("failed to write video %s: %w", v.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return false, fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return true, file.Close()
}

// LoadVideoTable reads the videos file. Columns are located by header name.
// Non-numeric cells in views/likes/comments become NaN; an unparseable
// timestamp is an error. An empty timestamp cell loads as the zero time.
func LoadVideoTable(path string) (*models.VideoTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty: missing header", path)
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range Header {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, name)
		}
	}

	rows := records[1:]
	table := &models.VideoTable{
		IDs:         make([]string, 0, len(rows)),
		Titles:      make([]string, 0, len(rows)),
		PublishedAt: make([]time.Time, 0, len(rows)),
		Views:       make([]float64, 0, len(rows)),
		Likes:       make([]float64, 0, len(rows)),
		Comments:    make([]float64, 0, len(rows)),
		Coerced:     make(map[string]int),
	}

	coerce := func(column, cell string) float64 {
		v := coerceNumber(cell)
		if math.IsNaN(v) {
			table.Coerced[column]++
		}
		return v
	}

	for n, row := range rows {
		publishedAt, err := parseTimestamp(row[index["published_at"]])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, n+2, err)
		}

		table.IDs = append(table.IDs, row[index["id"]])
		table.Titles = append(table.Titles, row[index["title"]])
		table.PublishedAt = append(table.PublishedAt, publishedAt)
		table.Views = append(table.Views, coerce(ColumnViews, row[index[ColumnViews]]))
		table.Likes = append(table.Likes, coerce(ColumnLikes, row[index[ColumnLikes]]))
		table.Comments = append(table.Comments, coerce(ColumnComments, row[index[ColumnComments]]))
	}

	return table, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid published_at %q", s)
}

// coerceNumber parses a numeric cell, returning NaN when it cannot.
func coerceNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
