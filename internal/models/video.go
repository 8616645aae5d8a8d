package models

import (
	"fmt"
	"time"
)

// VideoRecord is the flattened metadata and statistics for one video.
type VideoRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"published_at"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	Comments    int64     `json:"comments"`
}

// URL returns the watch page of the video.
func (v *VideoRecord) URL() string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", v.ID)
}

// VideoTable is the loaded form of the videos file. Numeric columns hold
// NaN for cells that could not be coerced.
type VideoTable struct {
	IDs         []string
	Titles      []string
	PublishedAt []time.Time
	Views       []float64
	Likes       []float64
	Comments    []float64

	// Coerced counts the NaN cells per numeric column, keyed by column name.
	Coerced map[string]int
}

// Len returns the number of rows.
func (t *VideoTable) Len() int {
	return len(t.IDs)
}
