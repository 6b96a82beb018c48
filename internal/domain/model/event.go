// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// Event represents a single conference session. Events are immutable once
// loaded into a corpus for a given fit cycle.
type Event struct {
	ID          string    // unique id, e.g. "WEF2026-001"
	Title       string    //
	Description string    //
	Topics      []string  // ordered topic tags
	Location    string    // building or area
	Venue       string    // hall or room
	StartTime   time.Time //
	EndTime     time.Time //
	Speakers    []string  //
	Capacity    int       // non-negative
	Track       string    // track label, e.g. "Climate & Sustainability"
	Lat         float64   //
	Lon         float64   //
	Address     string    // optional
	Website     string    // optional
}

// SearchableText combines the text fields used for vectorization.
func (e Event) SearchableText() string {
	parts := []string{
		e.Title,
		e.Description,
		strings.Join(e.Topics, " "),
		strings.Join(e.Speakers, " "),
		e.Track,
	}
	return strings.Join(parts, " ")
}

// Recommendation pairs an event with its similarity score and a
// human-readable rationale.
type Recommendation struct {
	Event           Event
	Score           float64  // cosine similarity in [0, 1]
	MatchPercentage int      // round(Score * 100)
	Explanation     string   //
	MatchedTopics   []string // dominant shared terms, may be empty
}
