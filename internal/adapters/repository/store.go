// Package repository defines the event catalog interface and errors.
//
// The catalog is the external collaborator that supplies the corpus: the
// engine fits whatever Events returns and never mutates it. Missing
// optional fields (coordinates, website) are carried through as zero
// values without failing.
package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/summitrec/summitrec/internal/domain/model"
)

// Track pairs a track label with its event count.
type Track struct {
	Name  string
	Count int
}

// Venue groups the events hosted at one venue with its coordinates.
type Venue struct {
	Name    string
	Address string
	Lat     float64
	Lon     float64
	Events  []string
}

// Catalog provides read access to the loaded event corpus.
type Catalog interface {
	// Events returns the corpus in load order.
	Events(ctx context.Context) []model.Event

	// ByID returns a single event. Returns ErrNotFound for unknown ids.
	ByID(ctx context.Context, id string) (model.Event, error)

	// ByTrack returns all events whose track matches, case-insensitively.
	ByTrack(ctx context.Context, track string) []model.Event

	// ByLocation returns all events whose location contains the query,
	// case-insensitively.
	ByLocation(ctx context.Context, location string) []model.Event

	// Tracks returns track labels with event counts, most events first.
	Tracks(ctx context.Context) []Track

	// Venues returns venues with coordinates and hosted event ids.
	Venues(ctx context.Context) []Venue

	// Count returns the number of events in the catalog.
	Count(ctx context.Context) int
}

// memoryCatalog is an immutable in-memory Catalog.
type memoryCatalog struct {
	events []model.Event
	byID   map[string]int
}

// NewMemoryCatalog builds a Catalog over events. Load order is preserved;
// it becomes the corpus order the ranker's tie-breaking relies on.
func NewMemoryCatalog(events []model.Event) Catalog {
	c := &memoryCatalog{
		events: make([]model.Event, len(events)),
		byID:   make(map[string]int, len(events)),
	}
	copy(c.events, events)
	for i, e := range c.events {
		c.byID[e.ID] = i
	}
	return c
}

func (c *memoryCatalog) Events(_ context.Context) []model.Event {
	return c.events
}

func (c *memoryCatalog) ByID(_ context.Context, id string) (model.Event, error) {
	i, ok := c.byID[id]
	if !ok {
		return model.Event{}, ErrNotFound
	}
	return c.events[i], nil
}

func (c *memoryCatalog) ByTrack(_ context.Context, track string) []model.Event {
	var out []model.Event
	for _, e := range c.events {
		if strings.EqualFold(e.Track, track) {
			out = append(out, e)
		}
	}
	return out
}

func (c *memoryCatalog) ByLocation(_ context.Context, location string) []model.Event {
	q := strings.ToLower(location)
	var out []model.Event
	for _, e := range c.events {
		if strings.Contains(strings.ToLower(e.Location), q) {
			out = append(out, e)
		}
	}
	return out
}

func (c *memoryCatalog) Tracks(_ context.Context) []Track {
	counts := make(map[string]int)
	for _, e := range c.events {
		counts[e.Track]++
	}
	tracks := make([]Track, 0, len(counts))
	for name, count := range counts {
		tracks = append(tracks, Track{Name: name, Count: count})
	}
	sort.Slice(tracks, func(i, j int) bool {
		if tracks[i].Count != tracks[j].Count {
			return tracks[i].Count > tracks[j].Count
		}
		return tracks[i].Name < tracks[j].Name
	})
	return tracks
}

func (c *memoryCatalog) Venues(_ context.Context) []Venue {
	index := make(map[string]int)
	var venues []Venue
	for _, e := range c.events {
		i, ok := index[e.Venue]
		if !ok {
			i = len(venues)
			index[e.Venue] = i
			venues = append(venues, Venue{
				Name:    e.Venue,
				Address: e.Address,
				Lat:     e.Lat,
				Lon:     e.Lon,
			})
		}
		venues[i].Events = append(venues[i].Events, e.ID)
	}
	return venues
}

func (c *memoryCatalog) Count(_ context.Context) int {
	return len(c.events)
}
