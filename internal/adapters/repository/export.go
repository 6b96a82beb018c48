package repository

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/summitrec/summitrec/internal/domain/model"
	"github.com/summitrec/summitrec/internal/domain/types"
)

// ExportJSON writes events to w as an indented JSON array. Timestamps use
// the same layout as the CSV loader; zero times export as empty strings.
func ExportJSON(w io.Writer, events []model.Event) error {
	out := make([]types.Event, len(events))
	for i, e := range events {
		out[i] = types.Event{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Topics:      e.Topics,
			Location:    e.Location,
			Venue:       e.Venue,
			Speakers:    e.Speakers,
			Capacity:    e.Capacity,
			Track:       e.Track,
			Lat:         e.Lat,
			Lon:         e.Lon,
			Address:     e.Address,
			Website:     e.Website,
		}
		if !e.StartTime.IsZero() {
			out[i].StartTime = e.StartTime.Format(timeLayout)
		}
		if !e.EndTime.IsZero() {
			out[i].EndTime = e.EndTime.Format(timeLayout)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	return nil
}

// SaveJSON exports events to a JSON file at path.
func SaveJSON(path string, events []model.Event) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()
	return ExportJSON(f, events)
}
