package repository

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/summitrec/summitrec/internal/domain/model"
)

// timeLayout is the timestamp format used by event CSV files.
const timeLayout = "2006-01-02 15:04"

// LoadCSV reads an event corpus from a CSV file with a header row. Topics
// and speakers are semicolon-separated within their cells. Optional columns
// may be absent entirely; optional cells may be empty.
func LoadCSV(path string) ([]model.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses an event corpus from r. See LoadCSV.
func ReadCSV(r io.Reader) ([]model.Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows may omit trailing optional columns

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := col["id"]; !ok {
		return nil, fmt.Errorf("%w: missing id column", ErrBadRecord)
	}

	var events []model.Event
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		cell := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		id := cell("id")
		if id == "" {
			return nil, fmt.Errorf("%w: line %d: empty id", ErrBadRecord, line)
		}

		e := model.Event{
			ID:          id,
			Title:       cell("title"),
			Description: cell("description"),
			Topics:      splitList(cell("topics")),
			Location:    cell("location"),
			Venue:       cell("venue"),
			Speakers:    splitList(cell("speakers")),
			Track:       cell("track"),
			Address:     cell("address"),
			Website:     cell("website"),
		}
		if s := cell("start_time"); s != "" {
			if e.StartTime, err = time.Parse(timeLayout, s); err != nil {
				return nil, fmt.Errorf("%w: line %d: bad start_time %q", ErrBadRecord, line, s)
			}
		}
		if s := cell("end_time"); s != "" {
			if e.EndTime, err = time.Parse(timeLayout, s); err != nil {
				return nil, fmt.Errorf("%w: line %d: bad end_time %q", ErrBadRecord, line, s)
			}
		}
		if s := cell("capacity"); s != "" {
			if e.Capacity, err = strconv.Atoi(s); err != nil || e.Capacity < 0 {
				return nil, fmt.Errorf("%w: line %d: bad capacity %q", ErrBadRecord, line, s)
			}
		}
		if s := cell("lat"); s != "" {
			if e.Lat, err = strconv.ParseFloat(s, 64); err != nil {
				return nil, fmt.Errorf("%w: line %d: bad lat %q", ErrBadRecord, line, s)
			}
		}
		if s := cell("lon"); s != "" {
			if e.Lon, err = strconv.ParseFloat(s, 64); err != nil {
				return nil, fmt.Errorf("%w: line %d: bad lon %q", ErrBadRecord, line, s)
			}
		}
		events = append(events, e)
	}
	return events, nil
}

// splitList splits a semicolon-separated cell, dropping empty items.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
