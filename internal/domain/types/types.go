// Package types contains wire types shared by the HTTP API and tools.
package types

// Event mirrors the JSON shape of an event on the read endpoints.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
	Location    string   `json:"location"`
	Venue       string   `json:"venue"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Speakers    []string `json:"speakers"`
	Capacity    int      `json:"capacity"`
	Track       string   `json:"track"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	Address     string   `json:"address,omitempty"`
	Website     string   `json:"website,omitempty"`
}

// Recommendation mirrors the JSON shape returned by /api/recommend.
type Recommendation struct {
	Event           Event    `json:"event"`
	Score           float64  `json:"similarity_score"`
	MatchPercentage int      `json:"match_percentage"`
	Explanation     string   `json:"explanation"`
	MatchedTopics   []string `json:"matched_topics"`
}

// SearchResult mirrors the JSON shape returned by /api/search.
type SearchResult struct {
	Event Event   `json:"event"`
	Score float64 `json:"score"`
}

// TrackInfo lists a track with its event count.
type TrackInfo struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// VenueInfo lists a venue with its coordinates and hosted events.
type VenueInfo struct {
	Name    string   `json:"name"`
	Address string   `json:"address,omitempty"`
	Lat     float64  `json:"lat"`
	Lon     float64  `json:"lon"`
	Events  []string `json:"events"`
}
