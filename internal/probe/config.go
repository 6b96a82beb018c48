package probe

import "time"

// Config holds configuration for the recommendation probe.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumQueries int           // Number of profile queries to generate
	TopK       int           // Recommendations to request per query
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for generated queries
	LogFile    string        // Log file for probe output
	Verbose    bool          // Enable verbose logging
}

// Query is a generated profile query.
type Query struct {
	QueryID string `json:"query_id"`
	Profile string `json:"profile"`
	TopK    int    `json:"top_k"`
}

// recommendation mirrors the response shape of POST /api/recommend.
type recommendation struct {
	Event struct {
		ID string `json:"id"`
	} `json:"event"`
	Score           float64 `json:"similarity_score"`
	MatchPercentage int     `json:"match_percentage"`
	Explanation     string  `json:"explanation"`
}

type recommendResponse struct {
	Recommendations []recommendation `json:"recommendations"`
	Count           int              `json:"count"`
}

// Stats holds probe statistics.
type Stats struct {
	QueriesGenerated  int
	QueriesSubmitted  int
	QueriesSuccessful int
	QueriesFailed     int
	ZeroScoreQueries  int
	DeterminismChecks int
	DeterminismFails  int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
