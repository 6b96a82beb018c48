package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/summitrec/summitrec/pkg/logger"
)

const (
	filePermission = 0600

	// determinismSample is how many queries get replayed to verify that
	// identical input yields an identical ranking.
	determinismSample = 25
)

// Run executes the complete recommendation probe.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting recommendation probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("queries", config.NumQueries),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topK", config.TopK))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate queries
	queries := generateQueries(ctx, config, stats)

	// Step 3: Submit queries concurrently
	results := submitQueries(ctx, config, queries, stats)

	// Step 4: Replay a sample and verify determinism
	if err := verifyDeterminism(ctx, config, queries, results, stats); err != nil {
		return fmt.Errorf("determinism verification failed: %w", err)
	}

	// Step 5: Save queries to file
	if err := saveQueriesToFile(ctx, config, queries); err != nil {
		logger.Get().Warn(ctx, "failed to save queries to file", logger.Error(err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	logger.Get().Info(ctx, "probe completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// submitQueries fires the generated queries through a worker pool and
// returns the ranked ids per query id.
func submitQueries(ctx context.Context, config *Config, queries []Query, stats *Stats) map[string][]string {
	logger.Get().Info(ctx, "submitting queries",
		logger.Int("count", len(queries)),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)

	var (
		mu         sync.Mutex
		results    = make(map[string][]string, len(queries))
		successful int64
		failed     int64
	)

	queryChan := make(chan Query, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for q := range queryChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				ids, err := client.recommend(ctx, config.BaseURL, q)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "query failed",
							logger.String("queryID", q.QueryID),
							logger.Error(err))
					}
					continue
				}
				atomic.AddInt64(&successful, 1)
				mu.Lock()
				results[q.QueryID] = ids
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(queryChan)
		for _, q := range queries {
			select {
			case <-ctx.Done():
				return
			case queryChan <- q:
			}
		}
	}()

	wg.Wait()

	stats.QueriesSubmitted = len(queries)
	stats.QueriesSuccessful = int(atomic.LoadInt64(&successful))
	stats.QueriesFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "query submission completed",
		logger.Int("successful", stats.QueriesSuccessful),
		logger.Int("failed", stats.QueriesFailed))

	return results
}

// saveQueriesToFile saves the generated queries to a JSON file.
func saveQueriesToFile(ctx context.Context, config *Config, queries []Query) error {
	if len(queries) == 0 {
		return fmt.Errorf("no queries to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "probe_queries_" + timestamp + ".json"
	}

	data, err := json.MarshalIndent(queries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal queries: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "queries saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final probe statistics.
func displayFinalStats(stats *Stats) {
	var successRate, queriesPerSecond float64

	if stats.QueriesSubmitted > 0 {
		successRate = float64(stats.QueriesSuccessful) / float64(stats.QueriesSubmitted) * 100
	}
	if stats.Duration > 0 {
		queriesPerSecond = float64(stats.QueriesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("queriesGenerated", stats.QueriesGenerated),
		logger.Int("queriesSubmitted", stats.QueriesSubmitted),
		logger.Int("queriesSuccessful", stats.QueriesSuccessful),
		logger.Int("queriesFailed", stats.QueriesFailed),
		logger.Int("determinismChecks", stats.DeterminismChecks),
		logger.Int("determinismFails", stats.DeterminismFails),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("queriesPerSecond", queriesPerSecond))
}
