package probe

import (
	"context"
	"fmt"

	"github.com/summitrec/summitrec/pkg/logger"
)

// verifyDeterminism replays a sample of queries and checks that the ranking
// is byte-for-byte identical to the first run. Ties in the ranker break on
// corpus order, so any divergence points at unstable sorting server-side.
func verifyDeterminism(ctx context.Context, config *Config, queries []Query, firstRun map[string][]string, stats *Stats) error {
	sample := determinismSample
	if sample > len(queries) {
		sample = len(queries)
	}
	logger.Get().Info(ctx, "verifying ranking determinism", logger.Int("sample", sample))

	client := newHTTPClient(config.Timeout)

	for _, q := range queries[:sample] {
		want, ok := firstRun[q.QueryID]
		if !ok {
			continue // first run failed; nothing to compare against
		}

		got, err := client.recommend(ctx, config.BaseURL, q)
		if err != nil {
			return fmt.Errorf("replay of query %s failed: %w", q.QueryID, err)
		}

		stats.DeterminismChecks++
		if !equalRankings(want, got) {
			stats.DeterminismFails++
			logger.Get().Error(ctx, "ranking diverged between identical queries",
				logger.String("queryID", q.QueryID),
				logger.Any("first", want),
				logger.Any("second", got))
		}
	}

	if stats.DeterminismFails > 0 {
		return fmt.Errorf("%d of %d replayed queries returned a different ranking", stats.DeterminismFails, stats.DeterminismChecks)
	}

	logger.Get().Info(ctx, "all replayed queries returned identical rankings",
		logger.Int("checks", stats.DeterminismChecks))
	return nil
}

func equalRankings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
