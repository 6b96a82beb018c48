package probe

import (
	"context"
	"math/rand"

	"github.com/google/uuid"

	"github.com/summitrec/summitrec/pkg/logger"
)

// Profile fragments combined into generated queries. The pools lean on the
// vocabulary of a typical forum agenda so most queries score above zero.
var (
	roles = []string{
		"CEO", "CTO", "CFO", "investor", "founder", "scientist",
		"engineer", "professor", "analyst", "consultant", "director",
	}
	interests = []string{
		"artificial intelligence and machine learning",
		"climate finance and carbon markets",
		"blockchain and decentralized finance",
		"global health and pandemic preparedness",
		"renewable energy and the energy transition",
		"cybersecurity and quantum computing",
		"the future of work and automation",
		"sustainable agriculture and food systems",
		"space exploration and satellite technology",
		"inequality and inclusive growth",
		"biodiversity and nature-based solutions",
		"digital assets and the metaverse economy",
	}
)

// generateQueries builds NumQueries random profile queries.
func generateQueries(ctx context.Context, config *Config, stats *Stats) []Query {
	logger.Get().Info(ctx, "generating profile queries",
		logger.Int("count", config.NumQueries))

	queries := make([]Query, config.NumQueries)
	for i := range queries {
		role := roles[rand.Intn(len(roles))]
		first := interests[rand.Intn(len(interests))]
		second := interests[rand.Intn(len(interests))]

		queries[i] = Query{
			QueryID: uuid.NewString(),
			Profile: "I am a " + role + " working on " + first + " and interested in " + second + ".",
			TopK:    config.TopK,
		}
	}

	stats.QueriesGenerated = len(queries)
	return queries
}
