package engine_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/summitrec/summitrec/internal/domain/model"
	"github.com/summitrec/summitrec/internal/engine"
	. "github.com/smartystreets/goconvey/convey"
)

func corpus() []model.Event {
	return []model.Event{
		{
			ID:          "EV-1",
			Title:       "AI in Drug Discovery",
			Description: "Machine learning models accelerating pharmaceutical research.",
			Topics:      []string{"Artificial Intelligence", "Healthcare"},
		},
		{
			ID:          "EV-2",
			Title:       "Blockchain Carbon Tracking",
			Description: "Using blockchain ledgers to verify carbon offsets and emissions.",
			Topics:      []string{"Blockchain", "Carbon Markets", "Climate"},
		},
		{
			ID:          "EV-3",
			Title:       "Health Systems Resilience",
			Description: "Funding models for pandemic preparedness.",
			Topics:      []string{"Global Health", "Policy"},
		},
	}
}

func TestFit(t *testing.T) {
	Convey("Given an empty corpus", t, func() {
		_, err := engine.Fit(nil)

		Convey("Then fitting fails with ErrEmptyCorpus", func() {
			So(errors.Is(err, engine.ErrEmptyCorpus), ShouldBeTrue)
		})
	})

	Convey("Given a corpus whose terms are all filtered out", t, func() {
		events := []model.Event{{ID: "EV-1", Title: "the of and"}}
		_, err := engine.Fit(events)

		Convey("Then fitting fails with ErrEmptyCorpus", func() {
			So(errors.Is(err, engine.ErrEmptyCorpus), ShouldBeTrue)
		})
	})

	Convey("Given a valid corpus", t, func() {
		state, err := engine.Fit(corpus())

		Convey("Then the state exposes corpus and vocabulary sizes", func() {
			So(err, ShouldBeNil)
			So(state.CorpusSize(), ShouldEqual, 3)
			So(state.VocabularySize(), ShouldBeGreaterThan, 0)
		})

		Convey("And later mutation of the input slice does not leak in", func() {
			So(err, ShouldBeNil)
			events := corpus()
			s2, err := engine.Fit(events)
			So(err, ShouldBeNil)
			events[0].Title = "mutated"
			So(s2.Events()[0].Title, ShouldEqual, "AI in Drug Discovery")
		})
	})
}

func TestRecommend(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fitted state", t, func() {
		state, err := engine.Fit(corpus())
		So(err, ShouldBeNil)

		Convey("When recommending for a blockchain and carbon profile", func() {
			recs, err := state.Recommend(ctx, "I work on blockchain and carbon tracking", 3)

			Convey("Then the blockchain event ranks first with a positive score", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 3)
				So(recs[0].Event.ID, ShouldEqual, "EV-2")
				So(recs[0].Score, ShouldBeGreaterThan, 0)
			})

			Convey("And zero-score events keep corpus order", func() {
				So(err, ShouldBeNil)
				So(recs[1].Event.ID, ShouldEqual, "EV-1")
				So(recs[2].Event.ID, ShouldEqual, "EV-3")
				So(recs[1].Score, ShouldEqual, 0)
				So(recs[2].Score, ShouldEqual, 0)
			})

			Convey("And the match percentage is the rounded score", func() {
				So(err, ShouldBeNil)
				for _, r := range recs {
					So(r.MatchPercentage, ShouldEqual, int(math.Round(r.Score*100)))
				}
			})

			Convey("And the top explanation names a shared term", func() {
				So(err, ShouldBeNil)
				So(recs[0].Explanation, ShouldContainSubstring, "Covers: ")
				So(recs[0].MatchedTopics, ShouldNotBeEmpty)
			})

			Convey("And zero-score events get the fallback rationale", func() {
				So(err, ShouldBeNil)
				So(recs[1].Explanation, ShouldEqual, "General interest overlap")
				So(recs[1].MatchedTopics, ShouldBeNil)
			})
		})

		Convey("When k exceeds the corpus size", func() {
			recs, err := state.Recommend(ctx, "blockchain", 50)

			Convey("Then the result is capped at the corpus size", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 3)
			})
		})

		Convey("When the profile is empty or whitespace", func() {
			_, err1 := state.Recommend(ctx, "", 3)
			_, err2 := state.Recommend(ctx, "   \t", 3)

			Convey("Then both fail with ErrInvalidProfile", func() {
				So(errors.Is(err1, engine.ErrInvalidProfile), ShouldBeTrue)
				So(errors.Is(err2, engine.ErrInvalidProfile), ShouldBeTrue)
			})
		})

		Convey("When the profile is made of stopwords only", func() {
			recs, err := state.Recommend(ctx, "the and of", 2)

			Convey("Then it is a defined zero-score result, not an error", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 2)
				So(recs[0].Score, ShouldEqual, 0)
				So(recs[0].Event.ID, ShouldEqual, "EV-1")
			})
		})

		Convey("When the same query runs twice", func() {
			r1, err1 := state.Recommend(ctx, "machine learning for healthcare", 3)
			r2, err2 := state.Recommend(ctx, "machine learning for healthcare", 3)

			Convey("Then the results are identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(r1, ShouldResemble, r2)
			})
		})

		Convey("When searching with the same text", func() {
			recs, err := state.Search(ctx, "blockchain carbon", 2)

			Convey("Then search behaves like recommend", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 2)
				So(recs[0].Event.ID, ShouldEqual, "EV-2")
			})
		})
	})

	Convey("Given two states fitted from the same corpus", t, func() {
		s1, err1 := engine.Fit(corpus())
		s2, err2 := engine.Fit(corpus())
		So(err1, ShouldBeNil)
		So(err2, ShouldBeNil)

		Convey("Then identical queries produce identical rankings", func() {
			r1, err1 := s1.Recommend(ctx, "pandemic funding policy", 3)
			r2, err2 := s2.Recommend(ctx, "pandemic funding policy", 3)
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)
			So(r1, ShouldResemble, r2)
		})
	})
}
