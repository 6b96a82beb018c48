package service_test

import (
	"context"
	"errors"
	"testing"

	repository "github.com/summitrec/summitrec/internal/adapters/repository"
	app "github.com/summitrec/summitrec/internal/app"
	"github.com/summitrec/summitrec/internal/engine"
	"github.com/summitrec/summitrec/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func startedService(ctx context.Context) *app.Service {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	svc := app.New(
		app.WithEvents(repository.SampleEvents()),
		app.WithDefaultTopK(3),
		app.WithMaxTopK(10),
	)
	if err := svc.Start(ctx); err != nil {
		panic(err)
	}
	return svc
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given an unstarted service", t, func() {
		svc := app.New(app.WithEvents(repository.SampleEvents()))

		Convey("Then queries fail with ErrNotStarted", func() {
			_, _, err := svc.Recommend(ctx, "climate", 3)
			So(errors.Is(err, app.ErrNotStarted), ShouldBeTrue)

			_, err = svc.Events(ctx)
			So(errors.Is(err, app.ErrNotStarted), ShouldBeTrue)

			So(errors.Is(svc.Reload(ctx), app.ErrNotStarted), ShouldBeTrue)
		})
	})

	Convey("Given a started service", t, func() {
		svc := startedService(ctx)
		defer svc.Stop()

		Convey("Then starting again is a no-op", func() {
			So(svc.Start(ctx), ShouldBeNil)
		})

		Convey("And stats expose the fitted corpus", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldBeTrue)
			So(stats["corpusSize"], ShouldEqual, 12)
			So(stats["vocabularySize"], ShouldBeGreaterThan, 0)
		})

		Convey("And Reload swaps in a fresh fit without losing service", func() {
			So(svc.Reload(ctx), ShouldBeNil)
			recs, _, err := svc.Recommend(ctx, "climate finance", 0)
			So(err, ShouldBeNil)
			So(recs, ShouldNotBeEmpty)
		})
	})
}

func TestServiceRecommend(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := startedService(ctx)
		defer svc.Stop()

		Convey("When recommending with the default top_k", func() {
			recs, p, err := svc.Recommend(ctx, "I am an investor focused on climate finance and carbon markets", 0)

			Convey("Then the configured default applies", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 3)
			})

			Convey("And the parsed profile reports detected skills", func() {
				So(p.IsLinkedIn, ShouldBeFalse)
				So(p.Skills, ShouldContain, "climate")
			})

			Convey("And the climate finance session ranks first", func() {
				So(recs[0].Event.ID, ShouldEqual, "WEF2026-002")
				So(recs[0].Score, ShouldBeGreaterThan, 0)
			})

			Convey("And the interaction lands in the navigation log", func() {
				records, err := svc.History(ctx, "recommend")
				So(err, ShouldBeNil)
				So(records, ShouldNotBeEmpty)
			})
		})

		Convey("When requesting more than max_top_k", func() {
			recs, _, err := svc.Recommend(ctx, "artificial intelligence", 10000)

			Convey("Then the count is clamped to the cap", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 10)
			})
		})

		Convey("When recommending for a LinkedIn URL", func() {
			recs, p, err := svc.Recommend(ctx, "https://linkedin.com/in/sam-greentech", 0)

			Convey("Then the enriched demo profile drives the ranking", func() {
				So(err, ShouldBeNil)
				So(p.IsLinkedIn, ShouldBeTrue)
				So(p.Username, ShouldEqual, "sam-greentech")
				So(recs, ShouldNotBeEmpty)
				So(recs[0].Score, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the profile is blank", func() {
			_, _, err := svc.Recommend(ctx, "   ", 3)

			Convey("Then the engine error surfaces", func() {
				So(errors.Is(err, engine.ErrInvalidProfile), ShouldBeTrue)
			})
		})
	})
}

func TestServiceCatalogAndHistory(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := startedService(ctx)
		defer svc.Stop()

		Convey("When searching", func() {
			recs, err := svc.Search(ctx, "quantum cryptography", 2)

			Convey("Then the cybersecurity session ranks first", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 2)
				So(recs[0].Event.ID, ShouldEqual, "WEF2026-007")
			})
		})

		Convey("When reading the catalog", func() {
			events, err := svc.Events(ctx)
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 12)

			e, err := svc.EventByID(ctx, "WEF2026-004")
			So(err, ShouldBeNil)
			So(e.Title, ShouldEqual, "Blockchain and Decentralized Finance")

			_, err = svc.EventByID(ctx, "WEF2026-404")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

			tracks, err := svc.Tracks(ctx)
			So(err, ShouldBeNil)
			So(tracks, ShouldNotBeEmpty)

			venues, err := svc.Venues(ctx)
			So(err, ShouldBeNil)
			So(venues, ShouldNotBeEmpty)
		})

		Convey("When tracking interactions", func() {
			So(svc.Track(ctx, "save", map[string]any{"event_id": "WEF2026-001"}), ShouldBeNil)

			Convey("Then the record is filterable by action", func() {
				records, err := svc.History(ctx, "save")
				So(err, ShouldBeNil)
				So(len(records), ShouldEqual, 1)
				So(records[0].Detail["event_id"], ShouldEqual, "WEF2026-001")
			})

			Convey("And unknown actions are rejected", func() {
				err := svc.Track(ctx, "click", nil)
				So(errors.Is(err, app.ErrUnknownAction), ShouldBeTrue)

				_, err = svc.History(ctx, "click")
				So(errors.Is(err, app.ErrUnknownAction), ShouldBeTrue)
			})
		})
	})
}
