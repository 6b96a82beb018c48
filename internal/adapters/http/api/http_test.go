package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/summitrec/summitrec/internal/adapters/http/api"
	repository "github.com/summitrec/summitrec/internal/adapters/repository"
	app "github.com/summitrec/summitrec/internal/app"
	"github.com/summitrec/summitrec/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestMux() *http.ServeMux {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	ctx := context.Background()
	svc := app.New(
		app.WithEvents(repository.SampleEvents()),
		app.WithDefaultTopK(3),
	)
	if err := svc.Start(ctx); err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(ctx, mux)
	return mux
}

func do(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return out
}

func TestHealthAndStats(t *testing.T) {
	mux := newTestMux()

	Convey("Given a running API", t, func() {
		Convey("Then /healthz reports ok", func() {
			rec := do(mux, http.MethodGet, "/healthz", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decode(t, rec)["status"], ShouldEqual, "ok")
		})

		Convey("And /stats exposes the fitted corpus", func() {
			rec := do(mux, http.MethodGet, "/stats", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decode(t, rec)["corpusSize"], ShouldEqual, 12)
		})

		Convey("And /metrics serves the Prometheus registry", func() {
			rec := do(mux, http.MethodGet, "/metrics", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "summitrec_engine_")
		})
	})
}

func TestRecommendEndpoint(t *testing.T) {
	mux := newTestMux()

	Convey("Given the recommend endpoint", t, func() {
		Convey("When posting a valid profile", func() {
			rec := do(mux, http.MethodPost, "/api/recommend",
				`{"profile":"investor in climate finance and carbon markets","top_k":3}`)

			Convey("Then recommendations come back ranked", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				body := decode(t, rec)
				So(body["count"], ShouldEqual, 3)

				recs := body["recommendations"].([]any)
				first := recs[0].(map[string]any)
				So(first["event"].(map[string]any)["id"], ShouldEqual, "WEF2026-002")
				So(first["similarity_score"], ShouldBeGreaterThan, 0)
				So(first["match_percentage"], ShouldBeGreaterThan, 0)
				So(first["explanation"], ShouldNotBeEmpty)
			})
		})

		Convey("When the body is not JSON", func() {
			rec := do(mux, http.MethodPost, "/api/recommend", "not json")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the profile is missing", func() {
			rec := do(mux, http.MethodPost, "/api/recommend", `{"top_k":3}`)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the method is wrong", func() {
			rec := do(mux, http.MethodGet, "/api/recommend", "")
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestSearchEndpoint(t *testing.T) {
	mux := newTestMux()

	Convey("Given the search endpoint", t, func() {
		Convey("When searching with a query", func() {
			rec := do(mux, http.MethodGet, "/api/search?q=quantum+cryptography&limit=2", "")

			Convey("Then results come back with scores", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				body := decode(t, rec)
				So(body["count"], ShouldEqual, 2)

				results := body["results"].([]any)
				first := results[0].(map[string]any)
				So(first["event"].(map[string]any)["id"], ShouldEqual, "WEF2026-007")
			})
		})

		Convey("When q is missing", func() {
			rec := do(mux, http.MethodGet, "/api/search", "")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When limit is not a positive integer", func() {
			rec := do(mux, http.MethodGet, "/api/search?q=ai&limit=zero", "")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestChatEndpoint(t *testing.T) {
	mux := newTestMux()

	Convey("Given the chat endpoint", t, func() {
		Convey("When asking for recommendations", func() {
			rec := do(mux, http.MethodPost, "/api/chat",
				`{"message":"recommend sessions about blockchain"}`)

			Convey("Then the reply carries recommendations", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				body := decode(t, rec)
				So(body["reply"], ShouldNotBeEmpty)
				So(body["recommendations"], ShouldNotBeEmpty)
			})
		})

		Convey("When asking about tracks", func() {
			rec := do(mux, http.MethodPost, "/api/chat", `{"message":"what tracks are there?"}`)

			Convey("Then the reply lists tracks", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				body := decode(t, rec)
				So(body["reply"], ShouldContainSubstring, "tracks")
				So(body["tracks"], ShouldNotBeEmpty)
			})
		})

		Convey("When the intent is unclear", func() {
			rec := do(mux, http.MethodPost, "/api/chat", `{"message":"hello"}`)

			Convey("Then the help reply is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(decode(t, rec)["reply"], ShouldContainSubstring, "recommend")
			})
		})

		Convey("When the message is empty", func() {
			rec := do(mux, http.MethodPost, "/api/chat", `{"message":"  "}`)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestCatalogEndpoints(t *testing.T) {
	mux := newTestMux()

	Convey("Given the catalog endpoints", t, func() {
		Convey("Then /api/events lists the corpus", func() {
			rec := do(mux, http.MethodGet, "/api/events", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decode(t, rec)["count"], ShouldEqual, 12)
		})

		Convey("And /api/events?track= filters case-insensitively", func() {
			rec := do(mux, http.MethodGet, "/api/events?track=climate+%26+sustainability", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decode(t, rec)["count"], ShouldEqual, 3)
		})

		Convey("And /api/events/{id} returns one event", func() {
			rec := do(mux, http.MethodGet, "/api/events/WEF2026-004", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decode(t, rec)["title"], ShouldEqual, "Blockchain and Decentralized Finance")
		})

		Convey("And unknown event ids yield 404", func() {
			rec := do(mux, http.MethodGet, "/api/events/WEF2026-404", "")
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And /api/tracks lists tracks with counts", func() {
			rec := do(mux, http.MethodGet, "/api/tracks", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decode(t, rec)["tracks"], ShouldNotBeEmpty)
		})

		Convey("And /api/venues lists venues", func() {
			rec := do(mux, http.MethodGet, "/api/venues", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decode(t, rec)["venues"], ShouldNotBeEmpty)
		})
	})
}

func TestHistoryEndpoints(t *testing.T) {
	mux := newTestMux()

	Convey("Given the history endpoints", t, func() {
		Convey("When tracking a valid action", func() {
			rec := do(mux, http.MethodPost, "/api/track",
				`{"action":"save","detail":{"event_id":"WEF2026-001"}}`)

			Convey("Then it is accepted and shows in history", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)

				hist := do(mux, http.MethodGet, "/api/history?action=save", "")
				So(hist.Code, ShouldEqual, http.StatusOK)
				So(decode(t, hist)["count"], ShouldEqual, 1)
			})
		})

		Convey("When tracking an unknown action", func() {
			rec := do(mux, http.MethodPost, "/api/track", `{"action":"click"}`)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When filtering history by an unknown action", func() {
			rec := do(mux, http.MethodGet, "/api/history?action=click", "")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}
