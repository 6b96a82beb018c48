package rank_test

import (
	"testing"

	"github.com/summitrec/summitrec/internal/domain/rank"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScores(t *testing.T) {
	Convey("Given a query vector and a document matrix", t, func() {
		query := []float64{1, 0, 0}
		matrix := [][]float64{
			{1, 0, 0},
			{0, 1, 0},
			{0.6, 0.8, 0},
		}

		Convey("When computing scores", func() {
			scores := rank.Scores(query, matrix)

			Convey("Then each score is the dot product with the query", func() {
				So(scores, ShouldResemble, []float64{1, 0, 0.6})
			})
		})
	})

	Convey("Given a zero query vector", t, func() {
		scores := rank.Scores([]float64{0, 0}, [][]float64{{1, 0}, {0, 1}})

		Convey("Then every score is zero", func() {
			So(scores, ShouldResemble, []float64{0, 0})
		})
	})
}

func TestTopK(t *testing.T) {
	Convey("Given a list of scores", t, func() {
		scores := []float64{0.2, 0.9, 0.5, 0.9, 0.1}

		Convey("When selecting the top 3", func() {
			top := rank.TopK(scores, 3)

			Convey("Then scores descend and ties keep corpus order", func() {
				So(len(top), ShouldEqual, 3)
				So(top[0], ShouldResemble, rank.Ranked{Index: 1, Score: 0.9})
				So(top[1], ShouldResemble, rank.Ranked{Index: 3, Score: 0.9})
				So(top[2], ShouldResemble, rank.Ranked{Index: 2, Score: 0.5})
			})
		})

		Convey("When k exceeds the corpus size", func() {
			top := rank.TopK(scores, 100)

			Convey("Then the whole corpus is returned", func() {
				So(len(top), ShouldEqual, len(scores))
			})
		})

		Convey("When k is zero or negative", func() {
			So(rank.TopK(scores, 0), ShouldBeEmpty)
			So(rank.TopK(scores, -5), ShouldBeEmpty)
		})
	})

	Convey("Given all-zero scores", t, func() {
		top := rank.TopK([]float64{0, 0, 0}, 2)

		Convey("Then zero-score documents are still returned in corpus order", func() {
			So(len(top), ShouldEqual, 2)
			So(top[0].Index, ShouldEqual, 0)
			So(top[1].Index, ShouldEqual, 1)
		})
	})
}
