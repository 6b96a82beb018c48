package explain_test

import (
	"strings"
	"testing"

	"github.com/summitrec/summitrec/internal/domain/explain"
	"github.com/summitrec/summitrec/internal/domain/vectorize"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExplain(t *testing.T) {
	Convey("Given a fitted vectorizer and a matching query", t, func() {
		v := vectorize.New()
		matrix, err := v.FitTransform([]string{
			"climate finance carbon markets",
			"quantum computing cryptography",
		})
		So(err, ShouldBeNil)

		vocab := v.Vocabulary()
		query := v.Transform("climate finance")

		Convey("When the score is in the high tier", func() {
			got, topics := explain.Explain(query, matrix[0], 0.8, vocab, 3)

			Convey("Then the rationale uses the high-tier phrase and names shared terms", func() {
				So(got, ShouldStartWith, "Highly relevant to your interests. Covers: ")
				So(len(topics), ShouldBeBetweenOrEqual, 1, 3)
				So(strings.Join(topics, " "), ShouldContainSubstring, "climate")
			})
		})

		Convey("When the score is in the good tier", func() {
			got, _ := explain.Explain(query, matrix[0], 0.5, vocab, 3)
			So(got, ShouldStartWith, "Good match for your profile. Covers: ")
		})

		Convey("When the score is below both tiers", func() {
			got, _ := explain.Explain(query, matrix[0], 0.1, vocab, 3)
			So(got, ShouldStartWith, "Potentially related. Covers: ")
		})

		Convey("When topTerms caps the topic list", func() {
			_, topics := explain.Explain(query, matrix[0], 0.8, vocab, 1)
			So(len(topics), ShouldEqual, 1)
		})

		Convey("When topTerms is not positive", func() {
			_, topics := explain.Explain(query, matrix[0], 0.8, vocab, 0)

			Convey("Then the default bound applies", func() {
				So(len(topics), ShouldBeLessThanOrEqualTo, explain.DefaultTopTerms)
			})
		})

		Convey("When query and document share nothing", func() {
			got, topics := explain.Explain(query, matrix[1], 0, vocab, 3)

			Convey("Then the rationale falls back with no topics", func() {
				So(got, ShouldEqual, "General interest overlap")
				So(topics, ShouldBeNil)
			})
		})
	})
}
