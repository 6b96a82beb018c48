package vectorize_test

import (
	"errors"
	"math"
	"testing"

	"github.com/summitrec/summitrec/internal/domain/vectorize"
	. "github.com/smartystreets/goconvey/convey"
)

func norm(vec []float64) float64 {
	var sum float64
	for _, w := range vec {
		sum += w * w
	}
	return math.Sqrt(sum)
}

func TestVectorizerFitTransform(t *testing.T) {
	Convey("Given a small corpus", t, func() {
		docs := []string{
			"climate finance carbon markets",
			"quantum computing cryptography",
			"climate policy carbon pricing",
		}

		Convey("When fitting with defaults", func() {
			v := vectorize.New()
			matrix, err := v.FitTransform(docs)

			Convey("Then it produces one vector per document", func() {
				So(err, ShouldBeNil)
				So(len(matrix), ShouldEqual, len(docs))
			})

			Convey("And every document vector is L2-normalized", func() {
				So(err, ShouldBeNil)
				for _, vec := range matrix {
					So(norm(vec), ShouldAlmostEqual, 1.0, 1e-9)
				}
			})

			Convey("And the vocabulary indexes terms in sorted order", func() {
				So(err, ShouldBeNil)
				vocab := v.Vocabulary()
				for i := 1; i < vocab.Size(); i++ {
					So(vocab.Term(i-1), ShouldBeLessThan, vocab.Term(i))
				}
			})
		})

		Convey("When fitting twice over the same corpus", func() {
			v1 := vectorize.New()
			m1, err1 := v1.FitTransform(docs)
			v2 := vectorize.New()
			m2, err2 := v2.FitTransform(docs)

			Convey("Then both fits are identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(v1.Vocabulary().Size(), ShouldEqual, v2.Vocabulary().Size())
				So(m1, ShouldResemble, m2)
			})
		})
	})
}

func TestVectorizerFiltering(t *testing.T) {
	Convey("Given a corpus with an ubiquitous term", t, func() {
		docs := []string{
			"summit climate",
			"summit quantum",
			"summit health",
		}

		Convey("When max_df is below the term's document fraction", func() {
			v := vectorize.New(vectorize.WithMaxDF(0.9))
			_, err := v.FitTransform(docs)

			Convey("Then the ubiquitous term is dropped", func() {
				So(err, ShouldBeNil)
				_, ok := v.Vocabulary().Index("summit")
				So(ok, ShouldBeFalse)
			})

			Convey("And rarer terms survive", func() {
				So(err, ShouldBeNil)
				_, ok := v.Vocabulary().Index("climate")
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When min_df is 2", func() {
			v := vectorize.New(vectorize.WithMinDF(2), vectorize.WithMaxDF(1.0))
			_, err := v.FitTransform(docs)

			Convey("Then terms occurring in a single document are dropped", func() {
				So(err, ShouldBeNil)
				_, ok := v.Vocabulary().Index("climate")
				So(ok, ShouldBeFalse)
			})

			Convey("And the shared term survives", func() {
				So(err, ShouldBeNil)
				_, ok := v.Vocabulary().Index("summit")
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When max_features caps the vocabulary", func() {
			v := vectorize.New(vectorize.WithMaxFeatures(1), vectorize.WithMaxDF(1.0))
			_, err := v.FitTransform(docs)

			Convey("Then the highest-document-frequency term is kept", func() {
				So(err, ShouldBeNil)
				So(v.Vocabulary().Size(), ShouldEqual, 1)
				So(v.Vocabulary().Term(0), ShouldEqual, "summit")
			})
		})

		Convey("When filtering removes every term", func() {
			v := vectorize.New(vectorize.WithMinDF(4))
			_, err := v.FitTransform(docs)

			Convey("Then the fit fails with ErrEmptyCorpus", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, vectorize.ErrEmptyCorpus), ShouldBeTrue)
			})
		})
	})

	Convey("Given an empty corpus", t, func() {
		v := vectorize.New()
		_, err := v.FitTransform(nil)

		Convey("Then the fit fails with ErrEmptyCorpus", func() {
			So(errors.Is(err, vectorize.ErrEmptyCorpus), ShouldBeTrue)
		})
	})
}

func TestVectorizerTransform(t *testing.T) {
	Convey("Given a fitted vectorizer", t, func() {
		v := vectorize.New()
		_, err := v.FitTransform([]string{
			"climate finance carbon markets",
			"quantum computing cryptography",
		})
		So(err, ShouldBeNil)

		Convey("When transforming text sharing corpus terms", func() {
			vec := v.Transform("climate finance")

			Convey("Then the vector is L2-normalized", func() {
				So(norm(vec), ShouldAlmostEqual, 1.0, 1e-9)
			})
		})

		Convey("When transforming text with only unseen terms", func() {
			vec := v.Transform("underwater basket weaving")

			Convey("Then the vector is all zero, not NaN", func() {
				So(norm(vec), ShouldEqual, 0)
				for _, w := range vec {
					So(math.IsNaN(w), ShouldBeFalse)
				}
			})
		})

		Convey("When transforming empty text", func() {
			vec := v.Transform("")

			Convey("Then the vector is all zero", func() {
				So(norm(vec), ShouldEqual, 0)
			})
		})
	})
}
