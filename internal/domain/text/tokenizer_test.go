package text_test

import (
	"testing"

	"github.com/summitrec/summitrec/internal/domain/text"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTokenize(t *testing.T) {
	Convey("Given plain multi-word text", t, func() {
		terms := text.Tokenize("climate change policy")

		Convey("Then it yields every unigram followed by every adjacent bigram", func() {
			So(terms, ShouldResemble, []string{
				"climate", "change", "policy",
				"climate_change", "change_policy",
			})
		})
	})

	Convey("Given text with mixed case and punctuation", t, func() {
		terms := text.Tokenize("Climate-Change, POLICY!")

		Convey("Then terms are lowercased and punctuation acts as a separator", func() {
			So(terms, ShouldResemble, []string{
				"climate", "change", "policy",
				"climate_change", "change_policy",
			})
		})
	})

	Convey("Given text containing stopwords", t, func() {
		terms := text.Tokenize("the future of work")

		Convey("Then stopwords are dropped before bigram formation", func() {
			So(terms, ShouldResemble, []string{"future", "work", "future_work"})
		})
	})

	Convey("Given text made entirely of stopwords", t, func() {
		Convey("Then the result is empty", func() {
			So(text.Tokenize("the and of a"), ShouldBeNil)
		})
	})

	Convey("Given empty or whitespace-only input", t, func() {
		So(text.Tokenize(""), ShouldBeNil)
		So(text.Tokenize("   \t\n"), ShouldBeNil)
	})

	Convey("Given a single non-stopword token", t, func() {
		Convey("Then no bigram is produced", func() {
			So(text.Tokenize("blockchain"), ShouldResemble, []string{"blockchain"})
		})
	})

	Convey("Given text with digits", t, func() {
		Convey("Then numeric tokens are kept", func() {
			So(text.Tokenize("web3 summit"), ShouldResemble, []string{"web3", "summit", "web3_summit"})
		})
	})
}
