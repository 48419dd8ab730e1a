package features

import (
	"sort"

	"github.com/kiteco/rating-model/kite-go/ratings/traindata"
	"github.com/kiteco/rating-model/kite-golib/errors"
	"github.com/kiteco/rating-model/kite-golib/sparse"
	"github.com/kiteco/rating-model/kite-golib/text"
)

// CountVectorizer turns a free text column into token count features. Fit
// builds a vocabulary from the training documents; Transform counts known
// tokens per document, ignoring everything outside the vocabulary.
type CountVectorizer struct {
	Column string
	// MaxVocab caps the vocabulary. When the corpus has more distinct
	// tokens, the most frequent ones are kept, with lexicographically
	// earlier tokens winning equal counts.
	MaxVocab int
	// StripHTML extracts text from markup before tokenizing. Off for the
	// rating model: stray tags become tokens and get pruned by frequency.
	StripHTML bool
	// NGrams sets the term order: 2 counts adjacent token pairs instead of
	// single tokens. Orders below 2 count plain tokens.
	NGrams int

	// Vocab maps a term to its column, assigned in sorted term order.
	Vocab map[string]int
}

func (v *CountVectorizer) tokenizer() text.Tokenizer {
	if v.StripHTML {
		return text.HTMLTokenizer{}
	}
	return text.WordTokenizer{}
}

func (v *CountVectorizer) tokenize(doc string) text.Tokens {
	toks := text.FeatureProcessor.Apply(v.tokenizer().Tokenize(doc))
	if v.NGrams <= 1 {
		return toks
	}
	grams, err := text.NGrams(v.NGrams, toks)
	if err != nil {
		// document shorter than the order contributes no terms
		return nil
	}
	return grams
}

// Fit builds the vocabulary from the frame's text column.
func (v *CountVectorizer) Fit(frame traindata.Frame) error {
	v.Reset()
	docs, err := frame.Strings(v.Column)
	if err != nil {
		return errors.Wrapf(err, "error fitting vectorizer")
	}

	counts := make(map[string]int)
	for _, doc := range docs {
		for _, tok := range v.tokenize(doc) {
			counts[tok]++
		}
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	if v.MaxVocab > 0 && len(terms) > v.MaxVocab {
		sort.Slice(terms, func(i, j int) bool {
			if counts[terms[i]] == counts[terms[j]] {
				return terms[i] < terms[j]
			}
			return counts[terms[i]] > counts[terms[j]]
		})
		terms = terms[:v.MaxVocab]
	}
	sort.Strings(terms)

	v.Vocab = make(map[string]int, len(terms))
	for i, term := range terms {
		v.Vocab[term] = i
	}
	return nil
}

// Transform maps each document to its token counts over the fitted
// vocabulary. A document with no known tokens becomes a zero row.
func (v *CountVectorizer) Transform(frame traindata.Frame) (sparse.Matrix, error) {
	if v.Vocab == nil {
		return sparse.Matrix{}, errors.Errorf("vectorizer is not fitted")
	}
	docs, err := frame.Strings(v.Column)
	if err != nil {
		return sparse.Matrix{}, errors.Wrapf(err, "error transforming text")
	}

	m := sparse.Matrix{
		Cols: len(v.Vocab),
		Rows: make([]sparse.Vector, len(docs)),
	}
	for i, doc := range docs {
		coords := make(map[int]float64)
		for _, tok := range v.tokenize(doc) {
			if col, known := v.Vocab[tok]; known {
				coords[col]++
			}
		}
		m.Rows[i] = sparse.NewVector(coords)
	}
	return m, nil
}

// Width is the vocabulary size.
func (v *CountVectorizer) Width() int {
	return len(v.Vocab)
}

// Reset discards the vocabulary.
func (v *CountVectorizer) Reset() {
	v.Vocab = nil
}
