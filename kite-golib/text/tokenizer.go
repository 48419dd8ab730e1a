package text

import (
	"bytes"
	"strings"
	"unicode"

	porterstemmer "github.com/kiteco/go-porterstemmer"
	"golang.org/x/net/html"
)

// TokenFunc defines a type of function that takes in an array of tokens and
// returns an array of tokens.
type TokenFunc func(Tokens) Tokens

// Tokens represents a slice of strings
type Tokens []string

// Processor consists of a list of text processing rules.
type Processor struct {
	filters []TokenFunc
}

// FeatureProcessor is the processor used to build count features from
// natural-language text: lower case, then remove stop words.
var FeatureProcessor = NewProcessor(Lower, RemoveStopWords)

// SearchTermProcessor does the following to an input token array:
// 1) lower case each token
// 2) remove stop words
// 3) stem each token
// 4) uniquify the token array
var SearchTermProcessor = NewProcessor(Lower, RemoveStopWords, Stem, Uniquify)

// NewProcessor takes a list of TokenFuncs to instantiate a Processor.
func NewProcessor(funcs ...TokenFunc) *Processor {
	f := &Processor{}
	for _, fn := range funcs {
		f.filters = append(f.filters, fn)
	}
	return f
}

// Apply applies a list of TokenFunc to transform the input tokens
func (f *Processor) Apply(ts Tokens) Tokens {
	for _, fn := range f.filters {
		ts = fn(ts)
	}
	return ts
}

// Tokenize splits natural-language text into word tokens. A word token is a
// maximal run of letters, digits, and underscores that is at least two runes
// long; anything shorter and all other characters are discarded.
func Tokenize(s string) Tokens {
	var tokens Tokens
	var word []rune
	for _, r := range s {
		if isWordRune(r) {
			word = append(word, r)
			continue
		}
		if len(word) >= minTokenRunes {
			tokens = append(tokens, string(word))
		}
		word = word[:0]
	}
	if len(word) >= minTokenRunes {
		tokens = append(tokens, string(word))
	}
	return tokens
}

// minTokenRunes is the minimum word-token length. Single characters carry no
// signal for count features.
const minTokenRunes = 2

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokenizer is a generic interface for an object which breaks an input
// string into Tokens.
type Tokenizer interface {
	Tokenize(string) Tokens
}

// WordTokenizer tokenizes natural-language text with Tokenize.
type WordTokenizer struct{}

// Tokenize satisfies the Tokenizer interface.
func (WordTokenizer) Tokenize(s string) Tokens {
	return Tokenize(s)
}

// HTMLTokenizer extracts the text components of an HTML doc and word-tokenizes
// them. Markup and attributes are discarded.
type HTMLTokenizer struct{}

// Tokenize satisfies the Tokenizer interface.
func (HTMLTokenizer) Tokenize(doc string) Tokens {
	var tokens Tokens
	z := html.NewTokenizer(bytes.NewBufferString(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return tokens
		case html.TextToken:
			tokens = append(tokens, Tokenize(string(z.Text()))...)
		}
	}
}

// RemoveStopWords removes stop words from a token stream
func RemoveStopWords(ts Tokens) Tokens {
	var filteredTokens Tokens
	for _, t := range ts {
		if _, skip := stopWords[t]; !skip {
			filteredTokens = append(filteredTokens, t)
		}
	}
	return filteredTokens
}

// Lower converts all tokens to lower case
func Lower(ts Tokens) Tokens {
	for i, t := range ts {
		ts[i] = strings.ToLower(t)
	}
	return ts
}

// Stem extracts and returns the stems of each token in the input token stream
func Stem(ts Tokens) Tokens {
	for i, t := range ts {
		ts[i] = porterstemmer.StemString(t)
	}
	return ts
}

// Uniquify returns the set of unique tokens in a token stream
func Uniquify(ts Tokens) Tokens {
	var uniqueTokens Tokens
	seen := make(map[string]struct{})
	for _, t := range ts {
		if _, exists := seen[t]; !exists {
			uniqueTokens = append(uniqueTokens, t)
			seen[t] = struct{}{}
		}
	}
	return uniqueTokens
}
