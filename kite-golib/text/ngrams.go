package text

import (
	"errors"
	"strings"
)

// NGrams constructs the n grams (of order n) for the given token stream, each
// joined into a single space separated term so that n grams can be counted and
// indexed like plain tokens.
func NGrams(n int, toks Tokens) (Tokens, error) {
	if n < 1 || len(toks) < n {
		return nil, errors.New("not enough tokens for nGrams")
	}
	var nGrams Tokens
	for i := 0; i+n <= len(toks); i++ {
		nGrams = append(nGrams, strings.Join(toks[i:i+n], " "))
	}
	return nGrams, nil
}
