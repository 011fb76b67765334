// Package text extracts candidate place-name tokens from free,
// voice-derived input.
package text

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NounTokenizer is a lightweight stand-in for a full morphological
// analyzer: it NFC-normalizes the input and splits it on anything that is
// not a letter or a digit. Downstream resolution only needs tokens that
// carry an administrative suffix, so finer noun extraction is not
// required here.
type NounTokenizer struct{}

func NewNounTokenizer() *NounTokenizer {
	return &NounTokenizer{}
}

// Tokenize returns the place-name candidate tokens of input in their
// original order. Empty input yields no tokens and no error.
func (t *NounTokenizer) Tokenize(ctx context.Context, input string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized := norm.NFC.String(input)

	tokens := strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return out, nil
}
