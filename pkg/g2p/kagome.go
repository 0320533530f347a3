package g2p

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
	"github.com/japaniel/accent/pkg/mora"
)

// KagomeProvider reads text with the kagome morphological analyzer and the
// IPA dictionary.
type KagomeProvider struct {
	t *tokenizer.Tokenizer
}

// NewKagomeProvider creates a new tokenizer instance.
func NewKagomeProvider() (*KagomeProvider, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &KagomeProvider{t: t}, nil
}

// Reading returns the pronunciation of text in katakana.
func (k *KagomeProvider) Reading(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, token := range k.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		b.WriteString(tokenReading(token.Surface, token.Features()))
	}

	reading := b.String()
	if mora.Count(reading) == 0 {
		return "", fmt.Errorf("%w for %q", ErrNoReading, text)
	}
	return reading, nil
}

// tokenReading picks the best kana for a token.
//
// Kagome IPA features usually:
// 7: Reading (kana spelling, e.g. "ハ" for the particle は)
// 8: Pronunciation (e.g. "ワ")
// Unknown words carry neither; kana surfaces are used as they are.
func tokenReading(surface string, features []string) string {
	if len(features) > 8 && features[8] != "*" {
		return features[8]
	}
	if len(features) > 7 && features[7] != "*" {
		return features[7]
	}
	if mora.IsKana(surface) {
		return mora.Normalize(surface)
	}
	return ""
}
