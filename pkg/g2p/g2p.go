// Package g2p is the boundary to grapheme-to-phoneme lookup: it turns text
// into the katakana reading the accent editor works on.
//
// Providers only supply readings. They do not predict accent; the tones of a
// fresh reading are the editor default, see DefaultTones.
package g2p

import (
	"context"
	"errors"
	"fmt"

	"github.com/japaniel/accent/pkg/accent"
	"github.com/japaniel/accent/pkg/mora"
)

// ErrNoReading is returned when text yields no kana at all.
var ErrNoReading = errors.New("no reading")

// Provider returns the katakana reading of text.
type Provider interface {
	Reading(ctx context.Context, text string) (string, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, text string) (string, error)

func (f ProviderFunc) Reading(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Morae looks up text with p and segments the reading.
func Morae(ctx context.Context, p Provider, text string) ([]mora.Mora, error) {
	reading, err := p.Reading(ctx, text)
	if err != nil {
		return nil, err
	}
	ms := mora.Segment(mora.Normalize(reading))
	if len(ms) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoReading, text)
	}
	return ms, nil
}

// Tones looks up text with p and returns its morae with the default tones.
func Tones(ctx context.Context, p Provider, text string) ([]accent.ToneMora, error) {
	ms, err := Morae(ctx, p, text)
	if err != nil {
		return nil, err
	}
	return DefaultTones(ms), nil
}

// DefaultTones gives a freshly looked-up reading its initial tones: accent
// core on the first mora, i.e. accent index 0.
func DefaultTones(ms []mora.Mora) []accent.ToneMora {
	return accent.Tones(ms, accent.FromIndex(0, len(ms)))
}
