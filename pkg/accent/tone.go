// Package accent converts between the two representations of Japanese pitch
// accent used by the editor: an accent type (the position after which the
// pitch drops, or flat) and a high/low tone per mora.
//
// Tone sequences always end with a synthetic particle mora, Particle. It
// stands for the particle "が" and is the only way to tell a flat word from
// one whose pitch drops right after its last mora. It is not part of the
// word's pronunciation; use Strip or Pronunciation before showing or storing
// the reading anywhere else.
package accent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/japaniel/accent/pkg/mora"
	"github.com/samber/lo"
)

// Particle is the synthetic mora appended to every tone sequence.
const Particle mora.Mora = "ガ"

// Tone is the pitch of a single mora.
type Tone int

const (
	Low  Tone = 0
	High Tone = 1
)

func (t Tone) String() string {
	if t == High {
		return "H"
	}
	return "L"
}

// ToneMora pairs a mora with its pitch. The JSON shape matches the editor's
// wire format: {"mora": "ハ", "tone": 1}.
type ToneMora struct {
	Mora mora.Mora `json:"mora" yaml:"mora"`
	Tone Tone      `json:"tone" yaml:"tone"`
}

var (
	ErrInvalidTone = errors.New("invalid tone")
	ErrToneCount   = errors.New("tone count does not match morae")
)

// Strip returns the real morae of tones, without the trailing particle.
func Strip(tones []ToneMora) []ToneMora {
	if len(tones) == 0 {
		return nil
	}
	out := make([]ToneMora, len(tones)-1)
	copy(out, tones[:len(tones)-1])
	return out
}

// Morae returns the real morae of tones.
func Morae(tones []ToneMora) []mora.Mora {
	return lo.Map(Strip(tones), func(tm ToneMora, _ int) mora.Mora { return tm.Mora })
}

// Pronunciation joins the real morae of tones into a reading.
func Pronunciation(tones []ToneMora) string {
	return mora.Join(Morae(tones))
}

// FormatTones renders tones as e.g. "LHHH|H", the particle after the bar.
func FormatTones(tones []ToneMora) string {
	var b strings.Builder
	for i, tm := range tones {
		if i > 0 && i == len(tones)-1 {
			b.WriteByte('|')
		}
		b.WriteString(tm.Tone.String())
	}
	return b.String()
}

// ParseTones reads a tone pattern such as "LHHH|H" or "0111 1".
// Whitespace, '|' and ',' are ignored.
func ParseTones(s string) ([]Tone, error) {
	var out []Tone
	for _, r := range s {
		switch r {
		case 'H', 'h', '1', '高':
			out = append(out, High)
		case 'L', 'l', '0', '低':
			out = append(out, Low)
		case ' ', '\t', '|', ',':
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidTone, r)
		}
	}
	return out, nil
}

// WithTones pairs morae and the particle with explicit tones. tones must hold
// one entry per mora plus one for the particle.
func WithTones(ms []mora.Mora, tones []Tone) ([]ToneMora, error) {
	if len(tones) != len(ms)+1 {
		return nil, fmt.Errorf("%w: %d morae need %d tones, got %d", ErrToneCount, len(ms), len(ms)+1, len(tones))
	}
	out := make([]ToneMora, 0, len(tones))
	for i, m := range ms {
		out = append(out, ToneMora{Mora: m, Tone: tones[i]})
	}
	return append(out, ToneMora{Mora: Particle, Tone: tones[len(ms)]}), nil
}
