package accent

import "github.com/japaniel/accent/pkg/mora"

// Tones assigns a tone to every mora of a word with accent type t and appends
// the particle. The result always has len(ms)+1 entries.
//
// With core C the last high mora is D = C-1 (or the particle for flat). The
// first mora is high only when C == 1; otherwise pitch rises on the second
// mora. The particle is high only for the flat pattern.
func Tones(ms []mora.Mora, t Type) []ToneMora {
	n := len(ms)
	core := t.Clamp(n).Core()
	last := n
	if core != 0 {
		last = core - 1
	}

	out := make([]ToneMora, 0, n+1)
	for i, m := range ms {
		tone := Low
		if (i == 0 && core == 1) || (i > 0 && i <= last) {
			tone = High
		}
		out = append(out, ToneMora{Mora: m, Tone: tone})
	}

	particle := Low
	if core == 0 {
		particle = High
	}
	return append(out, ToneMora{Mora: Particle, Tone: particle})
}

// TypeOf derives the accent type from an edited tone sequence whose last entry
// is the particle. Any pattern is accepted: the last high entry decides, a
// high particle (or no high entry at all) means flat. The result is always
// valid for the sequence, even for multi-peak patterns no word has.
func TypeOf(tones []ToneMora) Type {
	n := len(tones) - 1
	if n < 0 {
		return Flat()
	}
	idx := n
	for i := n; i >= 0; i-- {
		if tones[i].Tone == High {
			idx = i
			break
		}
	}
	return FromIndex(idx, n)
}

// Retone recomputes every tone of tones for a new accent index (0-indexed last
// high mora, len(tones)-1 for flat), keeping the morae. idx is clamped.
func Retone(tones []ToneMora, idx int) []ToneMora {
	if len(tones) == 0 {
		return Tones(nil, Flat())
	}
	n := len(tones) - 1
	fresh := Tones(Morae(tones), FromIndex(idx, n))
	out := make([]ToneMora, len(tones))
	for i, tm := range tones {
		out[i] = ToneMora{Mora: tm.Mora, Tone: fresh[i].Tone}
	}
	return out
}
