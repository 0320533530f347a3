// Package dictionary converts user dictionary entries to and from the state
// the accent editor works on.
//
// Entries store the accent as a single integer (0 = flat); the editor works on
// a tone per mora plus the particle. All conversions go through pkg/accent.
package dictionary

import (
	"sort"

	"github.com/japaniel/accent/pkg/accent"
	"github.com/japaniel/accent/pkg/mora"
	"github.com/samber/lo"
)

// Word is a user dictionary entry as exchanged with the dictionary service.
type Word struct {
	Surface       string `json:"surface" yaml:"surface"`
	Pronunciation string `json:"pronunciation" yaml:"pronunciation"`
	// 1-indexed drop position, 0 when the word is flat.
	AccentType int `json:"accent_type" yaml:"accent_type"`
	Priority   int `json:"priority" yaml:"priority"`
}

// UserDict maps opaque entry ids to words.
type UserDict map[string]Word

// Element is a single keyed entry.
type Element struct {
	UUID string `json:"uuid" yaml:"uuid"`
	Word Word   `json:"word" yaml:"word"`
}

// Morae segments the pronunciation. Hiragana and half-width kana are accepted.
func (w Word) Morae() []mora.Mora {
	return mora.Segment(mora.Normalize(w.Pronunciation))
}

// Accent returns the accent type, clamped to the pronunciation's length.
func (w Word) Accent() accent.Type {
	return accent.FromCore(w.AccentType, len(w.Morae()))
}

// AccentString renders the accent in the "core/total" convention.
func (w Word) AccentString() string {
	return accent.Format(w.Accent(), len(w.Morae()))
}

// Tones returns the word's tone sequence, particle included.
func (w Word) Tones() []accent.ToneMora {
	return accent.Tones(w.Morae(), w.Accent())
}

// Elements lists d sorted by surface, then id.
func Elements(d UserDict) []Element {
	out := lo.MapToSlice(d, func(id string, w Word) Element {
		return Element{UUID: id, Word: w}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Word.Surface != out[j].Word.Surface {
			return out[i].Word.Surface < out[j].Word.Surface
		}
		return out[i].UUID < out[j].UUID
	})
	return out
}

// FromElements builds a UserDict. Later elements win on duplicate ids.
func FromElements(elems []Element) UserDict {
	d := make(UserDict, len(elems))
	for _, e := range elems {
		d[e.UUID] = e.Word
	}
	return d
}
