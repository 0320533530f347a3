package dictionary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/japaniel/accent/pkg/accent"
	"github.com/japaniel/accent/pkg/mora"
)

// Priority bounds of a word; DefaultPriority is what new entries start with.
const (
	MinPriority     = 0
	MaxPriority     = 10
	DefaultPriority = 5
)

var (
	ErrEmptyWord            = errors.New("surface and pronunciation are required")
	ErrInvalidPronunciation = errors.New("pronunciation must be hiragana or katakana")
	ErrInvalidPriority      = errors.New("priority out of range")
)

var priorityLabels = map[int]string{
	0:  "最低",
	3:  "低",
	5:  "標準",
	7:  "高",
	10: "最高",
}

// PriorityLabel returns the slider label for p, or "" between marks.
func PriorityLabel(p int) string {
	return priorityLabels[p]
}

// WordState is the editable form of an entry. Tones ends with the particle;
// Pronunciation never contains it.
type WordState struct {
	UUID          string
	Surface       string
	Pronunciation string
	Tones         []accent.ToneMora
	// AccentIndex is the 0-indexed last high mora; len(Tones)-1 means flat.
	AccentIndex int
	Priority    int
}

// NewWordState returns the empty state of a new entry.
func NewWordState() WordState {
	return WordState{
		Tones:    accent.Tones(nil, accent.Flat()),
		Priority: DefaultPriority,
	}
}

// ToWordState expands a stored entry for editing.
func ToWordState(e Element) WordState {
	tones := e.Word.Tones()
	return WordState{
		UUID:          e.UUID,
		Surface:       e.Word.Surface,
		Pronunciation: e.Word.Pronunciation,
		Tones:         tones,
		AccentIndex:   e.Word.Accent().Index(len(tones) - 1),
		Priority:      e.Word.Priority,
	}
}

// morae returns the number of real morae in the state.
func (s WordState) morae() int {
	if len(s.Tones) == 0 {
		return 0
	}
	return len(s.Tones) - 1
}

// Accent returns the accent type selected in the state.
func (s WordState) Accent() accent.Type {
	return accent.FromIndex(s.AccentIndex, s.morae())
}

// Element collapses the state back into a stored entry.
func (s WordState) Element() Element {
	return Element{
		UUID: s.UUID,
		Word: Word{
			Surface:       s.Surface,
			Pronunciation: s.Pronunciation,
			AccentType:    s.Accent().Core(),
			Priority:      s.Priority,
		},
	}
}

// WithAccentIndex moves the accent marker and recomputes the tones.
// idx is clamped into 0..number of morae.
func (s WordState) WithAccentIndex(idx int) WordState {
	n := s.morae()
	s.Tones = accent.Retone(s.Tones, idx)
	s.AccentIndex = accent.FromIndex(idx, n).Index(n)
	return s
}

// WithTones applies hand-painted tones and derives the accent index from them.
func (s WordState) WithTones(tones []accent.ToneMora) WordState {
	s.Tones = tones
	s.AccentIndex = accent.TypeOf(tones).Index(s.morae())
	return s
}

// WithReading applies a fresh G2P result for the pronunciation. Only the
// reading is kept: tones are reset to the accent on the first mora and the
// pronunciation becomes the joined morae. A non-empty surface (e.g. the
// normalized form) replaces the current one.
func (s WordState) WithReading(surface string, tones []accent.ToneMora) WordState {
	if surface != "" {
		s.Surface = surface
	}
	s.Tones = accent.Retone(tones, 0)
	s.AccentIndex = 0
	s.Pronunciation = accent.Pronunciation(s.Tones)
	return s
}

// ValidatePronunciation checks that every character of p is part of a mora
// once hiragana and half-width kana are normalized. Segmentation skips other
// characters silently; a stored pronunciation must not contain any.
func ValidatePronunciation(p string) error {
	if strings.TrimSpace(p) == "" {
		return ErrEmptyWord
	}
	kana := mora.Normalize(p)
	if mora.Join(mora.Segment(kana)) != kana {
		return fmt.Errorf("%w: %q", ErrInvalidPronunciation, p)
	}
	return nil
}

// Validate checks the state can be stored.
func (s WordState) Validate() error {
	if strings.TrimSpace(s.Surface) == "" {
		return ErrEmptyWord
	}
	if err := ValidatePronunciation(s.Pronunciation); err != nil {
		return err
	}
	if s.Priority < MinPriority || s.Priority > MaxPriority {
		return fmt.Errorf("%w: %d not in %d..%d", ErrInvalidPriority, s.Priority, MinPriority, MaxPriority)
	}
	return nil
}
