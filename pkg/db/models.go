package db

import "time"

// Reading is a cached grapheme-to-phoneme result: the katakana reading of a
// piece of text, without the trailing particle.
type Reading struct {
	ID        int64
	Text      string
	Reading   string
	Source    string
	UpdatedAt time.Time
}
