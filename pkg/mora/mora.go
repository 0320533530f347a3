// Package mora splits katakana pronunciations into morae.
package mora

import (
	"iter"
	"regexp"
	"strings"
)

// Mora is a single rhythmic beat of a pronunciation, e.g. "キャ" or "ー".
type Mora string

// String returns the surface text of the mora.
func (m Mora) String() string { return string(m) }

// Combining rules, most specific first. Go's regexp alternation is
// leftmost-first, so earlier alternatives win over the single-kana fallback.
const (
	ruleOthers = `[イ][ェ]|[ヴ][ャュョ]|[トド][ゥ]|[テデ][ィャュョ]|[デ][ェ]|[クグ][ヮ]`
	ruleLineI  = `[キシチニヒミリギジビピ][ェャュョ]`
	ruleLineU  = `[ツフヴ][ァ]|[ウスツフヴズ][ィ]|[ウツフヴ][ェォ]`
	ruleSingle = `[ァ-ヴー]`
)

var morae = regexp.MustCompile(ruleOthers + `|` + ruleLineI + `|` + ruleLineU + `|` + ruleSingle)

// segmentable reports whether r can be part of a mora.
func segmentable(r rune) bool {
	return (r >= 'ァ' && r <= 'ヴ') || r == 'ー'
}

// strip removes every character no rule can match.
func strip(kana string) string {
	return strings.Map(func(r rune) rune {
		if segmentable(r) {
			return r
		}
		return -1
	}, kana)
}

// All returns the morae of kana in source order. The sequence is evaluated
// lazily and can be ranged over any number of times.
//
// Characters that match no rule (kanji, ASCII, hiragana, ・, ヵ, ...) are
// removed before matching, so they never split a mora: "キ!ャ" is [キャ].
// This keeps Segment(Join(Segment(s))) equal to Segment(s) for every s.
func All(kana string) iter.Seq[Mora] {
	return func(yield func(Mora) bool) {
		rest := strip(kana)
		for rest != "" {
			loc := morae.FindStringIndex(rest)
			if loc == nil {
				return
			}
			if !yield(Mora(rest[loc[0]:loc[1]])) {
				return
			}
			rest = rest[loc[1]:]
		}
	}
}

// Segment returns all morae of kana as a slice.
func Segment(kana string) []Mora {
	var out []Mora
	for m := range All(kana) {
		out = append(out, m)
	}
	return out
}

// Count returns the number of morae in kana.
func Count(kana string) int {
	n := 0
	for range All(kana) {
		n++
	}
	return n
}

// Join concatenates the surface text of ms.
func Join(ms []Mora) string {
	var b strings.Builder
	for _, m := range ms {
		b.WriteString(string(m))
	}
	return b.String()
}
