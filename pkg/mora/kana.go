package mora

import (
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalize folds a free-text pronunciation into full-width katakana so it can
// be segmented: half-width katakana is folded to full width (and its separate
// voicing marks composed), hiragana is shifted to katakana. Full-width ASCII is
// folded to narrow; everything else passes through.
func Normalize(s string) string {
	s = norm.NFC.String(width.Fold.String(s))
	return ToKatakana(s)
}

// ToKatakana converts hiragana to katakana.
func ToKatakana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if (r >= 0x3041 && r <= 0x3096) || r == 0x309D || r == 0x309E {
			runes[i] = r + 0x60
		}
	}
	return string(runes)
}

// IsKana reports whether s is non-empty and every rune is katakana,
// hiragana or the long-vowel mark.
func IsKana(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 0x3041 && r <= 0x309F:
		case r >= 0x30A0 && r <= 0x30FF:
		default:
			return false
		}
	}
	return true
}
