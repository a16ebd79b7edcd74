package fonts

import "unicode"

// Measurer estimates rendered text width without loading font files. The
// estimate is per-rune em fractions: CJK and other wide scripts take a full
// em, narrow punctuation about a third, everything else roughly half. Column
// widths computed from these estimates are always clamped downstream, so the
// approximation only has to be monotone in content length.
type Measurer struct{}

// Em fractions per rune class.
const (
	wideEm    = 1.0
	narrowEm  = 0.34
	defaultEm = 0.52
	digitEm   = 0.5
)

// TextWidth returns the estimated width of s in points at the given font
// size.
func (Measurer) TextWidth(s string, fontSize float64) float64 {
	var em float64
	for _, r := range s {
		em += runeEm(r)
	}
	return em * fontSize
}

func runeEm(r rune) float64 {
	switch {
	case r >= '0' && r <= '9':
		return digitEm
	case r == 'i' || r == 'l' || r == 'j' || r == 't' || r == 'f' ||
		r == '.' || r == ',' || r == ':' || r == ';' || r == '\'' ||
		r == '|' || r == '!' || r == ' ':
		return narrowEm
	case isWide(r):
		return wideEm
	default:
		return defaultEm
	}
}

// isWide reports whether r renders at a full em (CJK ideographs, kana,
// hangul, fullwidth forms).
func isWide(r rune) bool {
	if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hangul, r) ||
		unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) {
		return true
	}
	// Fullwidth and halfwidth forms block.
	return r >= 0xFF00 && r <= 0xFF60
}
