package docx

import (
	"fmt"
	"strings"
)

// NumberFormat is a list level's counter style, matching OOXML w:numFmt
// values.
type NumberFormat string

const (
	FormatDecimal     NumberFormat = "decimal"
	FormatBullet      NumberFormat = "bullet"
	FormatLowerRoman  NumberFormat = "lowerRoman"
	FormatUpperRoman  NumberFormat = "upperRoman"
	FormatLowerLetter NumberFormat = "lowerLetter"
	FormatUpperLetter NumberFormat = "upperLetter"
	FormatCJK         NumberFormat = "chineseCounting"
)

// LevelDef declares how one list level formats its counter. LevelText is the
// OOXML pattern, e.g. "%1." for level 0.
type LevelDef struct {
	Format    NumberFormat
	LevelText string
	Start     int
}

// NumberingDefinition maps level index to its definition.
type NumberingDefinition struct {
	Levels map[int]LevelDef
}

// Engine re-derives literal numbering prefixes for paragraphs in document
// order. One counter runs per (definition id, level) pair; counters only
// advance — manual restarts beyond the declared start value are not
// supported.
type Engine struct {
	definitions map[int]NumberingDefinition
	counters    map[counterKey]int
}

type counterKey struct {
	numID int
	level int
}

// NewEngine builds an engine over the document's numbering definitions.
func NewEngine(definitions map[int]NumberingDefinition) *Engine {
	return &Engine{
		definitions: definitions,
		counters:    make(map[counterKey]int),
	}
}

// Prefix returns the literal numbering prefix for a paragraph tagged with
// (numID, level), advancing that pair's counter. A numID of 0 is the
// per-paragraph "no numbering" override: it never advances any counter and
// yields the empty string. Unknown definitions also yield no prefix.
func (e *Engine) Prefix(numID, level int) string {
	if numID == 0 {
		return ""
	}
	def, ok := e.definitions[numID]
	if !ok {
		return ""
	}
	lvl, ok := def.Levels[level]
	if !ok {
		return ""
	}

	if lvl.Format == FormatBullet {
		return "• "
	}

	key := counterKey{numID: numID, level: level}
	if _, seen := e.counters[key]; !seen {
		start := lvl.Start
		if start <= 0 {
			start = 1
		}
		e.counters[key] = start - 1
	}
	e.counters[key]++
	val := e.counters[key]

	text := lvl.LevelText
	if text == "" {
		text = fmt.Sprintf("%%%d.", level+1)
	}
	placeholder := fmt.Sprintf("%%%d", level+1)
	return strings.ReplaceAll(text, placeholder, FormatValue(lvl.Format, val)) + " "
}

// FormatValue renders a counter value in the given style.
func FormatValue(format NumberFormat, n int) string {
	switch format {
	case FormatLowerRoman:
		return strings.ToLower(roman(n))
	case FormatUpperRoman:
		return roman(n)
	case FormatLowerLetter:
		return letter(n, 'a')
	case FormatUpperLetter:
		return letter(n, 'A')
	case FormatCJK:
		return cjkNumeral(n)
	default:
		return fmt.Sprintf("%d", n)
	}
}

var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(n int) string {
	if n <= 0 {
		return ""
	}
	var sb strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			sb.WriteString(rv.symbol)
			n -= rv.value
		}
	}
	return sb.String()
}

// letter maps 1..26 to a..z; values beyond wrap like spreadsheet columns do
// not — OOXML repeats the letter instead (aa is 27 in Word, but single-letter
// repetition matches what sources in the wild produce for overflow).
func letter(n int, base rune) string {
	if n <= 0 {
		return ""
	}
	idx := (n - 1) % 26
	repeat := (n-1)/26 + 1
	return strings.Repeat(string(base+rune(idx)), repeat)
}

var cjkDigits = []rune("零一二三四五六七八九")

// cjkNumeral composes a Chinese numeral: direct character below 10, 十-form
// below 20, tens composition below 100, decimal digits beyond.
func cjkNumeral(n int) string {
	switch {
	case n < 0:
		return fmt.Sprintf("%d", n)
	case n < 10:
		return string(cjkDigits[n])
	case n < 20:
		if n%10 == 0 {
			return "十"
		}
		return "十" + string(cjkDigits[n%10])
	case n < 100:
		s := string(cjkDigits[n/10]) + "十"
		if n%10 != 0 {
			s += string(cjkDigits[n%10])
		}
		return s
	default:
		return fmt.Sprintf("%d", n)
	}
}
