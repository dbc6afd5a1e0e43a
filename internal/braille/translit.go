// Package braille provides text utilities for working with Unicode Braille
// Patterns (U+2800..U+28FF): transliteration of Latin text into Braille cells,
// detection of already-encoded strings and span extraction for error
// highlighting.
package braille

import "strings"

// Placeholder is emitted for every rune that has no entry in the
// transliteration table, including runes that are already Braille cells.
const Placeholder = '⠿'

// letterTable maps lower-case Latin letters to their Grade-1 Braille cells.
var letterTable = map[rune]rune{
	'a': '⠁', 'b': '⠃', 'c': '⠉', 'd': '⠙', 'e': '⠑',
	'f': '⠋', 'g': '⠛', 'h': '⠓', 'i': '⠊', 'j': '⠚',
	'k': '⠅', 'l': '⠇', 'm': '⠍', 'n': '⠝', 'o': '⠕',
	'p': '⠏', 'q': '⠟', 'r': '⠗', 's': '⠎', 't': '⠞',
	'u': '⠥', 'v': '⠧', 'w': '⠺', 'x': '⠭', 'y': '⠽',
	'z': '⠵',
	' ': ' ',
}

// Transliterate converts text into a same-length sequence of Braille cells,
// one cell per input rune. Latin letters are lower-cased before lookup; any
// rune without a table entry becomes Placeholder. It is total over any input
// and never fails; the empty string maps to itself.
func Transliterate(text string) string {
	if text == "" {
		return ""
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		cell, ok := letterTable[r]
		if !ok {
			cell = Placeholder
		}
		builder.WriteRune(cell)
	}

	return builder.String()
}
