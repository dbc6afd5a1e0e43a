package braille

const (
	blockStart = 0x2800
	blockEnd   = 0x28FF
)

// IsCell reports whether the rune lies in the Unicode Braille Patterns block.
func IsCell(r rune) bool {
	return r >= blockStart && r <= blockEnd
}

// IsBraille classifies a string as already Braille-encoded when a strict
// majority of its runes are Braille cells. The empty string is not Braille.
// Mixed strings near the threshold are ambiguous by construction; the caller
// treats this as a rendering hint, not a guarantee.
func IsBraille(text string) bool {
	if text == "" {
		return false
	}

	total := 0
	cells := 0
	for _, r := range text {
		total++
		if IsCell(r) {
			cells++
		}
	}

	return cells*2 > total
}

// Render returns the Braille display form of text: strings that already
// classify as Braille pass through unchanged, everything else is
// transliterated. The second return value reports whether a conversion
// happened.
func Render(text string) (string, bool) {
	if IsBraille(text) {
		return text, false
	}

	return Transliterate(text), true
}
