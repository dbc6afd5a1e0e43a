package braille

import "strings"

// Span is the half-open rune range [Start, End) marking an erroneous
// substring inside a Braille text.
type Span struct {
	Start int
	End   int
}

// Segments is a Braille text cut into the part before an error span, the
// erroneous span itself and the remainder. Before + Error + After always
// reconstructs the original text.
type Segments struct {
	Before string
	Error  string
	After  string
}

// Split cuts text at the span boundaries. Out-of-range bounds are clamped to
// the rune length of text rather than trusted; a span that is inverted or
// empty after clamping yields ok=false and the whole text in Before.
func Split(text string, span Span) (Segments, bool) {
	runes := []rune(text)

	start := span.Start
	end := span.End
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return Segments{Before: text}, false
	}

	return Segments{
		Before: string(runes[:start]),
		Error:  string(runes[start:end]),
		After:  string(runes[end:]),
	}, true
}

// Token is a whitespace-delimited piece of source-language text, flagged when
// it appears verbatim in an answer's error-token set.
type Token struct {
	Text    string
	Flagged bool
}

// FlagTokens splits text on whitespace and marks every token that has an
// exact match in errorTokens. Matching is literal: substrings, positions and
// punctuation variants are not considered.
func FlagTokens(text string, errorTokens []string) []Token {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	flagged := make(map[string]struct{}, len(errorTokens))
	for _, token := range errorTokens {
		flagged[token] = struct{}{}
	}

	tokens := make([]Token, 0, len(fields))
	for _, field := range fields {
		_, hit := flagged[field]
		tokens = append(tokens, Token{Text: field, Flagged: hit})
	}

	return tokens
}
