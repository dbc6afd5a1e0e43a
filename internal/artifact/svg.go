package artifact

import (
	"encoding/xml"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/braillebridge/teacher-console/internal/braille"
)

const (
	svgFontSize  = 28
	svgCellWidth = 18 // approximate advance of one Braille cell at svgFontSize
	svgPaddingX  = 12
	svgBaselineY = 44
	svgSquiggleY = 62
	svgHeight    = 84
	errorColor   = "#d93025"
	squiggleRune = "﹏"
)

// AnnotatedSVG renders the Braille text as an SVG with the error span drawn
// in red and underlined by a squiggle row scaled to the span's length. The
// three spans always concatenate back to the original text. ok is false when
// the span is rejected after clamping, in which case no artifact is produced.
func AnnotatedSVG(submissionID int, brailleText string, span braille.Span) (Artifact, bool) {
	segments, ok := braille.Split(brailleText, span)
	if !ok {
		return Artifact{}, false
	}

	totalCells := utf8.RuneCountInString(brailleText)
	errorCells := utf8.RuneCountInString(segments.Error)
	width := totalCells*svgCellWidth + 2*svgPaddingX

	squiggleX := svgPaddingX + utf8.RuneCountInString(segments.Before)*svgCellWidth
	squiggle := strings.Repeat(squiggleRune, errorCells)

	var builder strings.Builder
	fmt.Fprintf(&builder, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, width, svgHeight, width, svgHeight)
	builder.WriteString("\n  ")
	fmt.Fprintf(&builder, `<text x="%d" y="%d" font-size="%d" font-family="monospace" xml:space="preserve">`, svgPaddingX, svgBaselineY, svgFontSize)
	fmt.Fprintf(&builder, `<tspan>%s</tspan>`, escape(segments.Before))
	fmt.Fprintf(&builder, `<tspan fill="%s">%s</tspan>`, errorColor, escape(segments.Error))
	fmt.Fprintf(&builder, `<tspan>%s</tspan>`, escape(segments.After))
	builder.WriteString("</text>\n  ")
	fmt.Fprintf(&builder, `<text x="%d" y="%d" font-size="%d" fill="%s" xml:space="preserve">%s</text>`, squiggleX, svgSquiggleY, svgFontSize/2, errorColor, squiggle)
	builder.WriteString("\n</svg>\n")

	return Artifact{
		Name:      fmt.Sprintf("feedback_submission_%d.svg", submissionID),
		MediaType: "image/svg+xml",
		Content:   builder.String(),
	}, true
}

func escape(s string) string {
	var buf strings.Builder
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}
