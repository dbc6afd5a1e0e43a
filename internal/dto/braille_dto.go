package dto

// BrailleRenderRequest asks for the display form of a string.
type BrailleRenderRequest struct {
	Text string `json:"text" validate:"required"`
}

// BrailleRenderResponse carries the display form and whether a local
// transliteration happened (already-Braille input passes through).
type BrailleRenderResponse struct {
	Braille   string `json:"braille"`
	Converted bool   `json:"converted"`
}

// TextToBrailleRequest asks the backend for a Grade-1 Braille translation.
type TextToBrailleRequest struct {
	Text string `json:"text" validate:"required"`
	Lang string `json:"lang" validate:"required,oneof=urdu english"`
}

// TextToBrailleResponse is the backend's translation.
type TextToBrailleResponse struct {
	BrailleText string `json:"braille_text"`
}
