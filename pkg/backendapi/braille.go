package backendapi

import (
	"context"
	"mime/multipart"
)

// ProcessBrailleImage runs Braille OCR over an uploaded image and returns the
// recognized Braille and Urdu text, line by line.
func (c *Client) ProcessBrailleImage(ctx context.Context, file Upload) (BrailleScan, error) {
	var scan BrailleScan
	err := c.postMultipart(ctx, "process_braille", "/api/process-braille", func(writer *multipart.Writer) error {
		return writeFileField(writer, "file", file.Filename, file.Content)
	}, &scan)
	if err != nil {
		return BrailleScan{}, err
	}

	return scan, nil
}

// TextToBraille converts plain text into Grade-1 Braille for the given
// language ("urdu" or "english").
func (c *Client) TextToBraille(ctx context.Context, text, lang string) (string, error) {
	payload := map[string]string{"text": text, "lang": lang}

	var response struct {
		BrailleText string `json:"braille_text"`
	}
	if err := c.postJSON(ctx, "text_to_braille", "/api/text-to-braille", payload, &response); err != nil {
		return "", err
	}

	return response.BrailleText, nil
}

// TranslateUrduToEnglish translates Urdu text, optionally using the original
// question as context for a more faithful translation.
func (c *Client) TranslateUrduToEnglish(ctx context.Context, text, question string) (string, error) {
	payload := map[string]string{"text": text}
	if question != "" {
		payload["question"] = question
	}

	var response struct {
		EnglishText string `json:"english_text"`
	}
	if err := c.postJSON(ctx, "translate_urdu_english", "/api/translate-urdu-english", payload, &response); err != nil {
		return "", err
	}

	return response.EnglishText, nil
}
