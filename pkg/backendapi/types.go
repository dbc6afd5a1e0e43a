package backendapi

// Diagram is one image/prompt pair inside an assignment.
type Diagram struct {
	ImagePath string `json:"image_path"`
	Prompt    string `json:"prompt"`
	Context   string `json:"context,omitempty"`
}

// Assignment is a teacher-created set of diagrams with prompts. Assignments
// are immutable once created; the backend owns their lifecycle.
type Assignment struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	Diagrams []Diagram `json:"diagrams"`
}

// Answer is a single student answer inside a submission. Either an uploaded
// image that was OCR'd into Braille plus Urdu text, or an audio recording
// transcribed into Urdu and English.
type Answer struct {
	DiagramIdx  int      `json:"diagram_idx"`
	AnswerType  string   `json:"answer_type"`
	FilePath    string   `json:"file_path"`
	UrduText    string   `json:"urdu_text"`
	EnglishText string   `json:"english_text"`
	BrailleText string   `json:"braille_text"`
	Errors      []string `json:"errors"`
}

// Submission is one student attempt at an assignment.
type Submission struct {
	ID           int         `json:"id"`
	AssignmentID int         `json:"assignment_id"`
	Student      string      `json:"student"`
	Answers      []Answer    `json:"answers"`
	Assignment   *Assignment `json:"assignment,omitempty"`
}

// AutogradeResult is the backend's correctness judgement for an answer. The
// optional half-open range [ErrorStart, ErrorEnd) points into the answer's
// Braille text. The result is ephemeral and never persisted on this side.
type AutogradeResult struct {
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
	ErrorStart  *int   `json:"error_start"`
	ErrorEnd    *int   `json:"error_end"`
}

// BrailleScan is the result of OCR'ing a Braille image.
type BrailleScan struct {
	BrailleText  string   `json:"braille_text"`
	UrduText     string   `json:"urdu_text"`
	BrailleLines []string `json:"braille_lines"`
	UrduLines    []string `json:"urdu_lines"`
	Errors       []string `json:"errors"`
}

// StudentProfile aggregates the strength/challenge traits collected from
// accepted feedback.
type StudentProfile struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Strengths  []string `json:"strengths"`
	Challenges []string `json:"challenges"`
}

// FeedbackAnalysis is the trait extracted from a piece of teacher feedback.
type FeedbackAnalysis struct {
	Trait string `json:"trait"`
	Type  string `json:"type"`
}

// Health reports backend liveness and whether the OCR model is loaded.
type Health struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// ProgressEvent is one frame of the lesson-pack progress stream.
type ProgressEvent struct {
	Status string `json:"status"`
	Idx    int    `json:"idx"`
	Total  int    `json:"total"`
}

// ExternalAnswer is the minimal answer payload accepted from external systems.
type ExternalAnswer struct {
	DiagramIdx int    `json:"diagram_idx"`
	AnswerType string `json:"answer_type"`
	FilePath   string `json:"file_path"`
}
