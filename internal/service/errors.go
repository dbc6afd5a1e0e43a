package service

import "errors"

var (
	// ErrValidation marks a client-side precondition failure. No network
	// call is made when it fires.
	ErrValidation = errors.New("validation failed")

	// ErrNoAnswers indicates a submission with an empty answers sequence.
	// The review workflow refuses such submissions at the data boundary
	// instead of indexing blindly into the first answer.
	ErrNoAnswers = errors.New("submission has no answers")
)
