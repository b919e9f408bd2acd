package services

import "errors"

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")

	// Question set specific errors
	ErrQuestionSetNotFound  = errors.New("question set not found")
	ErrQuestionSetEmpty     = errors.New("question set has no items")
	ErrDuplicateQuestionIDs = errors.New("question ids must be unique within a set")

	// Session specific errors
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionNotSubmitted = errors.New("session has not been submitted yet")
	ErrQuestionNotFound    = errors.New("question not found in session")

	// Flashcard specific errors
	ErrNotFlashcardSession  = errors.New("session is not a flashcard review")
	ErrFlashcardSession     = errors.New("flashcard sessions are finished, not submitted")
	ErrFlashcardsIncomplete = errors.New("not every card has been marked yet")
)

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrQuestionSetNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrQuestionNotFound)
}

// IsConflict checks if error represents a state the request cannot apply to
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrSessionNotSubmitted) ||
		errors.Is(err, ErrNotFlashcardSession) ||
		errors.Is(err, ErrFlashcardSession) ||
		errors.Is(err, ErrFlashcardsIncomplete)
}

// IsValidation checks if error represents rejected input
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrQuestionSetEmpty) ||
		errors.Is(err, ErrDuplicateQuestionIDs)
}
