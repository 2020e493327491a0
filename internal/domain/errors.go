package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidReviewOutcome is returned when a review outcome is not valid.
	ErrInvalidReviewOutcome = errors.New("invalid review outcome")

	// ErrDuplicateCard is returned when a deck would hold two cards for the
	// same character.
	ErrDuplicateCard = errors.New("duplicate card")

	// ErrCardNotInDeck is returned when a record being replaced has no
	// counterpart in the deck.
	ErrCardNotInDeck = errors.New("card not in deck")

	// ErrUnknownCharacters is returned when deck characters have no
	// dictionary entry.
	ErrUnknownCharacters = errors.New("characters missing from dictionary")
)
