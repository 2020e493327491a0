// Package srs implements the spaced repetition scheduler used to rate cards.
package srs

import (
	"errors"
	"time"

	"github.com/phrazzld/scry-hanzi/internal/domain"
)

// Common errors
var (
	ErrNilRecord      = errors.New("record cannot be nil")
	ErrInvalidOutcome = errors.New("invalid review outcome")
)

// Service defines the interface for SRS algorithm operations
type Service interface {
	// CalculateNextReview computes the record that results from reviewing
	// rec with the given outcome at now. rec is left untouched.
	CalculateNextReview(
		rec *domain.Record,
		outcome domain.ReviewOutcome,
		now time.Time,
	) (*domain.Record, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// CalculateNextReview implements Service.
func (s *defaultService) CalculateNextReview(
	rec *domain.Record,
	outcome domain.ReviewOutcome,
	now time.Time,
) (*domain.Record, error) {
	if rec == nil {
		return nil, ErrNilRecord
	}
	if !outcome.Valid() {
		return nil, ErrInvalidOutcome
	}

	return calculateNextRecord(rec, outcome, now, s.params), nil
}
