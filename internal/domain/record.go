package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewOutcome represents the result of a card review
type ReviewOutcome string

// Possible review outcome values. A wrong answer is rated Again; a correct
// one is rated Good.
const (
	ReviewOutcomeAgain ReviewOutcome = "again"
	ReviewOutcomeHard  ReviewOutcome = "hard"
	ReviewOutcomeGood  ReviewOutcome = "good"
	ReviewOutcomeEasy  ReviewOutcome = "easy"
)

// Valid reports whether o is one of the known outcomes.
func (o ReviewOutcome) Valid() bool {
	switch o {
	case ReviewOutcomeAgain, ReviewOutcomeHard, ReviewOutcomeGood, ReviewOutcomeEasy:
		return true
	default:
		return false
	}
}

// Common validation errors for Record
var (
	ErrInvalidInterval   = errors.New("interval must be greater than or equal to 0")
	ErrInvalidEaseFactor = errors.New("ease factor must be greater than 1.0")
	ErrInvalidReviews    = errors.New("review count cannot be negative")
)

// DefaultEaseFactor is the ease factor a card starts with.
const DefaultEaseFactor = 2.5

// ReviewEvent is one entry of a card's rating history.
type ReviewEvent struct {
	ID         uuid.UUID     `json:"id" yaml:"id"`
	Outcome    ReviewOutcome `json:"outcome" yaml:"outcome"`
	ReviewedAt time.Time     `json:"reviewed_at" yaml:"reviewed_at"`
}

// Record is a card together with its spaced repetition state.
// It implements the SM-2 algorithm with some modifications for determining review intervals.
type Record struct {
	Card               Card          `json:"card" yaml:"card"`
	Interval           int           `json:"interval" yaml:"interval"`                       // Current interval in days
	EaseFactor         float64       `json:"ease_factor" yaml:"ease_factor"`                 // Ease factor (1.3-2.5 typically)
	ConsecutiveCorrect int           `json:"consecutive_correct" yaml:"consecutive_correct"` // Streak of correct answers
	ReviewCount        int           `json:"review_count" yaml:"review_count"`               // Total number of reviews
	LastReviewedAt     time.Time     `json:"last_reviewed_at" yaml:"last_reviewed_at"`
	NextReviewAt       time.Time     `json:"next_review_at" yaml:"next_review_at"`
	History            []ReviewEvent `json:"history" yaml:"history"`
	CreatedAt          time.Time     `json:"created_at" yaml:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at" yaml:"updated_at"`
}

// NewRecord creates an unreviewed record for card.
func NewRecord(card Card, now time.Time) (*Record, error) {
	rec := &Record{
		Card:       card.clone(),
		EaseFactor: DefaultEaseFactor,
		History:    []ReviewEvent{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return rec, nil
}

// Validate checks if the Record has valid data.
func (r *Record) Validate() error {
	if err := r.Card.Validate(); err != nil {
		return err
	}
	if r.Interval < 0 {
		return ErrInvalidInterval
	}
	if r.EaseFactor <= 1.0 {
		return ErrInvalidEaseFactor
	}
	if r.ReviewCount < 0 {
		return ErrInvalidReviews
	}
	return nil
}

// IsNew reports whether the card has never been reviewed.
func (r *Record) IsNew() bool {
	return r.ReviewCount == 0
}

// IsDue reports whether a reviewed card is due at asOf. New cards are never due.
func (r *Record) IsDue(asOf time.Time) bool {
	return !r.IsNew() && !r.NextReviewAt.After(asOf)
}

// OverdueBy returns how long past its next review the card is at now.
// The value is negative when the review lies in the future.
func (r *Record) OverdueBy(now time.Time) time.Duration {
	return now.Sub(r.NextReviewAt)
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	out := *r
	out.Card = r.Card.clone()
	out.History = append([]ReviewEvent{}, r.History...)
	return &out
}
