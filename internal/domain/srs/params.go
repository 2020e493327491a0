package srs

import (
	"errors"
	"fmt"

	"github.com/phrazzld/scry-hanzi/internal/domain"
)

// ErrInvalidParams is returned when an SRS parameter set is inconsistent.
var ErrInvalidParams = errors.New("invalid srs parameters")

// Params defines all configurable parameters for the SRS algorithm
type Params struct {
	// Core limits
	MinEaseFactor float64
	MaxEaseFactor float64

	// Adjustments for different review outcomes
	EaseFactorAdjustment map[domain.ReviewOutcome]float64
	IntervalModifier     map[domain.ReviewOutcome]float64

	// Special case handling
	FirstReviewIntervals map[domain.ReviewOutcome]int
	AgainReviewMinutes   int
}

// ParamsConfig overrides the defaults. Zero fields keep the default value.
type ParamsConfig struct {
	MinEaseFactor float64
	MaxEaseFactor float64

	// Days until the second review after a first correct answer
	FirstReviewGoodInterval int

	// Minutes until a failed card is shown again
	AgainReviewMinutes int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor: 1.3,
		MaxEaseFactor: 2.5,

		EaseFactorAdjustment: map[domain.ReviewOutcome]float64{
			domain.ReviewOutcomeAgain: -0.20,
			domain.ReviewOutcomeHard:  -0.15,
			domain.ReviewOutcomeGood:  0.0,
			domain.ReviewOutcomeEasy:  0.15,
		},

		IntervalModifier: map[domain.ReviewOutcome]float64{
			domain.ReviewOutcomeAgain: 0.0, // Reset interval
			domain.ReviewOutcomeHard:  1.2, // Slight increase
			domain.ReviewOutcomeGood:  1.0, // Use ease factor directly
			domain.ReviewOutcomeEasy:  1.3, // Significant increase
		},

		FirstReviewIntervals: map[domain.ReviewOutcome]int{
			domain.ReviewOutcomeHard: 1,
			domain.ReviewOutcomeGood: 1,
			domain.ReviewOutcomeEasy: 2,
		},

		AgainReviewMinutes: 10,
	}
}

// NewParams creates a Params instance from the defaults plus overrides, and
// validates the result.
func NewParams(config ParamsConfig) (*Params, error) {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.MaxEaseFactor > 0 {
		params.MaxEaseFactor = config.MaxEaseFactor
	}
	if config.FirstReviewGoodInterval > 0 {
		params.FirstReviewIntervals[domain.ReviewOutcomeGood] = config.FirstReviewGoodInterval
	}
	if config.AgainReviewMinutes > 0 {
		params.AgainReviewMinutes = config.AgainReviewMinutes
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// Validate checks the parameter set for internal consistency.
func (p *Params) Validate() error {
	if p.MinEaseFactor <= 1.0 {
		return fmt.Errorf("%w: min ease factor %.2f must exceed 1.0", ErrInvalidParams, p.MinEaseFactor)
	}
	if p.MaxEaseFactor < p.MinEaseFactor {
		return fmt.Errorf("%w: max ease factor %.2f is below min %.2f",
			ErrInvalidParams, p.MaxEaseFactor, p.MinEaseFactor)
	}
	if p.AgainReviewMinutes <= 0 {
		return fmt.Errorf("%w: again review minutes must be positive", ErrInvalidParams)
	}
	return nil
}
