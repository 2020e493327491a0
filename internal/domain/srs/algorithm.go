package srs

import (
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-hanzi/internal/domain"
)

// calculateNewEaseFactor applies the outcome's ease adjustment and clamps the
// result to [params.MinEaseFactor, params.MaxEaseFactor].
func calculateNewEaseFactor(
	currentEF float64,
	outcome domain.ReviewOutcome,
	params *Params,
) float64 {
	newEF := currentEF + params.EaseFactorAdjustment[outcome]

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	if newEF > params.MaxEaseFactor {
		newEF = params.MaxEaseFactor
	}

	return newEF
}

// calculateNewInterval determines the new interval in days.
//
// Algorithm behavior:
//   - "Again" resets the interval to 0 (the card returns within minutes)
//   - First reviews (currentInterval = 0) use params.FirstReviewIntervals
//   - "Good" right after a lapse multiplies by 1.5
//   - "Good" otherwise multiplies by the ease factor
//   - "Hard" and "Easy" use params.IntervalModifier, "Easy" times the ease factor
func calculateNewInterval(
	currentInterval int,
	consecutiveCorrect int,
	easeFactor float64,
	outcome domain.ReviewOutcome,
	params *Params,
) int {
	if outcome == domain.ReviewOutcomeAgain {
		return 0
	}

	if currentInterval == 0 {
		return params.FirstReviewIntervals[outcome]
	}

	if consecutiveCorrect == 0 && outcome == domain.ReviewOutcomeGood {
		return int(float64(currentInterval) * 1.5)
	}

	var modifier float64
	if outcome == domain.ReviewOutcomeGood {
		modifier = easeFactor
	} else {
		modifier = params.IntervalModifier[outcome]
		if outcome == domain.ReviewOutcomeEasy {
			modifier *= easeFactor
		}
	}

	return int(float64(currentInterval) * modifier)
}

// calculateNextReviewDate converts an interval into the next review time.
// Failed cards come back after params.AgainReviewMinutes.
func calculateNextReviewDate(
	interval int,
	outcome domain.ReviewOutcome,
	now time.Time,
	params *Params,
) time.Time {
	if outcome == domain.ReviewOutcomeAgain {
		return now.Add(time.Duration(params.AgainReviewMinutes) * time.Minute)
	}
	return now.AddDate(0, 0, interval)
}

// calculateNextRecord returns a new record reflecting one review of rec.
// rec itself, including its notes, optional set and history, is not modified.
func calculateNextRecord(
	rec *domain.Record,
	outcome domain.ReviewOutcome,
	now time.Time,
	params *Params,
) *domain.Record {
	next := rec.Clone()

	next.ReviewCount++
	next.LastReviewedAt = now
	next.EaseFactor = calculateNewEaseFactor(rec.EaseFactor, outcome, params)

	if outcome == domain.ReviewOutcomeAgain {
		next.ConsecutiveCorrect = 0
	} else {
		next.ConsecutiveCorrect++
	}

	next.Interval = calculateNewInterval(
		rec.Interval,
		rec.ConsecutiveCorrect,
		next.EaseFactor,
		outcome,
		params,
	)
	next.NextReviewAt = calculateNextReviewDate(next.Interval, outcome, now, params)

	next.History = append(next.History, domain.ReviewEvent{
		ID:         uuid.New(),
		Outcome:    outcome,
		ReviewedAt: now,
	})
	next.UpdatedAt = now

	return next
}
