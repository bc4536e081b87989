// Package ledger computes display-only leave balance previews. The backend
// recomputes every figure on submission; nothing here is authoritative.
package ledger

import (
	"errors"
	"math"
)

type AdjustmentKind string

const (
	Addition   AdjustmentKind = "AJOUT"
	Removal    AdjustmentKind = "RETRAIT"
	Correction AdjustmentKind = "CORRECTION"
)

const (
	MinDays = 0.5
	MaxDays = 30
)

var (
	ErrDaysOutOfRange = errors.New("le nombre de jours doit être entre 0,5 et 30")
	ErrDaysNotHalf    = errors.New("le nombre de jours doit être un multiple de 0,5")
	ErrUnknownKind    = errors.New("type d'ajustement inconnu")
)

type Preview struct {
	NewConsumed  float64 `json:"newConsumed"`
	NewRemaining float64 `json:"newRemaining"`
	// SignedRemaining keeps the unclamped figure so a negative balance
	// stays visible for audit even when the display clamps at zero.
	SignedRemaining float64 `json:"signedRemaining"`
}

// ValidateDays rejects day counts outside 0.5–30 or off the half-day grid.
func ValidateDays(days float64) error {
	if days < MinDays || days > MaxDays {
		return ErrDaysOutOfRange
	}
	if twice := days * 2; twice != math.Trunc(twice) {
		return ErrDaysNotHalf
	}
	return nil
}

// Remaining is the derived balance shown in list views.
func Remaining(attributed, consumed float64) float64 {
	return attributed - consumed
}

// Compute applies the signed effect of a pending adjustment to a balance.
// Addition and Correction give days back (consumed goes down), Removal
// takes days away (consumed goes up). It never touches persisted state and
// is cheap enough to run on every form change.
func Compute(attributed, consumed float64, kind AdjustmentKind, days float64) (Preview, error) {
	if err := ValidateDays(days); err != nil {
		return Preview{}, err
	}

	var newConsumed float64
	switch kind {
	case Addition, Correction:
		newConsumed = consumed - days
	case Removal:
		newConsumed = consumed + days
	default:
		return Preview{}, ErrUnknownKind
	}

	signed := attributed - newConsumed
	return Preview{
		NewConsumed:     newConsumed,
		NewRemaining:    math.Max(0, signed),
		SignedRemaining: signed,
	}, nil
}
