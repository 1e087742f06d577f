package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/unilib/lending-service/lending/internal/model"
)

// LoanState is a plain value, deliberately unrelated to Loan by any
// interface: a state can never be mistaken for the loan that owns it.
type LoanState struct {
	Phase model.LoanPhase
	// DaysLate is snapshotted at the ACTIVE -> OVERDUE transition and
	// does not grow afterwards.
	DaysLate int
}

// Loan is a single checkout transaction. The due date is fixed at
// creation and moves only through a successful renewal.
type Loan struct {
	ID           string
	Borrower     *Borrower
	Item         *Item
	StartDate    time.Time
	DueDate      time.Time
	Renewals     int
	RenewalLimit int
	State        LoanState
}

func newLoan(b *Borrower, it *Item, start time.Time) *Loan {
	return &Loan{
		ID:           uuid.NewString(),
		Borrower:     b,
		Item:         it,
		StartDate:    start,
		DueDate:      start.AddDate(0, 0, LoanDays(it.Kind, b.Role)),
		RenewalLimit: RenewalCeiling(it.Kind),
		State:        LoanState{Phase: model.PhaseActive},
	}
}

func (l *Loan) Active() bool {
	return l.State.Phase == model.PhaseActive
}

// Fine reports the penalty owed as of the given day. An active loan
// computes live against its due date; an overdue loan answers from the
// frozen days-late snapshot; a returned loan owes nothing.
func (l *Loan) Fine(asOf time.Time) float64 {
	switch l.State.Phase {
	case model.PhaseActive:
		return float64(daysLate(asOf, l.DueDate)) * FinePerDay
	case model.PhaseOverdue:
		return float64(l.State.DaysLate) * FinePerDay
	case model.PhaseReturned:
		return 0
	}
	return 0
}

// markOverdue performs the lazy ACTIVE -> OVERDUE transition once the
// as-of day is past the due date. No-op in any other situation.
func (l *Loan) markOverdue(asOf time.Time) {
	if l.State.Phase != model.PhaseActive {
		return
	}
	if late := daysLate(asOf, l.DueDate); late > 0 {
		l.State = LoanState{Phase: model.PhaseOverdue, DaysLate: late}
	}
}

func daysLate(asOf, due time.Time) int {
	d := int(asOf.Sub(due).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
