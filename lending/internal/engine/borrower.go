package engine

import (
	"strings"
	"time"

	"github.com/unilib/lending-service/lending/internal/model"
)

// Borrower owns its full loan history; loans are appended at checkout
// and never removed, only their state moves.
type Borrower struct {
	ID    int
	Name  string
	Email string
	Role  model.Role

	Loans []*Loan
}

func (b *Borrower) Valid() bool {
	return b.ID > 0 &&
		b.Name != "" &&
		strings.Contains(b.Email, "@") &&
		b.Role.Valid()
}

func (b *Borrower) LoanLimit() int {
	return LoanLimit(b.Role)
}

func (b *Borrower) ActiveLoans() []*Loan {
	var active []*Loan
	for _, l := range b.Loans {
		if l.Active() {
			active = append(active, l)
		}
	}
	return active
}

// activeLoanOf reports the borrower's active loan of the item, if any.
func (b *Borrower) activeLoanOf(itemID int) *Loan {
	for _, l := range b.Loans {
		if l.Active() && l.Item.ID == itemID {
			return l
		}
	}
	return nil
}

func (b *Borrower) HasOutstandingFines(asOf time.Time) bool {
	for _, l := range b.Loans {
		if l.Fine(asOf) > 0 {
			return true
		}
	}
	return false
}
