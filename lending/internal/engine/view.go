package engine

import (
	"time"

	"github.com/unilib/lending-service/lending/internal/model"
)

// View snapshots are assembled while the engine lock is held, so the
// HTTP layer never reads live domain objects that a concurrent request
// may be mutating.

func (e *Engine) ItemView(id int) (model.ItemView, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	it, err := e.findItem(id)
	if err != nil {
		return model.ItemView{}, err
	}
	return itemView(it), nil
}

func (e *Engine) ItemViews(query, author string) []model.ItemView {
	e.mu.RLock()
	defer e.mu.RUnlock()

	items := e.search(query, author)
	views := make([]model.ItemView, 0, len(items))
	for _, it := range items {
		views = append(views, itemView(it))
	}
	return views
}

func (e *Engine) BorrowerView(id int) (model.BorrowerView, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	b, err := e.findBorrower(id)
	if err != nil {
		return model.BorrowerView{}, err
	}
	return borrowerView(b), nil
}

// LoanViews lists the borrower's full history, lazily marking overdue
// loans against the as-of day first.
func (e *Engine) LoanViews(borrowerID int, asOf time.Time) ([]model.LoanView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.findBorrower(borrowerID)
	if err != nil {
		return nil, err
	}
	views := make([]model.LoanView, 0, len(b.Loans))
	for _, l := range b.Loans {
		l.markOverdue(asOf)
		views = append(views, loanView(l, asOf))
	}
	return views, nil
}

func itemView(it *Item) model.ItemView {
	return model.ItemView{
		ID:              it.ID,
		Kind:            it.Kind,
		Title:           it.Title,
		Author:          it.Author,
		Year:            it.Year,
		Category:        it.Category,
		Description:     it.Description,
		CoverRef:        it.CoverRef,
		TotalCopies:     it.TotalCopies,
		OnLoan:          it.OnLoan,
		AvailableCopies: it.AvailableCopies(),
		Renewable:       Renewable(it.Kind),
		Reservations:    it.ReservationCount(),
		AverageRating:   it.AverageRating(),
		Reviews:         it.Reviews(),
	}
}

func borrowerView(b *Borrower) model.BorrowerView {
	return model.BorrowerView{
		ID:        b.ID,
		Name:      b.Name,
		Email:     b.Email,
		Role:      b.Role,
		LoanLimit: b.LoanLimit(),
		Active:    len(b.ActiveLoans()),
		Loans:     len(b.Loans),
	}
}

func loanView(l *Loan, asOf time.Time) model.LoanView {
	return model.LoanView{
		ID:         l.ID,
		BorrowerID: l.Borrower.ID,
		ItemID:     l.Item.ID,
		ItemTitle:  l.Item.Title,
		StartDate:  model.Date{Time: l.StartDate},
		DueDate:    model.Date{Time: l.DueDate},
		Renewals:   l.Renewals,
		Phase:      l.State.Phase,
		Fine:       l.Fine(asOf),
	}
}
