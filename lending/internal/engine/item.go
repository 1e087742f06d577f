package engine

import (
	"github.com/unilib/lending-service/lending/internal/model"
)

// Item is a circulating catalog entry. It owns its FIFO reservation
// queue and review list; the on-loan counter moves only through
// checkout and the return entry action.
type Item struct {
	ID          int
	Kind        model.ItemKind
	Title       string
	Author      string
	Year        int
	Category    string
	Description string
	CoverRef    string
	TotalCopies int
	OnLoan      int

	reservations []int // borrower ids, waiting order
	holds        []int // borrowers whose reserved copy awaits pickup
	reviews      []model.Review
}

// AvailableCopies for a digital item is always 1: unlimited virtual
// concurrency, single-unit accounting.
func (it *Item) AvailableCopies() int {
	if it.Kind == model.KindDigital {
		return 1
	}
	return it.TotalCopies - it.OnLoan
}

func (it *Item) Available() bool {
	return it.AvailableCopies() > 0
}

// addReservation enqueues the borrower, ignoring duplicates and
// digital items.
func (it *Item) addReservation(borrowerID int) {
	if it.Kind == model.KindDigital {
		return
	}
	for _, id := range it.reservations {
		if id == borrowerID {
			return
		}
	}
	it.reservations = append(it.reservations, borrowerID)
}

func (it *Item) popReservation() (int, bool) {
	if len(it.reservations) == 0 {
		return 0, false
	}
	next := it.reservations[0]
	it.reservations = it.reservations[1:]
	return next, true
}

func (it *Item) HasReservations() bool {
	return len(it.reservations) > 0
}

func (it *Item) ReservationCount() int {
	return len(it.reservations)
}

// ReservationPosition is 1-based; 0 means the borrower is not queued.
func (it *Item) ReservationPosition(borrowerID int) int {
	for i, id := range it.reservations {
		if id == borrowerID {
			return i + 1
		}
	}
	return 0
}

// hold marks a returned copy as kept aside for the notified borrower.
// The on-loan counter keeps counting it until the pickup checkout.
func (it *Item) hold(borrowerID int) {
	it.holds = append(it.holds, borrowerID)
}

func (it *Item) hasHold(borrowerID int) bool {
	for _, id := range it.holds {
		if id == borrowerID {
			return true
		}
	}
	return false
}

// takeHold consumes the borrower's hold; reports whether one existed.
func (it *Item) takeHold(borrowerID int) bool {
	for i, id := range it.holds {
		if id == borrowerID {
			it.holds = append(it.holds[:i], it.holds[i+1:]...)
			return true
		}
	}
	return false
}

func (it *Item) addReview(r model.Review) {
	if r.Rating < 0 {
		r.Rating = 0
	}
	if r.Rating > 5 {
		r.Rating = 5
	}
	it.reviews = append(it.reviews, r)
}

func (it *Item) Reviews() []model.Review {
	return it.reviews
}

// AverageRating is derived, never stored.
func (it *Item) AverageRating() float64 {
	if len(it.reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range it.reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(it.reviews))
}
