package engine_test

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unilib/lending-service/lending/internal/engine"
	"github.com/unilib/lending-service/lending/internal/errs"
	"github.com/unilib/lending-service/lending/internal/model"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.New(zap.NewExample().Named("test"))
}

func addBook(t *testing.T, e *engine.Engine, id, copies int) {
	t.Helper()
	_, err := e.AddItem(model.AddItemRequest{
		ID: id, Kind: model.KindBook, Title: "The Go Programming Language",
		Author: "Donovan", TotalCopies: copies,
	})
	require.NoError(t, err)
}

func register(t *testing.T, e *engine.Engine, id int, role model.Role) {
	t.Helper()
	require.True(t, e.RegisterBorrower(id, "Reader", "reader@uni.edu", role))
}

func TestRegisterBorrower(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	require.True(t, e.RegisterBorrower(1, "Ana", "ana@uni.edu", model.RoleStudent))
	b, err := e.FindBorrower(1)
	require.NoError(t, err)
	require.Equal(t, "Ana", b.Name)

	// invalid registrations are dropped without a trace
	require.False(t, e.RegisterBorrower(2, "Bob", "bob.uni.edu", model.RoleStudent))
	_, err = e.FindBorrower(2)
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.False(t, e.RegisterBorrower(0, "Eve", "eve@uni.edu", model.RoleStudent))
	require.False(t, e.RegisterBorrower(3, "", "x@uni.edu", model.RoleStudent))
	require.False(t, e.RegisterBorrower(4, "Kim", "kim@uni.edu", model.Role("VISITOR")))

	// duplicate id is refused, the first registration stays
	require.False(t, e.RegisterBorrower(1, "Other", "other@uni.edu", model.RoleStaff))
	b, err = e.FindBorrower(1)
	require.NoError(t, err)
	require.Equal(t, "Ana", b.Name)
}

func TestAddItem(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	addBook(t, e, 1, 2)
	_, err := e.AddItem(model.AddItemRequest{ID: 1, Kind: model.KindBook, Title: "dup", Author: "a", TotalCopies: 1})
	require.Error(t, err)

	_, err = e.AddItem(model.AddItemRequest{ID: 2, Kind: model.KindJournal, Title: "no copies", Author: "a"})
	require.Error(t, err)

	// digital items always account for exactly one unit
	d, err := e.AddItem(model.AddItemRequest{ID: 3, Kind: model.KindDigital, Title: "ebook", Author: "a", TotalCopies: 7})
	require.NoError(t, err)
	require.Equal(t, 1, d.TotalCopies)
	require.Equal(t, 1, d.AvailableCopies())
}

func TestCheckout_DueDates(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	addBook(t, e, 1, 5)
	register(t, e, 1, model.RoleFaculty)
	register(t, e, 2, model.RoleStudent)

	lv, out, err := e.Checkout(1, 1, day(0))
	require.NoError(t, err)
	require.True(t, out.Allowed)
	require.Equal(t, day(90), lv.DueDate.Time)

	lv, out, err = e.Checkout(2, 1, day(0))
	require.NoError(t, err)
	require.True(t, out.Allowed)
	require.Equal(t, day(15), lv.DueDate.Time)
	require.Contains(t, out.Reason, lv.DueDate.Format(time.DateOnly))
}

func TestCheckout_Refusals(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	register(t, e, 1, model.RoleStudent)
	register(t, e, 2, model.RoleStudent)

	addBook(t, e, 1, 1)

	// duplicate active loan of the same item
	_, out, err := e.Checkout(1, 1, day(0))
	require.NoError(t, err)
	require.True(t, out.Allowed)
	_, out, err = e.Checkout(1, 1, day(1))
	require.NoError(t, err)
	require.False(t, out.Allowed)
	require.Equal(t, engine.ReasonDuplicateLoan, out.Reason)

	// sole copy is out
	_, out, err = e.Checkout(2, 1, day(1))
	require.NoError(t, err)
	require.False(t, out.Allowed)
	require.Equal(t, engine.ReasonNoCopies, out.Reason)

	// student limit is five active loans
	for id := 10; id < 15; id++ {
		addBook(t, e, id, 1)
		_, out, err := e.Checkout(2, id, day(0))
		require.NoError(t, err)
		require.True(t, out.Allowed)
	}
	addBook(t, e, 20, 1)
	_, out, err = e.Checkout(2, 20, day(0))
	require.NoError(t, err)
	require.False(t, out.Allowed)
	require.Equal(t, engine.ReasonLimitReached, out.Reason)

	// unknown ids are not-found, never a refusal
	_, _, err = e.Checkout(99, 1, day(0))
	require.ErrorIs(t, err, errs.ErrBorrowerNotFound)
	_, _, err = e.Checkout(1, 99, day(0))
	require.ErrorIs(t, err, errs.ErrItemNotFound)
}

func TestCheckout_DigitalBypassesGate(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	register(t, e, 1, model.RoleStudent)
	_, err := e.AddItem(model.AddItemRequest{ID: 1, Kind: model.KindDigital, Title: "ebook", Author: "a"})
	require.NoError(t, err)

	// even a second concurrent loan of the same digital item goes through
	lv, out, err := e.Checkout(1, 1, day(0))
	require.NoError(t, err)
	require.True(t, out.Allowed)
	require.Equal(t, day(3), lv.DueDate.Time)

	_, out, err = e.Checkout(1, 1, day(0))
	require.NoError(t, err)
	require.True(t, out.Allowed)

	it, err := e.FindItem(1)
	require.NoError(t, err)
	require.Zero(t, it.OnLoan)
	require.Equal(t, 1, it.AvailableCopies())
}

func TestInventoryInvariant(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	addBook(t, e, 1, 3)
	for id := 1; id <= 3; id++ {
		register(t, e, id, model.RoleStudent)
	}

	var loanIDs []string
	for id := 1; id <= 3; id++ {
		lv, out, err := e.Checkout(id, 1, day(0))
		require.NoError(t, err)
		require.True(t, out.Allowed)
		loanIDs = append(loanIDs, lv.ID)

		it, err := e.FindItem(1)
		require.NoError(t, err)
		require.GreaterOrEqual(t, it.OnLoan, 0)
		require.LessOrEqual(t, it.OnLoan, it.TotalCopies)
		require.Equal(t, it.TotalCopies-it.OnLoan, it.AvailableCopies())
	}

	for _, id := range loanIDs {
		_, _, out, err := e.Return(id, day(1))
		require.NoError(t, err)
		require.True(t, out.Allowed)
	}
	it, err := e.FindItem(1)
	require.NoError(t, err)
	require.Zero(t, it.OnLoan)
	require.Equal(t, 3, it.AvailableCopies())
}

func TestRenew(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	addBook(t, e, 1, 2)
	register(t, e, 1, model.RoleStudent)

	lv, _, err := e.Checkout(1, 1, day(0))
	require.NoError(t, err)
	require.Equal(t, day(15), lv.DueDate.Time)
	l, err := e.FindLoan(lv.ID)
	require.NoError(t, err)

	out, err := e.Renew(lv.ID)
	require.NoError(t, err)
	require.True(t, out.Allowed)
	require.Equal(t, day(30), l.DueDate)
	require.Equal(t, 1, l.Renewals)

	// the ceiling is one renewal; the due date must not move again
	out, err = e.Renew(lv.ID)
	require.NoError(t, err)
	require.False(t, out.Allowed)
	require.Equal(t, engine.ReasonRenewalLimit, out.Reason)
	require.Equal(t, day(30), l.DueDate)

	_, err = e.Renew("no-such-loan")
	require.ErrorIs(t, err, errs.ErrLoanNotFound)
}

func TestRenew_Refusals(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	register(t, e, 1, model.RoleStudent)
	register(t, e, 2, model.RoleStudent)

	// journals are not renewable at all
	_, err := e.AddItem(model.AddItemRequest{ID: 1, Kind: model.KindJournal, Title: "Nature", Author: "various", TotalCopies: 1})
	require.NoError(t, err)
	jl, _, err := e.Checkout(1, 1, day(0))
	require.NoError(t, err)
	out, err := e.Renew(jl.ID)
	require.NoError(t, err)
	require.False(t, out.Allowed)
	require.Equal(t, engine.ReasonRenewalLimit, out.Reason)

	// pending reservations block renewal
	addBook(t, e, 2, 1)
	bl, _, err := e.Checkout(1, 2, day(0))
	require.NoError(t, err)
	out, err = e.Reserve(2, 2)
	require.NoError(t, err)
	require.True(t, out.Allowed)
	out, err = e.Renew(bl.ID)
	require.NoError(t, err)
	require.False(t, out.Allowed)
	require.Equal(t, engine.ReasonReservations, out.Reason)

	// a returned loan cannot be renewed
	_, _, _, err = e.Return(jl.ID, day(1))
	require.NoError(t, err)
	out, err = e.Renew(jl.ID)
	require.NoError(t, err)
	require.False(t, out.Allowed)
	require.Equal(t, engine.ReasonNotActive, out.Reason)
}

func TestReserve(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	addBook(t, e, 1, 1)
	register(t, e, 1, model.RoleStudent)
	register(t, e, 2, model.RoleStudent)
	register(t, e, 3, model.RoleStudent)

	// copies on the shelf: reservation is pointless
	out, err := e.Reserve(2, 1)
	require.NoError(t, err)
	require.False(t, out.Allowed)
	require.Equal(t, engine.ReasonCopiesAvailable, out.Reason)

	_, _, err = e.Checkout(1, 1, day(0))
	require.NoError(t, err)

	// the holder of the active loan cannot also queue for it
	out, err = e.Reserve(1, 1)
	require.NoError(t, err)
	require.False(t, out.Allowed)
	require.Equal(t, engine.ReasonDuplicateLoan, out.Reason)

	out, err = e.Reserve(2, 1)
	require.NoError(t, err)
	require.True(t, out.Allowed)
	out, err = e.Reserve(3, 1)
	require.NoError(t, err)
	require.True(t, out.Allowed)

	it, err := e.FindItem(1)
	require.NoError(t, err)
	require.Equal(t, 1, it.ReservationPosition(2))
	require.Equal(t, 2, it.ReservationPosition(3))
	require.Equal(t, 0, it.ReservationPosition(1))

	out, err = e.Reserve(2, 1)
	require.NoError(t, err)
	require.False(t, out.Allowed)
	require.Equal(t, engine.ReasonAlreadyReserved, out.Reason)
}

func TestReserve_Digital(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	register(t, e, 1, model.RoleStudent)
	_, err := e.AddItem(model.AddItemRequest{ID: 1, Kind: model.KindDigital, Title: "ebook", Author: "a"})
	require.NoError(t, err)

	out, err := e.Reserve(1, 1)
	require.NoError(t, err)
	require.False(t, out.Allowed)
	require.Equal(t, engine.ReasonDigitalReserve, out.Reason)
}

func TestReturn(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	addBook(t, e, 1, 1)
	register(t, e, 1, model.RoleStudent)

	lv, _, err := e.Checkout(1, 1, day(0))
	require.NoError(t, err)

	// three days late at 5.0 per day
	fine, n, out, err := e.Return(lv.ID, day(18))
	require.NoError(t, err)
	require.True(t, out.Allowed)
	require.Nil(t, n)
	require.Equal(t, 15.0, fine)
	l, err := e.FindLoan(lv.ID)
	require.NoError(t, err)
	require.Equal(t, model.PhaseReturned, l.State.Phase)

	it, err := e.FindItem(1)
	require.NoError(t, err)
	require.Zero(t, it.OnLoan)

	// RETURNED is terminal
	_, _, out, err = e.Return(lv.ID, day(20))
	require.NoError(t, err)
	require.False(t, out.Allowed)
	require.Equal(t, engine.ReasonAlreadyReturned, out.Reason)

	_, _, _, err = e.Return("no-such-loan", day(0))
	require.ErrorIs(t, err, errs.ErrLoanNotFound)
}

// The end-to-end hand-off: one copy, two waiting borrowers. Returns
// pop the queue head, the counter stays up while a copy is held, and
// it only drops once the queue has drained.
func TestReservationHandoff_EndToEnd(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	addBook(t, e, 1, 1)
	register(t, e, 1, model.RoleStudent) // A
	register(t, e, 2, model.RoleStudent) // B1
	register(t, e, 3, model.RoleStudent) // B2

	la, out, err := e.Checkout(1, 1, day(0))
	require.NoError(t, err)
	require.True(t, out.Allowed)

	_, out, err = e.Checkout(2, 1, day(0))
	require.NoError(t, err)
	require.False(t, out.Allowed)
	require.Equal(t, engine.ReasonNoCopies, out.Reason)

	out, err = e.Reserve(2, 1)
	require.NoError(t, err)
	require.True(t, out.Allowed)
	out, err = e.Reserve(3, 1)
	require.NoError(t, err)
	require.True(t, out.Allowed)

	// A returns: B1 is notified, the copy never touches the shelf
	_, n, out, err := e.Return(la.ID, day(10))
	require.NoError(t, err)
	require.True(t, out.Allowed)
	require.NotNil(t, n)
	require.Equal(t, 2, n.BorrowerID)

	it, err := e.FindItem(1)
	require.NoError(t, err)
	require.Equal(t, 1, it.OnLoan)
	require.Equal(t, 1, it.ReservationPosition(3))
	require.Equal(t, 0, it.ReservationPosition(2))

	// B1 picks up the held copy; the counter must not double-count
	lb1, out, err := e.Checkout(2, 1, day(10))
	require.NoError(t, err)
	require.True(t, out.Allowed)
	it, err = e.FindItem(1)
	require.NoError(t, err)
	require.Equal(t, 1, it.OnLoan)

	// B1 returns: B2 is next
	_, n, out, err = e.Return(lb1.ID, day(12))
	require.NoError(t, err)
	require.True(t, out.Allowed)
	require.NotNil(t, n)
	require.Equal(t, 3, n.BorrowerID)
	require.False(t, it.HasReservations())

	// B2 picks up and returns with nobody waiting: the copy is released
	lb2, out, err := e.Checkout(3, 1, day(12))
	require.NoError(t, err)
	require.True(t, out.Allowed)
	_, n, out, err = e.Return(lb2.ID, day(14))
	require.NoError(t, err)
	require.True(t, out.Allowed)
	require.Nil(t, n)

	it, err = e.FindItem(1)
	require.NoError(t, err)
	require.Zero(t, it.OnLoan)
}

// A hold waives availability, never the loan limit: a borrower at
// their ceiling cannot pick up a held copy until a slot frees.
func TestCheckout_HoldDoesNotBypassLoanLimit(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	addBook(t, e, 1, 1)
	register(t, e, 1, model.RoleStudent)
	register(t, e, 2, model.RoleStudent)

	la, out, err := e.Checkout(1, 1, day(0))
	require.NoError(t, err)
	require.True(t, out.Allowed)
	out, err = e.Reserve(2, 1)
	require.NoError(t, err)
	require.True(t, out.Allowed)

	// fill borrower 2 to the student ceiling of five
	var lastLoan string
	for id := 10; id < 15; id++ {
		addBook(t, e, id, 1)
		lv, out, err := e.Checkout(2, id, day(0))
		require.NoError(t, err)
		require.True(t, out.Allowed)
		lastLoan = lv.ID
	}

	// the return hands borrower 2 the hold
	_, n, out, err := e.Return(la.ID, day(5))
	require.NoError(t, err)
	require.True(t, out.Allowed)
	require.NotNil(t, n)
	require.Equal(t, 2, n.BorrowerID)

	out, err = e.CheckEligibility(2, 1)
	require.NoError(t, err)
	require.False(t, out.Allowed)
	require.Equal(t, engine.ReasonLimitReached, out.Reason)

	_, out, err = e.Checkout(2, 1, day(5))
	require.NoError(t, err)
	require.False(t, out.Allowed)
	require.Equal(t, engine.ReasonLimitReached, out.Reason)

	// the hold survives the refusal; freeing a slot lets the pickup through
	_, _, out, err = e.Return(lastLoan, day(6))
	require.NoError(t, err)
	require.True(t, out.Allowed)
	_, out, err = e.Checkout(2, 1, day(6))
	require.NoError(t, err)
	require.True(t, out.Allowed)

	it, err := e.FindItem(1)
	require.NoError(t, err)
	require.Equal(t, 1, it.OnLoan)
}

func TestWithdraw(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	addBook(t, e, 1, 1)
	register(t, e, 1, model.RoleStudent)

	l, _, err := e.Checkout(1, 1, day(0))
	require.NoError(t, err)

	out, err := e.Withdraw(1)
	require.NoError(t, err)
	require.False(t, out.Allowed)
	require.Equal(t, engine.ReasonUnitsOnLoan, out.Reason)

	_, _, _, err = e.Return(l.ID, day(1))
	require.NoError(t, err)

	out, err = e.Withdraw(1)
	require.NoError(t, err)
	require.True(t, out.Allowed)

	_, err = e.FindItem(1)
	require.ErrorIs(t, err, errs.ErrItemNotFound)

	_, err = e.Withdraw(99)
	require.ErrorIs(t, err, errs.ErrItemNotFound)
}

func TestPayFine(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	addBook(t, e, 1, 1)
	addBook(t, e, 2, 1)
	register(t, e, 1, model.RoleStudent)

	_, _, err := e.Checkout(1, 1, day(0)) // due day 15
	require.NoError(t, err)
	_, _, err = e.Checkout(1, 2, day(0)) // due day 15
	require.NoError(t, err)

	b, err := e.FindBorrower(1)
	require.NoError(t, err)
	require.True(t, b.HasOutstandingFines(day(20)))

	// five days late on each loan
	amount, settled, notifications, err := e.PayFine(1, day(20))
	require.NoError(t, err)
	require.Equal(t, 50.0, amount)
	require.Equal(t, 2, settled)
	require.Empty(t, notifications)

	for _, l := range b.Loans {
		require.Equal(t, model.PhaseReturned, l.State.Phase)
	}
	require.False(t, b.HasOutstandingFines(day(20)))

	// nothing left to settle
	amount, settled, _, err = e.PayFine(1, day(25))
	require.NoError(t, err)
	require.Zero(t, amount)
	require.Zero(t, settled)

	_, _, _, err = e.PayFine(99, day(0))
	require.ErrorIs(t, err, errs.ErrBorrowerNotFound)
}

func TestPayFine_FulfillsReservations(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	addBook(t, e, 1, 1)
	register(t, e, 1, model.RoleStudent)
	register(t, e, 2, model.RoleStudent)

	_, _, err := e.Checkout(1, 1, day(0))
	require.NoError(t, err)
	out, err := e.Reserve(2, 1)
	require.NoError(t, err)
	require.True(t, out.Allowed)

	amount, settled, notifications, err := e.PayFine(1, day(20))
	require.NoError(t, err)
	require.Equal(t, 25.0, amount)
	require.Equal(t, 1, settled)
	require.Len(t, notifications, 1)
	require.Equal(t, 2, notifications[0].BorrowerID)
}

func TestSearch(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	_, err := e.AddItem(model.AddItemRequest{ID: 1, Kind: model.KindBook, Title: "Effective Go", Author: "Pike", TotalCopies: 1})
	require.NoError(t, err)
	_, err = e.AddItem(model.AddItemRequest{ID: 2, Kind: model.KindBook, Title: "The Go Programming Language", Author: "Donovan", TotalCopies: 1})
	require.NoError(t, err)
	_, err = e.AddItem(model.AddItemRequest{ID: 3, Kind: model.KindJournal, Title: "Systems Review", Author: "various", TotalCopies: 1})
	require.NoError(t, err)

	require.Len(t, e.Search("", ""), 3)
	require.Len(t, e.Search("go", ""), 2)
	require.Len(t, e.Search("", "donovan"), 1)
	require.Len(t, e.Search("go", "pike"), 1)
	require.Empty(t, e.Search("rust", ""))
}

func TestReviews(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	addBook(t, e, 1, 1)
	register(t, e, 1, model.RoleStudent)
	register(t, e, 2, model.RoleStudent)

	require.NoError(t, e.AddReview(1, model.Review{BorrowerID: 1, Rating: 9, Comment: "great", Date: day(0)}))
	require.NoError(t, e.AddReview(1, model.Review{BorrowerID: 2, Rating: -3, Comment: "lost it", Date: day(1)}))

	it, err := e.FindItem(1)
	require.NoError(t, err)
	reviews := it.Reviews()
	require.Len(t, reviews, 2)
	require.Equal(t, 5, reviews[0].Rating) // clamped
	require.Equal(t, 0, reviews[1].Rating) // clamped
	require.Equal(t, 2.5, it.AverageRating())

	err = e.AddReview(99, model.Review{BorrowerID: 1})
	require.ErrorIs(t, err, errs.ErrItemNotFound)
	err = e.AddReview(1, model.Review{BorrowerID: 99})
	require.ErrorIs(t, err, errs.ErrBorrowerNotFound)
}

func TestCheckEligibility_NotFoundIsDistinct(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	addBook(t, e, 1, 1)
	register(t, e, 1, model.RoleStudent)

	out, err := e.CheckEligibility(1, 1)
	require.NoError(t, err)
	require.True(t, out.Allowed)

	_, err = e.CheckEligibility(99, 1)
	require.True(t, errors.Is(err, errs.ErrNotFound))
	_, err = e.CheckEligibility(1, 99)
	require.True(t, errors.Is(err, errs.ErrNotFound))
}
