package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/unilib/lending-service/lending/internal/errs"
	"github.com/unilib/lending-service/lending/internal/model"
)

// Outcome is a policy decision: refused operations carry a specific
// reason and are never conflated with errors. Errors are reserved for
// not-found lookups.
type Outcome struct {
	Allowed bool
	Reason  string
}

func allow() Outcome {
	return Outcome{Allowed: true}
}

func refuse(reason string) Outcome {
	return Outcome{Reason: reason}
}

const (
	ReasonDuplicateLoan   = "duplicate active loan"
	ReasonNoCopies        = "no available copies"
	ReasonLimitReached    = "loan limit reached"
	ReasonNotActive       = "loan is not active"
	ReasonReservations    = "reservations pending"
	ReasonRenewalLimit    = "renewal limit reached"
	ReasonDigitalReserve  = "digital items cannot be reserved"
	ReasonCopiesAvailable = "not needed, copies available"
	ReasonAlreadyReserved = "already reserved"
	ReasonAlreadyReturned = "loan already returned"
	ReasonUnitsOnLoan     = "units on loan, cannot withdraw"
)

// Engine owns the catalog, the borrowers and every loan ever made.
// All state is in-memory; one writer lock serializes the
// check-then-act sections (availability vs. checkout, limit vs.
// checkout) across requests. The current date is always an explicit
// argument, never a clock read.
type Engine struct {
	mu  sync.RWMutex
	log *zap.Logger

	items     map[int]*Item
	borrowers map[int]*Borrower
	loans     map[string]*Loan
}

func New(log *zap.Logger) *Engine {
	return &Engine{
		log:       log.Named("engine"),
		items:     make(map[int]*Item),
		borrowers: make(map[int]*Borrower),
		loans:     make(map[string]*Loan),
	}
}

// RegisterBorrower validates and stores a new borrower. Invalid or
// duplicate registrations are silently dropped: the caller gets false,
// nothing is raised and nothing is stored.
func (e *Engine) RegisterBorrower(id int, name, email string, role model.Role) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	b := &Borrower{ID: id, Name: name, Email: email, Role: role}
	if !b.Valid() {
		e.log.Debug("registration dropped", zap.Int("id", id))
		return false
	}
	if _, ok := e.borrowers[id]; ok {
		return false
	}
	e.borrowers[id] = b
	return true
}

func (e *Engine) AddItem(req model.AddItemRequest) (*Item, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.items[req.ID]; ok {
		return nil, errors.Errorf("item %d already exists", req.ID)
	}
	if !req.Kind.Valid() {
		return nil, errors.Errorf("unknown item kind %q", req.Kind)
	}
	total := req.TotalCopies
	if req.Kind == model.KindDigital {
		total = 1
	}
	if total < 1 {
		return nil, errors.New("total copies must be at least 1")
	}
	it := &Item{
		ID:          req.ID,
		Kind:        req.Kind,
		Title:       req.Title,
		Author:      req.Author,
		Year:        req.Year,
		Category:    req.Category,
		Description: req.Description,
		CoverRef:    req.CoverRef,
		TotalCopies: total,
	}
	e.items[req.ID] = it
	return it, nil
}

func (e *Engine) FindItem(id int) (*Item, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.findItem(id)
}

func (e *Engine) findItem(id int) (*Item, error) {
	it, ok := e.items[id]
	if !ok {
		return nil, errs.ErrItemNotFound
	}
	return it, nil
}

func (e *Engine) FindBorrower(id int) (*Borrower, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.findBorrower(id)
}

func (e *Engine) findBorrower(id int) (*Borrower, error) {
	b, ok := e.borrowers[id]
	if !ok {
		return nil, errs.ErrBorrowerNotFound
	}
	return b, nil
}

func (e *Engine) FindLoan(id string) (*Loan, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	l, ok := e.loans[id]
	if !ok {
		return nil, errs.ErrLoanNotFound
	}
	return l, nil
}

// Search filters the catalog by title keyword and author substring,
// both case-insensitive; empty arguments match everything. Results
// come back in id order.
func (e *Engine) Search(query, author string) []*Item {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.search(query, author)
}

func (e *Engine) search(query, author string) []*Item {
	query, author = strings.ToLower(query), strings.ToLower(author)
	var found []*Item
	for _, it := range e.items {
		if query != "" && !strings.Contains(strings.ToLower(it.Title), query) {
			continue
		}
		if author != "" && !strings.Contains(strings.ToLower(it.Author), author) {
			continue
		}
		found = append(found, it)
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found
}

// CheckEligibility answers whether the borrower may check the item out
// right now. Digital items are always eligible.
func (e *Engine) CheckEligibility(borrowerID, itemID int) (Outcome, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	b, err := e.findBorrower(borrowerID)
	if err != nil {
		return Outcome{}, err
	}
	it, err := e.findItem(itemID)
	if err != nil {
		return Outcome{}, err
	}
	return e.eligibility(b, it), nil
}

func (e *Engine) eligibility(b *Borrower, it *Item) Outcome {
	if it.Kind == model.KindDigital {
		return allow()
	}
	if b.activeLoanOf(it.ID) != nil {
		return refuse(ReasonDuplicateLoan)
	}
	if len(b.ActiveLoans()) >= b.LoanLimit() {
		return refuse(ReasonLimitReached)
	}
	// A held copy is already theirs even though the shelf shows none;
	// the hold waives availability only, never the loan limit.
	if it.hasHold(b.ID) {
		return allow()
	}
	if !it.Available() {
		return refuse(ReasonNoCopies)
	}
	return allow()
}

// Checkout creates a loan starting at the given day. Digital items
// skip the eligibility gate entirely; physical checkouts bump the
// on-loan counter. The returned view is a snapshot taken while the
// lock is still held.
func (e *Engine) Checkout(borrowerID, itemID int, start time.Time) (model.LoanView, Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.findBorrower(borrowerID)
	if err != nil {
		return model.LoanView{}, Outcome{}, err
	}
	it, err := e.findItem(itemID)
	if err != nil {
		return model.LoanView{}, Outcome{}, err
	}
	if it.Kind != model.KindDigital {
		if out := e.eligibility(b, it); !out.Allowed {
			return model.LoanView{}, out, nil
		}
		// A pickup of a held copy does not move the counter: the copy
		// never went back on the shelf.
		if !it.takeHold(b.ID) {
			it.OnLoan++
		}
	}

	l := newLoan(b, it, start)
	b.Loans = append(b.Loans, l)
	e.loans[l.ID] = l

	e.log.Debug("checkout",
		zap.String("loan", l.ID),
		zap.Int("borrower", b.ID),
		zap.Int("item", it.ID),
		zap.Time("due", l.DueDate))

	return loanView(l, start), Outcome{
		Allowed: true,
		Reason:  fmt.Sprintf("checked out %q, due %s", it.Title, l.DueDate.Format(time.DateOnly)),
	}, nil
}

// Reserve queues the borrower for the next returned copy. Only
// fully-loaned physical items can be reserved.
func (e *Engine) Reserve(borrowerID, itemID int) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.findBorrower(borrowerID)
	if err != nil {
		return Outcome{}, err
	}
	it, err := e.findItem(itemID)
	if err != nil {
		return Outcome{}, err
	}
	if it.Kind == model.KindDigital {
		return refuse(ReasonDigitalReserve), nil
	}
	if it.Available() {
		return refuse(ReasonCopiesAvailable), nil
	}
	if b.activeLoanOf(it.ID) != nil {
		return refuse(ReasonDuplicateLoan), nil
	}
	if it.ReservationPosition(b.ID) > 0 || it.hasHold(b.ID) {
		return refuse(ReasonAlreadyReserved), nil
	}
	it.addReservation(b.ID)
	return Outcome{
		Allowed: true,
		Reason:  fmt.Sprintf("reserved %q, position %d", it.Title, it.ReservationPosition(b.ID)),
	}, nil
}

// Renew extends an active loan by one more policy period. Pending
// reservations and the per-kind ceiling block it.
func (e *Engine) Renew(loanID string) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.loans[loanID]
	if !ok {
		return Outcome{}, errs.ErrLoanNotFound
	}
	if !l.Active() {
		return refuse(ReasonNotActive), nil
	}
	if l.Item.HasReservations() {
		return refuse(ReasonReservations), nil
	}
	if l.Renewals >= l.RenewalLimit {
		return refuse(ReasonRenewalLimit), nil
	}
	l.DueDate = l.DueDate.AddDate(0, 0, LoanDays(l.Item.Kind, l.Borrower.Role))
	l.Renewals++
	return Outcome{
		Allowed: true,
		Reason:  fmt.Sprintf("renewed, now due %s", l.DueDate.Format(time.DateOnly)),
	}, nil
}

// Return closes a loan as of the given day. The fine owed at that
// moment is reported alongside any reservation hand-off notification.
func (e *Engine) Return(loanID string, asOf time.Time) (float64, *model.Notification, Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.loans[loanID]
	if !ok {
		return 0, nil, Outcome{}, errs.ErrLoanNotFound
	}
	if l.State.Phase == model.PhaseReturned {
		return 0, nil, refuse(ReasonAlreadyReturned), nil
	}
	l.markOverdue(asOf)
	fine := l.Fine(asOf)
	n := e.close(l)
	return fine, n, Outcome{
		Allowed: true,
		Reason:  fmt.Sprintf("returned %q", l.Item.Title),
	}, nil
}

// close runs the RETURNED entry action: hand the copy to the next
// waiting borrower (the counter stays up, the copy is considered
// immediately reassigned) or release it back to the shelf. Digital
// items track no physical unit.
func (e *Engine) close(l *Loan) *model.Notification {
	l.State = LoanState{Phase: model.PhaseReturned}

	it := l.Item
	if it.Kind == model.KindDigital {
		return nil
	}
	if next, ok := it.popReservation(); ok {
		it.hold(next)
		n := &model.Notification{
			ItemID:     it.ID,
			ItemTitle:  it.Title,
			BorrowerID: next,
		}
		if b, ok := e.borrowers[next]; ok {
			n.BorrowerName = b.Name
		}
		e.log.Info("reservation ready",
			zap.Int("item", it.ID),
			zap.Int("borrower", next))
		return n
	}
	if it.OnLoan > 0 {
		it.OnLoan--
	}
	return nil
}

// PayFine settles every overdue loan of the borrower as of the given
// day: loans past due are first lazily marked overdue, the total is
// summed at the frozen rate, and each settles to RETURNED with its
// entry action. Reports the total, the number of loans settled and any
// hand-off notifications. Payment itself is simulated.
func (e *Engine) PayFine(borrowerID int, asOf time.Time) (float64, int, []model.Notification, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.findBorrower(borrowerID)
	if err != nil {
		return 0, 0, nil, err
	}

	var (
		amount        float64
		settled       int
		notifications []model.Notification
	)
	for _, l := range b.Loans {
		l.markOverdue(asOf)
		if l.State.Phase != model.PhaseOverdue {
			continue
		}
		amount += l.Fine(asOf)
		settled++
		if n := e.close(l); n != nil {
			notifications = append(notifications, *n)
		}
	}
	return amount, settled, notifications, nil
}

// Withdraw removes an item from the catalog; refused while any copy is
// still out.
func (e *Engine) Withdraw(itemID int) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	it, err := e.findItem(itemID)
	if err != nil {
		return Outcome{}, err
	}
	if it.OnLoan > 0 {
		return refuse(ReasonUnitsOnLoan), nil
	}
	delete(e.items, itemID)
	return Outcome{
		Allowed: true,
		Reason:  fmt.Sprintf("withdrew %q", it.Title),
	}, nil
}

// AddReview attaches a borrower's review to an item; the rating is
// clamped to 0..5.
func (e *Engine) AddReview(itemID int, r model.Review) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	it, err := e.findItem(itemID)
	if err != nil {
		return err
	}
	if _, err := e.findBorrower(r.BorrowerID); err != nil {
		return err
	}
	it.addReview(r)
	return nil
}

// Loans lists the borrower's full history, lazily marking overdue
// loans against the as-of day first.
func (e *Engine) Loans(borrowerID int, asOf time.Time) ([]*Loan, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.findBorrower(borrowerID)
	if err != nil {
		return nil, err
	}
	for _, l := range b.Loans {
		l.markOverdue(asOf)
	}
	return b.Loans, nil
}
