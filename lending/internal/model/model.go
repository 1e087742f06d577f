package model

import (
	"time"
)

type ItemKind string

const (
	KindBook    ItemKind = "BOOK"
	KindJournal ItemKind = "JOURNAL"
	KindThesis  ItemKind = "THESIS"
	KindDigital ItemKind = "DIGITAL"
)

func (k ItemKind) Valid() bool {
	switch k {
	case KindBook, KindJournal, KindThesis, KindDigital:
		return true
	}
	return false
}

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleFaculty Role = "FACULTY"
	RoleStaff   Role = "STAFF"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleStaff:
		return true
	}
	return false
}

type LoanPhase string

const (
	PhaseActive   LoanPhase = "ACTIVE"
	PhaseOverdue  LoanPhase = "OVERDUE"
	PhaseReturned LoanPhase = "RETURNED"
)

// Date marshals as a plain yyyy-mm-dd day, the granularity every
// due-date and fine computation works at.
type Date struct {
	time.Time `json:",inline"`
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return err
		}
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

type Review struct {
	BorrowerID int       `json:"borrowerId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Date       time.Time `json:"date"`
}

// Notification tells a waiting borrower the next copy is theirs.
type Notification struct {
	ItemID       int    `json:"itemId"`
	ItemTitle    string `json:"itemTitle"`
	BorrowerID   int    `json:"borrowerId"`
	BorrowerName string `json:"borrowerName"`
}

type EventType string

const (
	EventCheckout         EventType = "lending.checkout"
	EventReturn           EventType = "lending.return"
	EventRenewal          EventType = "lending.renewal"
	EventFinePaid         EventType = "lending.fine_paid"
	EventReservationReady EventType = "lending.reservation_ready"
)

// Event is the payload published to the lending topic.
type Event struct {
	Type         EventType     `json:"type"`
	LoanID       string        `json:"loanId,omitempty"`
	ItemID       int           `json:"itemId,omitempty"`
	BorrowerID   int           `json:"borrowerId,omitempty"`
	Amount       float64       `json:"amount,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
}

type RegisterBorrowerRequest struct {
	ID    int    `json:"id" validate:"required,gt=0"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,contains=@"`
	Role  Role   `json:"role" validate:"required,oneof=STUDENT FACULTY STAFF"`
}

type AddItemRequest struct {
	ID          int      `json:"id" validate:"required,gt=0"`
	Kind        ItemKind `json:"kind" validate:"required,oneof=BOOK JOURNAL THESIS DIGITAL"`
	Title       string   `json:"title" validate:"required"`
	Author      string   `json:"author" validate:"required"`
	Year        int      `json:"year"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	CoverRef    string   `json:"coverRef"`
	TotalCopies int      `json:"totalCopies" validate:"omitempty,gte=1"`
}

type CheckoutRequest struct {
	BorrowerID int  `json:"borrowerId" validate:"required,gt=0"`
	ItemID     int  `json:"itemId" validate:"required,gt=0"`
	StartDate  Date `json:"startDate" validate:"required"`
}

type ReserveRequest struct {
	BorrowerID int `json:"borrowerId" validate:"required,gt=0"`
	ItemID     int `json:"itemId" validate:"required,gt=0"`
}

type ReturnRequest struct {
	Date Date `json:"date" validate:"required"`
}

type PayFineRequest struct {
	Date Date `json:"date" validate:"required"`
}

type ReviewRequest struct {
	BorrowerID int    `json:"borrowerId" validate:"required,gt=0"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	Date       Date   `json:"date" validate:"required"`
}

type ItemView struct {
	ID              int      `json:"id"`
	Kind            ItemKind `json:"kind"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Year            int      `json:"year,omitempty"`
	Category        string   `json:"category,omitempty"`
	Description     string   `json:"description,omitempty"`
	CoverRef        string   `json:"coverRef,omitempty"`
	TotalCopies     int      `json:"totalCopies"`
	OnLoan          int      `json:"onLoan"`
	AvailableCopies int      `json:"availableCopies"`
	Renewable       bool     `json:"renewable"`
	Reservations    int      `json:"reservations"`
	AverageRating   float64  `json:"averageRating"`
	Reviews         []Review `json:"reviews,omitempty"`
}

type BorrowerView struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	LoanLimit int    `json:"loanLimit"`
	Active    int    `json:"activeLoans"`
	Loans     int    `json:"totalLoans"`
}

type LoanView struct {
	ID         string    `json:"id"`
	BorrowerID int       `json:"borrowerId"`
	ItemID     int       `json:"itemId"`
	ItemTitle  string    `json:"itemTitle"`
	StartDate  Date      `json:"startDate"`
	DueDate    Date      `json:"dueDate"`
	Renewals   int       `json:"renewals"`
	Phase      LoanPhase `json:"phase"`
	Fine       float64   `json:"fine"`
}

// OutcomeResponse is the uniform body for allow/refuse answers.
type OutcomeResponse struct {
	Allowed bool   `json:"allowed"`
	Message string `json:"message"`
}

type CheckoutResponse struct {
	OutcomeResponse `json:",inline"`
	Loan            *LoanView `json:"loan,omitempty"`
}

type ReturnResponse struct {
	OutcomeResponse `json:",inline"`
	Fine            float64       `json:"fine"`
	Notification    *Notification `json:"notification,omitempty"`
}

type PayFineResponse struct {
	Amount        float64        `json:"amount"`
	Settled       int            `json:"settled"`
	Notifications []Notification `json:"notifications,omitempty"`
}
