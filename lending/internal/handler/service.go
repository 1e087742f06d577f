package handler

import (
	"time"

	"github.com/unilib/lending-service/lending/internal/engine"
	"github.com/unilib/lending-service/lending/internal/model"
	"github.com/unilib/lending-service/lending/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LendingService interface {
	RegisterBorrower(req model.RegisterBorrowerRequest) bool
	GetBorrower(id int) (model.BorrowerView, error)
	AddItem(req model.AddItemRequest) (model.ItemView, error)
	GetItem(id int) (model.ItemView, error)
	ListItems(query, author string) []model.ItemView
	Withdraw(id int) (engine.Outcome, error)
	CheckEligibility(borrowerID, itemID int) (engine.Outcome, error)
	Checkout(req model.CheckoutRequest) (model.CheckoutResponse, error)
	Reserve(req model.ReserveRequest) (engine.Outcome, error)
	Renew(loanID string) (engine.Outcome, error)
	Return(loanID string, asOf time.Time) (model.ReturnResponse, error)
	PayFine(borrowerID int, asOf time.Time) (model.PayFineResponse, error)
	AddReview(itemID int, req model.ReviewRequest) error
	Loans(borrowerID int, asOf time.Time) ([]model.LoanView, error)
}

var _ LendingService = (*service.Service)(nil)
