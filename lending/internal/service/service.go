package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/unilib/lending-service/lending/internal/engine"
	"github.com/unilib/lending-service/lending/internal/model"
	"github.com/unilib/lending-service/pkg/kafka"
)

// Service fronts the engine for the HTTP layer and publishes lending
// events as a side channel. Event publishing is best-effort: a broker
// failure is logged, never surfaced to the caller.
type Service struct {
	log *zap.Logger
	eng *engine.Engine
	enq Enqueuer
}

func NewService(eng *engine.Engine, enq Enqueuer, log *zap.Logger) *Service {
	return &Service{
		log: log,
		eng: eng,
		enq: enq,
	}
}

func (s *Service) RegisterBorrower(req model.RegisterBorrowerRequest) bool {
	return s.eng.RegisterBorrower(req.ID, req.Name, req.Email, req.Role)
}

func (s *Service) GetBorrower(id int) (model.BorrowerView, error) {
	return s.eng.BorrowerView(id)
}

func (s *Service) AddItem(req model.AddItemRequest) (model.ItemView, error) {
	if _, err := s.eng.AddItem(req); err != nil {
		return model.ItemView{}, err
	}
	return s.eng.ItemView(req.ID)
}

func (s *Service) GetItem(id int) (model.ItemView, error) {
	return s.eng.ItemView(id)
}

func (s *Service) ListItems(query, author string) []model.ItemView {
	return s.eng.ItemViews(query, author)
}

func (s *Service) Withdraw(id int) (engine.Outcome, error) {
	return s.eng.Withdraw(id)
}

func (s *Service) CheckEligibility(borrowerID, itemID int) (engine.Outcome, error) {
	return s.eng.CheckEligibility(borrowerID, itemID)
}

func (s *Service) Checkout(req model.CheckoutRequest) (model.CheckoutResponse, error) {
	lv, out, err := s.eng.Checkout(req.BorrowerID, req.ItemID, req.StartDate.Time)
	if err != nil {
		return model.CheckoutResponse{}, err
	}
	resp := model.CheckoutResponse{
		OutcomeResponse: model.OutcomeResponse{Allowed: out.Allowed, Message: out.Reason},
	}
	if !out.Allowed {
		return resp, nil
	}
	resp.Loan = &lv
	s.publish(model.Event{
		Type:       model.EventCheckout,
		LoanID:     lv.ID,
		ItemID:     req.ItemID,
		BorrowerID: req.BorrowerID,
	})
	return resp, nil
}

func (s *Service) Reserve(req model.ReserveRequest) (engine.Outcome, error) {
	return s.eng.Reserve(req.BorrowerID, req.ItemID)
}

func (s *Service) Renew(loanID string) (engine.Outcome, error) {
	out, err := s.eng.Renew(loanID)
	if err == nil && out.Allowed {
		s.publish(model.Event{Type: model.EventRenewal, LoanID: loanID})
	}
	return out, err
}

func (s *Service) Return(loanID string, asOf time.Time) (model.ReturnResponse, error) {
	fine, n, out, err := s.eng.Return(loanID, asOf)
	if err != nil {
		return model.ReturnResponse{}, err
	}
	resp := model.ReturnResponse{
		OutcomeResponse: model.OutcomeResponse{Allowed: out.Allowed, Message: out.Reason},
		Fine:            fine,
		Notification:    n,
	}
	if out.Allowed {
		s.publish(model.Event{Type: model.EventReturn, LoanID: loanID})
		if n != nil {
			s.publish(model.Event{
				Type:         model.EventReservationReady,
				ItemID:       n.ItemID,
				BorrowerID:   n.BorrowerID,
				Notification: n,
			})
		}
	}
	return resp, nil
}

func (s *Service) PayFine(borrowerID int, asOf time.Time) (model.PayFineResponse, error) {
	amount, settled, notifications, err := s.eng.PayFine(borrowerID, asOf)
	if err != nil {
		return model.PayFineResponse{}, err
	}
	if amount > 0 {
		s.publish(model.Event{
			Type:       model.EventFinePaid,
			BorrowerID: borrowerID,
			Amount:     amount,
		})
	}
	for i := range notifications {
		n := notifications[i]
		s.publish(model.Event{
			Type:         model.EventReservationReady,
			ItemID:       n.ItemID,
			BorrowerID:   n.BorrowerID,
			Notification: &n,
		})
	}
	return model.PayFineResponse{
		Amount:        amount,
		Settled:       settled,
		Notifications: notifications,
	}, nil
}

func (s *Service) AddReview(itemID int, req model.ReviewRequest) error {
	return s.eng.AddReview(itemID, model.Review{
		BorrowerID: req.BorrowerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Date:       req.Date.Time,
	})
}

func (s *Service) Loans(borrowerID int, asOf time.Time) ([]model.LoanView, error) {
	return s.eng.LoanViews(borrowerID, asOf)
}

func (s *Service) publish(ev model.Event) {
	if err := s.enq.Enqueue(kafka.LendingTopic, ev); err != nil {
		s.log.Warn("enqueue event", zap.String("type", string(ev.Type)), zap.Error(err))
	}
}
