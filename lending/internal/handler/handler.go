package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/unilib/lending-service/lending/internal/engine"
	"github.com/unilib/lending-service/lending/internal/errs"
	"github.com/unilib/lending-service/lending/internal/model"
	md "github.com/unilib/lending-service/pkg/middleware"
	"github.com/unilib/lending-service/pkg/validate"
)

type Handler struct {
	lendingSvc LendingService
	log        *zap.Logger
}

func New(lendingSvc LendingService, log *zap.Logger) *Handler {
	return &Handler{
		lendingSvc: lendingSvc,
		log:        log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/borrowers", h.RegisterBorrower)
	api.GET("/borrowers/:id", h.GetBorrower)
	api.GET("/borrowers/:id/loans", h.GetLoans)
	api.GET("/borrowers/:id/eligibility/:itemId", h.CheckEligibility)
	api.POST("/borrowers/:id/fines/pay", h.PayFine)

	api.POST("/items", h.AddItem)
	api.GET("/items", h.ListItems)
	api.GET("/items/:id", h.GetItem)
	api.DELETE("/items/:id", h.Withdraw)
	api.POST("/items/:id/reviews", h.AddReview)

	api.POST("/loans", h.Checkout)
	api.POST("/loans/:loanId/renew", h.Renew)
	api.POST("/loans/:loanId/return", h.Return)

	api.POST("/reservations", h.Reserve)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) RegisterBorrower(c echo.Context) error {
	var req model.RegisterBorrowerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	if !h.lendingSvc.RegisterBorrower(req) {
		return echo.NewHTTPError(http.StatusBadRequest, "registration rejected")
	}
	return c.NoContent(http.StatusCreated)
}

func (h *Handler) GetBorrower(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	b, err := h.lendingSvc.GetBorrower(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) GetLoans(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	asOf, err := asOfParam(c)
	if err != nil {
		return err
	}
	loans, err := h.lendingSvc.Loans(id, asOf)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

// CheckEligibility is a pure question: an ineligible answer is still a
// successful 200, not a 409.
func (h *Handler) CheckEligibility(c echo.Context) error {
	borrowerID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	out, err := h.lendingSvc.CheckEligibility(borrowerID, itemID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, model.OutcomeResponse{Allowed: out.Allowed, Message: out.Reason})
}

func (h *Handler) PayFine(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req model.PayFineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	resp, err := h.lendingSvc.PayFine(id, req.Date.Time)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) AddItem(c echo.Context) error {
	var req model.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	item, err := h.lendingSvc.AddItem(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *Handler) ListItems(c echo.Context) error {
	items := h.lendingSvc.ListItems(c.QueryParam("query"), c.QueryParam("author"))
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.lendingSvc.GetItem(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) Withdraw(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.lendingSvc.Withdraw(id)
	if err != nil {
		return httpError(err)
	}
	return outcomeJSON(c, out)
}

func (h *Handler) AddReview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req model.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	if err := h.lendingSvc.AddReview(id, req); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *Handler) Checkout(c echo.Context) error {
	var req model.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	resp, err := h.lendingSvc.Checkout(req)
	if err != nil {
		return httpError(err)
	}
	if !resp.Allowed {
		return c.JSON(http.StatusConflict, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) Renew(c echo.Context) error {
	loanID := c.Param("loanId")
	if loanID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "loanId is empty")
	}
	out, err := h.lendingSvc.Renew(loanID)
	if err != nil {
		return httpError(err)
	}
	return outcomeJSON(c, out)
}

func (h *Handler) Return(c echo.Context) error {
	loanID := c.Param("loanId")
	if loanID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "loanId is empty")
	}
	var req model.ReturnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	resp, err := h.lendingSvc.Return(loanID, req.Date.Time)
	if err != nil {
		return httpError(err)
	}
	if !resp.Allowed {
		return c.JSON(http.StatusConflict, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) Reserve(c echo.Context) error {
	var req model.ReserveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	out, err := h.lendingSvc.Reserve(req)
	if err != nil {
		return httpError(err)
	}
	return outcomeJSON(c, out)
}

// outcomeJSON maps policy refusals to 409 so callers can tell them
// apart from not-found (404) and malformed input (400).
func outcomeJSON(c echo.Context, out engine.Outcome) error {
	resp := model.OutcomeResponse{Allowed: out.Allowed, Message: out.Reason}
	if !out.Allowed {
		return c.JSON(http.StatusConflict, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

func httpError(err error) error {
	if errors.Is(err, errs.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is invalid")
	}
	return id, nil
}

func asOfParam(c echo.Context) (time.Time, error) {
	p := c.QueryParam("asOf")
	if p == "" {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "asOf is required")
	}
	asOf, err := time.Parse(time.DateOnly, p)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "asOf is invalid")
	}
	return asOf, nil
}
