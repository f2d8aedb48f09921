package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"truenorth/src/model"
)

// ErrSubmissionFailed is returned when the order could not be persisted.
// The caller may retry; no partial state is retained.
var ErrSubmissionFailed = errors.New("failed to create exchange order")

// ValidationError reports a rejected field before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type orderCreator interface {
	Create(ctx context.Context, order *model.ExchangeOrder) error
}

type orderAnnouncer interface {
	NotifyOrder(ctx context.Context, order *model.ExchangeOrder) bool
}

// SubmitRequest carries the user's exchange intent plus contact details.
type SubmitRequest struct {
	SendCurrency    model.Currency
	ReceiveCurrency model.Currency

	SendAmount    string
	ReceiveAmount string
	OrderType     string

	RecipientAddress string
	Email            string
	PromoCode        string
}

// Receipt distinguishes the two outcomes of a submission: Order is the
// committed row, Announced says whether the operator notification went out.
// A false Announced never invalidates the order.
type Receipt struct {
	Order     *model.ExchangeOrder `json:"order"`
	Announced bool                 `json:"announced"`
}

// OrderController is the submission gateway: validate locally, persist hard,
// notify soft.
type OrderController struct {
	repo     orderCreator
	notifier orderAnnouncer
}

func NewOrderController(repo orderCreator, notifier orderAnnouncer) *OrderController {
	return &OrderController{repo: repo, notifier: notifier}
}

// Submit validates the request, inserts one pending order and fires exactly
// one best-effort operator notification. Persistence failure fails the
// submission; notification failure does not.
func (c *OrderController) Submit(ctx context.Context, req SubmitRequest) (*Receipt, error) {
	order, err := c.validate(req)
	if err != nil {
		return nil, err
	}

	if err := c.repo.Create(ctx, order); err != nil {
		logger.WithError(err).Error("Order submission failed at persistence")
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	// Best effort from here on. The order is committed; a lost message only
	// delays the operator, it never rolls anything back.
	announced := c.notifier.NotifyOrder(ctx, order)
	if !announced {
		logger.WithField("reference_id", order.ReferenceID).
			Warn("Order created but operator notification failed")
	}

	return &Receipt{Order: order, Announced: announced}, nil
}

func (c *OrderController) validate(req SubmitRequest) (*model.ExchangeOrder, error) {
	address := strings.TrimSpace(req.RecipientAddress)
	if address == "" {
		return nil, &ValidationError{Field: "recipient_address", Message: "Recipient address is required"}
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, &ValidationError{Field: "email", Message: "Email address is required"}
	}
	if !strings.Contains(email, "@") {
		return nil, &ValidationError{Field: "email", Message: "Please enter a valid email address"}
	}

	if req.OrderType != model.OrderTypeFloating && req.OrderType != model.OrderTypeFixed {
		return nil, &ValidationError{Field: "order_type", Message: "Unknown order type"}
	}

	sendAmount, err := parseAmount(req.SendAmount)
	if err != nil {
		return nil, &ValidationError{Field: "send_amount", Message: "Send amount must be a non-negative number"}
	}
	receiveAmount, err := parseAmount(req.ReceiveAmount)
	if err != nil {
		return nil, &ValidationError{Field: "receive_amount", Message: "Receive amount must be a non-negative number"}
	}

	return &model.ExchangeOrder{
		ReferenceID:           uuid.NewString(),
		SendCurrencySymbol:    req.SendCurrency.Symbol,
		SendCurrencyName:      req.SendCurrency.Name,
		SendAmount:            sendAmount.String(),
		ReceiveCurrencySymbol: req.ReceiveCurrency.Symbol,
		ReceiveCurrencyName:   req.ReceiveCurrency.Name,
		ReceiveAmount:         receiveAmount.String(),
		OrderType:             req.OrderType,
		RecipientAddress:      address,
		Email:                 email,
		PromoCode:             strings.TrimSpace(req.PromoCode),
		Status:                model.OrderStatusPending,
	}, nil
}

// parseAmount accepts amounts as rendered by the calculator, grouped
// thousands separators included.
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, errors.New("negative amount")
	}
	return amount, nil
}
