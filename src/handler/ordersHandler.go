package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"truenorth/src/controller"
	"truenorth/src/model"
	"truenorth/src/repository"
)

type orderSubmitter interface {
	Submit(ctx context.Context, req controller.SubmitRequest) (*controller.Receipt, error)
}

type orderLister interface {
	FindLatest(ctx context.Context, limit int) ([]model.ExchangeOrder, error)
}

// CreateOrderRequest is the JSON body of POST /api/orders.
type CreateOrderRequest struct {
	SendCurrency     model.Currency `json:"send_currency"`
	ReceiveCurrency  model.Currency `json:"receive_currency"`
	SendAmount       string         `json:"send_amount"`
	ReceiveAmount    string         `json:"receive_amount"`
	OrderType        string         `json:"order_type"`
	RecipientAddress string         `json:"recipient_address"`
	Email            string         `json:"email"`
	PromoCode        string         `json:"promo_code,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// CreateOrderHandler accepts a submitted exchange intent. Validation errors
// come back as 400 with the offending field; a persistence failure is a 502
// the client may retry; success is a 201 receipt.
func CreateOrderHandler(submitter orderSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		receipt, err := submitter.Submit(r.Context(), controller.SubmitRequest{
			SendCurrency:     payload.SendCurrency,
			ReceiveCurrency:  payload.ReceiveCurrency,
			SendAmount:       payload.SendAmount,
			ReceiveAmount:    payload.ReceiveAmount,
			OrderType:        payload.OrderType,
			RecipientAddress: payload.RecipientAddress,
			Email:            payload.Email,
			PromoCode:        payload.PromoCode,
		})
		if err != nil {
			var vErr *controller.ValidationError
			if errors.As(err, &vErr) {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Message, Field: vErr.Field})
				return
			}
			logger.WithError(err).Error("order submission failed")
			writeJSON(w, http.StatusBadGateway, errorResponse{
				Error: "Failed to create exchange order. Please try again.",
			})
			return
		}

		writeJSON(w, http.StatusCreated, receipt)
	}
}

// LatestOrdersHandler lists recent orders for the operator. The bearer token
// is checked against a bcrypt hash; an empty hash disables the endpoint.
func LatestOrdersHandler(repo orderLister, operatorTokenHash string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if operatorTokenHash == "" {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" ||
			bcrypt.CompareHashAndPassword([]byte(operatorTokenHash), []byte(token)) != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		limit := 20
		if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
			parsed, err := strconv.Atoi(limitParam)
			if err != nil || parsed <= 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		orders, err := repo.FindLatest(r.Context(), limit)
		if err != nil {
			logger.WithError(err).Error("failed to fetch latest orders")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, orders)
	}
}

// DefaultLatestOrdersHandler wires the handler to the production repository implementation.
func DefaultLatestOrdersHandler() http.HandlerFunc {
	return LatestOrdersHandler(repository.NewOrderRepository(), GetConfig().OperatorTokenHash)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}
