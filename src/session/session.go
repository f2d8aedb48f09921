// Package session drives the calculator flow over a websocket. Each
// connection gets its own goroutine that owns one flow.State: inbound
// messages become flow events, every reduction is answered with a fresh
// snapshot. Only one logical flow is ever in progress per connection, so
// there is no shared mutable state and no locking here.
package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"

	"truenorth/src/controller"
	"truenorth/src/flow"
	"truenorth/src/model"
)

type currencyCatalog interface {
	List() []model.Currency
	BySymbol(symbol string) (model.Currency, bool)
}

type orderSubmitter interface {
	Submit(ctx context.Context, req controller.SubmitRequest) (*controller.Receipt, error)
}

// The landing page is served from arbitrary origins (CDN, preview deploys),
// so origin checking is disabled like the rest of the public API.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ClientMessage is one user action sent by the page.
type ClientMessage struct {
	Type   string `json:"type"`
	Field  string `json:"field,omitempty"`
	Symbol string `json:"symbol,omitempty"`
	Value  string `json:"value,omitempty"`

	RecipientAddress string `json:"recipient_address,omitempty"`
	Email            string `json:"email,omitempty"`
	PromoCode        string `json:"promo_code,omitempty"`
}

// ServerMessage is pushed back after every event.
type ServerMessage struct {
	Type       string           `json:"type"`
	Currencies []model.Currency `json:"currencies,omitempty"`
	State      *flow.State      `json:"state,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// Handler upgrades the connection and runs the per-connection event loop.
func Handler(catalog currencyCatalog, submitter orderSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.WithError(err).Warn("websocket upgrade failed")
			return
		}
		defer conn.Close()

		state := initialState(catalog)

		if err := conn.WriteJSON(ServerMessage{Type: "currencies", Currencies: catalog.List()}); err != nil {
			return
		}
		if err := conn.WriteJSON(ServerMessage{Type: "state", State: &state}); err != nil {
			return
		}

		for {
			var msg ClientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.WithError(err).Debug("websocket session ended")
				}
				return
			}

			var ok bool
			state, ok = apply(r.Context(), state, msg, catalog, submitter, conn)
			if !ok {
				continue
			}

			if err := conn.WriteJSON(ServerMessage{Type: "state", State: &state}); err != nil {
				return
			}
		}
	}
}

// initialState preselects the BTC/ETH pair the way the landing page does,
// falling back to the first two catalog entries.
func initialState(catalog currencyCatalog) flow.State {
	state := flow.NewState()

	currencies := catalog.List()

	send, ok := catalog.BySymbol("BTC")
	if !ok && len(currencies) > 0 {
		send = currencies[0]
		ok = true
	}
	if ok {
		state = flow.Reduce(state, flow.SelectCurrency{Field: flow.FieldSend, Currency: send})
	}

	receive, ok := catalog.BySymbol("ETH")
	if !ok && len(currencies) > 1 {
		receive = currencies[1]
		ok = true
	}
	if ok {
		state = flow.Reduce(state, flow.SelectCurrency{Field: flow.FieldReceive, Currency: receive})
	}

	return state
}

// apply maps one client message onto the reducer. The bool result reports
// whether a state snapshot should be written back.
func apply(
	ctx context.Context,
	state flow.State,
	msg ClientMessage,
	catalog currencyCatalog,
	submitter orderSubmitter,
	conn *websocket.Conn,
) (flow.State, bool) {

	switch msg.Type {
	case "select":
		currency, ok := catalog.BySymbol(msg.Symbol)
		if !ok {
			_ = conn.WriteJSON(ServerMessage{Type: "error", Error: "unknown currency: " + msg.Symbol})
			return state, false
		}
		return flow.Reduce(state, flow.SelectCurrency{Field: fieldOf(msg.Field), Currency: currency}), true

	case "amount":
		return flow.Reduce(state, flow.SetAmount{Field: fieldOf(msg.Field), Amount: msg.Value}), true

	case "order_type":
		return flow.Reduce(state, flow.SetOrderType{OrderType: msg.Value}), true

	case "swap":
		return flow.Reduce(state, flow.Swap{}), true

	case "proceed":
		return flow.Reduce(state, flow.Proceed{}), true

	case "back":
		return flow.Reduce(state, flow.Back{}), true

	case "submit":
		return submit(ctx, state, msg, submitter, conn), true

	default:
		_ = conn.WriteJSON(ServerMessage{Type: "error", Error: "unknown message type: " + msg.Type})
		return state, false
	}
}

// submit runs the synchronous submission pipeline. The reducer's re-entry
// guard makes a second submit while one is in flight a no-op, and the loop
// being single-goroutine means there is nothing else to race with anyway.
func submit(
	ctx context.Context,
	state flow.State,
	msg ClientMessage,
	submitter orderSubmitter,
	conn *websocket.Conn,
) flow.State {

	started := flow.Reduce(state, flow.SubmitStarted{})
	if !started.Submitting || started == state {
		// Blocked: wrong page, already in flight, or already succeeded.
		return state
	}
	state = started
	_ = conn.WriteJSON(ServerMessage{Type: "state", State: &state})

	var send, receive model.Currency
	if state.Send != nil {
		send = *state.Send
	}
	if state.Receive != nil {
		receive = *state.Receive
	}

	receipt, err := submitter.Submit(ctx, controller.SubmitRequest{
		SendCurrency:     send,
		ReceiveCurrency:  receive,
		SendAmount:       state.SendAmount,
		ReceiveAmount:    state.ReceiveAmount,
		OrderType:        state.OrderType,
		RecipientAddress: msg.RecipientAddress,
		Email:            msg.Email,
		PromoCode:        msg.PromoCode,
	})
	if err != nil {
		var vErr *controller.ValidationError
		if errors.As(err, &vErr) {
			return flow.Reduce(state, flow.SubmitFailed{Message: vErr.Message})
		}
		return flow.Reduce(state, flow.SubmitFailed{
			Message: "Failed to create exchange order. Please try again.",
		})
	}

	return flow.Reduce(state, flow.SubmitSucceeded{ReferenceID: receipt.Order.ReferenceID})
}

func fieldOf(raw string) flow.Field {
	if raw == string(flow.FieldReceive) {
		return flow.FieldReceive
	}
	return flow.FieldSend
}
