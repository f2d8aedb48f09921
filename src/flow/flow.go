// Package flow models the calculator UI as a pure reducer: an immutable
// State snapshot plus Reduce mapping (state, event) to a new state. All
// mutation order dependencies of the original page live here explicitly,
// including which amount field is driving the bidirectional conversion.
package flow

import (
	"strings"

	"truenorth/src/convert"
	"truenorth/src/model"
)

type Page string

const (
	PageCalculator   Page = "calculator"
	PageOrderDetails Page = "order-details"
)

type Field string

const (
	FieldSend    Field = "send"
	FieldReceive Field = "receive"
)

// State is one snapshot of the calculator flow. Reduce never mutates its
// input; currencies are value copies taken from the market catalog.
type State struct {
	Page Page `json:"page"`

	Send    *model.Currency `json:"send,omitempty"`
	Receive *model.Currency `json:"receive,omitempty"`

	SendAmount    string `json:"send_amount"`
	ReceiveAmount string `json:"receive_amount"`
	// Driving is the field the user is actively editing. Only edits to the
	// driving field recompute the other side, which is what breaks the
	// update cycle between the two linked amounts.
	Driving Field `json:"driving"`

	OrderType string `json:"order_type"`

	Submitting  bool   `json:"submitting"`
	Succeeded   bool   `json:"succeeded"`
	ReferenceID string `json:"reference_id,omitempty"`
	Notice      string `json:"notice,omitempty"`
}

// NewState returns the initial calculator state.
func NewState() State {
	return State{
		Page:      PageCalculator,
		Driving:   FieldSend,
		OrderType: model.OrderTypeFloating,
	}
}

// Event is a discrete user or network-completion action.
type Event interface{ isEvent() }

type SelectCurrency struct {
	Field    Field
	Currency model.Currency
}

type SetAmount struct {
	Field  Field
	Amount string
}

type SetOrderType struct{ OrderType string }

// Swap exchanges the send/receive selections and their amounts together.
type Swap struct{}

// Proceed asks for the order-details page; blocked unless the intent is
// complete.
type Proceed struct{}

type Back struct{}

type SubmitStarted struct{}

type SubmitSucceeded struct{ ReferenceID string }

type SubmitFailed struct{ Message string }

func (SelectCurrency) isEvent()  {}
func (SetAmount) isEvent()       {}
func (SetOrderType) isEvent()    {}
func (Swap) isEvent()            {}
func (Proceed) isEvent()         {}
func (Back) isEvent()            {}
func (SubmitStarted) isEvent()   {}
func (SubmitSucceeded) isEvent() {}
func (SubmitFailed) isEvent()    {}

// Reduce applies one event to a state snapshot and returns the next one.
// Unknown events and events that arrive in the wrong page are no-ops.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case SelectCurrency:
		currency := ev.Currency
		if ev.Field == FieldReceive {
			s.Receive = &currency
		} else {
			s.Send = &currency
		}
		s = recompute(s)

	case SetAmount:
		s.Driving = ev.Field
		if ev.Field == FieldReceive {
			s.ReceiveAmount = ev.Amount
		} else {
			s.SendAmount = ev.Amount
		}
		s = recompute(s)

	case SetOrderType:
		if ev.OrderType == model.OrderTypeFloating || ev.OrderType == model.OrderTypeFixed {
			s.OrderType = ev.OrderType
		}

	case Swap:
		if s.Send != nil && s.Receive != nil {
			s.Send, s.Receive = s.Receive, s.Send
			s.SendAmount, s.ReceiveAmount = s.ReceiveAmount, s.SendAmount
		}

	case Proceed:
		if s.Page != PageCalculator {
			break
		}
		if !positiveAmount(s.SendAmount) || !positiveAmount(s.ReceiveAmount) {
			s.Notice = "Please enter both send and receive amounts before proceeding."
			break
		}
		if s.Send == nil || s.Receive == nil {
			s.Notice = "Please select both currencies before proceeding."
			break
		}
		s.Notice = ""
		s.Page = PageOrderDetails

	case Back:
		if s.Page == PageOrderDetails {
			s.Page = PageCalculator
			s.Notice = ""
		}

	case SubmitStarted:
		// Only one submission may ever be in flight, and a completed order
		// is final for this visit.
		if s.Page != PageOrderDetails || s.Submitting || s.Succeeded {
			break
		}
		s.Submitting = true
		s.Notice = ""

	case SubmitSucceeded:
		if !s.Submitting {
			break
		}
		s.Submitting = false
		s.Succeeded = true
		s.ReferenceID = ev.ReferenceID
		s.Notice = ""

	case SubmitFailed:
		if !s.Submitting {
			break
		}
		s.Submitting = false
		s.Notice = ev.Message
	}

	return s
}

// recompute derives the non-driving amount from the driving one. Writing
// the derived field here does not re-enter Reduce, so the two linked fields
// cannot feed back into each other.
func recompute(s State) State {
	if s.Send == nil || s.Receive == nil {
		return s
	}

	if s.Driving == FieldReceive {
		out := convert.ConvertString(*s.Receive, *s.Send, s.ReceiveAmount)
		if out > 0 {
			s.SendAmount = convert.FormatAmount(out)
		} else if strings.TrimSpace(s.ReceiveAmount) == "" {
			s.SendAmount = ""
		}
		return s
	}

	out := convert.ConvertString(*s.Send, *s.Receive, s.SendAmount)
	if out > 0 {
		s.ReceiveAmount = convert.FormatAmount(out)
	} else if strings.TrimSpace(s.SendAmount) == "" {
		s.ReceiveAmount = ""
	}
	return s
}

func positiveAmount(amount string) bool {
	value, err := convert.ParseAmount(amount)
	return err == nil && value > 0
}
