package controller

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"truenorth/src/model"
	"truenorth/src/repository"
)

var (
	btc = model.Currency{Symbol: "BTC", Name: "Bitcoin", Price: 43250.00}
	eth = model.Currency{Symbol: "ETH", Name: "Ethereum", Price: 2680.50}
)

type mockCreator struct {
	err   error
	calls int
	last  *model.ExchangeOrder
}

func (m *mockCreator) Create(ctx context.Context, order *model.ExchangeOrder) error {
	m.calls++
	m.last = order
	if m.err == nil {
		order.ID = 1
	}
	return m.err
}

type mockAnnouncer struct {
	ok    bool
	calls int
}

func (m *mockAnnouncer) NotifyOrder(ctx context.Context, order *model.ExchangeOrder) bool {
	m.calls++
	return m.ok
}

func validRequest() SubmitRequest {
	return SubmitRequest{
		SendCurrency:     btc,
		ReceiveCurrency:  eth,
		SendAmount:       "1",
		ReceiveAmount:    "16.13504943",
		OrderType:        model.OrderTypeFloating,
		RecipientAddress: "0x1234567890abcdef1234567890abcdef12345678",
		Email:            "user@example.com",
	}
}

func TestSubmitValidationRejectsBeforeAnyCall(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SubmitRequest)
		field  string
	}{
		{name: "empty address", mutate: func(r *SubmitRequest) { r.RecipientAddress = "   " }, field: "recipient_address"},
		{name: "empty email", mutate: func(r *SubmitRequest) { r.Email = "" }, field: "email"},
		{name: "email without at sign", mutate: func(r *SubmitRequest) { r.Email = "user.example.com" }, field: "email"},
		{name: "unknown order type", mutate: func(r *SubmitRequest) { r.OrderType = "Margin" }, field: "order_type"},
		{name: "garbage send amount", mutate: func(r *SubmitRequest) { r.SendAmount = "one" }, field: "send_amount"},
		{name: "negative receive amount", mutate: func(r *SubmitRequest) { r.ReceiveAmount = "-5" }, field: "receive_amount"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockCreator{}
			notifier := &mockAnnouncer{ok: true}
			ctrl := NewOrderController(repo, notifier)

			req := validRequest()
			tc.mutate(&req)

			receipt, err := ctrl.Submit(context.Background(), req)
			if receipt != nil {
				t.Fatalf("expected no receipt, got %+v", receipt)
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, vErr.Field)
			}

			if repo.calls != 0 || notifier.calls != 0 {
				t.Fatalf("validation failure must not reach the network: repo=%d notify=%d",
					repo.calls, notifier.calls)
			}
		})
	}
}

func TestSubmitPersistenceFailure(t *testing.T) {
	repo := &mockCreator{err: errors.New("connection refused")}
	notifier := &mockAnnouncer{ok: true}
	ctrl := NewOrderController(repo, notifier)

	receipt, err := ctrl.Submit(context.Background(), validRequest())
	if receipt != nil {
		t.Fatalf("expected no receipt, got %+v", receipt)
	}
	if !errors.Is(err, ErrSubmissionFailed) {
		t.Fatalf("expected ErrSubmissionFailed, got %v", err)
	}
	if notifier.calls != 0 {
		t.Fatal("notification must not be attempted after a failed insert")
	}
}

func TestSubmitNotificationFailureDoesNotFailOrder(t *testing.T) {
	repo := &mockCreator{}
	notifier := &mockAnnouncer{ok: false}
	ctrl := NewOrderController(repo, notifier)

	receipt, err := ctrl.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if receipt.Order.ID == 0 || receipt.Order.ReferenceID == "" {
		t.Fatalf("expected committed order with identifiers: %+v", receipt.Order)
	}
	if receipt.Order.Status != model.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", receipt.Order.Status)
	}
	if receipt.Announced {
		t.Fatal("expected Announced=false after notification failure")
	}
	if notifier.calls != 1 {
		t.Fatalf("expected exactly one notification attempt, got %d", notifier.calls)
	}
}

func TestSubmitAcceptsGroupedAmounts(t *testing.T) {
	repo := &mockCreator{}
	ctrl := NewOrderController(repo, &mockAnnouncer{ok: true})

	// The calculator renders derived amounts with grouped thousands and
	// submits them verbatim.
	req := validRequest()
	req.SendAmount = "1"
	req.ReceiveAmount = "43,250.00"

	if _, err := ctrl.Submit(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.calls != 1 {
		t.Fatalf("expected one insert, got %d", repo.calls)
	}
	if repo.last.ReceiveAmount != "43250" {
		t.Fatalf("unexpected stored receive amount: %q", repo.last.ReceiveAmount)
	}
}

func TestSubmitTrimsAndSnapshotsFields(t *testing.T) {
	repo := &mockCreator{}
	ctrl := NewOrderController(repo, &mockAnnouncer{ok: true})

	req := validRequest()
	req.RecipientAddress = "  0xabc  "
	req.Email = " user@example.com "
	req.PromoCode = " WELCOME10 "

	if _, err := ctrl.Submit(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order := repo.last
	if order.RecipientAddress != "0xabc" || order.Email != "user@example.com" || order.PromoCode != "WELCOME10" {
		t.Fatalf("fields not trimmed: %+v", order)
	}
	if order.SendCurrencySymbol != "BTC" || order.ReceiveCurrencyName != "Ethereum" {
		t.Fatalf("currency snapshot incomplete: %+v", order)
	}
}

// helper to create a new in memory gorm DB and migrate schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in memory db: %v", err)
	}

	if err := db.AutoMigrate(&model.ExchangeOrder{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}

	return db
}

// End to end against a real (in memory) database: insert succeeds, the
// notification channel fails, and the order still comes back committed.
func TestSubmitEndToEndWithDatabase(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	repo := (&repository.OrderRepository{}).WithDB(db)
	ctrl := NewOrderController(repo, &mockAnnouncer{ok: false})

	receipt, err := ctrl.Submit(ctx, validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Announced {
		t.Fatal("expected Announced=false")
	}

	stored, err := repo.FindByReference(ctx, receipt.Order.ReferenceID)
	if err != nil {
		t.Fatalf("unexpected error reading back: %v", err)
	}
	if stored == nil {
		t.Fatal("order not found after submission")
	}
	if stored.Status != model.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", stored.Status)
	}
	if stored.SendAmount != "1" || stored.ReceiveAmount != "16.13504943" {
		t.Fatalf("unexpected stored amounts: %+v", stored)
	}
}
