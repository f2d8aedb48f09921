package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"truenorth/src/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	})

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		sqlDB.Close()
		t.Fatalf("failed to open gorm DB with sqlmock: %v", err)
	}

	return gdb, mock
}

func sampleOrder() *model.ExchangeOrder {
	return &model.ExchangeOrder{
		ReferenceID:           "ref-0001",
		SendCurrencySymbol:    "BTC",
		SendCurrencyName:      "Bitcoin",
		SendAmount:            "1",
		ReceiveCurrencySymbol: "ETH",
		ReceiveCurrencyName:   "Ethereum",
		ReceiveAmount:         "16.13504943",
		OrderType:             model.OrderTypeFloating,
		RecipientAddress:      "0xabc",
		Email:                 "user@example.com",
		Status:                model.OrderStatusPending,
	}
}

func TestOrderRepositoryCreate(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := (&OrderRepository{}).WithDB(mockDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uint(42)))
	mock.ExpectCommit()

	order := sampleOrder()
	if err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("unexpected error creating order: %v", err)
	}

	if order.ID != 42 {
		t.Fatalf("expected assigned ID 42, got %d", order.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestOrderRepositoryCreateFailure(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := (&OrderRepository{}).WithDB(mockDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if err := repo.Create(context.Background(), sampleOrder()); err == nil {
		t.Fatal("expected error from failed insert")
	}
}

func TestOrderRepositoryFindByReference(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := (&OrderRepository{}).WithDB(mockDB)

	createdAt := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "reference_id", "send_currency_symbol", "status", "created_at"}).
			AddRow(uint(7), "ref-0001", "BTC", model.OrderStatusPending, createdAt)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" WHERE reference_id = $1`)).
			WithArgs("ref-0001", 1).
			WillReturnRows(rows)

		order, err := repo.FindByReference(context.Background(), "ref-0001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order == nil || order.ID != 7 || order.Status != model.OrderStatusPending {
			t.Fatalf("unexpected order: %+v", order)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" WHERE reference_id = $1`)).
			WithArgs("missing", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		order, err := repo.FindByReference(context.Background(), "missing")
		if err != nil {
			t.Fatalf("expected nil error for missing order, got %v", err)
		}
		if order != nil {
			t.Fatalf("expected nil order, got %+v", order)
		}
	})
}

func TestOrderRepositoryFindLatest(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := (&OrderRepository{}).WithDB(mockDB)

	rows := sqlmock.NewRows([]string{"id", "reference_id"}).
		AddRow(uint(3), "ref-3").
		AddRow(uint(2), "ref-2")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" ORDER BY id DESC LIMIT $1`)).
		WithArgs(2).
		WillReturnRows(rows)

	orders, err := repo.FindLatest(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != 3 {
		t.Fatalf("unexpected orders: %+v", orders)
	}
}

func TestOrderRepositoryFindLatestDefaultsLimit(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := (&OrderRepository{}).WithDB(mockDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" ORDER BY id DESC LIMIT $1`)).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.FindLatest(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
