package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"truenorth/src/database"
	"truenorth/src/model"
)

// OrderRepository handles read/write operations for exchange orders.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new repository instance using the main read/write database.
func NewOrderRepository() *OrderRepository {
	logger.WithField("component", "OrderRepository").
		Info("Creating new OrderRepository with MainDB")

	return &OrderRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when using a specific session/transaction.
func (r *OrderRepository) WithDB(db *gorm.DB) *OrderRepository {
	logger.WithField("component", "OrderRepository").
		Debug("Creating OrderRepository with custom DB instance")

	return &OrderRepository{db: db}
}

// Create inserts a new exchange order into the database.
// The given order will be updated with the generated ID and timestamps.
func (r *OrderRepository) Create(
	ctx context.Context,
	order *model.ExchangeOrder,
) error {

	logger.WithFields(map[string]interface{}{
		"repo":         "OrderRepository",
		"op":           "Create",
		"send":         order.SendCurrencySymbol,
		"receive":      order.ReceiveCurrencySymbol,
		"reference_id": order.ReferenceID,
	}).Debug("Creating new exchange order")

	err := r.db.WithContext(ctx).Create(order).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "OrderRepository",
			"op":   "Create",
		}).WithError(err).Error("Failed to create exchange order")

		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":     "OrderRepository",
		"op":       "Create",
		"order_id": order.ID,
	}).Info("Exchange order created successfully")

	return nil
}

// FindByID fetches a single order by its primary ID.
// Returns (nil, nil) if the order is not found.
func (r *OrderRepository) FindByID(
	ctx context.Context,
	id uint,
) (*model.ExchangeOrder, error) {

	logger.WithFields(map[string]interface{}{
		"repo": "OrderRepository",
		"op":   "FindByID",
		"id":   id,
	}).Debug("Fetching order by ID")

	var order model.ExchangeOrder

	err := r.db.WithContext(ctx).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo": "OrderRepository",
			"op":   "FindByID",
			"id":   id,
		}).WithError(err).Error("Failed to fetch order by ID")

		return nil, err
	}

	return &order, nil
}

// FindByReference fetches an order by its client-facing reference ID.
// Returns (nil, nil) if the order is not found.
func (r *OrderRepository) FindByReference(
	ctx context.Context,
	referenceID string,
) (*model.ExchangeOrder, error) {

	logger.WithFields(map[string]interface{}{
		"repo":         "OrderRepository",
		"op":           "FindByReference",
		"reference_id": referenceID,
	}).Debug("Fetching order by reference ID")

	var order model.ExchangeOrder

	err := r.db.WithContext(ctx).
		Where("reference_id = ?", referenceID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo":         "OrderRepository",
			"op":           "FindByReference",
			"reference_id": referenceID,
		}).WithError(err).Error("Failed to fetch order by reference ID")

		return nil, err
	}

	return &order, nil
}

// FindLatest returns the latest orders ordered from newest to oldest.
func (r *OrderRepository) FindLatest(
	ctx context.Context,
	limit int,
) ([]model.ExchangeOrder, error) {

	if limit <= 0 {
		limit = 20
	}

	logger.WithFields(map[string]interface{}{
		"repo":  "OrderRepository",
		"op":    "FindLatest",
		"limit": limit,
	}).Debug("Fetching latest orders")

	var orders []model.ExchangeOrder

	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":  "OrderRepository",
			"op":    "FindLatest",
			"limit": limit,
		}).WithError(err).Error("Failed to fetch latest orders")

		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":        "OrderRepository",
		"op":          "FindLatest",
		"limit":       limit,
		"rows_return": len(orders),
	}).Info("Latest orders fetched")

	return orders, nil
}
