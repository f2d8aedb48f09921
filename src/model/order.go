package model

import "time"

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusFailed     = "failed"
)

const (
	OrderTypeFloating = "Floating"
	OrderTypeFixed    = "Fixed"
)

// ExchangeOrder is the persisted snapshot of a submitted exchange request.
// Status starts at pending and is never transitioned by this service; a
// human operator fulfills the order out of band.
type ExchangeOrder struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ReferenceID string `gorm:"size:36;uniqueIndex" json:"reference_id"`

	SendCurrencySymbol    string `gorm:"size:20;not null" json:"send_currency_symbol"`
	SendCurrencyName      string `gorm:"size:100;not null" json:"send_currency_name"`
	SendAmount            string `gorm:"size:60;not null" json:"send_amount"`
	ReceiveCurrencySymbol string `gorm:"size:20;not null" json:"receive_currency_symbol"`
	ReceiveCurrencyName   string `gorm:"size:100;not null" json:"receive_currency_name"`
	ReceiveAmount         string `gorm:"size:60;not null" json:"receive_amount"`

	OrderType        string `gorm:"size:20;not null" json:"order_type"`
	RecipientAddress string `gorm:"size:200;not null" json:"recipient_address"`
	Email            string `gorm:"size:200;not null" json:"email"`
	PromoCode        string `gorm:"size:60" json:"promo_code,omitempty"`

	Status    string    `gorm:"size:50;not null;default:pending" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName allows you to control the exact table name for orders.
func (ExchangeOrder) TableName() string {
	return "orders"
}
