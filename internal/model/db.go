package model

import "time"

const (
	OrderStatusDraft           = "draft"
	OrderStatusCheckoutCreated = "checkout_created"
	OrderStatusPaid            = "paid"
)

type Order struct {
	ID     string `gorm:"primaryKey;size:64;not null"` // uuid
	Status string `gorm:"size:32;index;not null"`      // draft, checkout_created, paid

	ProductID   string `gorm:"size:64;not null"`
	ProductName string `gorm:"size:255;not null"`
	AmountCents int64  `gorm:"not null"` // minor currency units
	Currency    string `gorm:"size:8;not null"`

	FullName string `gorm:"size:255"`
	Email    string `gorm:"size:255;index"`
	Phone    string `gorm:"size:32"`
	Address1 string `gorm:"size:255"`
	Postcode string `gorm:"size:32"`
	City     string `gorm:"size:128"`
	Country  string `gorm:"size:8"`

	IdempotencyKey *string `gorm:"size:128;uniqueIndex"`

	StripeCheckoutSessionID *string `gorm:"size:128;uniqueIndex"`
	StripePaymentIntentID   *string `gorm:"size:128;uniqueIndex"`
	StripeReceiptURL        *string `gorm:"size:512"`

	// set at most once per notification kind, never cleared
	AbandonedEmailSentAt *time.Time
	PaidEmailSentAt      *time.Time

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

type CallRequest struct {
	Phone     string `gorm:"primaryKey;size:16;not null"` // digits only
	Source    string `gorm:"size:64;not null"`
	CreatedAt time.Time
}
