package repository

import (
	"context"
	"time"

	"webshop-backend/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*model.Order, error)
	AttachCheckoutSession(ctx context.Context, orderID, sessionID string) error
	MarkPaid(ctx context.Context, orderID string, paymentIntentID, receiptURL *string) error
	MarkReceiptEmailSent(ctx context.Context, orderID string, at time.Time) (bool, error)
	FindAbandoned(ctx context.Context, cutoff time.Time, limit int) ([]*model.Order, error)
	MarkAbandonedEmailSent(ctx context.Context, orderID string, at time.Time) (bool, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByIdempotencyKey(ctx context.Context, key string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("idempotency_key = ?", key).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) AttachCheckoutSession(ctx context.Context, orderID, sessionID string) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":                     model.OrderStatusCheckoutCreated,
			"stripe_checkout_session_id": sessionID,
			"updated_at":                 time.Now(),
		}).Error
}

// MarkPaid is deliberately unconditional: webhook redelivery overwrites the
// same values, which is a no-op. Nil pointers store NULL.
func (r *orderRepoImpl) MarkPaid(ctx context.Context, orderID string, paymentIntentID, receiptURL *string) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":                   model.OrderStatusPaid,
			"stripe_payment_intent_id": paymentIntentID,
			"stripe_receipt_url":       receiptURL,
			"updated_at":               time.Now(),
		}).Error
}

// MarkReceiptEmailSent claims the receipt-email slot. The IS NULL guard makes
// the claim at-most-once; false means another run already claimed it.
func (r *orderRepoImpl) MarkReceiptEmailSent(ctx context.Context, orderID string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND paid_email_sent_at IS NULL", orderID).
		Update("paid_email_sent_at", at)

	return res.RowsAffected > 0, res.Error
}

func (r *orderRepoImpl) FindAbandoned(ctx context.Context, cutoff time.Time, limit int) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("created_at <= ?", cutoff).
		Where("abandoned_email_sent_at IS NULL").
		Where("status <> ?", model.OrderStatusPaid).
		Where("email <> ''").
		Order("created_at").
		Limit(limit).
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) MarkAbandonedEmailSent(ctx context.Context, orderID string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND abandoned_email_sent_at IS NULL", orderID).
		Update("abandoned_email_sent_at", at)

	return res.RowsAffected > 0, res.Error
}
