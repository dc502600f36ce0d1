package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"webshop-backend/internal/client"
	"webshop-backend/internal/dto"
	"webshop-backend/internal/model"
	"webshop-backend/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultCurrency = "eur"
	defaultCountry  = "NL"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (string, error)
	CreateCheckoutSession(ctx context.Context, orderID, origin string) (string, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
	gateway   client.CheckoutGateway
	siteURL   string
	log       *zap.SugaredLogger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	gateway client.CheckoutGateway,
	siteURL string,
	log *zap.SugaredLogger,
) OrderService {
	return &orderServiceImpl{
		orderRepo: orderRepo,
		gateway:   gateway,
		siteURL:   siteURL,
		log:       log,
	}
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (string, error) {
	if req.ProductID == "" || req.ProductName == "" || req.AmountCents == 0 || req.Customer == nil {
		return "", invalidInput("Missing fields")
	}
	if req.AmountCents < 0 {
		return "", invalidInput("Missing fields")
	}

	c := req.Customer
	if c.FullName == "" || c.Email == "" || c.Phone == "" || c.Address1 == "" || c.Postcode == "" || c.City == "" {
		return "", invalidInput("Fill all fields")
	}

	// a repeated idempotency key collapses double-clicked submissions into
	// the already-created draft
	var idemKey *string
	if key := strings.TrimSpace(req.IdempotencyKey); key != "" {
		existing, err := s.orderRepo.FindByIdempotencyKey(ctx, key)
		if err == nil {
			return existing.ID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("lookup idempotency key: %w", err)
		}
		idemKey = &key
	}

	country := c.Country
	if country == "" {
		country = defaultCountry
	}

	order := &model.Order{
		ID:             uuid.NewString(),
		Status:         model.OrderStatusDraft,
		ProductID:      req.ProductID,
		ProductName:    req.ProductName,
		AmountCents:    req.AmountCents,
		Currency:       defaultCurrency,
		FullName:       c.FullName,
		Email:          c.Email,
		Phone:          c.Phone,
		Address1:       c.Address1,
		Postcode:       c.Postcode,
		City:           c.City,
		Country:        country,
		IdempotencyKey: idemKey,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return "", fmt.Errorf("store order in db: %w", err)
	}

	return order.ID, nil
}

func (s *orderServiceImpl) CreateCheckoutSession(ctx context.Context, orderID, origin string) (string, error) {
	if orderID == "" {
		return "", invalidInput("Missing orderId")
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrOrderNotFound
		}
		return "", fmt.Errorf("load order: %w", err)
	}

	// corrupted or adversarial rows must never reach the gateway
	if order.AmountCents <= 0 {
		return "", invalidInput("Invalid amount")
	}

	currency := strings.ToLower(order.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	if origin == "" {
		origin = s.siteURL
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, &client.CheckoutSessionParams{
		OrderID:       order.ID,
		ProductName:   order.ProductName,
		AmountCents:   order.AmountCents,
		Currency:      currency,
		CustomerEmail: order.Email,
		SuccessURL:    origin + "/betaling-gelukt?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     origin + "/shop?canceled=1",
	})
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	if err := s.orderRepo.AttachCheckoutSession(ctx, order.ID, sess.ID); err != nil {
		return "", fmt.Errorf("attach checkout session: %w", err)
	}

	s.log.Infow("checkout session created", "order_id", order.ID, "session_id", sess.ID)

	if sess.URL == "" {
		return "", fmt.Errorf("checkout session %s has no url", sess.ID)
	}

	return sess.URL, nil
}
