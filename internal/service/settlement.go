package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"webshop-backend/internal/client"
	"webshop-backend/internal/model"
	"webshop-backend/internal/repository"

	stripe "github.com/stripe/stripe-go/v81"
	"go.uber.org/zap"
)

// SettlementService applies verified gateway events to the order state
// machine: checkout_created -> paid, plus the notification side effects.
type SettlementService interface {
	HandleEvent(ctx context.Context, event stripe.Event) error
}

type settlementServiceImpl struct {
	orderRepo repository.OrderRepository
	gateway   client.CheckoutGateway
	mailer    client.Mailer
	notifier  client.Notifier
	log       *zap.SugaredLogger
}

func NewSettlementService(
	orderRepo repository.OrderRepository,
	gateway client.CheckoutGateway,
	mailer client.Mailer,
	notifier client.Notifier,
	log *zap.SugaredLogger,
) SettlementService {
	return &settlementServiceImpl{
		orderRepo: orderRepo,
		gateway:   gateway,
		mailer:    mailer,
		notifier:  notifier,
		log:       log,
	}
}

func (s *settlementServiceImpl) HandleEvent(ctx context.Context, event stripe.Event) error {
	if event.Type != "checkout.session.completed" {
		return nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		// unrecognized shape: acknowledge and ignore
		s.log.Warnw("malformed checkout.session.completed payload", "event_id", event.ID, "err", err)
		return nil
	}

	orderID := session.Metadata["orderId"]
	if orderID == "" {
		s.log.Infow("checkout session without orderId metadata", "session_id", session.ID)
		return nil
	}

	// payment_intent arrives as a bare id or an embedded object
	var paymentIntentID *string
	if session.PaymentIntent != nil && session.PaymentIntent.ID != "" {
		paymentIntentID = &session.PaymentIntent.ID
	}

	var receiptURL *string
	if paymentIntentID != nil {
		url, err := s.gateway.LatestReceiptURL(ctx, *paymentIntentID)
		if err != nil {
			s.log.Warnw("receipt url lookup failed", "payment_intent", *paymentIntentID, "err", err)
		} else if url != "" {
			receiptURL = &url
		}
	}

	if err := s.orderRepo.MarkPaid(ctx, orderID, paymentIntentID, receiptURL); err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}

	// a session can complete with a delayed payment method still pending
	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return nil
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		s.log.Warnw("paid order lookup failed, using session customer details", "order_id", orderID, "err", err)
		order = orderFromSession(orderID, &session)
	}
	if receiptURL != nil {
		order.StripeReceiptURL = receiptURL
	}

	if err := s.notifier.Notify(ctx, BuildOperatorAlert(order)); err != nil {
		s.log.Warnw("operator alert failed", "order_id", orderID, "err", err)
	}

	email := strings.TrimSpace(order.Email)
	if email == "" || order.PaidEmailSentAt != nil {
		return nil
	}

	payload := BuildPaidEmail(&PaidEmailInput{
		Name:        order.FullName,
		Email:       email,
		Phone:       order.Phone,
		AddressLine: strings.Join(nonEmpty(order.Address1, order.Postcode, order.City), ", "),
		ProductName: order.ProductName,
		AmountCents: order.AmountCents,
		Currency:    order.Currency,
		ReceiptURL:  derefString(order.StripeReceiptURL),
	})
	payload.To = email

	if err := s.mailer.Send(ctx, payload); err != nil {
		s.log.Warnw("receipt email failed", "order_id", orderID, "err", err)
		return nil
	}

	claimed, err := s.orderRepo.MarkReceiptEmailSent(ctx, orderID, time.Now())
	if err != nil {
		s.log.Warnw("mark receipt email sent failed", "order_id", orderID, "err", err)
	} else if !claimed {
		s.log.Infow("receipt email already claimed", "order_id", orderID)
	}

	return nil
}

func orderFromSession(orderID string, session *stripe.CheckoutSession) *model.Order {
	order := &model.Order{
		ID:          orderID,
		AmountCents: session.AmountTotal,
		Currency:    string(session.Currency),
		Email:       session.CustomerEmail,
	}

	if details := session.CustomerDetails; details != nil {
		order.FullName = details.Name
		order.Phone = details.Phone
		if details.Email != "" {
			order.Email = details.Email
		}
	}

	return order
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
