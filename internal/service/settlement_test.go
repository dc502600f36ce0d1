package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"webshop-backend/internal/model"
	"webshop-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go/v81"
	"gorm.io/gorm"
)

type settlementFixture struct {
	db       *gorm.DB
	repo     repository.OrderRepository
	gateway  *fakeGateway
	mailer   *fakeMailer
	notifier *fakeNotifier
	svc      SettlementService
}

func newSettlementFixture(t *testing.T) *settlementFixture {
	t.Helper()

	db := newTestDB(t)
	repo := repository.NewOrderRepository(db)
	gw := &fakeGateway{receiptURLs: map[string]string{"pi_123": "https://pay.stripe.com/receipts/abc"}}
	mailer := &fakeMailer{}
	notifier := &fakeNotifier{}

	return &settlementFixture{
		db:       db,
		repo:     repo,
		gateway:  gw,
		mailer:   mailer,
		notifier: notifier,
		svc:      NewSettlementService(repo, gw, mailer, notifier, testLogger()),
	}
}

func (f *settlementFixture) seedOrder(t *testing.T) *model.Order {
	t.Helper()

	order := &model.Order{
		ID:          "11111111-2222-3333-4444-555555555555",
		Status:      model.OrderStatusCheckoutCreated,
		ProductID:   "crate-24",
		ProductName: "Energy crate 24x",
		AmountCents: 28900,
		Currency:    "eur",
		FullName:    "Jan Jansen",
		Email:       "jan@example.com",
		Phone:       "+31612345678",
		Address1:    "Dorpsstraat 1",
		Postcode:    "1234 AB",
		City:        "Amsterdam",
		Country:     "NL",
	}
	require.NoError(t, f.repo.Create(context.Background(), order))
	return order
}

func sessionCompletedEvent(sessionJSON string) stripe.Event {
	return stripe.Event{
		ID:   "evt_test_1",
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: json.RawMessage(sessionJSON)},
	}
}

func paidSessionJSON(orderID, paymentIntent string) string {
	return fmt.Sprintf(`{
		"id": "cs_test_1",
		"object": "checkout.session",
		"payment_status": "paid",
		"payment_intent": %s,
		"metadata": {"orderId": %q},
		"customer_details": {"name": "Jan Jansen", "email": "jan@example.com"}
	}`, paymentIntent, orderID)
}

func TestHandleEvent_IgnoresOtherEventTypes(t *testing.T) {
	f := newSettlementFixture(t)
	order := f.seedOrder(t)

	err := f.svc.HandleEvent(context.Background(), stripe.Event{
		Type: "payment_intent.succeeded",
		Data: &stripe.EventData{Raw: json.RawMessage(`{}`)},
	})
	require.NoError(t, err)

	got, err := f.repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCheckoutCreated, got.Status)
}

func TestHandleEvent_MalformedPayloadIgnored(t *testing.T) {
	f := newSettlementFixture(t)
	order := f.seedOrder(t)

	err := f.svc.HandleEvent(context.Background(), sessionCompletedEvent(`{"metadata": 42}`))
	require.NoError(t, err)

	got, err := f.repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCheckoutCreated, got.Status)
	assert.Empty(t, f.mailer.sent)
	assert.Empty(t, f.notifier.messages)
}

func TestHandleEvent_NoOrderIDMetadata(t *testing.T) {
	f := newSettlementFixture(t)
	order := f.seedOrder(t)

	err := f.svc.HandleEvent(context.Background(), sessionCompletedEvent(
		`{"id": "cs_foreign", "object": "checkout.session", "payment_status": "paid", "metadata": {}}`,
	))
	require.NoError(t, err)

	got, err := f.repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCheckoutCreated, got.Status)
	assert.Empty(t, f.mailer.sent)
}

func TestHandleEvent_UnpaidSessionMarksPaidWithoutEmail(t *testing.T) {
	f := newSettlementFixture(t)
	order := f.seedOrder(t)

	// delayed payment methods complete the session before the money clears
	sessionJSON := fmt.Sprintf(`{
		"id": "cs_test_1",
		"object": "checkout.session",
		"payment_status": "unpaid",
		"payment_intent": "pi_123",
		"metadata": {"orderId": %q}
	}`, order.ID)

	err := f.svc.HandleEvent(context.Background(), sessionCompletedEvent(sessionJSON))
	require.NoError(t, err)

	got, err := f.repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, got.Status)
	require.NotNil(t, got.StripePaymentIntentID)
	assert.Equal(t, "pi_123", *got.StripePaymentIntentID)

	assert.Empty(t, f.mailer.sent)
	assert.Empty(t, f.notifier.messages)
	assert.Nil(t, got.PaidEmailSentAt)
}

func TestHandleEvent_PaidSession(t *testing.T) {
	f := newSettlementFixture(t)
	order := f.seedOrder(t)

	err := f.svc.HandleEvent(context.Background(), sessionCompletedEvent(paidSessionJSON(order.ID, `"pi_123"`)))
	require.NoError(t, err)

	got, err := f.repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, got.Status)
	require.NotNil(t, got.StripeReceiptURL)
	assert.Equal(t, "https://pay.stripe.com/receipts/abc", *got.StripeReceiptURL)
	require.NotNil(t, got.PaidEmailSentAt)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "jan@example.com", f.mailer.sent[0].To)
	assert.Contains(t, f.mailer.sent[0].Text, "https://pay.stripe.com/receipts/abc")

	require.Len(t, f.notifier.messages, 1)
	assert.Contains(t, f.notifier.messages[0], "Energy crate 24x")
}

func TestHandleEvent_PaymentIntentAsObject(t *testing.T) {
	f := newSettlementFixture(t)
	order := f.seedOrder(t)

	err := f.svc.HandleEvent(context.Background(), sessionCompletedEvent(paidSessionJSON(order.ID, `{"id": "pi_123", "object": "payment_intent"}`)))
	require.NoError(t, err)

	got, err := f.repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, got.StripePaymentIntentID)
	assert.Equal(t, "pi_123", *got.StripePaymentIntentID)
}

func TestHandleEvent_MissingIntentLeavesReceiptNull(t *testing.T) {
	f := newSettlementFixture(t)
	order := f.seedOrder(t)

	sessionJSON := fmt.Sprintf(`{
		"id": "cs_test_1",
		"object": "checkout.session",
		"payment_status": "paid",
		"metadata": {"orderId": %q}
	}`, order.ID)

	err := f.svc.HandleEvent(context.Background(), sessionCompletedEvent(sessionJSON))
	require.NoError(t, err)

	got, err := f.repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, got.Status)
	assert.Nil(t, got.StripePaymentIntentID)
	assert.Nil(t, got.StripeReceiptURL)
	assert.Equal(t, 0, f.gateway.receiptCalls)

	// still settled, so the receipt email goes out
	require.Len(t, f.mailer.sent, 1)
}

func TestHandleEvent_ReplayedEventSendsOneEmail(t *testing.T) {
	f := newSettlementFixture(t)
	order := f.seedOrder(t)

	event := sessionCompletedEvent(paidSessionJSON(order.ID, `"pi_123"`))

	require.NoError(t, f.svc.HandleEvent(context.Background(), event))
	require.NoError(t, f.svc.HandleEvent(context.Background(), event))

	assert.Len(t, f.mailer.sent, 1, "receipt email is idempotent")
	assert.Len(t, f.notifier.messages, 2, "operator alert is at-least-once")
}

func TestHandleEvent_MailerFailureSwallowed(t *testing.T) {
	f := newSettlementFixture(t)
	order := f.seedOrder(t)
	f.mailer.err = fmt.Errorf("smtp: connection refused")

	err := f.svc.HandleEvent(context.Background(), sessionCompletedEvent(paidSessionJSON(order.ID, `"pi_123"`)))
	require.NoError(t, err)

	got, err := f.repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, got.Status)
	assert.Nil(t, got.PaidEmailSentAt, "no timestamp without confirmed delivery")
}

func TestHandleEvent_NotifierFailureSwallowed(t *testing.T) {
	f := newSettlementFixture(t)
	order := f.seedOrder(t)
	f.notifier.err = fmt.Errorf("telegram: bad gateway")

	err := f.svc.HandleEvent(context.Background(), sessionCompletedEvent(paidSessionJSON(order.ID, `"pi_123"`)))
	require.NoError(t, err)

	require.Len(t, f.mailer.sent, 1, "email leg unaffected by chat failure")
}

func TestHandleEvent_OrderLookupFallsBackToSessionDetails(t *testing.T) {
	f := newSettlementFixture(t)

	// order row never created; event still settles best-effort
	err := f.svc.HandleEvent(context.Background(), sessionCompletedEvent(paidSessionJSON("ghost-order", `"pi_123"`)))
	require.NoError(t, err)

	require.Len(t, f.notifier.messages, 1)
	assert.Contains(t, f.notifier.messages[0], "Jan Jansen")
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "jan@example.com", f.mailer.sent[0].To)
}
