package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"webshop-backend/internal/client"
	"webshop-backend/internal/model"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Order{}, &model.CallRequest{}))

	return db
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

type fakeGateway struct {
	createCalls  int
	lastParams   *client.CheckoutSessionParams
	session      *client.CheckoutSession
	createErr    error
	receiptCalls int
	receiptURLs  map[string]string
	receiptErr   error
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, p *client.CheckoutSessionParams) (*client.CheckoutSession, error) {
	g.createCalls++
	g.lastParams = p
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.session, nil
}

func (g *fakeGateway) LatestReceiptURL(_ context.Context, paymentIntentID string) (string, error) {
	g.receiptCalls++
	if g.receiptErr != nil {
		return "", g.receiptErr
	}
	return g.receiptURLs[paymentIntentID], nil
}

type fakeMailer struct {
	sent []*client.Email
	err  error
}

func (m *fakeMailer) Send(_ context.Context, email *client.Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

type fakeNotifier struct {
	messages []string
	err      error
}

func (n *fakeNotifier) Notify(_ context.Context, text string) error {
	if n.err != nil {
		return n.err
	}
	n.messages = append(n.messages, text)
	return nil
}
