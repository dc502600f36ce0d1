package handler

import (
	"io"
	"net/http"

	"webshop-backend/internal/client"
	"webshop-backend/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type StripeHandler struct {
	verifier   client.WebhookVerifier
	settlement service.SettlementService
	log        *zap.SugaredLogger
}

func NewStripeHandler(verifier client.WebhookVerifier, settlement service.SettlementService, log *zap.SugaredLogger) *StripeHandler {
	return &StripeHandler{
		verifier:   verifier,
		settlement: settlement,
		log:        log,
	}
}

// Webhook verifies the event signature and acknowledges receipt. Once the
// signature checks out the gateway gets a 200 no matter what happens
// downstream: a failed email must not trigger the gateway's retry policy.
func (h *StripeHandler) Webhook(c echo.Context) error {
	ctx := c.Request().Context()

	sig := c.Request().Header.Get("Stripe-Signature")
	if sig == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing stripe-signature"})
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Webhook error: " + err.Error()})
	}

	event, err := h.verifier.VerifyEvent(body, sig)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Webhook error: " + err.Error()})
	}

	if err := h.settlement.HandleEvent(ctx, event); err != nil {
		h.log.Errorw("webhook settlement failed", "event_id", event.ID, "err", err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}
