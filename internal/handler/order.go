package handler

import (
	"errors"
	"net/http"

	"webshop-backend/internal/dto"
	"webshop-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService       service.OrderService
	callRequestService service.CallRequestService
}

func NewOrderHandler(orderService service.OrderService, callRequestService service.CallRequestService) *OrderHandler {
	return &OrderHandler{
		orderService:       orderService,
		callRequestService: callRequestService,
	}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing fields"})
	}

	orderID, err := h.orderService.CreateOrder(ctx, &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, &dto.CreateOrderResponse{OrderID: orderID})
}

func (h *OrderHandler) CreateCheckout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing orderId"})
	}

	origin := c.Request().Header.Get("Origin")

	checkoutURL, err := h.orderService.CreateCheckoutSession(ctx, req.OrderID, origin)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, &dto.CreateCheckoutResponse{CheckoutURL: checkoutURL})
}

func (h *OrderHandler) CreateCallRequest(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CallRequestBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid phone number"})
	}

	duplicate, err := h.callRequestService.Create(ctx, req.Phone, req.Source)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, &dto.CallRequestResponse{OK: true, Duplicate: duplicate})
}

func writeServiceError(c echo.Context, err error) error {
	var invalid *service.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": invalid.Error()})
	case errors.Is(err, service.ErrOrderNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
