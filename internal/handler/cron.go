package handler

import (
	"net/http"

	"webshop-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type CronHandler struct {
	sweepService service.SweepService
}

func NewCronHandler(sweepService service.SweepService) *CronHandler {
	return &CronHandler{
		sweepService: sweepService,
	}
}

func (h *CronHandler) AbandonedOrders(c echo.Context) error {
	ctx := c.Request().Context()

	origin := c.Request().Header.Get("Origin")

	result, err := h.sweepService.Run(ctx, origin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}
