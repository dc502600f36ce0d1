package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CronAuth guards scheduled-job routes with a shared secret, accepted from
// the X-Cron-Secret header or a bearer token. An empty secret leaves the
// route open.
func CronAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return next(c)
			}

			token := c.Request().Header.Get("X-Cron-Secret")
			if token == "" {
				token = bearerToken(c.Request().Header.Get("Authorization"))
			}

			if token != secret {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			return next(c)
		}
	}
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
