package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// 起動時の読み込み状態
type LoadingState interface {
	Loading() bool
}

// 読み込み中は 503 を返す。
func ReadyGuard(state LoadingState) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if state.Loading() {
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, errorJSON("loading"))
			}
			return next(c)
		}
	}
}
