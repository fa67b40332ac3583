package server

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/metrics"
	"storefront/internal/session"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Session *handler.SessionHandler
	Menu    *handler.MenuHandler
	Cart    *handler.CartHandler
	Auth    *handler.AuthHandler
}

type healthResponse struct {
	Status string `json:"status"`
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, store *session.Store, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	h.Session.RegisterRoutes(e)
	h.Menu.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, store)
	h.Auth.RegisterRoutes(e, cfg)
}
