package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/session"

	"github.com/labstack/echo/v4"
)

// GET /session のレスポンス
type sessionResponse struct {
	Loading   bool               `json:"loading"`
	User      model.OptionalUser `json:"user"`
	ItemCount int                `json:"item_count"`
}

// ヘッダー表示用のセッション状態。読み込み中でも返す。
type SessionHandler struct {
	store *session.Store
}

func NewSessionHandler(store *session.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

func (h *SessionHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/session", h.get)
}

func (h *SessionHandler) get(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionResponse{
		Loading:   h.store.Loading(),
		User:      h.store.User(),
		ItemCount: h.store.Summary().ItemCount,
	})
}
