package middleware

import (
	"net/http"

	"storefront/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// セッションの現在ユーザー
type CurrentUser interface {
	User() model.OptionalUser
}

// JWTのsubとセッションのユーザーが一致するか確認。
// ログアウト後は古いトークンも通らない。
func SessionUserGuard(current CurrentUser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			userID, ok := c.Get(CtxUserIDKey).(string)
			if !ok || userID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			user, ok := current.User().Get()
			if !ok || user.ID != userID {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			return next(c)
		}
	}
}
