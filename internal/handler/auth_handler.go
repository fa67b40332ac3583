package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	auth "storefront/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// 現在のセッション（/auth/me とガード用）
type SessionState interface {
	middleware.LoadingState
	middleware.CurrentUser
}

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase // サインアップusecase
	loginUC    *auth.LoginUsecase        // ログインusecase
	logoutUC   *auth.LogoutUsecase
	state      SessionState
	log        *slog.Logger
}

// DIコンストラクタ
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	logoutUC *auth.LogoutUsecase,
	state SessionState,
	log *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		logoutUC:   logoutUC,
		state:      state,
		log:        log,
	}
}

// /auth/signup のリクエストボディ。
type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// /auth/login のリクエストボディ。nameは任意。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type meResponse struct {
	User model.User `json:"user"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/auth")
	g.Use(middleware.ReadyGuard(h.state))

	g.POST("/login", h.login)
	g.POST("/signup", h.signup)
	g.POST("/logout", h.logout)
	g.GET("/me", h.me, middleware.AuthJWT(cfg), middleware.SessionUserGuard(h.state))
}

// POST /auth/signup
func (h *AuthHandler) signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR"})
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return h.authError(c, "signup", err)
	}

	metrics.AuthEventsTotal.WithLabelValues("signup").Inc()
	return c.JSON(http.StatusOK, out)
}

// POST /auth/login
func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR"})
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return h.authError(c, "login", err)
	}

	metrics.AuthEventsTotal.WithLabelValues("login").Inc()
	return c.JSON(http.StatusOK, out)
}

// POST /auth/logout
func (h *AuthHandler) logout(c echo.Context) error {
	if err := h.logoutUC.Execute(c.Request().Context()); err != nil {
		return h.authError(c, "logout", err)
	}

	metrics.AuthEventsTotal.WithLabelValues("logout").Inc()
	return c.JSON(http.StatusOK, SuccessResponse{Message: "logged out"})
}

// GET /auth/me
func (h *AuthHandler) me(c echo.Context) error {
	u, ok := h.state.User().Get()
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	return c.JSON(http.StatusOK, meResponse{User: u})
}

func (h *AuthHandler) authError(c echo.Context, event string, err error) error {
	if errors.Is(err, auth.ErrValidation) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR"})
	}
	h.log.Error("auth failed", "event", event, "error", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL"})
}
