package validator

import (
	"errors"
	"regexp"
	"strings"

	auth "storefront/internal/usecase/auth_usecase"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")

	// パスワードが短い
	ErrPasswordTooShort = errors.New("password too short")
)

const (
	minPasswordLen = 8
	maxNameLen     = 80
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() auth.InputValidator {
	return &authValidator{}
}

// ログインの入力を検証
// パスワードは保存も照合もしないが、フォームと同じく長さだけ見る。
func (v *authValidator) ValidateLogin(email string, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return ErrInvalidInput
	}

	// email形式
	if !isEmailLike(email) {
		return ErrInvalidInput
	}

	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}

// サインアップの入力を検証
func (v *authValidator) ValidateSignup(name string, email string, password string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLen {
		return ErrInvalidInput
	}
	return v.ValidateLogin(email, password)
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	return emailRe.MatchString(s)
}
