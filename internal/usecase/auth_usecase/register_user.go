package auth

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/session"
)

// サインアップの入力
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterUserUsecaseはサインアップ。保存するのはセッションのユーザーだけ。
type RegisterUserUsecase struct {
	store     *session.Store
	validator InputValidator
	issuer    AccessTokenIssuer
	idGen     IDGenerator
	clock     Clock
}

// DI
func NewRegisterUserUsecase(
	store *session.Store,
	validator InputValidator,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		store:     store,
		validator: validator,
		issuer:    issuer,
		idGen:     idGen,
		clock:     clock,
	}
}

// サインアップ実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (LoginOutput, error) {
	if err := u.validator.ValidateSignup(in.Name, in.Email, in.Password); err != nil {
		return LoginOutput{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	email := normalizeEmail(in.Email)
	return signIn(ctx, u.store, u.issuer, u.clock, model.User{
		ID:    u.idGen.UserID(email),
		Name:  strings.TrimSpace(in.Name),
		Email: email,
	})
}
