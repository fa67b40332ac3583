package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/session"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
	Name     string // 任意。空ならメールの@より前
}

// token 形（JwtAccessToken相当）
type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	User  model.User     `json:"user"`
	Token JwtAccessToken `json:"token"`
}

var (
	// 入力が不正（validatorのエラーを包む）
	ErrValidation = errors.New("validation error")

	// セッションへの保存失敗
	ErrStorage = errors.New("storage error")
)

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(user model.User, now time.Time) (token string, expiresAt time.Time, err error)
}

// メールからユーザーIDを作る約束（同じメールなら同じID）
type IDGenerator interface {
	UserID(email string) string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 入力チェックの約束（internal/validator が実装）
type InputValidator interface {
	ValidateLogin(email string, password string) error
	ValidateSignup(name string, email string, password string) error
}

// LoginUsecase は擬似ログイン。パスワードは照合しない。
type LoginUsecase struct {
	store     *session.Store
	validator InputValidator
	issuer    AccessTokenIssuer
	idGen     IDGenerator
	clock     Clock
}

func NewLoginUsecase(
	store *session.Store,
	validator InputValidator,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		store:     store,
		validator: validator,
		issuer:    issuer,
		idGen:     idGen,
		clock:     clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	if err := u.validator.ValidateLogin(in.Email, in.Password); err != nil {
		return LoginOutput{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = localPart(email)
	}

	return signIn(ctx, u.store, u.issuer, u.clock, model.User{
		ID:    u.idGen.UserID(email),
		Name:  name,
		Email: email,
	})
}

// トークンを発行してからセッションにユーザーを入れる（ログイン/サインアップ共通）
// 発行に失敗したらセッションは変えない。
func signIn(ctx context.Context, store *session.Store, issuer AccessTokenIssuer, clock Clock, user model.User) (LoginOutput, error) {
	//AccessToken発行
	now := clock.Now()
	token, exp, err := issuer.Issue(user, now)
	if err != nil {
		return LoginOutput{}, fmt.Errorf("issue token: %w", err)
	}

	if err := store.SetUser(ctx, model.SomeUser(user)); err != nil {
		return LoginOutput{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return LoginOutput{
		User: user,
		Token: JwtAccessToken{
			AccessToken: token,
			ExpiresIn:   int(exp.Sub(now).Seconds()),
		},
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
