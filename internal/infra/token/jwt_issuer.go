package token

import (
	"errors"
	"time"

	"storefront/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
)

// セッションユーザーのアクセストークンに入れるclaims
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// HS256 のアクセストークンを発行する（auth.AccessTokenIssuer の実装）
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl}
}

// jwt発行
func (i *JWTIssuer) Issue(user model.User, now time.Time) (string, time.Time, error) {
	if user.ID == "" {
		return "", time.Time{}, errors.New("empty user id")
	}
	exp := now.Add(i.ttl)

	claims := Claims{
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

var ErrInvalidToken = errors.New("invalid token")

// HS256 で署名されたトークンだけ受け付ける。sub が空なら無効。
func Parse(secret string, raw string) (Claims, error) {
	var claims Claims
	t, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}
	if !t.Valid || claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
