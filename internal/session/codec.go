package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain/model"
)

var errInvalidUser = errors.New("user record has no id")

func encodeCart(cart []model.CartItem) (string, error) {
	if cart == nil {
		cart = []model.CartItem{}
	}
	b, err := json.Marshal(cart)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// 保存済みカートを読み込む。
// IDなしの行は捨て、数量は 1..MaxQuantity に寄せ、同じIDは最初の位置にまとめる。
func decodeCart(raw string) ([]model.CartItem, error) {
	var items []model.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}

	out := make([]model.CartItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.ID) == "" {
			continue
		}
		it.Quantity = model.ClampQuantity(it.Quantity)
		if i, ok := index[it.ID]; ok {
			out[i].Quantity = model.ClampQuantity(out[i].Quantity + it.Quantity)
			continue
		}
		index[it.ID] = len(out)
		out = append(out, it)
	}
	return out, nil
}

func encodeUser(u model.User) (string, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// null は未ログイン扱い
func decodeUser(raw string) (model.OptionalUser, error) {
	var u *model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return model.NoUser(), fmt.Errorf("decode user: %w", err)
	}
	if u == nil {
		return model.NoUser(), nil
	}
	if strings.TrimSpace(u.ID) == "" {
		return model.NoUser(), errInvalidUser
	}
	return model.SomeUser(*u), nil
}
