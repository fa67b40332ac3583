package auth

import (
	"context"
	"fmt"

	"storefront/internal/domain/model"
	"storefront/internal/session"
)

// ログアウト。保存済みユーザーのレコードも消える。
type LogoutUsecase struct {
	store *session.Store
}

func NewLogoutUsecase(store *session.Store) *LogoutUsecase {
	return &LogoutUsecase{store: store}
}

func (u *LogoutUsecase) Execute(ctx context.Context) error {
	if err := u.store.SetUser(ctx, model.NoUser()); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}
