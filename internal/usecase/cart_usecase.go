package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/metrics"
	repo "storefront/internal/repository"
	"storefront/internal/session"
)

// CartUsecase は /cart の業務ロジックです。
// カートの状態は session.Store が持ち、ここは入力チェックとカタログ参照だけ。
type CartUsecase struct {
	store       *session.Store
	catalogRepo repo.CatalogRepository
	log         *slog.Logger
}

func NewCartUsecase(
	store *session.Store,
	catalogRepo repo.CatalogRepository,
	log *slog.Logger,
) *CartUsecase {
	return &CartUsecase{
		store:       store,
		catalogRepo: catalogRepo,
		log:         log,
	}
}

// 明細と合計（合計は毎回計算）
type CartResponse = session.CartSnapshot

type AddCartInput struct {
	FoodID string
}

type UpdateCartItemInput struct {
	Delta int
}

func (u *CartUsecase) GetCart(ctx context.Context) (CartResponse, error) {
	return u.store.Snapshot(), nil
}

// AddToCart はカートに追加（同じ品は数量+1）。
func (u *CartUsecase) AddToCart(ctx context.Context, in AddCartInput) (CartResponse, error) {
	id := strings.TrimSpace(in.FoodID)
	if id == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid food_id")
	}

	// メニューにある品だけ
	item, err := u.catalogRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}

	out, err := u.store.AddToCart(ctx, item)
	if err != nil {
		return CartResponse{}, u.storageError("add", err)
	}
	return u.mutated("add", out), nil
}

// 数量変更。カートに無いIDは何もしない。
// |delta| は MaxQuantity まで。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, id string, in UpdateCartItemInput) (CartResponse, error) {
	if strings.TrimSpace(id) == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Delta > model.MaxQuantity || in.Delta < -model.MaxQuantity {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid delta")
	}

	out, err := u.store.UpdateQuantity(ctx, id, in.Delta)
	if err != nil {
		return CartResponse{}, u.storageError("update", err)
	}
	return u.mutated("update", out), nil
}

// 明細削除。カートに無いIDは何もしない。
func (u *CartUsecase) DeleteCartItem(ctx context.Context, id string) (CartResponse, error) {
	if strings.TrimSpace(id) == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	out, err := u.store.RemoveFromCart(ctx, id)
	if err != nil {
		return CartResponse{}, u.storageError("remove", err)
	}
	return u.mutated("remove", out), nil
}

func (u *CartUsecase) ClearCart(ctx context.Context) (CartResponse, error) {
	out, err := u.store.ClearCart(ctx)
	if err != nil {
		return CartResponse{}, u.storageError("clear", err)
	}
	return u.mutated("clear", out), nil
}

// out は変更と同じロックの中で取ったもの
func (u *CartUsecase) mutated(op string, out CartResponse) CartResponse {
	metrics.CartMutationsTotal.WithLabelValues(op).Inc()
	metrics.CartItems.Set(float64(out.ItemCount))
	return out
}

// メモリ上の変更は残っているが、保存に失敗したことは返す
func (u *CartUsecase) storageError(op string, err error) error {
	metrics.StorageErrorsTotal.WithLabelValues(op).Inc()
	u.log.Error("cart save failed", "op", op, "error", err)
	return NewHTTPError(http.StatusInternalServerError, "storage error")
}
