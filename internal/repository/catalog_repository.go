package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
// Category が空なら全カテゴリ。Q は名前の部分一致（大文字小文字を区別しない）。
type CatalogQuery struct {
	Category model.Category
	Q        string
}

// メニューは読み取り専用。
type CatalogRepository interface {
	List(ctx context.Context, q CatalogQuery) ([]model.FoodItem, error)
	FindByID(ctx context.Context, id string) (model.FoodItem, error)
}
