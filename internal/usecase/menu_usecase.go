package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// "All" は絞り込みなし
const CategoryAll = "All"

type MenuUsecase struct {
	catalogRepo repo.CatalogRepository
}

// DI
func NewMenuUsecase(catalogRepo repo.CatalogRepository) *MenuUsecase {
	return &MenuUsecase{catalogRepo: catalogRepo}
}

// GET /menu の入力DTO
type ListMenuInput struct {
	Category string
	Q        string
}

type MenuListOutput struct {
	Items      []model.FoodItem `json:"items"`
	Categories []string         `json:"categories"`
	Total      int              `json:"total"`
}

func (u *MenuUsecase) ListMenu(ctx context.Context, in ListMenuInput) (MenuListOutput, error) {
	if len(in.Q) > 100 {
		return MenuListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}

	var category model.Category
	switch c := strings.TrimSpace(in.Category); c {
	case "", CategoryAll:
	default:
		category = model.Category(c)
		if !category.Valid() {
			return MenuListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid category")
		}
	}

	items, err := u.catalogRepo.List(ctx, repo.CatalogQuery{
		Category: category,
		Q:        strings.TrimSpace(in.Q),
	})
	if err != nil {
		return MenuListOutput{}, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}

	return MenuListOutput{
		Items:      items,
		Categories: menuCategories(),
		Total:      len(items),
	}, nil
}

func (u *MenuUsecase) GetMenuItem(ctx context.Context, id string) (model.FoodItem, error) {
	if strings.TrimSpace(id) == "" {
		return model.FoodItem{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	it, err := u.catalogRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.FoodItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.FoodItem{}, NewHTTPError(http.StatusInternalServerError, "catalog error")
	}
	return it, nil
}

// フィルタボタンの並び（All が先頭）
func menuCategories() []string {
	out := make([]string, 0, len(model.Categories)+1)
	out = append(out, CategoryAll)
	for _, c := range model.Categories {
		out = append(out, string(c))
	}
	return out
}
