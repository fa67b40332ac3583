package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mocks
// =====================

type CatalogRepoMock struct{ mock.Mock }

func (m *CatalogRepoMock) List(ctx context.Context, q repo.CatalogQuery) ([]model.FoodItem, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.FoodItem)
	return items, args.Error(1)
}

func (m *CatalogRepoMock) FindByID(ctx context.Context, id string) (model.FoodItem, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(model.FoodItem)
	return it, args.Error(1)
}

var _ repo.CatalogRepository = (*CatalogRepoMock)(nil)

// HTTPError のステータスを確認する
func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "want HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
	}
}

// =====================
// ListMenu
// =====================

func TestMenuUsecase_ListMenu_All(t *testing.T) {
	cRepo := new(CatalogRepoMock)
	uc := usecase.NewMenuUsecase(cRepo)

	items := []model.FoodItem{{ID: "b1", Category: model.CategoryBurger}, {ID: "p1", Category: model.CategoryPizza}}
	cRepo.On("List", mock.Anything, repo.CatalogQuery{}).Return(items, nil)

	out, err := uc.ListMenu(context.Background(), usecase.ListMenuInput{Category: "All"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, items, out.Items)
	require.Len(t, out.Categories, len(model.Categories)+1)
	assert.Equal(t, "All", out.Categories[0])
	assert.Equal(t, "Burger", out.Categories[1])

	cRepo.AssertExpectations(t)
}

func TestMenuUsecase_ListMenu_CategoryAndQuery(t *testing.T) {
	cRepo := new(CatalogRepoMock)
	uc := usecase.NewMenuUsecase(cRepo)

	cRepo.On("List", mock.Anything, repo.CatalogQuery{Category: model.CategoryRamen, Q: "tonkotsu"}).
		Return([]model.FoodItem{{ID: "r1"}}, nil)

	out, err := uc.ListMenu(context.Background(), usecase.ListMenuInput{Category: " Ramen ", Q: " tonkotsu "})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)

	cRepo.AssertExpectations(t)
}

func TestMenuUsecase_ListMenu_InvalidCategory(t *testing.T) {
	uc := usecase.NewMenuUsecase(new(CatalogRepoMock))

	_, err := uc.ListMenu(context.Background(), usecase.ListMenuInput{Category: "Soup"})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestMenuUsecase_ListMenu_QueryTooLong(t *testing.T) {
	uc := usecase.NewMenuUsecase(new(CatalogRepoMock))

	q := make([]byte, 101)
	for i := range q {
		q[i] = 'a'
	}
	_, err := uc.ListMenu(context.Background(), usecase.ListMenuInput{Q: string(q)})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestMenuUsecase_ListMenu_RepoError(t *testing.T) {
	cRepo := new(CatalogRepoMock)
	uc := usecase.NewMenuUsecase(cRepo)
	cRepo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	_, err := uc.ListMenu(context.Background(), usecase.ListMenuInput{})
	assertHTTPStatus(t, err, http.StatusInternalServerError)
}

// =====================
// GetMenuItem
// =====================

func TestMenuUsecase_GetMenuItem(t *testing.T) {
	cRepo := new(CatalogRepoMock)
	uc := usecase.NewMenuUsecase(cRepo)

	cRepo.On("FindByID", mock.Anything, "b1").Return(model.FoodItem{ID: "b1", Name: "Obsidian Smash Burger"}, nil)
	cRepo.On("FindByID", mock.Anything, "zz").Return(model.FoodItem{}, repo.ErrNotFound)

	it, err := uc.GetMenuItem(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "Obsidian Smash Burger", it.Name)

	_, err = uc.GetMenuItem(context.Background(), "zz")
	assertHTTPStatus(t, err, http.StatusNotFound)

	_, err = uc.GetMenuItem(context.Background(), " ")
	assertHTTPStatus(t, err, http.StatusBadRequest)
}
