package repository

import (
	"context"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// 固定メニュー
var menuItems = []model.FoodItem{
	{ID: "b1", Name: "Obsidian Smash Burger", Category: model.CategoryBurger, Price: 1499, Description: "Double-smashed wagyu, charcoal brioche, smoked cheddar and black garlic aioli.", Calories: 920, PrepTime: "15 min", Rating: 4.9},
	{ID: "b2", Name: "Ember Chicken Burger", Category: model.CategoryBurger, Price: 1299, Description: "Crispy buttermilk chicken with hot honey glaze and pickled slaw.", Calories: 780, PrepTime: "12 min", Rating: 4.7},
	{ID: "p1", Name: "Molten Margherita", Category: model.CategoryPizza, Price: 1650, Description: "San Marzano tomato, fior di latte and basil on a 48-hour dough.", Calories: 1100, PrepTime: "18 min", Rating: 4.8},
	{ID: "pa1", Name: "Truffle Tagliatelle", Category: model.CategoryPasta, Price: 1899, Description: "Hand-cut egg pasta, black truffle butter and aged parmesan.", Calories: 850, PrepTime: "20 min", Rating: 4.8},
	{ID: "s1", Name: "Prime Ribeye", Category: model.CategorySteak, Price: 3499, Description: "300g dry-aged ribeye with bone marrow jus.", Calories: 1250, PrepTime: "25 min", Rating: 4.9},
	{ID: "su1", Name: "Neon Dragon Roll", Category: model.CategorySushi, Price: 1599, Description: "Tempura prawn, avocado and torched salmon with yuzu mayo.", Calories: 520, PrepTime: "15 min", Rating: 4.6},
	{ID: "r1", Name: "Midnight Tonkotsu", Category: model.CategoryRamen, Price: 1450, Description: "18-hour pork broth, chashu, ajitama and black garlic oil.", Calories: 980, PrepTime: "15 min", Rating: 4.8},
	{ID: "t1", Name: "Al Pastor Trio", Category: model.CategoryTaco, Price: 1150, Description: "Spit-roasted pork, pineapple salsa and cilantro on corn tortillas.", Calories: 640, PrepTime: "10 min", Rating: 4.5},
	{ID: "d1", Name: "Citrus Nebula Soda", Category: model.CategoryDrink, Price: 499, Description: "Blood orange, yuzu and sparkling water.", Calories: 120, PrepTime: "2 min", Rating: 4.4},
	{ID: "f1", Name: "Parmesan Truffle Fries", Category: model.CategoryFries, Price: 699, Description: "Triple-cooked fries tossed in truffle oil and parmesan.", Calories: 540, PrepTime: "8 min", Rating: 4.7},
	{ID: "de1", Name: "Lava Chocolate Dome", Category: model.CategoryDessert, Price: 899, Description: "Dark chocolate sphere melted open with warm salted caramel.", Calories: 610, PrepTime: "10 min", Rating: 4.9},
}

type StaticCatalogRepository struct {
	items []model.FoodItem
}

// items が nil なら固定メニューを使う
func NewStaticCatalogRepository(items []model.FoodItem) *StaticCatalogRepository {
	if items == nil {
		items = menuItems
	}
	return &StaticCatalogRepository{items: items}
}

// カテゴリと名前の部分一致で絞り込む。並びは登録順。
func (r *StaticCatalogRepository) List(ctx context.Context, q repo.CatalogQuery) ([]model.FoodItem, error) {
	needle := strings.ToLower(strings.TrimSpace(q.Q))

	out := make([]model.FoodItem, 0, len(r.items))
	for _, it := range r.items {
		if q.Category != "" && it.Category != q.Category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(it.Name), needle) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *StaticCatalogRepository) FindByID(ctx context.Context, id string) (model.FoodItem, error) {
	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return model.FoodItem{}, repo.ErrNotFound
}
