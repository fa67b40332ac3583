package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

type Category string

const (
	CategoryBurger  Category = "Burger"
	CategoryPizza   Category = "Pizza"
	CategoryDrink   Category = "Drink"
	CategoryFries   Category = "Fries"
	CategoryDessert Category = "Dessert"
	CategorySteak   Category = "Steak"
	CategoryPasta   Category = "Pasta"
	CategorySushi   Category = "Sushi"
	CategoryRamen   Category = "Ramen"
	CategoryTaco    Category = "Taco"
)

// メニュー画面の並び順
var Categories = []Category{
	CategoryBurger,
	CategoryPizza,
	CategoryPasta,
	CategorySteak,
	CategorySushi,
	CategoryRamen,
	CategoryTaco,
	CategoryDrink,
	CategoryFries,
	CategoryDessert,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Money は金額（セント単位）。JSONでは 12.99 のような小数で表す。
type Money int64

// 小数の金額をセントに丸める
func MoneyFromFloat(v float64) Money {
	return Money(math.Round(v * 100))
}

func (m Money) Float64() float64 {
	return float64(m) / 100
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f", m.Float64())
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Float64(), 'f', -1, 64)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("money: %w", err)
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("money: %w", err)
	}
	if f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Errorf("money: invalid amount %s", n)
	}
	*m = MoneyFromFloat(f)
	return nil
}

// カタログの1品。実行中に書き換えない。
type FoodItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Price       Money    `json:"price"`
	Description string   `json:"description"`
	Calories    int      `json:"calories"`
	PrepTime    string   `json:"prepTime"`
	Rating      float64  `json:"rating"`
}
