package model

import "math"

// 1明細の数量の上限
const MaxQuantity = 99

// カートの明細
// 同じIDは1行だけ、数量は常に1以上 MaxQuantity 以下。
type CartItem struct {
	FoodItem
	Quantity int `json:"quantity"`
}

// 数量を 1..MaxQuantity に収める
func ClampQuantity(q int) int {
	return min(max(q, 1), MaxQuantity)
}

// q に delta を足す。int のあふれは起こさない。
func AddQuantity(q int, delta int) int {
	delta = min(max(delta, -MaxQuantity), MaxQuantity)
	return ClampQuantity(ClampQuantity(q) + delta)
}

// 明細の小計。あふれる場合は上限で止める。
func (i CartItem) LineTotal() Money {
	if i.Quantity <= 0 || i.Price <= 0 {
		return 0
	}
	if i.Price > math.MaxInt64/Money(i.Quantity) {
		return math.MaxInt64
	}
	return i.Price * Money(i.Quantity)
}

// 金額の加算（上限で止める）
func (m Money) Add(o Money) Money {
	if o > 0 && m > math.MaxInt64-o {
		return math.MaxInt64
	}
	return m + o
}
