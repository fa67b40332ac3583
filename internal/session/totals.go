package session

import "storefront/internal/domain/model"

const (
	// 小計がこれを超えると配送料無料
	FreeDeliveryThreshold model.Money = 5000
	DeliveryFee           model.Money = 599
)

// Summary はカートから毎回計算する値。保存はしない。
type Summary struct {
	ItemCount   int         `json:"item_count"`
	Subtotal    model.Money `json:"subtotal"`
	DeliveryFee model.Money `json:"delivery_fee"`
	Total       model.Money `json:"total"`
}

// CartSnapshot はある時点のカートと集計。変更と同じロックの中で作る。
type CartSnapshot struct {
	Items []model.CartItem `json:"items"`
	Summary
}

func Summarize(cart []model.CartItem) Summary {
	var s Summary
	for _, it := range cart {
		s.ItemCount += it.Quantity
		s.Subtotal = s.Subtotal.Add(it.LineTotal())
	}
	s.DeliveryFee = DeliveryFeeFor(s.Subtotal)
	s.Total = s.Subtotal.Add(s.DeliveryFee)
	return s
}

func DeliveryFeeFor(subtotal model.Money) model.Money {
	if subtotal > FreeDeliveryThreshold {
		return 0
	}
	return DeliveryFee
}
