package models

// CartLine is a product snapshot plus the quantity being bought. The same
// shape is stored for the buy-now item.
type CartLine struct {
	Product
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

type CartView struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
	Count int        `json:"count"`
}

type AddItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"  validate:"required,min=1"`
}
