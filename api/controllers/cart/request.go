package cart

// AddItemRequest names the catalog product to put in the cart.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required,max=128"`
}

// UpdateQuantityRequest sets a line's quantity. Values below one leave the
// cart unchanged.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type DrawerRequest struct {
	Open *bool `json:"open" validate:"required"`
}
