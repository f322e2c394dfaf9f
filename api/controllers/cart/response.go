package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/keepers-bakery/internal/cart"
)

// LineView is a cart line with its computed subtotal.
type LineView struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// View is the cart payload returned by every cart endpoint.
type View struct {
	Lines      []LineView      `json:"lines"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	DrawerOpen bool            `json:"drawerOpen"`
}

func newView(state cart.State) View {
	lines := make([]LineView, 0, len(state.Lines))
	for _, line := range state.Lines {
		lines = append(lines, LineView{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Image:     line.Image,
			Subtotal:  line.Subtotal(),
		})
	}
	return View{
		Lines:      lines,
		TotalItems: state.TotalItems,
		TotalPrice: state.TotalPrice,
		DrawerOpen: state.DrawerOpen,
	}
}
