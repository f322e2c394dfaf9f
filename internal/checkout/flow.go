package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/keepers-bakery/internal/cart"
	"github.com/angelmondragon/keepers-bakery/pkg/logger"
)

var (
	// ErrEmptyCart is returned when checkout starts with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNavigationFailed is returned alongside the handle when the backend
	// accepted the order but the confirmation view could not be reached.
	ErrNavigationFailed = errors.New("navigation to confirmation failed")
)

// Submitter sends an order to the backend.
type Submitter interface {
	SubmitOrder(ctx context.Context, lines []cart.Line, totals Totals, customer CustomerFields) (*OrderHandle, error)
}

// Navigator moves the shopper to the outcome of a checkout.
type Navigator interface {
	Success(ctx context.Context, orderID string) error
	Failure(ctx context.Context) error
}

// Flow drives a checkout from a cart to a confirmed order.
type Flow struct {
	submitter Submitter
	logg      *logger.Logger
}

func NewFlow(submitter Submitter, logg *logger.Logger) *Flow {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Flow{submitter: submitter, logg: logg}
}

// Run submits the cart's contents. The cart is cleared only after the
// navigator has accepted the success transition; on any failure the cart is
// left exactly as it was.
func (f *Flow) Run(ctx context.Context, store *cart.Store, customer CustomerFields, nav Navigator) (*OrderHandle, error) {
	if store.IsEmpty() {
		return nil, ErrEmptyCart
	}

	lines := store.Lines()
	totals := Totals{Items: store.TotalItems(), Price: store.TotalPrice()}

	handle, err := f.submitter.SubmitOrder(ctx, lines, totals, customer)
	if err != nil {
		if navErr := nav.Failure(ctx); navErr != nil {
			f.logg.Error(ctx, "navigate to checkout error view", navErr)
		}
		return nil, err
	}

	ctx = f.logg.WithOrderID(ctx, handle.ID)
	if err := nav.Success(ctx, handle.ID); err != nil {
		f.logg.Error(ctx, "navigate to order confirmation", err)
		return handle, fmt.Errorf("%w: %w", ErrNavigationFailed, err)
	}

	store.Clear(ctx)
	return handle, nil
}
