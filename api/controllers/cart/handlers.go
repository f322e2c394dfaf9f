package cart

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/keepers-bakery/api/middleware"
	"github.com/angelmondragon/keepers-bakery/api/responses"
	"github.com/angelmondragon/keepers-bakery/api/validators"
	cartsvc "github.com/angelmondragon/keepers-bakery/internal/cart"
	product "github.com/angelmondragon/keepers-bakery/internal/products"
	pkgerrors "github.com/angelmondragon/keepers-bakery/pkg/errors"
	"github.com/angelmondragon/keepers-bakery/pkg/logger"
)

// Catalog resolves the product data a new cart line snapshots.
type Catalog interface {
	Item(ctx context.Context, productID string) (cartsvc.CatalogItem, error)
}

// CartFetch returns the session's cart.
func CartFetch(sessions *cartsvc.Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withCart(w, r, sessions, logg, func(ctx context.Context, store *cartsvc.Store) error {
			return nil
		})
	}
}

// CartAddItem looks the product up in the catalog and adds one unit to the cart.
func CartAddItem(sessions *cartsvc.Sessions, catalog Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := catalog.Item(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, catalogError(err))
			return
		}

		withCart(w, r, sessions, logg, func(ctx context.Context, store *cartsvc.Store) error {
			if err := store.AddItem(ctx, item); err != nil {
				if errors.Is(err, cartsvc.ErrInvalidItem) {
					return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "catalog returned an invalid product")
				}
				return err
			}
			return nil
		})
	}
}

// CartUpdateQuantity sets the quantity of one line.
func CartUpdateQuantity(sessions *cartsvc.Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload UpdateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		withCart(w, r, sessions, logg, func(ctx context.Context, store *cartsvc.Store) error {
			store.UpdateQuantity(ctx, productID, *payload.Quantity)
			return nil
		})
	}
}

// CartRemoveItem drops one line from the cart.
func CartRemoveItem(sessions *cartsvc.Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		withCart(w, r, sessions, logg, func(ctx context.Context, store *cartsvc.Store) error {
			store.RemoveItem(ctx, productID)
			return nil
		})
	}
}

// CartClear empties the cart and removes its durable slot.
func CartClear(sessions *cartsvc.Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withCart(w, r, sessions, logg, func(ctx context.Context, store *cartsvc.Store) error {
			store.Clear(ctx)
			return nil
		})
	}
}

// CartDrawer opens or closes the cart drawer.
func CartDrawer(sessions *cartsvc.Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload DrawerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		withCart(w, r, sessions, logg, func(ctx context.Context, store *cartsvc.Store) error {
			store.SetDrawerOpen(*payload.Open)
			return nil
		})
	}
}

// withCart runs fn against the session's store and writes the resulting cart.
// The snapshot is taken while the session is still held.
func withCart(w http.ResponseWriter, r *http.Request, sessions *cartsvc.Sessions, logg *logger.Logger, fn func(context.Context, *cartsvc.Store) error) {
	if sessions == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart sessions unavailable"))
		return
	}

	ctx := r.Context()
	var state cartsvc.State
	err := sessions.With(ctx, middleware.SessionIDFromContext(ctx), func(store *cartsvc.Store) error {
		if err := fn(ctx, store); err != nil {
			return err
		}
		state = store.Snapshot()
		return nil
	})
	if err != nil {
		responses.WriteError(ctx, logg, w, sessionError(err))
		return
	}
	responses.WriteSuccess(w, newView(state))
}

func productIDParam(r *http.Request) (string, error) {
	productID := strings.TrimSpace(chi.URLParam(r, "productId"))
	if productID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return productID, nil
}

func catalogError(err error) error {
	switch {
	case pkgerrors.Is(err, pkgerrors.CodeNotFound):
		return err
	case errors.Is(err, product.ErrCatalogUnavailable):
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "catalog unavailable")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "catalog lookup")
	}
}

func sessionError(err error) error {
	switch {
	case pkgerrors.As(err) != nil:
		return err
	case errors.Is(err, cartsvc.ErrSessionRequired):
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "session missing")
	case errors.Is(err, cartsvc.ErrSlotUnavailable):
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart storage unavailable")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart busy")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cart operation")
	}
}
