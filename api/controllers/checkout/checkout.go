package checkout

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/keepers-bakery/api/middleware"
	"github.com/angelmondragon/keepers-bakery/api/responses"
	"github.com/angelmondragon/keepers-bakery/api/validators"
	cartsvc "github.com/angelmondragon/keepers-bakery/internal/cart"
	checkoutsvc "github.com/angelmondragon/keepers-bakery/internal/checkout"
	pkgcheckout "github.com/angelmondragon/keepers-bakery/pkg/checkout"
	"github.com/angelmondragon/keepers-bakery/pkg/enums"
	pkgerrors "github.com/angelmondragon/keepers-bakery/pkg/errors"
	"github.com/angelmondragon/keepers-bakery/pkg/logger"
)

const (
	successPath = "/checkout/success"
	failurePath = "/checkout/error"
)

// Request is the checkout form.
type Request struct {
	Name          string              `json:"name" validate:"required,max=200"`
	Email         string              `json:"email" validate:"required,email,max=320"`
	Phone         string              `json:"phone" validate:"required,max=40"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod" validate:"payment_method"`
	Notes         string              `json:"notes" validate:"max=2000"`
}

// Response tells the browser which view to show for an accepted order.
type Response struct {
	OrderID  string `json:"orderId"`
	Redirect string `json:"redirect"`
}

// OrderFetcher loads an accepted order for the confirmation view.
type OrderFetcher interface {
	FetchOrder(ctx context.Context, orderID string) (*pkgcheckout.Order, error)
}

// redirectNavigator records the view the browser should move to.
type redirectNavigator struct {
	target string
}

func (n *redirectNavigator) Success(_ context.Context, orderID string) error {
	n.target = successPath + "?orderId=" + url.QueryEscape(orderID)
	return nil
}

func (n *redirectNavigator) Failure(context.Context) error {
	n.target = failurePath
	return nil
}

// Checkout submits the session's cart as an order. The cart is cleared only
// when the order is accepted.
func Checkout(sessions *cartsvc.Sessions, flow *checkoutsvc.Flow, logg *logger.Logger) http.HandlerFunc {
	return checkoutWith(sessions, flow, logg, func() navigator { return &redirectNavigator{} })
}

type navigator interface {
	checkoutsvc.Navigator
	Target() string
}

func (n *redirectNavigator) Target() string { return n.target }

func checkoutWith(sessions *cartsvc.Sessions, flow *checkoutsvc.Flow, logg *logger.Logger, newNav func() navigator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil || flow == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}

		var payload Request
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customer := checkoutsvc.CustomerFields{
			Name:          payload.Name,
			Email:         payload.Email,
			Phone:         payload.Phone,
			PaymentMethod: payload.PaymentMethod,
			Notes:         payload.Notes,
		}

		ctx := r.Context()
		nav := newNav()
		var handle *checkoutsvc.OrderHandle
		err := sessions.With(ctx, middleware.SessionIDFromContext(ctx), func(store *cartsvc.Store) error {
			var runErr error
			handle, runErr = flow.Run(ctx, store, customer, nav)
			return runErr
		})
		if handle != nil && errors.Is(err, checkoutsvc.ErrNavigationFailed) {
			// The order exists; the browser still needs its id.
			responses.WriteSuccessStatus(w, http.StatusAccepted, Response{
				OrderID:  handle.ID,
				Redirect: successPath + "?orderId=" + url.QueryEscape(handle.ID),
			})
			return
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, checkoutError(err))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, Response{OrderID: handle.ID, Redirect: nav.Target()})
	}
}

// Confirmation returns the order shown on the success view.
func Confirmation(fetcher OrderFetcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if fetcher == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order lookup unavailable"))
			return
		}

		orderID := strings.TrimSpace(chi.URLParam(r, "orderId"))
		order, err := fetcher.FetchOrder(r.Context(), orderID)
		switch {
		case errors.Is(err, checkoutsvc.ErrOrderNotFound):
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		case err != nil:
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "order lookup failed"))
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func checkoutError(err error) error {
	switch {
	case errors.Is(err, checkoutsvc.ErrEmptyCart):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "cart is empty")
	case errors.Is(err, checkoutsvc.ErrSubmissionFailed):
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "order submission failed").
			WithDetails(map[string]string{"redirect": failurePath})
	case errors.Is(err, cartsvc.ErrSessionRequired):
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "session missing")
	case errors.Is(err, cartsvc.ErrSlotUnavailable):
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart storage unavailable")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout interrupted")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checkout")
	}
}
