package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/keepers-bakery/internal/cart"
	"github.com/angelmondragon/keepers-bakery/pkg/backend"
	pkgcheckout "github.com/angelmondragon/keepers-bakery/pkg/checkout"
	"github.com/angelmondragon/keepers-bakery/pkg/enums"
	"github.com/angelmondragon/keepers-bakery/pkg/logger"
	"github.com/angelmondragon/keepers-bakery/pkg/metrics"
)

var (
	// ErrSubmissionFailed is the only error SubmitOrder returns. The cause is
	// logged but not exposed for matching.
	ErrSubmissionFailed = errors.New("order submission failed")
	ErrOrderNotFound    = errors.New("order not found")
	ErrLookupFailed     = errors.New("order lookup failed")
)

const ordersPath = "/api/orders"

// CustomerFields is the contact and payment data from the checkout form.
type CustomerFields struct {
	Name          string
	Email         string
	Phone         string
	PaymentMethod enums.PaymentMethod
	Notes         string
}

// Totals are the cart totals captured when checkout started.
type Totals struct {
	Items int
	Price decimal.Decimal
}

// OrderHandle identifies an order the backend accepted.
type OrderHandle struct {
	ID string
}

// Client talks to the order backend on behalf of the storefront.
type Client struct {
	backend *backend.Client
	logg    *logger.Logger
	metrics *metrics.OrderMetrics
	newKey  func() string
}

func NewClient(b *backend.Client, logg *logger.Logger, m *metrics.OrderMetrics) *Client {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Client{
		backend: b,
		logg:    logg,
		metrics: m,
		newKey:  func() string { return uuid.NewString() },
	}
}

// SubmitOrder posts one create-order request built from the cart lines and
// form input. It never reads or changes a cart.
func (c *Client) SubmitOrder(ctx context.Context, lines []cart.Line, totals Totals, customer CustomerFields) (*OrderHandle, error) {
	start := time.Now()
	handle, err := c.submit(ctx, lines, totals, customer)
	if err != nil {
		c.metrics.Observe(metrics.OperationSubmit, metrics.OutcomeFailure, time.Since(start))
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "order submission failed")
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	c.metrics.Observe(metrics.OperationSubmit, metrics.OutcomeSuccess, time.Since(start))
	c.logg.Info(c.logg.WithOrderID(ctx, handle.ID), "order submitted")
	return handle, nil
}

func (c *Client) submit(ctx context.Context, lines []cart.Line, totals Totals, customer CustomerFields) (*OrderHandle, error) {
	req := BuildOrderRequest(lines, totals, customer)
	if err := pkgcheckout.ValidateOrderRequest(req); err != nil {
		return nil, err
	}

	headers := http.Header{}
	headers.Set("Idempotency-Key", c.newKey())

	var resp pkgcheckout.CreateOrderResponse
	if err := c.backend.Do(ctx, backend.Request{
		Method:  http.MethodPost,
		Path:    ordersPath,
		Body:    req,
		Headers: headers,
	}, &resp); err != nil {
		return nil, err
	}
	id := strings.TrimSpace(resp.OrderID)
	if id == "" {
		return nil, errors.New("response missing order id")
	}
	return &OrderHandle{ID: id}, nil
}

// BuildOrderRequest maps cart lines and form input onto the wire contract.
func BuildOrderRequest(lines []cart.Line, totals Totals, customer CustomerFields) pkgcheckout.OrderRequest {
	items := make([]pkgcheckout.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, pkgcheckout.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	var notes *string
	if trimmed := strings.TrimSpace(customer.Notes); trimmed != "" {
		notes = &trimmed
	}

	return pkgcheckout.OrderRequest{
		CustomerName:  strings.TrimSpace(customer.Name),
		CustomerEmail: strings.TrimSpace(customer.Email),
		CustomerPhone: strings.TrimSpace(customer.Phone),
		Items:         items,
		Total:         totals.Price,
		PaymentMethod: customer.PaymentMethod,
		Notes:         notes,
	}
}

// FetchOrder loads an order for the confirmation view. Unknown ids return
// ErrOrderNotFound; anything else that goes wrong returns ErrLookupFailed.
func (c *Client) FetchOrder(ctx context.Context, orderID string) (*pkgcheckout.Order, error) {
	trimmed := strings.TrimSpace(orderID)
	if trimmed == "" {
		return nil, ErrOrderNotFound
	}

	start := time.Now()
	var order pkgcheckout.Order
	err := c.backend.Do(ctx, backend.Request{
		Method: http.MethodGet,
		Path:   ordersPath + "/" + url.PathEscape(trimmed),
	}, &order)
	switch {
	case err == nil && order.ID != "":
		c.metrics.Observe(metrics.OperationFetch, metrics.OutcomeSuccess, time.Since(start))
		return &order, nil
	case backend.IsStatus(err, http.StatusNotFound):
		c.metrics.Observe(metrics.OperationFetch, metrics.OutcomeRejected, time.Since(start))
		return nil, ErrOrderNotFound
	case err == nil:
		err = errors.New("response missing order id")
	}
	c.metrics.Observe(metrics.OperationFetch, metrics.OutcomeFailure, time.Since(start))
	c.logg.Warn(c.logg.WithFields(ctx, map[string]any{"order_id": trimmed, "error": err.Error()}), "order lookup failed")
	return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
}
