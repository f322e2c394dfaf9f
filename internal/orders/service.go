package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/keepers-bakery/pkg/checkout"
	"github.com/angelmondragon/keepers-bakery/pkg/db"
	"github.com/angelmondragon/keepers-bakery/pkg/db/models"
	"github.com/angelmondragon/keepers-bakery/pkg/enums"
	pkgerrors "github.com/angelmondragon/keepers-bakery/pkg/errors"
	"github.com/angelmondragon/keepers-bakery/pkg/logger"
	"github.com/angelmondragon/keepers-bakery/pkg/metrics"
	"github.com/angelmondragon/keepers-bakery/pkg/pagination"
)

const (
	orderIDPrefix    = "ORD-"
	customerIDPrefix = "CUST-"
)

// ErrNotFound is returned when an order id is unknown.
var ErrNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "order not found")

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns order creation and lookup for the backend.
type Service interface {
	Create(ctx context.Context, req checkout.OrderRequest) (*checkout.Order, error)
	Get(ctx context.Context, id string) (*checkout.Order, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	logg    *logger.Logger
	metrics *metrics.OrderMetrics
	now     func() time.Time
	newID   func() string
}

// NewService builds the order service with the required dependencies.
func NewService(repo Repository, tx txRunner, logg *logger.Logger, m *metrics.OrderMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		repo:    repo,
		tx:      tx,
		logg:    logg,
		metrics: m,
		now:     time.Now,
		newID:   uuid.NewString,
	}, nil
}

// Create validates req and stores it as a new order in status "new". Ids are
// allocated here; clients never choose them.
func (s *service) Create(ctx context.Context, req checkout.OrderRequest) (*checkout.Order, error) {
	start := time.Now()
	order, err := s.create(ctx, req)
	switch {
	case err == nil:
		s.metrics.Observe(metrics.OperationCreate, metrics.OutcomeSuccess, time.Since(start))
		total, _ := order.Total.Float64()
		s.metrics.AddValue(total)
	case pkgerrors.Is(err, pkgerrors.CodeValidation), pkgerrors.Is(err, pkgerrors.CodeStateConflict):
		s.metrics.Observe(metrics.OperationCreate, metrics.OutcomeRejected, time.Since(start))
	default:
		s.metrics.Observe(metrics.OperationCreate, metrics.OutcomeFailure, time.Since(start))
	}
	return order, err
}

func (s *service) create(ctx context.Context, req checkout.OrderRequest) (*checkout.Order, error) {
	if err := checkout.ValidateOrderRequest(req); err != nil {
		return nil, err
	}
	if err := checkTotal(req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	order := &models.Order{
		ID:            orderIDPrefix + s.newID(),
		CustomerID:    customerIDPrefix + s.newID(),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Total:         req.Total,
		Status:        enums.OrderStatusNew,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for i, item := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			OrderID:   order.ID,
			Position:  i,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Create(ctx, order)
		return err
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order id already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
	}

	ctx = s.logg.WithOrderID(ctx, order.ID)
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"items":          len(order.Items),
		"total":          order.Total.StringFixed(2),
		"payment_method": order.PaymentMethod.String(),
	}), "order created")

	out := FromModel(*order)
	return &out, nil
}

// checkTotal rejects orders whose total disagrees with their items.
func checkTotal(req checkout.OrderRequest) error {
	sum := decimal.Zero
	for _, item := range req.Items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if sum.Equal(req.Total) {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, "order total does not match items").WithDetails(map[string]any{
		"total":    req.Total.StringFixed(2),
		"expected": sum.StringFixed(2),
	})
}

func (s *service) Get(ctx context.Context, id string) (*checkout.Order, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	out := FromModel(*order)
	return &out, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").WithDetails(map[string]any{"field": "status"})
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor").WithDetails(map[string]any{"field": "cursor"})
	}

	pageSize := pagination.NormalizeLimit(params.Limit)
	query := ListQuery{Limit: pagination.LimitWithBuffer(params.Limit), Status: filters.Status}
	if cursor != nil {
		query.After = &Cursor{CreatedAt: cursor.CreatedAt, ID: cursor.ID}
	}

	rows, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	list := &OrderList{Items: make([]checkout.Order, 0, min(len(rows), pageSize))}
	if len(rows) > pageSize {
		last := rows[pageSize-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		rows = rows[:pageSize]
	}
	for _, row := range rows {
		list.Items = append(list.Items, FromModel(row))
	}
	return list, nil
}
