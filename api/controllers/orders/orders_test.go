package orders

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	internalorders "github.com/angelmondragon/keepers-bakery/internal/orders"
	"github.com/angelmondragon/keepers-bakery/pkg/checkout"
	"github.com/angelmondragon/keepers-bakery/pkg/enums"
	"github.com/angelmondragon/keepers-bakery/pkg/logger"
	"github.com/angelmondragon/keepers-bakery/pkg/pagination"
)

type stubOrdersService struct {
	created     *checkout.OrderRequest
	createErr   error
	orders      map[string]*checkout.Order
	lastParams  pagination.Params
	lastFilters internalorders.ListFilters
}

func (s *stubOrdersService) Create(_ context.Context, req checkout.OrderRequest) (*checkout.Order, error) {
	s.created = &req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &checkout.Order{ID: "ORD-123", Status: enums.OrderStatusNew}, nil
}

func (s *stubOrdersService) Get(_ context.Context, id string) (*checkout.Order, error) {
	if order, ok := s.orders[id]; ok {
		return order, nil
	}
	return nil, internalorders.ErrNotFound
}

func (s *stubOrdersService) List(_ context.Context, params pagination.Params, filters internalorders.ListFilters) (*internalorders.OrderList, error) {
	s.lastParams = params
	s.lastFilters = filters
	return &internalorders.OrderList{Items: []checkout.Order{{ID: "ORD-1"}}, NextCursor: "next"}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

const validOrderBody = `{
	"customerName": "Ana Baker",
	"customerEmail": "ana@example.com",
	"customerPhone": "555-0100",
	"items": [{"productId": "butter-croissant", "quantity": 2, "price": "3.25"}],
	"total": "6.50",
	"paymentMethod": "zelle"
}`

func TestCreateReturnsOrderID(t *testing.T) {
	svc := &stubOrdersService{}
	rec := httptest.NewRecorder()
	Create(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(validOrderBody)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data checkout.CreateOrderResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.OrderID != "ORD-123" {
		t.Fatalf("unexpected order id %q", body.Data.OrderID)
	}
	if svc.created == nil || svc.created.PaymentMethod != enums.PaymentMethodZelle {
		t.Fatalf("request not forwarded: %+v", svc.created)
	}
}

func TestCreateRejectsInvalidBody(t *testing.T) {
	svc := &stubOrdersService{}
	body := strings.Replace(validOrderBody, `"zelle"`, `"bitcoin"`, 1)
	rec := httptest.NewRecorder()
	Create(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.created != nil {
		t.Fatal("service should not be called for invalid input")
	}
	if !strings.Contains(rec.Body.String(), "paymentMethod") {
		t.Fatalf("expected field detail, got %s", rec.Body.String())
	}
}

func TestDetail(t *testing.T) {
	svc := &stubOrdersService{orders: map[string]*checkout.Order{"ORD-9": {ID: "ORD-9"}}}
	handler := Detail(svc, testLogger())

	request := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/orders/"+id, nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("orderId", id)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := request("ORD-9"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec := request("ORD-missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "order not found") {
		t.Fatalf("expected not found message, got %s", rec.Body.String())
	}
}

func TestListParsesQuery(t *testing.T) {
	svc := &stubOrdersService{}
	rec := httptest.NewRecorder()
	List(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders?limit=10&status=NEW&cursor=abc", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastParams.Limit != 10 || svc.lastParams.Cursor != "abc" {
		t.Fatalf("unexpected params %+v", svc.lastParams)
	}
	if svc.lastFilters.Status == nil || *svc.lastFilters.Status != enums.OrderStatusNew {
		t.Fatalf("status filter not parsed")
	}

	rec = httptest.NewRecorder()
	List(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders?status=lost", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}
}
