package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/keepers-bakery/api/middleware"
	cartsvc "github.com/angelmondragon/keepers-bakery/internal/cart"
	checkoutsvc "github.com/angelmondragon/keepers-bakery/internal/checkout"
	pkgcheckout "github.com/angelmondragon/keepers-bakery/pkg/checkout"
	"github.com/angelmondragon/keepers-bakery/pkg/logger"
)

const sessionID = "5f0c3c1e-2b8a-4d8e-9a47-7c1f1d2e3b4a"

var testLog = logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

type stubSubmitter struct {
	handle   *checkoutsvc.OrderHandle
	err      error
	lines    []cartsvc.Line
	customer checkoutsvc.CustomerFields
}

func (s *stubSubmitter) SubmitOrder(_ context.Context, lines []cartsvc.Line, _ checkoutsvc.Totals, customer checkoutsvc.CustomerFields) (*checkoutsvc.OrderHandle, error) {
	s.lines = lines
	s.customer = customer
	return s.handle, s.err
}

type stubFetcher struct {
	order *pkgcheckout.Order
	err   error
}

func (s stubFetcher) FetchOrder(context.Context, string) (*pkgcheckout.Order, error) {
	return s.order, s.err
}

const checkoutBody = `{"name":"Ana Baker","email":"ana@example.com","phone":"555-0100","paymentMethod":"venmo","notes":"ring twice"}`

func sessionsWithCart(t *testing.T) *cartsvc.Sessions {
	t.Helper()
	sessions := cartsvc.NewSessions(cartsvc.NewMemorySlots(), testLog)
	err := sessions.With(context.Background(), sessionID, func(store *cartsvc.Store) error {
		return store.AddItem(context.Background(), cartsvc.CatalogItem{ID: "blueberry-muffin", Name: "Blueberry Muffin", Price: decimal.RequireFromString("3.75")})
	})
	if err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	return sessions
}

func cartSize(t *testing.T, sessions *cartsvc.Sessions) int {
	t.Helper()
	var n int
	if err := sessions.With(context.Background(), sessionID, func(store *cartsvc.Store) error {
		n = store.TotalItems()
		return nil
	}); err != nil {
		t.Fatalf("read cart: %v", err)
	}
	return n
}

func postCheckout(sessions *cartsvc.Sessions, sub checkoutsvc.Submitter) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(checkoutBody))
	req = req.WithContext(middleware.WithSessionID(req.Context(), sessionID))
	rec := httptest.NewRecorder()
	Checkout(sessions, checkoutsvc.NewFlow(sub, testLog), testLog).ServeHTTP(rec, req)
	return rec
}

func TestCheckoutSuccessClearsCart(t *testing.T) {
	sessions := sessionsWithCart(t)
	sub := &stubSubmitter{handle: &checkoutsvc.OrderHandle{ID: "ORD-42"}}

	rec := postCheckout(sessions, sub)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data Response `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.OrderID != "ORD-42" || body.Data.Redirect != "/checkout/success?orderId=ORD-42" {
		t.Fatalf("unexpected response %+v", body.Data)
	}
	if len(sub.lines) != 1 || sub.customer.Notes != "ring twice" {
		t.Fatalf("submitter got %+v / %+v", sub.lines, sub.customer)
	}
	if n := cartSize(t, sessions); n != 0 {
		t.Fatalf("cart should be cleared, has %d items", n)
	}
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	sessions := sessionsWithCart(t)
	sub := &stubSubmitter{err: fmt.Errorf("%w: backend returned 503", checkoutsvc.ErrSubmissionFailed)}

	rec := postCheckout(sessions, sub)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	var body struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Details["redirect"] != "/checkout/error" {
		t.Fatalf("expected error redirect, got %+v", body.Error)
	}
	if strings.Contains(rec.Body.String(), "503") {
		t.Fatalf("cause leaked to the browser: %s", rec.Body.String())
	}
	if n := cartSize(t, sessions); n != 1 {
		t.Fatalf("cart should be preserved, has %d items", n)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	sessions := cartsvc.NewSessions(cartsvc.NewMemorySlots(), testLog)
	sub := &stubSubmitter{handle: &checkoutsvc.OrderHandle{ID: "ORD-1"}}

	rec := postCheckout(sessions, sub)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if sub.lines != nil {
		t.Fatal("nothing should be submitted for an empty cart")
	}
}

func TestCheckoutRejectsInvalidForm(t *testing.T) {
	sessions := sessionsWithCart(t)
	sub := &stubSubmitter{handle: &checkoutsvc.OrderHandle{ID: "ORD-1"}}

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(`{"name":"","email":"nope","phone":"1","paymentMethod":"cash"}`))
	req = req.WithContext(middleware.WithSessionID(req.Context(), sessionID))
	rec := httptest.NewRecorder()
	Checkout(sessions, checkoutsvc.NewFlow(sub, testLog), testLog).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if sub.lines != nil {
		t.Fatal("invalid form must not reach the submitter")
	}
}

func TestConfirmation(t *testing.T) {
	request := func(f OrderFetcher) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/checkout/orders/ORD-7", nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("orderId", "ORD-7")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		Confirmation(f, testLog).ServeHTTP(rec, req)
		return rec
	}

	if rec := request(stubFetcher{order: &pkgcheckout.Order{ID: "ORD-7"}}); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := request(stubFetcher{err: checkoutsvc.ErrOrderNotFound}); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	lookupErr := fmt.Errorf("%w: timeout", checkoutsvc.ErrLookupFailed)
	if rec := request(stubFetcher{err: lookupErr}); rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

type refusingNavigator struct{}

func (refusingNavigator) Success(context.Context, string) error { return fmt.Errorf("redirect refused") }
func (refusingNavigator) Failure(context.Context) error         { return nil }
func (refusingNavigator) Target() string                        { return "" }

func TestCheckoutNavigationFailureStillReturnsOrderID(t *testing.T) {
	sessions := sessionsWithCart(t)
	sub := &stubSubmitter{handle: &checkoutsvc.OrderHandle{ID: "ORD-9"}}

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(checkoutBody))
	req = req.WithContext(middleware.WithSessionID(req.Context(), sessionID))
	rec := httptest.NewRecorder()
	checkoutWith(sessions, checkoutsvc.NewFlow(sub, testLog), testLog, func() navigator { return refusingNavigator{} }).ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data Response `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.OrderID != "ORD-9" || body.Data.Redirect != "/checkout/success?orderId=ORD-9" {
		t.Fatalf("unexpected response %+v", body.Data)
	}
	if n := cartSize(t, sessions); n != 1 {
		t.Fatalf("cart should be preserved, has %d items", n)
	}
}
