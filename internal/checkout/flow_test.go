package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/keepers-bakery/internal/cart"
)

type stubSubmitter struct {
	handle *OrderHandle
	err    error
	calls  int
	seen   []cart.Line
	totals Totals
	// cartItemsAtSubmit records what the store held while the request was in flight.
	store             *cart.Store
	cartItemsAtSubmit int
}

func (s *stubSubmitter) SubmitOrder(_ context.Context, lines []cart.Line, totals Totals, _ CustomerFields) (*OrderHandle, error) {
	s.calls++
	s.seen = lines
	s.totals = totals
	if s.store != nil {
		s.cartItemsAtSubmit = s.store.TotalItems()
	}
	return s.handle, s.err
}

type recordingNavigator struct {
	store          *cart.Store
	successID      string
	failures       int
	successErr     error
	itemsAtSuccess int
}

func (n *recordingNavigator) Success(_ context.Context, orderID string) error {
	n.successID = orderID
	n.itemsAtSuccess = n.store.TotalItems()
	return n.successErr
}

func (n *recordingNavigator) Failure(context.Context) error {
	n.failures++
	return nil
}

func filledStore(t *testing.T) (*cart.Store, *cart.MemorySlot) {
	t.Helper()
	ctx := context.Background()
	slot := &cart.MemorySlot{}
	store, err := cart.Open(ctx, slot, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_ = store.AddItem(ctx, cart.CatalogItem{ID: "A", Name: "Sourdough", Price: decimal.NewFromInt(10)})
	_ = store.AddItem(ctx, cart.CatalogItem{ID: "A", Name: "Sourdough", Price: decimal.NewFromInt(10)})
	_ = store.AddItem(ctx, cart.CatalogItem{ID: "B", Name: "Muffin", Price: decimal.NewFromInt(5)})
	return store, slot
}

func TestFlowClearsCartOnlyAfterConfirmation(t *testing.T) {
	store, slot := filledStore(t)
	sub := &stubSubmitter{handle: &OrderHandle{ID: "ORD-123"}, store: store}
	nav := &recordingNavigator{store: store}

	handle, err := NewFlow(sub, nil).Run(context.Background(), store, testCustomer, nav)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if handle.ID != "ORD-123" || nav.successID != "ORD-123" {
		t.Fatalf("unexpected handle %+v nav=%q", handle, nav.successID)
	}
	if sub.cartItemsAtSubmit != 3 || nav.itemsAtSuccess != 3 {
		t.Fatalf("cart must be intact until navigation succeeds, got submit=%d nav=%d", sub.cartItemsAtSubmit, nav.itemsAtSuccess)
	}
	if !sub.totals.Price.Equal(decimal.NewFromInt(25)) || sub.totals.Items != 3 {
		t.Fatalf("unexpected totals %+v", sub.totals)
	}
	if !store.IsEmpty() {
		t.Fatal("cart should be cleared after confirmation")
	}
	if _, found, _ := slot.Load(context.Background()); found {
		t.Fatal("durable slot should be erased after confirmation")
	}
}

func TestFlowKeepsCartWhenSubmissionFails(t *testing.T) {
	store, slot := filledStore(t)
	before := store.Lines()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	nav := &recordingNavigator{store: store}

	handle, err := NewFlow(client, nil).Run(context.Background(), store, testCustomer, nav)
	if !errors.Is(err, ErrSubmissionFailed) || handle != nil {
		t.Fatalf("expected submission failure, got handle=%+v err=%v", handle, err)
	}
	if nav.failures != 1 || nav.successID != "" {
		t.Fatalf("expected failure navigation only, got %+v", nav)
	}
	after := store.Lines()
	if len(after) != len(before) || after[0].Quantity != before[0].Quantity {
		t.Fatalf("cart changed on failure: before=%+v after=%+v", before, after)
	}
	if _, found, _ := slot.Load(context.Background()); !found {
		t.Fatal("slot must survive a failed checkout")
	}
}

func TestFlowKeepsCartWhenNavigationFails(t *testing.T) {
	store, _ := filledStore(t)
	sub := &stubSubmitter{handle: &OrderHandle{ID: "ORD-7"}}
	nav := &recordingNavigator{store: store, successErr: fmt.Errorf("redirect refused")}

	handle, err := NewFlow(sub, nil).Run(context.Background(), store, testCustomer, nav)
	if !errors.Is(err, ErrNavigationFailed) {
		t.Fatalf("expected ErrNavigationFailed, got %v", err)
	}
	if handle == nil || handle.ID != "ORD-7" {
		t.Fatalf("handle should still be returned, got %+v", handle)
	}
	if store.TotalItems() != 3 {
		t.Fatal("cart must not be cleared when navigation fails")
	}
}

func TestFlowRejectsEmptyCart(t *testing.T) {
	store, err := cart.Open(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sub := &stubSubmitter{}
	_, err = NewFlow(sub, nil).Run(context.Background(), store, testCustomer, &recordingNavigator{store: store})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if sub.calls != 0 {
		t.Fatal("empty carts must not be submitted")
	}
}
