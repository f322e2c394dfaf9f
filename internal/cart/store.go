package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/keepers-bakery/pkg/checkout"
	"github.com/angelmondragon/keepers-bakery/pkg/logger"
)

// Store owns one shopper's cart and keeps its durable slot in sync with every
// change to the lines. A Store holds no lock: exactly one goroutine may use it
// at a time (see Sessions).
type Store struct {
	lines      []Line
	drawerOpen bool
	slot       Slot
	logg       *logger.Logger
}

// ErrSlotUnavailable is returned by Open when the slot cannot be read. The
// stored cart may still be intact, so no Store is handed out.
var ErrSlotUnavailable = errors.New("cart slot unavailable")

// Open builds a Store from whatever the slot holds. A missing, malformed or
// invalid slot yields an empty cart; the problem is logged and not returned.
// Only a failed read is an error.
func Open(ctx context.Context, slot Slot, logg *logger.Logger) (*Store, error) {
	if logg == nil {
		logg = logger.Nop()
	}
	s := &Store{slot: slot, logg: logg}
	if slot == nil {
		return s, nil
	}

	raw, found, err := slot.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSlotUnavailable, err)
	}
	if !found {
		return s, nil
	}
	lines, err := decodeLines(raw)
	if err != nil {
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "stored cart rejected; starting empty")
		return s, nil
	}
	s.lines = lines
	return s, nil
}

// AddItem increments the line for item.ID, or appends a new line with quantity 1.
// An existing line keeps the name, price and image captured when it was first
// added, so the shopper pays the price they saw. The drawer is opened.
func (s *Store) AddItem(ctx context.Context, item CatalogItem) error {
	id := strings.TrimSpace(item.ID)
	if id == "" || item.Price.IsNegative() {
		return ErrInvalidItem
	}

	if idx := s.indexOf(id); idx >= 0 {
		s.lines[idx].Quantity++
	} else {
		s.lines = append(s.lines, Line{
			ProductID: id,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  1,
			Image:     item.Image,
		})
	}
	s.drawerOpen = true
	s.persist(ctx)
	return nil
}

// RemoveItem deletes the line for productID. Unknown ids are ignored.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	idx := s.indexOf(productID)
	if idx < 0 {
		return
	}
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	s.persist(ctx)
}

// UpdateQuantity replaces the quantity of an existing line. Quantities below 1
// leave the line untouched; they do not remove it.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity < 1 {
		return
	}
	idx := s.indexOf(productID)
	if idx < 0 {
		return
	}
	s.lines[idx].Quantity = quantity
	s.persist(ctx)
}

// Clear empties the cart and erases the durable slot before returning.
func (s *Store) Clear(ctx context.Context) {
	s.lines = nil
	if s.slot == nil {
		return
	}
	if err := s.slot.Delete(ctx); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart slot delete failed")
	}
}

func (s *Store) SetDrawerOpen(open bool) {
	s.drawerOpen = open
}

func (s *Store) DrawerOpen() bool {
	return s.drawerOpen
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) IsEmpty() bool {
	return len(s.lines) == 0
}

func (s *Store) TotalItems() int {
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Snapshot returns the lines and totals as one value.
func (s *Store) Snapshot() State {
	return State{
		Lines:      s.Lines(),
		TotalItems: s.TotalItems(),
		TotalPrice: s.TotalPrice(),
		DrawerOpen: s.drawerOpen,
	}
}

func (s *Store) indexOf(productID string) int {
	for i, line := range s.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

// persist writes the full line sequence to the slot. Failures are logged only;
// the in-memory cart stays authoritative for the session.
func (s *Store) persist(ctx context.Context) {
	if s.slot == nil {
		return
	}
	payload, err := encodeLines(s.lines)
	if err != nil {
		s.logg.Error(ctx, "encode cart lines", err)
		return
	}
	if err := s.slot.Save(ctx, payload); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart slot write failed")
	}
}

func encodeLines(lines []Line) ([]byte, error) {
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(lines)
}

func decodeLines(raw []byte) ([]Line, error) {
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode cart lines: %w", err)
	}
	seen := make(map[string]struct{}, len(lines))
	for i, line := range lines {
		if err := checkout.Validator().Struct(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		if _, dup := seen[line.ProductID]; dup {
			return nil, fmt.Errorf("line %d: duplicate product %q", i, line.ProductID)
		}
		seen[line.ProductID] = struct{}{}
	}
	return lines, nil
}
