package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/angelmondragon/keepers-bakery/pkg/redis"
)

// DefaultSlotTTL bounds how long an abandoned cart survives in Redis.
const DefaultSlotTTL = 30 * 24 * time.Hour

// Slot is the durable storage a Store reads on open and rewrites after each change.
type Slot interface {
	Load(ctx context.Context) ([]byte, bool, error)
	Save(ctx context.Context, data []byte) error
	Delete(ctx context.Context) error
}

// SlotProvider hands out the slot belonging to a session.
type SlotProvider interface {
	Slot(sessionID string) Slot
}

// RedisStore is the subset of the redis client used for cart slots.
type RedisStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartSlotKey(sessionID string) string
}

// RedisSlots keeps one key per session.
type RedisSlots struct {
	client RedisStore
	ttl    time.Duration
}

func NewRedisSlots(client RedisStore, ttl time.Duration) *RedisSlots {
	return &RedisSlots{client: client, ttl: ttl}
}

func (p *RedisSlots) Slot(sessionID string) Slot {
	return &redisSlot{client: p.client, key: p.client.CartSlotKey(sessionID), ttl: p.ttl}
}

type redisSlot struct {
	client RedisStore
	key    string
	ttl    time.Duration
}

func (s *redisSlot) Load(ctx context.Context) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.key)
	if errors.Is(err, redis.ErrNil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *redisSlot) Save(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key, string(data), s.ttl)
}

func (s *redisSlot) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key)
}

// MemorySlots keeps slots in process memory. Contents are lost on restart.
type MemorySlots struct {
	mu    sync.Mutex
	slots map[string]*MemorySlot
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{slots: make(map[string]*MemorySlot)}
}

func (p *MemorySlots) Slot(sessionID string) Slot {
	p.mu.Lock()
	defer p.mu.Unlock()
	slot, ok := p.slots[sessionID]
	if !ok {
		slot = &MemorySlot{}
		p.slots[sessionID] = slot
	}
	return slot
}

// MemorySlot is a single in-memory slot.
type MemorySlot struct {
	mu      sync.Mutex
	data    []byte
	present bool
}

// NewMemorySlot returns a slot pre-filled with data.
func NewMemorySlot(data []byte) *MemorySlot {
	return &MemorySlot{data: append([]byte(nil), data...), present: true}
}

func (s *MemorySlot) Load(context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return nil, false, nil
	}
	return append([]byte(nil), s.data...), true, nil
}

func (s *MemorySlot) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.present = true
	return nil
}

func (s *MemorySlot) Delete(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.present = false
	return nil
}
