// Package memory keeps every repository in process. It backs tests and the
// memory order_db driver and honours the same atomicity rules as postgres.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/LavaJover/printshop-order-service/internal/domain"
)

type txKey struct{}

type state struct {
	prices      map[string]domain.ServicePrice
	local       map[string]map[string]domain.LocalPrice
	shops       map[string]domain.Shop
	orders      map[string]domain.Order
	fileOwner   map[string]string
	audit       []domain.AuditEntry
	auditSeq    uint
	clients     map[string]domain.Client
	rewards     map[string]domain.Reward
	redemptions []domain.RewardRedemption
}

func newState() *state {
	return &state{
		prices:    map[string]domain.ServicePrice{},
		local:     map[string]map[string]domain.LocalPrice{},
		shops:     map[string]domain.Shop{},
		orders:    map[string]domain.Order{},
		fileOwner: map[string]string{},
		clients:   map[string]domain.Client{},
		rewards:   map[string]domain.Reward{},
	}
}

func (s *state) clone() *state {
	c := &state{
		prices:      maps.Clone(s.prices),
		local:       make(map[string]map[string]domain.LocalPrice, len(s.local)),
		shops:       maps.Clone(s.shops),
		orders:      make(map[string]domain.Order, len(s.orders)),
		fileOwner:   maps.Clone(s.fileOwner),
		audit:       append([]domain.AuditEntry(nil), s.audit...),
		auditSeq:    s.auditSeq,
		clients:     maps.Clone(s.clients),
		rewards:     maps.Clone(s.rewards),
		redemptions: append([]domain.RewardRedemption(nil), s.redemptions...),
	}
	for shopID, m := range s.local {
		c.local[shopID] = maps.Clone(m)
	}
	for id, o := range s.orders {
		o.Files = append([]domain.OrderFile(nil), o.Files...)
		c.orders[id] = o
	}
	return c
}

// Store implements the repository ports and domain.TxManager.
type Store struct {
	mu sync.Mutex
	st *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

// WithinTx serialises fn against every other store call and rolls the
// state back when fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// lock takes the store mutex unless ctx already runs inside WithinTx.
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}
