package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
)

func copyOrder(o domain.Order) *domain.Order {
	o.Files = append([]domain.OrderFile(nil), o.Files...)
	return &o
}

func sortNewestFirst(orders []*domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID < orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

func (s *Store) CreateOrder(ctx context.Context, order *domain.Order) error {
	defer s.lock(ctx)()
	if _, ok := s.st.orders[order.ID]; ok {
		return fmt.Errorf("%w: order %s exists", domain.ErrConflict, order.ID)
	}
	if _, ok := s.st.shops[order.ShopID]; !ok {
		return fmt.Errorf("%w: shop %s", domain.ErrNotFound, order.ShopID)
	}
	for _, f := range order.Files {
		if _, ok := s.st.fileOwner[f.ID]; ok {
			return fmt.Errorf("%w: file %s exists", domain.ErrConflict, f.ID)
		}
	}
	stored := copyOrder(*order)
	for i := range stored.Files {
		stored.Files[i].OrderID = order.ID
		s.st.fileOwner[stored.Files[i].ID] = order.ID
	}
	s.st.orders[order.ID] = *stored
	return nil
}

func (s *Store) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	defer s.lock(ctx)()
	o, ok := s.st.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, orderID)
	}
	return copyOrder(o), nil
}

func (s *Store) ListOrdersByClient(ctx context.Context, clientID string) ([]*domain.Order, error) {
	defer s.lock(ctx)()
	var out []*domain.Order
	for _, o := range s.st.orders {
		if o.ClientID == clientID {
			out = append(out, copyOrder(o))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *Store) ListOrdersByShop(ctx context.Context, shopID string, status domain.OrderStatus) ([]*domain.Order, error) {
	defer s.lock(ctx)()
	var out []*domain.Order
	for _, o := range s.st.orders {
		if o.ShopID != shopID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, copyOrder(o))
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *Store) UpdateStatus(ctx context.Context, orderID string, from, to domain.OrderStatus, at time.Time) error {
	defer s.lock(ctx)()
	o, ok := s.st.orders[orderID]
	if !ok {
		return fmt.Errorf("%w: order %s", domain.ErrNotFound, orderID)
	}
	if o.Status != from {
		return fmt.Errorf("%w: order %s is %s, expected %s", domain.ErrConflict, orderID, o.Status, from)
	}
	o.Status = to
	o.UpdatedAt = at
	s.st.orders[orderID] = o
	return nil
}

func (s *Store) AppendAudit(ctx context.Context, entry *domain.AuditEntry) error {
	defer s.lock(ctx)()
	if _, ok := s.st.orders[entry.OrderID]; !ok {
		return fmt.Errorf("%w: order %s", domain.ErrNotFound, entry.OrderID)
	}
	s.st.auditSeq++
	entry.ID = s.st.auditSeq
	stored := *entry
	stored.Details = maps.Clone(entry.Details)
	s.st.audit = append(s.st.audit, stored)
	return nil
}

func (s *Store) ListAuditEntries(ctx context.Context, orderID string) ([]*domain.AuditEntry, error) {
	defer s.lock(ctx)()
	var out []*domain.AuditEntry
	for _, e := range s.st.audit {
		if e.OrderID == orderID {
			e := e
			e.Details = maps.Clone(e.Details)
			out = append(out, &e)
		}
	}
	return out, nil
}

func (s *Store) FindPurgeCandidates(ctx context.Context, mode domain.PurgeMode, olderThan time.Time) ([]*domain.OrderFile, error) {
	if mode != domain.PurgeCancelled && mode != domain.PurgeAged {
		return nil, fmt.Errorf("%w: mode %s has no selection rule", domain.ErrValidation, mode)
	}

	defer s.lock(ctx)()
	var out []*domain.OrderFile
	for _, o := range s.st.orders {
		for _, f := range o.Files {
			if f.Purged() {
				continue
			}
			switch mode {
			case domain.PurgeCancelled:
				if o.Status != domain.StatusCancelled {
					continue
				}
			case domain.PurgeAged:
				if !f.CreatedAt.Before(olderThan) {
					continue
				}
			}
			f := f
			out = append(out, &f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetFilesByIDs(ctx context.Context, fileIDs []string) ([]*domain.OrderFile, error) {
	defer s.lock(ctx)()
	out := make([]*domain.OrderFile, 0, len(fileIDs))
	for _, id := range fileIDs {
		f, _, ok := s.findFile(id)
		if !ok {
			continue
		}
		out = append(out, &f)
	}
	return out, nil
}

func (s *Store) findFile(fileID string) (domain.OrderFile, int, bool) {
	orderID, ok := s.st.fileOwner[fileID]
	if !ok {
		return domain.OrderFile{}, 0, false
	}
	for i, f := range s.st.orders[orderID].Files {
		if f.ID == fileID {
			return f, i, true
		}
	}
	return domain.OrderFile{}, 0, false
}

func (s *Store) MarkFilePurged(ctx context.Context, fileID, tombstone string, at time.Time) error {
	defer s.lock(ctx)()
	f, idx, ok := s.findFile(fileID)
	if !ok {
		return fmt.Errorf("%w: file %s", domain.ErrNotFound, fileID)
	}
	if f.Purged() {
		return fmt.Errorf("%w: file %s already purged", domain.ErrConflict, fileID)
	}
	o := s.st.orders[f.OrderID]
	o.Files = append([]domain.OrderFile(nil), o.Files...)
	o.Files[idx].StoragePath = tombstone
	purgedAt := at
	o.Files[idx].PurgedAt = &purgedAt
	s.st.orders[f.OrderID] = o
	return nil
}
