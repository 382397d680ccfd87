package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
)

func (s *Store) EnsureClient(ctx context.Context, clientID string) error {
	defer s.lock(ctx)()
	if _, ok := s.st.clients[clientID]; ok {
		return nil
	}
	now := time.Now().UTC()
	s.st.clients[clientID] = domain.Client{ID: clientID, CreatedAt: now, UpdatedAt: now}
	return nil
}

func (s *Store) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	defer s.lock(ctx)()
	c, ok := s.st.clients[clientID]
	if !ok {
		return nil, fmt.Errorf("%w: client %s", domain.ErrNotFound, clientID)
	}
	return &c, nil
}

func (s *Store) AddPoints(ctx context.Context, clientID string, amount int64) error {
	defer s.lock(ctx)()
	c, ok := s.st.clients[clientID]
	if !ok {
		return fmt.Errorf("%w: client %s", domain.ErrNotFound, clientID)
	}
	c.Points += amount
	c.UpdatedAt = time.Now().UTC()
	s.st.clients[clientID] = c
	return nil
}

func (s *Store) DebitPoints(ctx context.Context, clientID string, amount int64) (int64, error) {
	defer s.lock(ctx)()
	c, ok := s.st.clients[clientID]
	if !ok {
		return 0, fmt.Errorf("%w: client %s", domain.ErrNotFound, clientID)
	}
	if c.Points < amount {
		return c.Points, fmt.Errorf("%w: balance %d, need %d", domain.ErrInsufficientPoints, c.Points, amount)
	}
	c.Points -= amount
	c.UpdatedAt = time.Now().UTC()
	s.st.clients[clientID] = c
	return c.Points, nil
}

func (s *Store) ReconcilePoints(ctx context.Context, mode domain.ReconcileMode) (int64, error) {
	defer s.lock(ctx)()

	earned := map[string]int64{}
	for _, o := range s.st.orders {
		if o.Status == domain.StatusCompleted {
			earned[o.ClientID] += o.PointsEarned
		}
	}
	spent := map[string]int64{}
	if mode == domain.ReconcileNet {
		for _, r := range s.st.redemptions {
			spent[r.ClientID] += r.PointsSpent
		}
	}

	now := time.Now().UTC()
	var updated int64
	for id, c := range s.st.clients {
		balance := earned[id] - spent[id]
		if balance < 0 {
			balance = 0
		}
		c.Points = balance
		c.UpdatedAt = now
		s.st.clients[id] = c
		updated++
	}
	return updated, nil
}

func (s *Store) CreateReward(ctx context.Context, reward *domain.Reward) error {
	defer s.lock(ctx)()
	if _, ok := s.st.rewards[reward.ID]; ok {
		return fmt.Errorf("%w: reward %s exists", domain.ErrConflict, reward.ID)
	}
	s.st.rewards[reward.ID] = *reward
	return nil
}

func (s *Store) GetReward(ctx context.Context, rewardID string) (*domain.Reward, error) {
	defer s.lock(ctx)()
	r, ok := s.st.rewards[rewardID]
	if !ok {
		return nil, fmt.Errorf("%w: reward %s", domain.ErrNotFound, rewardID)
	}
	return &r, nil
}

func (s *Store) ListRewards(ctx context.Context, activeOnly bool) ([]*domain.Reward, error) {
	defer s.lock(ctx)()
	out := make([]*domain.Reward, 0, len(s.st.rewards))
	for _, r := range s.st.rewards {
		if activeOnly && !r.IsActive {
			continue
		}
		r := r
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PointsCost == out[j].PointsCost {
			return out[i].Name < out[j].Name
		}
		return out[i].PointsCost < out[j].PointsCost
	})
	return out, nil
}

func (s *Store) UpdateReward(ctx context.Context, reward *domain.Reward) error {
	defer s.lock(ctx)()
	if _, ok := s.st.rewards[reward.ID]; !ok {
		return fmt.Errorf("%w: reward %s", domain.ErrNotFound, reward.ID)
	}
	s.st.rewards[reward.ID] = *reward
	return nil
}

func (s *Store) CreateRedemption(ctx context.Context, redemption *domain.RewardRedemption) error {
	defer s.lock(ctx)()
	if _, ok := s.st.rewards[redemption.RewardID]; !ok {
		return fmt.Errorf("%w: reward %s", domain.ErrNotFound, redemption.RewardID)
	}
	s.st.redemptions = append(s.st.redemptions, *redemption)
	return nil
}

func (s *Store) ListRedemptions(ctx context.Context, clientID string) ([]*domain.RewardRedemption, error) {
	defer s.lock(ctx)()
	var out []*domain.RewardRedemption
	for _, r := range s.st.redemptions {
		if r.ClientID == clientID {
			r := r
			out = append(out, &r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RedeemedAt.After(out[j].RedeemedAt) })
	return out, nil
}
