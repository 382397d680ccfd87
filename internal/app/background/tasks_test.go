package background

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/config"
	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/usecase/points"
	"github.com/LavaJover/printshop-order-service/internal/usecase/retention"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingRetention struct {
	retention.RetentionUsecase

	mu     sync.Mutex
	modes  []domain.PurgeMode
	actors []domain.Actor
	failOn domain.PurgeMode
}

func (r *recordingRetention) PurgeEligibleFiles(ctx context.Context, actor domain.Actor, mode domain.PurgeMode, fileIDs []string) (*domain.PurgeResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modes = append(r.modes, mode)
	r.actors = append(r.actors, actor)
	if mode == r.failOn {
		return nil, errors.New("blob store down")
	}
	return &domain.PurgeResult{FilesPurged: 1}, nil
}

func (r *recordingRetention) calls() []domain.PurgeMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.PurgeMode(nil), r.modes...)
}

type recordingPoints struct {
	points.PointsUsecase

	mu      sync.Mutex
	clients []string
}

func (p *recordingPoints) EnsureClient(ctx context.Context, clientID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clients = append(p.clients, clientID)
	return nil
}

func (p *recordingPoints) ensured() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.clients...)
}

type chanSubscriber struct {
	ch chan domain.Message
}

func (s *chanSubscriber) Subscribe(ctx context.Context, topic, groupID string) (<-chan domain.Message, error) {
	return s.ch, nil
}

func TestPurgeOnceRunsBothSelections(t *testing.T) {
	ret := &recordingRetention{failOn: domain.PurgeCancelled}
	bt := NewBackgroundTasks(ret, nil, nil, config.Retention{}, config.KafkaService{}, zap.NewNop())

	bt.PurgeOnce(context.Background())

	assert.Equal(t, []domain.PurgeMode{domain.PurgeCancelled, domain.PurgeAged}, ret.calls())
	for _, a := range ret.actors {
		assert.True(t, a.IsAdmin())
	}
}

func TestRetentionLoopTicksUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ret := &recordingRetention{}
	bt := NewBackgroundTasks(ret, nil, nil,
		config.Retention{AutoPurge: true, Interval: 10 * time.Millisecond},
		config.KafkaService{}, zap.NewNop())

	bt.StartAll(ctx)
	require.Eventually(t, func() bool { return len(ret.calls()) >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	bt.Wait()
}

func TestAutoPurgeDisabledStartsNothing(t *testing.T) {
	ret := &recordingRetention{}
	bt := NewBackgroundTasks(ret, nil, nil,
		config.Retention{AutoPurge: false, Interval: time.Millisecond},
		config.KafkaService{}, zap.NewNop())

	bt.StartAll(context.Background())
	bt.Wait()
	assert.Empty(t, ret.calls())
}

func TestClientRegistrationsEnsureClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pts := &recordingPoints{}
	sub := &chanSubscriber{ch: make(chan domain.Message, 4)}
	bt := NewBackgroundTasks(nil, pts, sub, config.Retention{},
		config.KafkaService{ClientsTopic: "identity-clients", GroupID: "printshop"}, zap.NewNop())

	sub.ch <- domain.Message{Value: []byte(`{"client_id":"c-1","role":"client"}`)}
	sub.ch <- domain.Message{Value: []byte(`{"client_id":"m-1","role":"manager"}`)}
	sub.ch <- domain.Message{Value: []byte(`garbage`)}
	sub.ch <- domain.Message{Value: []byte(`{"client_id":"c-2"}`)}
	close(sub.ch)

	bt.StartAll(ctx)
	bt.Wait()

	assert.Equal(t, []string{"c-1", "c-2"}, pts.ensured())
}
