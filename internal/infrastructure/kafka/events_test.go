package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePort struct {
	topics []string
	msgs   []domain.Message
}

func (c *capturePort) Publish(_ context.Context, topic string, msgs ...domain.Message) error {
	for range msgs {
		c.topics = append(c.topics, topic)
	}
	c.msgs = append(c.msgs, msgs...)
	return nil
}

func TestPublishLedgerKeysByClient(t *testing.T) {
	port := &capturePort{}
	p := NewKafkaEventPublisher(port, "ledger", "maintenance")
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	err := p.PublishLedger(context.Background(),
		domain.LedgerEvent{Type: domain.LedgerAccrued, ClientID: "c1", OrderID: "o1", Points: 40, OccurredAt: at},
		domain.LedgerEvent{Type: domain.LedgerReconciled, Clients: 3, OccurredAt: at},
	)
	require.NoError(t, err)
	require.Len(t, port.msgs, 2)
	assert.Equal(t, []string{"ledger", "ledger"}, port.topics)
	assert.Equal(t, "c1", string(port.msgs[0].Key))
	assert.Equal(t, "reconciled", string(port.msgs[1].Key))

	var m LedgerMessage
	require.NoError(t, json.Unmarshal(port.msgs[0].Value, &m))
	assert.Equal(t, "accrued", m.Type)
	assert.Equal(t, int64(40), m.Points)
	assert.Equal(t, "o1", m.OrderID)
}

func TestPublishMaintenance(t *testing.T) {
	port := &capturePort{}
	p := NewKafkaEventPublisher(port, "ledger", "maintenance")

	err := p.PublishMaintenance(context.Background(), domain.MaintenanceEvent{
		Type: domain.MaintenanceFilesPurged, Mode: domain.PurgeAged, Affected: 5, Failed: 1,
	})
	require.NoError(t, err)
	require.Len(t, port.msgs, 1)
	assert.Equal(t, "maintenance", port.topics[0])

	var m MaintenanceMessage
	require.NoError(t, json.Unmarshal(port.msgs[0].Value, &m))
	assert.Equal(t, "aged", m.Mode)
	assert.Equal(t, int64(5), m.Affected)
}

func TestDecodeClientRegistered(t *testing.T) {
	ev, skip, err := DecodeClientRegistered(domain.Message{Value: []byte(`{"client_id":"c-9","role":"client"}`)})
	require.NoError(t, err)
	assert.False(t, skip)
	assert.Equal(t, "c-9", ev.ClientID)

	_, skip, err = DecodeClientRegistered(domain.Message{Value: []byte(`{"client_id":"m-1","role":"manager"}`)})
	require.NoError(t, err)
	assert.True(t, skip)

	_, _, err = DecodeClientRegistered(domain.Message{Value: []byte(`{"role":"client"}`)})
	assert.Error(t, err)

	_, _, err = DecodeClientRegistered(domain.Message{Value: []byte(`not json`)})
	assert.Error(t, err)
}
