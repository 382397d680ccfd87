package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
)

type LedgerMessage struct {
	Type       string    `json:"type"`
	ClientID   string    `json:"client_id,omitempty"`
	OrderID    string    `json:"order_id,omitempty"`
	RewardID   string    `json:"reward_id,omitempty"`
	Points     int64     `json:"points"`
	Clients    int64     `json:"clients,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type MaintenanceMessage struct {
	Type       string    `json:"type"`
	ActorID    string    `json:"actor_id,omitempty"`
	Percent    string    `json:"percent,omitempty"`
	Mode       string    `json:"mode,omitempty"`
	Affected   int64     `json:"affected"`
	Failed     int64     `json:"failed,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ClientRegisteredEvent arrives from the identity service on the clients topic.
type ClientRegisteredEvent struct {
	ClientID string `json:"client_id"`
	Role     string `json:"role"`
}

// DecodeClientRegistered parses a clients topic message. Only client
// registrations carry a usable id; other roles are reported as skip.
func DecodeClientRegistered(msg domain.Message) (ev ClientRegisteredEvent, skip bool, err error) {
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		return ev, false, fmt.Errorf("decode client event: %w", err)
	}
	if ev.ClientID == "" {
		return ev, false, fmt.Errorf("decode client event: missing client_id")
	}
	if ev.Role != "" && ev.Role != string(domain.RoleClient) {
		return ev, true, nil
	}
	return ev, false, nil
}

// KafkaEventPublisher serialises domain events onto the configured topics.
type KafkaEventPublisher struct {
	port             domain.PublisherPort
	ledgerTopic      string
	maintenanceTopic string
}

func NewKafkaEventPublisher(port domain.PublisherPort, ledgerTopic, maintenanceTopic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		port:             port,
		ledgerTopic:      ledgerTopic,
		maintenanceTopic: maintenanceTopic,
	}
}

func (p *KafkaEventPublisher) PublishLedger(ctx context.Context, events ...domain.LedgerEvent) error {
	msgs := make([]domain.Message, 0, len(events))
	for _, e := range events {
		v, err := json.Marshal(LedgerMessage{
			Type:       string(e.Type),
			ClientID:   e.ClientID,
			OrderID:    e.OrderID,
			RewardID:   e.RewardID,
			Points:     e.Points,
			Clients:    e.Clients,
			OccurredAt: e.OccurredAt,
		})
		if err != nil {
			return fmt.Errorf("marshal ledger event: %w", err)
		}
		key := e.ClientID
		if key == "" {
			key = string(e.Type)
		}
		msgs = append(msgs, domain.Message{Key: []byte(key), Value: v})
	}
	return p.port.Publish(ctx, p.ledgerTopic, msgs...)
}

func (p *KafkaEventPublisher) PublishMaintenance(ctx context.Context, e domain.MaintenanceEvent) error {
	v, err := json.Marshal(MaintenanceMessage{
		Type:       string(e.Type),
		ActorID:    e.ActorID,
		Percent:    e.Percent,
		Mode:       string(e.Mode),
		Affected:   e.Affected,
		Failed:     e.Failed,
		OccurredAt: e.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal maintenance event: %w", err)
	}
	return p.port.Publish(ctx, p.maintenanceTopic, domain.Message{Key: []byte(e.Type), Value: v})
}

// NopEventPublisher drops events when kafka is disabled.
type NopEventPublisher struct{}

func (NopEventPublisher) PublishLedger(context.Context, ...domain.LedgerEvent) error { return nil }

func (NopEventPublisher) PublishMaintenance(context.Context, domain.MaintenanceEvent) error {
	return nil
}
