package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/opendev-labs/auto-notion/internal/domain"
)

// TypePlanned is the type of events announcing a new plan.
const TypePlanned = "content.planned"

// StatusType returns the event type announcing a move to status, such as
// "content.approved".
func StatusType(status domain.ContentStatus) string {
	return "content." + string(status)
}

const (
	// DefaultChannel is the pub/sub channel events are published to.
	DefaultChannel = "content:events"

	// DefaultHistorySize is how many recent events are kept in the history list.
	DefaultHistorySize = 1000

	historySuffix = ":recent"
)

// Event is the envelope published for every content change.
type Event struct {
	Type       string              `json:"type"`
	PageName   string              `json:"page_name"`
	ItemIDs    []string            `json:"item_ids,omitempty"`
	Item       *domain.ContentItem `json:"item,omitempty"`
	OccurredAt time.Time           `json:"occurred_at"`
}

// Publisher writes events to a Redis channel and mirrors them into a capped
// list so late subscribers can catch up.
type Publisher struct {
	client      redis.Cmdable
	channel     string
	historySize int64
	now         func() time.Time
}

// NewPublisher creates a publisher. An empty channel selects DefaultChannel.
func NewPublisher(client redis.Cmdable, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{
		client:      client,
		channel:     channel,
		historySize: DefaultHistorySize,
		now:         time.Now,
	}
}

// Channel returns the pub/sub channel name.
func (p *Publisher) Channel() string {
	return p.channel
}

// HistoryKey returns the key of the recent-events list.
func (p *Publisher) HistoryKey() string {
	return p.channel + historySuffix
}

// PublishPlanned announces a newly generated plan.
func (p *Publisher) PublishPlanned(ctx context.Context, page string, items []domain.ContentItem) error {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	return p.publish(ctx, Event{
		Type:       TypePlanned,
		PageName:   page,
		ItemIDs:    ids,
		OccurredAt: p.now().UTC(),
	})
}

// PublishStatus announces that item moved to its current status.
func (p *Publisher) PublishStatus(ctx context.Context, item domain.ContentItem) error {
	return p.publish(ctx, Event{
		Type:       StatusType(item.Status),
		PageName:   item.PageName,
		Item:       &item,
		OccurredAt: p.now().UTC(),
	})
}

func (p *Publisher) publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	_, err = p.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Publish(ctx, p.channel, payload)
		pipe.LPush(ctx, p.HistoryKey(), payload)
		pipe.LTrim(ctx, p.HistoryKey(), 0, p.historySize-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("publish %s event: %w", event.Type, err)
	}
	return nil
}
