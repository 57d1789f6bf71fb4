package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type UserRegisteredEvent struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type VideoPublishedEvent struct {
	VideoID string `json:"video_id"`
	OwnerID string `json:"owner_id"`
	Title   string `json:"title"`
}

// Publisher writes domain events to Kafka. A nil Publisher is a no-op so the
// service runs without brokers configured.
type Publisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})
	return &Publisher{writer: w, log: logger}
}

func (p *Publisher) PublishUserRegistered(ctx context.Context, ev UserRegisteredEvent) {
	p.publish(ctx, "user.registered", ev.UserID, ev)
}

func (p *Publisher) PublishVideoPublished(ctx context.Context, ev VideoPublishedEvent) {
	p.publish(ctx, "video.published", ev.VideoID, ev)
}

func (p *Publisher) publish(ctx context.Context, eventType, key string, payload interface{}) {
	if p == nil || p.writer == nil {
		return
	}
	body, err := json.Marshal(struct {
		Type    string      `json:"type"`
		At      time.Time   `json:"at"`
		Payload interface{} `json:"payload"`
	}{Type: eventType, At: time.Now().UTC(), Payload: payload})
	if err != nil {
		p.log.Error("marshal event", zap.String("type", eventType), zap.Error(err))
		return
	}
	msg := kafka.Message{Key: []byte(key), Value: body, Time: time.Now()}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		// events are best-effort; request handling never fails on a broker hiccup
		p.log.Warn("publish event", zap.String("type", eventType), zap.Error(err))
	}
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
