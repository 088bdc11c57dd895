package events

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key()),
		Value: payload,
	})
}

// KafkaSubscriber fans messages from a single reader out to one channel.
// A reader owns its consumer-group membership, so each subscription needs its
// own reader.
type KafkaSubscriber struct {
	Reader MessageReader
	Logger *zap.SugaredLogger
}

func NewKafkaSubscriber(reader MessageReader, logger *zap.SugaredLogger) *KafkaSubscriber {
	return &KafkaSubscriber{Reader: reader, Logger: logger}
}

func (s *KafkaSubscriber) Subscribe(ctx context.Context, filter Filter) (<-chan Event, error) {
	if s.Reader == nil {
		return nil, errors.New("events: subscriber has no reader")
	}
	out := make(chan Event)
	go func() {
		defer close(out)
		for {
			message, err := s.Reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.Logger.Warnw("failed to read event", "error", err)
				continue
			}

			var event Event
			if err := json.Unmarshal(message.Value, &event); err != nil {
				s.Logger.Warnw("dropping malformed event", "key", string(message.Key), "error", err)
				continue
			}
			if filter != nil && !filter(event) {
				continue
			}

			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
