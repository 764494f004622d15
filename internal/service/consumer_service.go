package service

import (
	"context"
	"encoding/json"
	"time"

	"cet-mentor-be/internal/dto"
	"cet-mentor-be/internal/entity"
	"cet-mentor-be/internal/pkg/logger"
	"cet-mentor-be/pkg/events"
	"cet-mentor-be/pkg/feedback"
	"cet-mentor-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the feedback topic: every entry is appended to the
// CSV log and, when a NATS publisher is configured, broadcast as an event.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	sink      *feedback.CSVSink
	publisher *nats.Publisher // nil when NATS is disabled
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sink *feedback.CSVSink,
	publisher *nats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		sink:      sink,
		publisher: publisher,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.FeedbackMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal feedback message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads are never going to parse, don't retry
		return
	}

	fb := entity.Feedback{
		Type:       payload.Type,
		Message:    payload.Message,
		Response:   payload.Response,
		Correction: payload.Correction,
	}
	if id, err := uuid.Parse(payload.Id); err == nil {
		fb.Id = id
	} else {
		fb.Id = uuid.New()
	}
	if t, err := time.Parse(time.RFC3339, payload.CreatedAt); err == nil {
		fb.CreatedAt = t
	} else {
		fb.CreatedAt = time.Now()
	}

	if err := cs.sink.Append(fb); err != nil {
		cs.logger.Error("consumer", "Failed to append feedback to CSV", map[string]interface{}{
			"feedback_id": fb.Id.String(),
			"error":       err.Error(),
		})
		msg.Nack() // disk write is retriable
		return
	}

	if cs.publisher != nil {
		if err := cs.publisher.Publish(ctx, events.NewFeedbackRecorded(fb)); err != nil {
			// CSV row is already durable; the event is best effort.
			cs.logger.Warn("consumer", "Failed to publish feedback event", map[string]interface{}{
				"feedback_id": fb.Id.String(),
				"error":       err.Error(),
			})
		}
	}

	cs.logger.Info("consumer", "Feedback recorded", map[string]interface{}{
		"feedback_id": fb.Id.String(),
		"type":        fb.Type,
	})
	msg.Ack()
}
