package service

import (
	"context"

	"quicknotes-be/internal/pkg/logger"
	"quicknotes-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	activityLog logger.ILogger
	sysLog      logger.ILogger
}

// NewConsumerService writes one activity log line per note event. sysLog
// receives decoding problems.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	activityLog logger.ILogger,
	sysLog logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		activityLog: activityLog,
		sysLog:      sysLog,
	}
}

// Consume subscribes and returns; messages are handled on a separate
// goroutine until ctx is cancelled.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	evt, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.sysLog.Warn("consumer", "Dropping undecodable event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		// Redelivery would fail the same way.
		msg.Ack()
		return
	}

	details := make(map[string]interface{}, len(evt.Data)+1)
	for k, v := range evt.Data {
		details[k] = v
	}
	details["occurred_at"] = evt.OccurredAt

	cs.activityLog.Info("activity", evt.Type, details)
	msg.Ack()
}
