package service

import (
	"context"
	"testing"
	"time"

	"quicknotes-be/internal/pkg/logger"
	"quicknotes-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNoteEventsReachActivityLog(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	core, logs := observer.New(zap.InfoLevel)
	consumer := NewConsumerService(pubSub, "note.events", logger.NewFromZap(zap.New(core)), logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	noteID := uuid.New()
	publisher := NewPublisherService("note.events", pubSub)
	require.NoError(t, publisher.Publish(ctx, events.New(events.NoteCreated, map[string]interface{}{
		"note_id": noteID,
	})))

	require.Eventually(t, func() bool { return logs.Len() == 1 }, time.Second, 10*time.Millisecond)

	entry := logs.All()[0]
	assert.Equal(t, events.NoteCreated, entry.Message)
	assert.Equal(t, "activity", entry.ContextMap()["module"])
	details, ok := entry.ContextMap()["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, noteID.String(), details["note_id"])
}

func TestUndecodableMessageIsAcked(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, watermill.NopLogger{})
	defer pubSub.Close()

	sysCore, sysLogs := observer.New(zap.WarnLevel)
	consumer := NewConsumerService(pubSub, "note.events", logger.NewNopLogger(), logger.NewFromZap(zap.New(sysCore)))
	require.NoError(t, consumer.Consume(ctx))

	// Returns only once the consumer acked.
	require.NoError(t, pubSub.Publish("note.events", message.NewMessage(watermill.NewUUID(), []byte("garbage"))))

	assert.Equal(t, 1, sysLogs.Len())
}

func TestPublishWithoutSubscribers(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	err := NewPublisherService("note.events", pubSub).Publish(context.Background(), events.New(events.NoteDeleted, nil))
	assert.NoError(t, err)
}
