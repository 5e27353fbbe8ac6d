package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/raneshrk02/regulations-chat/internal/dto"
	"github.com/raneshrk02/regulations-chat/internal/pkg/logger"
	"github.com/raneshrk02/regulations-chat/pkg/events"
	pkgNats "github.com/raneshrk02/regulations-chat/pkg/nats"
)

// Broadcaster delivers a payload to every connected chat client. Implemented
// by the websocket hub.
type Broadcaster interface {
	Broadcast(payload interface{})
}

// IConsumerService forwards ingestion events to connected clients so open
// chat sessions learn when fresh documents arrive.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	natsSubscriber *pkgNats.Subscriber // nil when NATS is not configured
	broadcaster    Broadcaster
	instanceID     string
	logger         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	natsSubscriber *pkgNats.Subscriber,
	broadcaster Broadcaster,
	instanceID string,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		natsSubscriber: natsSubscriber,
		broadcaster:    broadcaster,
		instanceID:     instanceID,
		logger:         sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, events.EventDocumentsIngested)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	if cs.natsSubscriber != nil {
		subject := fmt.Sprintf("events.%s", events.EventDocumentsIngested)
		// Per-instance durable so every instance receives its own copy of
		// each event rather than competing for one delivery.
		durable := fmt.Sprintf("regulations-chat-%s", cs.instanceID[:8])
		err := cs.natsSubscriber.Subscribe(subject, durable, cs.handleClusterEvent)
		if err != nil {
			// Local gochannel delivery still works; cross-instance fan-out is lost.
			cs.logger.Warn("ConsumerService", "NATS subscription failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return nil
}

// handleClusterEvent forwards an ingestion event from a peer instance to the
// local hub. Events this instance originated were already delivered over the
// in-process bus, so its own NATS echo is dropped.
func (cs *consumerService) handleClusterEvent(ctx context.Context, event events.Event) error {
	if origin, ok := event.Payload()["origin"].(string); ok && origin == cs.instanceID {
		return nil
	}
	cs.broadcaster.Broadcast(map[string]interface{}{
		"type": "documents_ingested",
		"data": event.Payload(),
	})
	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.DocumentsIngestedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal ingestion event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid messages are not retriable
		return
	}

	cs.logger.Info("ConsumerService", "Broadcasting ingestion event", map[string]interface{}{
		"count": payload.Count,
	})

	cs.broadcaster.Broadcast(map[string]interface{}{
		"type": "documents_ingested",
		"data": payload,
	})
	msg.Ack()
}
