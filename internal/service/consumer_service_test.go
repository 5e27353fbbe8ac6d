package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/raneshrk02/regulations-chat/pkg/events"
)

type recordingBroadcaster struct {
	payloads []interface{}
}

func (b *recordingBroadcaster) Broadcast(payload interface{}) {
	b.payloads = append(b.payloads, payload)
}

func ingestedEvent(origin string) events.BaseEvent {
	return events.BaseEvent{
		Type: events.EventDocumentsIngested,
		Data: map[string]interface{}{
			"count":  3,
			"origin": origin,
		},
		OccurredAt: time.Now(),
	}
}

func TestHandleClusterEventDropsOwnEcho(t *testing.T) {
	broadcaster := &recordingBroadcaster{}
	cs := &consumerService{
		instanceID:  "instance-a",
		broadcaster: broadcaster,
		logger:      nopLogger{},
	}

	err := cs.handleClusterEvent(context.Background(), ingestedEvent("instance-a"))

	assert.NoError(t, err)
	assert.Empty(t, broadcaster.payloads, "self-originated event must not be re-broadcast")
}

func TestHandleClusterEventForwardsPeerEvents(t *testing.T) {
	broadcaster := &recordingBroadcaster{}
	cs := &consumerService{
		instanceID:  "instance-a",
		broadcaster: broadcaster,
		logger:      nopLogger{},
	}

	err := cs.handleClusterEvent(context.Background(), ingestedEvent("instance-b"))

	assert.NoError(t, err)
	assert.Len(t, broadcaster.payloads, 1)

	envelope, ok := broadcaster.payloads[0].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "documents_ingested", envelope["type"])
}
