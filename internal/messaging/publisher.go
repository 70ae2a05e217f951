package messaging

import (
	"fmt"

	"github.com/khunny7/yunsol-land/internal/game"
)

// RoomSubject returns the broker subject carrying a room's channel.
func RoomSubject(roomID string) string {
	return fmt.Sprintf("room.%s", roomID)
}

// PlayerSubject returns the broker subject for targeted pushes to one player.
func PlayerSubject(playerID string) string {
	return fmt.Sprintf("player.%s", playerID)
}

// Broker is the subset of NatsServer the publisher needs.
type Broker interface {
	Publish(subject string, data []byte) error
}

// EventPublisher implements game.Publisher over broker subjects, encoding
// payloads into the wire event envelope.
type EventPublisher struct {
	broker Broker
}

func NewEventPublisher(broker Broker) *EventPublisher {
	return &EventPublisher{broker: broker}
}

func (p *EventPublisher) PublishToRoom(roomID, event string, payload any) error {
	data, err := game.EncodeEvent(event, payload)
	if err != nil {
		return err
	}
	return p.broker.Publish(RoomSubject(roomID), data)
}

func (p *EventPublisher) PublishToPlayer(playerID, event string, payload any) error {
	data, err := game.EncodeEvent(event, payload)
	if err != nil {
		return err
	}
	return p.broker.Publish(PlayerSubject(playerID), data)
}
