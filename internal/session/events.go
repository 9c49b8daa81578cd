package session

import (
	"time"

	"github.com/lox/klondike/internal/klondike"
)

// EventType identifies what happened in a session
type EventType string

const (
	// EventTypeNewGame fires after a fresh deal (the shuffle cue)
	EventTypeNewGame EventType = "new_game"
	// EventTypeMove fires after every accepted move (the card cue)
	EventTypeMove EventType = "move"
	// EventTypeUndo fires after a move is taken back
	EventTypeUndo EventType = "undo"
	// EventTypeWin fires once, on the move that completes the foundations
	EventTypeWin EventType = "win"
	// EventTypeSettings fires when the draw count changes mid-game
	EventTypeSettings EventType = "settings"
)

func (et EventType) String() string {
	return string(et)
}

// Event is delivered to subscribers after the session state has changed
type Event struct {
	Type      EventType
	GameID    string
	Seed      int64
	Move      klondike.Move
	Moves     int
	State     klondike.State
	Timestamp time.Time
}

// EventSubscriber can subscribe to session events
type EventSubscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to EventSubscriber
type SubscriberFunc func(Event)

func (f SubscriberFunc) OnEvent(event Event) { f(event) }

type subscription struct {
	id  uint64
	sub EventSubscriber
}

// EventBus delivers events synchronously, in subscription order
type EventBus struct {
	subscribers []subscription
	nextID      uint64
}

// Subscribe adds a subscriber to receive events. The returned func removes
// it again and is safe to call more than once.
func (bus *EventBus) Subscribe(subscriber EventSubscriber) func() {
	bus.nextID++
	id := bus.nextID
	bus.subscribers = append(bus.subscribers, subscription{id: id, sub: subscriber})
	return func() { bus.remove(id) }
}

func (bus *EventBus) remove(id uint64) {
	for i, s := range bus.subscribers {
		if s.id == id {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribers
func (bus *EventBus) Publish(event Event) {
	for _, s := range bus.subscribers {
		s.sub.OnEvent(event)
	}
}
