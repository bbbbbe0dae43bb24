// Package eventbus publishes domain events for audit and logging.
package eventbus

import (
	"time"

	evbus "github.com/asaskevich/EventBus"

	"keneviz-panel-go/internal/platform/logging"
)

// Topics published on the bus.
const (
	TopicChallengePassed = "session:challenge_passed"
	TopicLogin           = "session:login"
	TopicLogout          = "session:logout"
	TopicAdminLogin      = "admin:login"
	TopicKeyMinted       = "key:minted"
	TopicLookupExecuted  = "lookup:executed"
	TopicLookupFailed    = "lookup:failed"
)

// Event is the payload published on every topic.
type Event struct {
	Type      string
	SessionID string
	KeyID     *uint
	Data      map[string]interface{}
	At        time.Time
}

// Bus wraps the process event bus. Publishes are asynchronous so an
// audit write never delays a request.
type Bus struct {
	bus    evbus.Bus
	logger *logging.Logger
}

func New(logger *logging.Logger) *Bus {
	return &Bus{bus: evbus.New(), logger: logger}
}

// Publish emits an event on its topic. The event type is filled from
// the topic, the timestamp from the clock.
func (b *Bus) Publish(topic string, event Event) {
	event.Type = topic
	if event.At.IsZero() {
		event.At = time.Now()
	}
	b.bus.Publish(topic, event)
}

// Subscribe registers an asynchronous handler for a topic.
func (b *Bus) Subscribe(topic string, handler func(Event)) error {
	return b.bus.SubscribeAsync(topic, handler, false)
}

// WaitAsync blocks until all in-flight handlers finish. Used at
// shutdown and in tests.
func (b *Bus) WaitAsync() {
	b.bus.WaitAsync()
}
