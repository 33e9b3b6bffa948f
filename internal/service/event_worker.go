package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/metrics"
)

// Change event types published after successful commands.
const (
	EventContactCreated       = "contact.created"
	EventContactUpdated       = "contact.updated"
	EventContactDeleted       = "contact.deleted"
	EventInteractionCreated   = "interaction.created"
	EventRelationshipUpserted = "relationship.upserted"
	EventRelationshipUpdated  = "relationship.updated"
	EventRelationshipDeleted  = "relationship.deleted"
	EventJournalCreated       = "journal.created"
	EventImportCompleted      = "import.completed"
)

// Event is a single change to hand to the live feed.
type Event struct {
	Type     string
	EntityID string
	Data     any
}

// Publisher delivers events to live subscribers.
type Publisher interface {
	Publish(eventType string, data any)
}

// EventEnqueuer accepts events for asynchronous delivery.
type EventEnqueuer interface {
	Enqueue(ev *Event)
}

// EventWorker buffers change events and delivers them via a single goroutine,
// so commands never wait on subscribers.
type EventWorker struct {
	pub    Publisher
	log    *logrus.Logger
	events chan *Event
}

// NewEventWorker creates an EventWorker with the given queue capacity.
func NewEventWorker(pub Publisher, log *logrus.Logger, queueSize int) *EventWorker {
	if queueSize <= 0 {
		queueSize = 1000
	}
	return &EventWorker{
		pub:    pub,
		log:    log,
		events: make(chan *Event, queueSize),
	}
}

// Enqueue adds an event. Non-blocking; drops the event if the queue is full.
func (w *EventWorker) Enqueue(ev *Event) {
	select {
	case w.events <- ev:
	default:
		metrics.EventsDropped.WithLabelValues(ev.Type).Inc()
		w.log.WithField("event", ev.Type).Warn("event queue full, dropping event")
	}
}

// Run delivers events until the context is cancelled, then drains remaining events.
func (w *EventWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case ev := <-w.events:
			w.process(ev)
		}
	}
}

func (w *EventWorker) drain() {
	for {
		select {
		case ev := <-w.events:
			w.process(ev)
		default:
			return
		}
	}
}

func (w *EventWorker) process(ev *Event) {
	w.log.WithFields(logrus.Fields{"event": ev.Type, "entity_id": ev.EntityID}).Debug("publishing change")
	w.pub.Publish(ev.Type, ev.Data)
}

// publish enqueues an event if q is set.
func publish(q EventEnqueuer, eventType, entityID string, data any) {
	if q == nil {
		return
	}

	q.Enqueue(&Event{Type: eventType, EntityID: entityID, Data: data})
}
