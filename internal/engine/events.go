package engine

import (
	"github.com/ChrisWaycott/mini-chalice/internal/domain"
)

// EventHandler - синхронный обработчик события.
type EventHandler func(domain.Event)

// EventBus раздает события подписчикам сразу и копит их до Drain
// для рассылки презентации.
type EventBus struct {
	handlers map[domain.EventType][]EventHandler
	any      []EventHandler
	pending  []domain.Event
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[domain.EventType][]EventHandler),
	}
}

// On подписывает обработчик на один тип события.
func (b *EventBus) On(t domain.EventType, h EventHandler) {
	b.handlers[t] = append(b.handlers[t], h)
}

// OnAny подписывает обработчик на все события.
func (b *EventBus) OnAny(h EventHandler) {
	b.any = append(b.any, h)
}

func (b *EventBus) Emit(e domain.Event) {
	b.pending = append(b.pending, e)
	for _, h := range b.handlers[e.Type] {
		h(e)
	}
	for _, h := range b.any {
		h(e)
	}
}

// Drain забирает накопленные события.
func (b *EventBus) Drain() []domain.Event {
	out := b.pending
	b.pending = nil
	return out
}

func (b *EventBus) Pending() int {
	return len(b.pending)
}
