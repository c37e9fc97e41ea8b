package network

import (
	"sync"

	"github.com/ChrisWaycott/mini-chalice/pkg/api"
	"github.com/ChrisWaycott/mini-chalice/pkg/logger"
)

// Broadcaster занимается только рассылкой снимков зрителям сессии.
// Последний снимок кешируется: новый зритель сразу получает текущее поле.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ViewerID -> Личный канал
	subscribers map[string]chan api.ServerResponse
	last        *api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал для зрителя
func (b *Broadcaster) Register(viewerID string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[viewerID]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 100)
	if b.last != nil {
		ch <- *b.last
	}
	b.subscribers[viewerID] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(viewerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[viewerID]; ok {
		close(ch)
		delete(b.subscribers, viewerID)
	}
}

// SendTo отправляет сообщение конкретному зрителю (Unicast)
func (b *Broadcaster) SendTo(viewerID string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[viewerID]; ok {
		select {
		case ch <- msg:
		default:
			logger.Log.WithField("viewer_id", viewerID).Warn("Hub: channel full, frame dropped")
		}
	}
}

// Broadcast отправляет всем и запоминает снимок
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	frame := msg
	b.last = &frame
	for id, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			logger.Log.WithField("viewer_id", id).Warn("Hub: channel full, frame dropped")
		}
	}
}

// Last возвращает последний разосланный снимок.
func (b *Broadcaster) Last() (api.ServerResponse, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.last == nil {
		return api.ServerResponse{}, false
	}
	return *b.last, true
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
