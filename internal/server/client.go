package server

import (
	"net/http"
	"time"

	"github.com/ChrisWaycott/mini-chalice/internal/engine"
	"github.com/ChrisWaycott/mini-chalice/pkg/api"
	"github.com/ChrisWaycott/mini-chalice/pkg/logger"
	"github.com/ChrisWaycott/mini-chalice/pkg/utils"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и Session.
// Все зрители видят одну сессию, команды любого из них идут в нее же.
type Client struct {
	Session  *engine.Session
	Conn     *websocket.Conn
	Send     chan api.ServerResponse
	ViewerID string

	// done закрывается writePump при выходе
	done chan struct{}
}

func NewClient(session *engine.Session, conn *websocket.Conn) *Client {
	return &Client{
		Session:  session,
		Conn:     conn,
		Send:     make(chan api.ServerResponse, 256),
		ViewerID: utils.GenerateID("viewer"),
		done:     make(chan struct{}),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	log := logger.Log.WithFields(logrus.Fields{
		"component": "ws_client",
		"viewer_id": c.ViewerID,
	})

	defer func() {
		c.Session.Hub.Unregister(c.ViewerID)
		if err := c.Conn.Close(); err != nil {
			log.WithError(err).Debug("failed to close websocket connection")
		}
		log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. ПОДПИСКА НА ОБНОВЛЕНИЯ
	updates := c.Session.Hub.Register(c.ViewerID)

	// Запускаем пересылку обновлений из Hub в writePump
	go c.forward(updates)

	log.Info("Client connected")

	// Отправляем INIT (триггер первой отрисовки)
	c.Session.ProcessCommand(api.ClientCommand{Action: "INIT"})

	// 2. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Error("WS error")
			}
			break
		}
		if !c.Session.ProcessCommand(cmd) {
			c.Session.Hub.SendTo(c.ViewerID, api.ServerResponse{
				Type: "ERROR",
				Logs: []api.LogEntry{{
					ID:        utils.GenerateID("err"),
					Text:      "Неизвестная команда: " + cmd.Action,
					Type:      "ERROR",
					Timestamp: time.Now().UnixMilli(),
				}},
			})
		}
	}
}

// forward перекладывает кадры из Hub в Send, пока жив writePump.
// Send закрывается здесь: других отправителей нет.
func (c *Client) forward(updates <-chan api.ServerResponse) {
	defer close(c.Send)
	for msg := range updates {
		select {
		case c.Send <- msg:
		case <-c.done:
			return
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		close(c.done)
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
