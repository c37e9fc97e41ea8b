package engine

import (
	"context"
	"errors"
	"time"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/internal/engine/handlers"
	"github.com/ChrisWaycott/mini-chalice/internal/engine/handlers/actions"
	"github.com/ChrisWaycott/mini-chalice/internal/network"
	"github.com/ChrisWaycott/mini-chalice/pkg/api"
	"github.com/ChrisWaycott/mini-chalice/pkg/logger"
	"github.com/sirupsen/logrus"
)

var ErrSessionStopped = errors.New("session stopped")

// Session - единственная горутина, владеющая контроллером.
// Команды клиентов, запросы отладки и тики кадра приходят через каналы.
type Session struct {
	ctrl *Controller
	Hub  *network.Broadcaster

	CommandChan chan api.ClientCommand
	queryChan   chan sessionQuery
	stopped     chan struct{}

	tick     time.Duration
	handlers map[domain.ActionType]handlers.HandlerFunc

	Logs []api.LogEntry // Логи до следующей рассылки
	seq  int

	log *logrus.Entry
}

type sessionQuery struct {
	fn   func(*Controller)
	done chan struct{}
}

func NewSession(ctrl *Controller, hub *network.Broadcaster, tick time.Duration) *Session {
	s := &Session{
		ctrl:        ctrl,
		Hub:         hub,
		CommandChan: make(chan api.ClientCommand, 100),
		queryChan:   make(chan sessionQuery),
		stopped:     make(chan struct{}),
		tick:        tick,
		handlers:    make(map[domain.ActionType]handlers.HandlerFunc),
		Logs:        []api.LogEntry{},
		log:         logger.Log.WithField("component", "session"),
	}
	s.registerHandlers()
	s.subscribeLogs()
	return s
}

func (s *Session) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionSelect] = handlers.WithPayload(actions.HandleSelect)
	s.handlers[domain.ActionDeselect] = handlers.WithEmptyPayload(actions.HandleDeselect)
	s.handlers[domain.ActionPreviewStep] = handlers.WithPayload(actions.HandlePreviewStep)
	s.handlers[domain.ActionPreviewTo] = handlers.WithPayload(actions.HandlePreviewTo)
	s.handlers[domain.ActionClearPreview] = handlers.WithEmptyPayload(actions.HandleClearPreview)
	s.handlers[domain.ActionCommit] = handlers.WithEmptyPayload(actions.HandleCommit)
	s.handlers[domain.ActionEndTurn] = handlers.WithEmptyPayload(actions.HandleEndTurn)
}

// ProcessCommand принимает команду от внешнего мира (WebSocket).
// Неизвестные действия отбрасываются до очереди.
func (s *Session) ProcessCommand(cmd api.ClientCommand) bool {
	if domain.ParseAction(cmd.Action) == domain.ActionUnknown {
		s.log.WithField("action", cmd.Action).Warn("Unknown action")
		return false
	}
	select {
	case s.CommandChan <- cmd:
		return true
	case <-s.stopped:
		return false
	}
}

// Query выполняет fn в горутине сессии и ждет завершения.
func (s *Session) Query(ctx context.Context, fn func(*Controller)) error {
	q := sessionQuery{fn: fn, done: make(chan struct{})}
	select {
	case s.queryChan <- q:
	case <-s.stopped:
		return ErrSessionStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run крутит цикл сессии до отмены ctx.
func (s *Session) Run(ctx context.Context) {
	defer close(s.stopped)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	last := time.Now()

	s.log.WithField("tick", s.tick).Info("Session loop started")
	s.publish()

	for {
		select {
		case <-ctx.Done():
			// Телеграфированные порождения умирают вместе с сессией
			if n := s.ctrl.CancelPendingSpawns(); n > 0 {
				s.log.WithField("spawns", n).Info("Pending spawns canceled")
			}
			s.log.Info("Session loop stopped")
			return

		case cmd := <-s.CommandChan:
			s.execute(cmd)
			s.publish()

		case q := <-s.queryChan:
			q.fn(s.ctrl)
			close(q.done)
			// Запрос мог изменить состояние (Reset)
			if s.ctrl.Events().Pending() > 0 {
				s.publish()
			}

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if s.Step(dt) {
				s.publish()
			}
		}
	}
}

// Step двигает часы контроллера. true, если есть что разослать.
func (s *Session) Step(dt time.Duration) bool {
	fired := s.ctrl.Tick(dt)
	return fired > 0 || s.ctrl.Events().Pending() > 0
}

// execute выполняет команду через реестр хендлеров.
func (s *Session) execute(cmd api.ClientCommand) {
	actionType := domain.ParseAction(cmd.Action)
	handler, ok := s.handlers[actionType]
	if !ok {
		return
	}

	result, err := handler(handlers.Context{Ctrl: s.ctrl}, cmd.Payload)
	if err != nil {
		s.log.WithError(err).WithField("action", cmd.Action).Warn("Command rejected")
		s.AddLog(err.Error(), "ERROR")
		return
	}
	if result.Msg != "" {
		s.AddLog(result.Msg, result.MsgType)
	}
}

// publish рассылает снимок со всеми накопленными событиями и логами.
func (s *Session) publish() {
	events := s.ctrl.DrainEvents()
	snapshot := BuildSnapshot(s.ctrl, events, s.Logs)
	s.Hub.Broadcast(*snapshot)

	// Очищаем логи после рассылки
	s.Logs = []api.LogEntry{}
}
