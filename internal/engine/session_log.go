package engine

import (
	"fmt"
	"time"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/pkg/api"
	"github.com/sirupsen/logrus"
)

// AddLog добавляет лог в историю сессии
func (s *Session) AddLog(text, logType string) {
	s.seq++
	s.Logs = append(s.Logs, api.LogEntry{
		ID:        fmt.Sprintf("log_%d", s.seq),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	s.log.WithFields(logrus.Fields{
		"component": "game_log",
		"log_type":  logType,
	}).Info(text)
}

// subscribeLogs превращает значимые события ядра в строки чата.
func (s *Session) subscribeLogs() {
	bus := s.ctrl.Events()

	bus.On(domain.EventAttackResolved, func(e domain.Event) {
		s.AddLog(e.Reason, "COMBAT")
	})
	bus.On(domain.EventUnitDied, func(e domain.Event) {
		s.AddLog(fmt.Sprintf("Клетка (%d,%d) осквернена.", e.Pos.X, e.Pos.Y), "COMBAT")
	})
	bus.On(domain.EventSpawnTelegraphed, func(e domain.Event) {
		s.AddLog(fmt.Sprintf("Что-то шевелится в (%d,%d)...", e.Pos.X, e.Pos.Y), "INFO")
	})
	bus.On(domain.EventUnitSpawned, func(e domain.Event) {
		if u := s.ctrl.World().Unit(e.UnitID); u != nil {
			s.AddLog(fmt.Sprintf("%s восстает из скверны.", u.Name), "COMBAT")
		}
	})
	bus.On(domain.EventTurnEnded, func(e domain.Event) {
		if e.Phase == domain.HostilePhase {
			s.AddLog(fmt.Sprintf("Ход %d.", s.ctrl.Turn()), "INFO")
		}
	})
}
