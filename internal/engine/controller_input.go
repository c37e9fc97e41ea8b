package engine

import (
	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/internal/systems"
	"github.com/sirupsen/logrus"
)

// Select выбирает юнит игрока и считает его зону досягаемости.
// Недопустимый выбор ничего не меняет и порождает SELECTION_REJECTED.
func (c *Controller) Select(id domain.UnitID) bool {
	u := c.world.Unit(id)
	if reason := c.selectionBlocker(u); reason != "" {
		c.rejectSelection(id, reason)
		return false
	}

	// Другой выбор (или повторный) сбрасывает старый предпросмотр
	c.clearSelection()
	c.selected = id
	c.moveRange = systems.ComputeMovementRange(c.world, u, c.cfg.TilesPerAP)
	c.preview = systems.NewPathBuilder(c.world, u, c.cfg.TilesPerAP, c.cfg.AttackAPCost)

	c.emit(domain.Event{Type: domain.EventUnitSelected, UnitID: id, Pos: u.Pos})
	c.log.WithFields(logrus.Fields{
		"unit_id":   id,
		"ap":        u.ActionPoints,
		"reachable": c.moveRange.Len(),
	}).Debug("Unit selected")
	return true
}

// SelectAt выбирает юнит по координатам клетки.
func (c *Controller) SelectAt(x, y int) bool {
	if !c.world.InBounds(x, y) {
		c.rejectSelection(0, "out_of_bounds")
		return false
	}
	u := c.world.UnitAt(x, y)
	if u == nil {
		c.rejectSelection(0, "empty_tile")
		return false
	}
	return c.Select(u.ID)
}

// Deselect сбрасывает выбор без изменения симуляции.
func (c *Controller) Deselect() {
	c.clearSelection()
}

func (c *Controller) selectionBlocker(u *domain.Unit) string {
	switch {
	case c.phase != domain.PlayerPhase:
		return "wrong_phase"
	case c.endPending:
		return "turn_ending"
	case u == nil:
		return "unknown_unit"
	case !u.Alive:
		return "dead"
	case u.Faction != domain.FactionPlayer:
		return "not_controllable"
	case u.Busy:
		return "busy"
	case u.ActionPoints <= 0:
		return "no_action_points"
	}
	return ""
}

func (c *Controller) rejectSelection(id domain.UnitID, reason string) {
	c.emit(domain.Event{Type: domain.EventSelectionRejected, UnitID: id, Reason: reason})
	c.log.WithFields(logrus.Fields{
		"unit_id": id,
		"reason":  reason,
	}).Debug("Selection rejected")
}

// PreviewStep передает запрос соседней клетки построителю пути.
func (c *Controller) PreviewStep(x, y int) bool {
	if c.preview == nil {
		return false
	}
	return c.preview.TryExtend(x, y)
}

// PreviewTo загружает канонический путь до клетки. На клетке противника
// путь ведет к самой дешевой соседней клетке и заканчивается атакой.
func (c *Controller) PreviewTo(x, y int) bool {
	if c.preview == nil {
		return false
	}

	// 1. Обычная клетка из зоны досягаемости
	if path := c.moveRange.PathTo(x, y); path != nil {
		return c.preview.Load(path)
	}

	// 2. Противник
	mover := c.world.Unit(c.selected)
	target := c.world.UnitAt(x, y)
	if !mover.IsOpposing(target) {
		c.preview.Clear()
		return false
	}

	candidates := []systems.RangeEntry{{Target: c.moveRange.Origin}}
	candidates = append(candidates, c.moveRange.Entries()...)
	for _, cand := range candidates {
		if !cand.Target.IsAdjacent(target.Pos) {
			continue
		}
		if !c.preview.Load(cand.Path) || !c.preview.TryExtend(x, y) {
			continue
		}
		if _, ok := c.preview.Target(); ok {
			return true
		}
	}

	c.preview.Clear()
	return false
}

// ClearPreview сбрасывает путь, выбор остается.
func (c *Controller) ClearPreview() {
	if c.preview != nil {
		c.preview.Clear()
	}
}

// Commit отправляет путь предпросмотра на исполнение.
// Устаревший бюджет отклоняется до начала анимации.
func (c *Controller) Commit() error {
	if c.phase != domain.PlayerPhase {
		return c.rejectCommit(ErrWrongPhase)
	}
	if c.endPending {
		return c.rejectCommit(ErrTurnEnding)
	}
	if c.preview == nil {
		return c.rejectCommit(ErrNoSelection)
	}

	path, err := c.preview.Commit()
	if err != nil {
		return c.rejectCommit(err)
	}

	u := c.world.Unit(path.UnitID)
	c.moveRange = nil
	c.preview = nil

	c.emit(domain.Event{
		Type:   domain.EventPathCommitted,
		UnitID: u.ID,
		Pos:    path.Origin,
		Path:   path.Steps,
		APCost: path.APCost,
	})
	c.log.WithFields(logrus.Fields{
		"unit_id": u.ID,
		"steps":   len(path.Steps),
		"ap_cost": path.APCost,
		"attack":  path.Target != nil,
	}).Info("Path committed")

	c.startMovement(u, path, true, nil)
	return nil
}

func (c *Controller) rejectCommit(err error) error {
	c.emit(domain.Event{Type: domain.EventCommitRejected, UnitID: c.selected, Reason: err.Error()})
	c.log.WithError(err).WithField("unit_id", c.selected).Debug("Commit rejected")
	return err
}

// EndTurn запрашивает переход к фазе врагов. Если кто-то еще движется,
// переход откладывается до завершения всех движений.
func (c *Controller) EndTurn() bool {
	if c.phase != domain.PlayerPhase {
		c.log.WithField("phase", c.phase).Debug("End turn ignored")
		return false
	}
	if c.endPending {
		return true
	}

	c.endPending = true
	c.clearSelection()
	if c.IsBusy() {
		c.log.WithField("moving", len(c.moves)).Info("End turn deferred until movement completes")
	}
	c.whenIdle(c.beginHostilePhase)
	return true
}

// checkAutoEndTurn завершает ход, когда у всех живых юнитов игрока кончились AP.
func (c *Controller) checkAutoEndTurn() {
	if c.phase != domain.PlayerPhase || c.endPending {
		return
	}
	players := c.world.UnitsOf(domain.FactionPlayer)
	if len(players) == 0 {
		return
	}
	for _, u := range players {
		if u.ActionPoints > 0 || u.Busy {
			return
		}
	}
	c.log.Info("All player units exhausted, ending turn")
	c.EndTurn()
}
