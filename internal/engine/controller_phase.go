package engine

import (
	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/internal/systems"
	"github.com/sirupsen/logrus"
)

// beginHostilePhase вызывается только при нуле движущихся юнитов.
func (c *Controller) beginHostilePhase() {
	if c.phase != domain.PlayerPhase {
		return
	}
	c.endPending = false
	c.clearSelection()
	c.phase = domain.HostilePhase
	c.refreshVisibility()
	c.emit(domain.Event{Type: domain.EventTurnEnded, Phase: domain.PlayerPhase})

	// Очередь фиксируется на старте: порожденные в эту фазу ходят в следующую
	c.sweep = c.sweep[:0]
	for _, u := range c.world.UnitsOf(domain.FactionHostile) {
		c.sweep = append(c.sweep, u.ID)
	}

	c.log.WithFields(logrus.Fields{
		"turn":     c.turn,
		"hostiles": len(c.sweep),
	}).Info("Hostile phase started")

	c.advanceSweep()
}

// advanceSweep ведет врагов по одному. Шаг врага анимируется,
// и следующий враг решает только после его завершения.
func (c *Controller) advanceSweep() {
	for len(c.sweep) > 0 {
		id := c.sweep[0]
		c.sweep = c.sweep[1:]

		npc := c.world.Unit(id)
		if npc == nil || !npc.Alive {
			continue
		}

		decision := systems.ComputeHostileAction(c.world, npc)
		switch decision.Action {
		case domain.ActionAttack:
			c.attack(npc, decision.Target)
		case domain.ActionMove:
			to := npc.Pos.Shift(decision.Dx, decision.Dy)
			path := systems.CommittedPath{
				UnitID: npc.ID,
				Origin: npc.Pos,
				Steps:  []domain.PathStep{{X: to.X, Y: to.Y}},
				Cost:   systems.StepCost(decision.Dx, decision.Dy),
			}
			c.startMovement(npc, path, false, func(*Movement) { c.advanceSweep() })
			return
		}
	}

	c.whenIdle(c.finishHostilePhase)
}

// finishHostilePhase возвращает ход игроку и восстанавливает AP.
func (c *Controller) finishHostilePhase() {
	if c.phase != domain.HostilePhase || len(c.sweep) > 0 {
		return
	}

	ended := c.turn
	c.phase = domain.PlayerPhase
	c.turn++
	for _, u := range c.world.UnitsOf(domain.FactionPlayer) {
		u.RestoreAP(c.cfg.APPerTurn)
	}
	c.refreshVisibility()
	c.emit(domain.Event{Type: domain.EventTurnEnded, Phase: domain.HostilePhase, Turn: ended})

	c.log.WithField("turn", c.turn).Info("Player phase started")
}
