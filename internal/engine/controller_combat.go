package engine

import (
	"fmt"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/internal/systems"
	"github.com/sirupsen/logrus"
)

// pendingSpawn - телеграфированное порождение на оскверненной клетке.
type pendingSpawn struct {
	SourceID domain.UnitID
	Name     string
	Pos      domain.Position
	Stats    systems.SpawnStats
}

// resolveMelee атакует клетку at, если там живой противник по соседству.
func (c *Controller) resolveMelee(attacker *domain.Unit, at domain.Position) bool {
	target := c.world.UnitAt(at.X, at.Y)
	if !attacker.IsOpposing(target) || !attacker.Pos.IsAdjacent(at) {
		c.log.WithFields(logrus.Fields{
			"unit_id": attacker.ID,
			"x":       at.X,
			"y":       at.Y,
		}).Debug("Melee target gone")
		return false
	}
	c.attack(attacker, target)
	return true
}

func (c *Controller) attack(attacker, target *domain.Unit) {
	res := systems.ApplyAttack(attacker, target, c.cfg.MeleeDamage)
	c.emit(domain.Event{
		Type:     domain.EventAttackResolved,
		UnitID:   attacker.ID,
		TargetID: target.ID,
		Pos:      target.Pos,
		Damage:   res.Damage,
		HP:       res.HPAfter,
		Reason:   res.Msg,
	})
	if res.Killed {
		c.killUnit(target)
	}
}

// killUnit: юнит снимается с поля, клетка навсегда оскверняется,
// а через SpawnDelay на ней появляется ослабленный враг.
func (c *Controller) killUnit(u *domain.Unit) {
	pos := u.Pos
	u.Alive = false
	u.Busy = false

	// 1. Реестр и индекс
	c.world.RemoveUnit(u.ID)
	if c.selected == u.ID {
		c.clearSelection()
	}

	// 2. Осквернение
	c.world.Corrupt(pos.X, pos.Y)

	c.emit(domain.Event{Type: domain.EventUnitDied, UnitID: u.ID, Pos: pos})
	c.log.WithFields(logrus.Fields{
		"unit_id": u.ID,
		"name":    u.Name,
		"x":       pos.X,
		"y":       pos.Y,
	}).Info("Unit died, tile corrupted")

	// 3. Телеграфированное порождение
	if stats, ok := systems.DeriveSpawnStats(u, c.cfg.SpawnHPRatio, c.cfg.SpawnAttackRatio); ok && !c.world.IsOccupied(pos.X, pos.Y) {
		c.scheduleSpawn(u, pos, stats)
	}

	c.refreshVisibility()
	c.assertConsistent("unit_died")
}

func (c *Controller) scheduleSpawn(source *domain.Unit, pos domain.Position, stats systems.SpawnStats) {
	var task *Task
	task = c.sched.After(c.cfg.SpawnDelay, "corruption_spawn", func() {
		c.fireSpawn(task.ID)
	})
	c.spawns[task.ID] = pendingSpawn{
		SourceID: source.ID,
		Name:     source.Name,
		Pos:      pos,
		Stats:    stats,
	}
	c.emit(domain.Event{
		Type:   domain.EventSpawnTelegraphed,
		UnitID: source.ID,
		Pos:    pos,
		Due:    task.Due,
	})
}

func (c *Controller) fireSpawn(id TaskID) {
	sp, ok := c.spawns[id]
	if !ok {
		return
	}
	delete(c.spawns, id)

	if c.world.IsOccupied(sp.Pos.X, sp.Pos.Y) {
		c.emit(domain.Event{Type: domain.EventSpawnCanceled, UnitID: sp.SourceID, Pos: sp.Pos, Reason: "occupied"})
		return
	}

	risen := &domain.Unit{
		Name:        fmt.Sprintf("Risen %s", sp.Name),
		Archetype:   "risen",
		Faction:     domain.FactionHostile,
		Pos:         sp.Pos,
		VisionRange: sp.Stats.VisionRange,
		HP:          sp.Stats.MaxHP,
		MaxHP:       sp.Stats.MaxHP,
		Attack:      sp.Stats.Attack,
		Alive:       true,
	}
	newID, err := c.world.AddUnit(risen)
	if err != nil {
		c.log.WithError(err).Error("Spawn failed")
		c.emit(domain.Event{Type: domain.EventSpawnCanceled, UnitID: sp.SourceID, Pos: sp.Pos, Reason: err.Error()})
		return
	}

	c.emit(domain.Event{Type: domain.EventUnitSpawned, UnitID: newID, TargetID: sp.SourceID, Pos: sp.Pos, HP: risen.HP})
	c.log.WithFields(logrus.Fields{
		"unit_id":   newID,
		"source_id": sp.SourceID,
		"x":         sp.Pos.X,
		"y":         sp.Pos.Y,
		"hp":        risen.HP,
	}).Info("Hostile spawned on corrupted tile")

	c.refreshVisibility()
	c.assertConsistent("unit_spawned")
}

// cancelSpawns снимает все ожидающие порождения.
func (c *Controller) cancelSpawns(reason string) int {
	n := 0
	for _, id := range sortedTaskIDs(c.spawns) {
		sp := c.spawns[id]
		c.sched.Cancel(id)
		delete(c.spawns, id)
		c.emit(domain.Event{Type: domain.EventSpawnCanceled, UnitID: sp.SourceID, Pos: sp.Pos, Reason: reason})
		n++
	}
	return n
}

// CancelPendingSpawns отменяет все телеграфированные порождения.
func (c *Controller) CancelPendingSpawns() int {
	return c.cancelSpawns("canceled")
}
