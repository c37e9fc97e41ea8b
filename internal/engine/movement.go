package engine

import (
	"sort"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/internal/systems"
	"github.com/sirupsen/logrus"
)

// Movement - анимированное перемещение по зафиксированному пути.
// Каждый шаг - отдельная задача планировщика; отменить начатое движение нельзя.
type Movement struct {
	UnitID domain.UnitID
	Path   systems.CommittedPath

	charge   bool // списать AP по завершении (ход игрока)
	next     int  // индекс следующего шага
	cost     int  // стоимость пройденных шагов
	halted   bool
	spent    int
	task     *Task
	done     chan struct{}
	onFinish func(*Movement)
}

// Done закрывается после завершения последнего шага и всех последствий.
func (m *Movement) Done() <-chan struct{} { return m.done }

func (m *Movement) StepsTaken() int { return m.next }

// Halted - движение остановлено раньше конца пути.
func (m *Movement) Halted() bool { return m.halted }

// APSpent - реально списанные AP.
func (m *Movement) APSpent() int { return m.spent }

func (c *Controller) startMovement(u *domain.Unit, path systems.CommittedPath, charge bool, onFinish func(*Movement)) *Movement {
	m := &Movement{
		UnitID:   u.ID,
		Path:     path,
		charge:   charge,
		done:     make(chan struct{}),
		onFinish: onFinish,
	}
	u.Busy = true
	c.moves[u.ID] = m
	c.scheduleStep(m)
	return m
}

func (c *Controller) scheduleStep(m *Movement) {
	if m.halted || m.next >= len(m.Path.Steps) {
		c.finishMovement(m)
		return
	}
	step := m.Path.Steps[m.next]
	m.task = c.sched.After(c.cfg.StepDuration(step.IsDiagonal), "move_step", func() {
		c.applyStep(m)
	})
}

func (c *Controller) applyStep(m *Movement) {
	u := c.world.Unit(m.UnitID)
	if u == nil {
		m.halted = true
		c.finishMovement(m)
		return
	}

	step := m.Path.Steps[m.next]
	dx, dy := u.Pos.Delta(step.Pos())
	res := systems.CalculateStep(c.world, u.ID, u.Pos, dx, dy)
	if !res.HasMoved {
		// Клетку заняли во время анимации: стоим на текущей
		c.log.WithFields(logrus.Fields{
			"unit_id": u.ID,
			"x":       step.X,
			"y":       step.Y,
		}).Warn("Movement halted: next tile became blocked")
		m.halted = true
		c.finishMovement(m)
		return
	}
	if err := c.world.MoveUnit(u.ID, step.Pos()); err != nil {
		c.log.WithError(err).WithField("unit_id", u.ID).Error("Move step failed")
		m.halted = true
		c.finishMovement(m)
		return
	}

	m.cost += res.Cost
	m.next++
	c.refreshVisibility()
	c.emit(domain.Event{Type: domain.EventUnitMoved, UnitID: u.ID, Pos: step.Pos()})
	c.assertConsistent("move_step")

	c.scheduleStep(m)
}

// finishMovement - только после последнего шага: атака, списание AP,
// снятие busy, туман, сброс выбора. Затем будятся ожидающие простоя.
func (c *Controller) finishMovement(m *Movement) {
	u := c.world.Unit(m.UnitID)

	// 1. Ближний бой с клеткой сразу за последним шагом
	attacked := false
	if u != nil && !m.halted && m.Path.Target != nil {
		attacked = c.resolveMelee(u, *m.Path.Target)
	}

	// 2. Списываем реально потраченное
	if u != nil && m.charge {
		m.spent = systems.APCost(m.cost, c.cfg.TilesPerAP)
		if attacked {
			m.spent += c.cfg.AttackAPCost
		}
		u.SpendAP(m.spent)
	}

	// 3. Юнит свободен
	pos := m.Path.Origin
	if u != nil {
		u.Busy = false
		pos = u.Pos
	}
	delete(c.moves, m.UnitID)
	c.refreshVisibility()
	if c.selected == m.UnitID {
		c.clearSelection()
	}

	c.emit(domain.Event{Type: domain.EventMovementCompleted, UnitID: m.UnitID, Pos: pos, APCost: m.spent})
	close(m.done)

	if m.onFinish != nil {
		m.onFinish(m)
	}
	if m.charge {
		c.checkAutoEndTurn()
	}
	c.notifyIdle()
}

// abortMovements обрывает движения без атаки и списания AP.
// Done закрывается, чтобы ожидающие не висели вечно.
func (c *Controller) abortMovements(reason string) {
	ids := make([]domain.UnitID, 0, len(c.moves))
	for id := range c.moves {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		m := c.moves[id]
		m.halted = true
		pos := m.Path.Origin
		if u := c.world.Unit(id); u != nil {
			u.Busy = false
			pos = u.Pos
		}
		delete(c.moves, id)
		close(m.done)
		c.emit(domain.Event{Type: domain.EventMovementCompleted, UnitID: id, Pos: pos, Reason: reason})
	}
	if len(ids) > 0 {
		c.log.WithFields(logrus.Fields{
			"moving": len(ids),
			"reason": reason,
		}).Warn("Movements aborted")
	}
}

// whenIdle выполняет fn сразу, если никто не движется, иначе после
// завершения последнего движения.
func (c *Controller) whenIdle(fn func()) {
	if !c.IsBusy() {
		fn()
		return
	}
	c.idleWaiters = append(c.idleWaiters, fn)
}

func (c *Controller) notifyIdle() {
	// Ожидающий может снова запустить движения: тогда остальные ждут дальше
	for !c.IsBusy() && len(c.idleWaiters) > 0 {
		fn := c.idleWaiters[0]
		c.idleWaiters = c.idleWaiters[1:]
		fn()
	}
}
