package engine

import (
	"errors"
	"sort"
	"time"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/internal/systems"
	"github.com/ChrisWaycott/mini-chalice/pkg/logger"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoSelection = errors.New("no unit selected")
	ErrWrongPhase  = errors.New("not in player phase")
	ErrTurnEnding  = errors.New("turn is ending")
)

// Controller владеет всем изменяемым состоянием сессии: картой, реестром юнитов,
// туманом войны, фазой хода и выбором. Не потокобезопасен: вызывать из одной горутины.
type Controller struct {
	cfg   Config
	world *domain.GridWorld
	vis   *systems.VisibilityMap
	sched *Scheduler
	bus   *EventBus

	phase domain.Phase
	turn  int

	// Выбор и предпросмотр. Пересобираются при каждом выборе.
	selected  domain.UnitID
	moveRange *systems.MovementRange
	preview   *systems.PathBuilder

	// Движения в полете и ожидающие их завершения переходы.
	moves       map[domain.UnitID]*Movement
	idleWaiters []func()
	endPending  bool

	sweep  []domain.UnitID
	spawns map[TaskID]pendingSpawn

	log *logrus.Entry
}

func NewController(cfg Config, world *domain.GridWorld) *Controller {
	c := &Controller{
		cfg:   cfg,
		sched: NewScheduler(),
		bus:   NewEventBus(),
		log:   logger.Log.WithField("component", "turn_controller"),
	}
	c.Reset(world)
	return c
}

// Reset отменяет все отложенные задачи и начинает сессию заново на world.
func (c *Controller) Reset(world *domain.GridWorld) {
	// 1. Порождения отменяются с уведомлением
	c.cancelSpawns("reset")
	cancelled := c.sched.CancelAll()

	// 2. Движения старого мира обрываются
	c.abortMovements("reset")
	c.moves = make(map[domain.UnitID]*Movement)
	c.spawns = make(map[TaskID]pendingSpawn)
	c.idleWaiters = nil
	c.endPending = false
	c.sweep = nil

	// 3. Новое состояние
	c.world = world
	c.vis = systems.NewVisibilityMap(world.Width, world.Height)
	c.phase = domain.PlayerPhase
	c.turn = 1
	c.clearSelection()
	c.refreshVisibility()
	c.assertConsistent("reset")

	c.log.WithFields(logrus.Fields{
		"width":           world.Width,
		"height":          world.Height,
		"units":           len(world.Roster),
		"tasks_cancelled": cancelled,
	}).Info("Session reset")
}

// Tick - мост к хост-циклу: двигает виртуальные часы и исполняет созревшие задачи.
func (c *Controller) Tick(dt time.Duration) int {
	return c.sched.Advance(dt)
}

func (c *Controller) Config() Config                     { return c.cfg }
func (c *Controller) World() *domain.GridWorld           { return c.world }
func (c *Controller) Visibility() *systems.VisibilityMap { return c.vis }
func (c *Controller) Scheduler() *Scheduler              { return c.sched }
func (c *Controller) Events() *EventBus                  { return c.bus }
func (c *Controller) Phase() domain.Phase                { return c.phase }
func (c *Controller) Turn() int                          { return c.turn }
func (c *Controller) Now() time.Duration                 { return c.sched.Now() }

// DrainEvents забирает накопленные с прошлого вызова события.
func (c *Controller) DrainEvents() []domain.Event {
	return c.bus.Drain()
}

// Selected возвращает выбранный юнит.
func (c *Controller) Selected() (domain.UnitID, bool) {
	return c.selected, c.selected != 0
}

// MovementRange - зона досягаемости выбранного юнита или nil.
func (c *Controller) MovementRange() *systems.MovementRange {
	return c.moveRange
}

// Preview - копия шагов предпросмотра.
func (c *Controller) Preview() []domain.PathStep {
	if c.preview == nil {
		return nil
	}
	return c.preview.Steps()
}

func (c *Controller) PreviewTarget() (domain.Position, bool) {
	if c.preview == nil {
		return domain.Position{}, false
	}
	return c.preview.Target()
}

func (c *Controller) PreviewAPCost() int {
	if c.preview == nil {
		return 0
	}
	return c.preview.APCost()
}

// IsBusy - есть ли юниты в движении.
func (c *Controller) IsBusy() bool {
	return len(c.moves) > 0
}

// Movement возвращает движение юнита в полете.
func (c *Controller) Movement(id domain.UnitID) (*Movement, bool) {
	m, ok := c.moves[id]
	return m, ok
}

func (c *Controller) EndTurnPending() bool {
	return c.endPending
}

func (c *Controller) PendingSpawns() int {
	return len(c.spawns)
}

func (c *Controller) clearSelection() {
	c.selected = 0
	c.moveRange = nil
	c.preview = nil
}

// emit проставляет время, фазу и номер хода.
func (c *Controller) emit(e domain.Event) {
	e.At = c.sched.Now()
	if e.Type != domain.EventTurnEnded {
		e.Phase = c.phase
	}
	if e.Turn == 0 {
		e.Turn = c.turn
	}
	c.bus.Emit(e)
}

// refreshVisibility пересчитывает туман по живым юнитам.
func (c *Controller) refreshVisibility() {
	units := c.world.Units()
	if c.cfg.FogViewer == FogViewerPlayer {
		units = c.world.UnitsOf(domain.FactionPlayer)
	}
	c.vis.Recompute(units)
}

// assertConsistent валит процесс при рассинхроне реестра и индекса в строгом режиме.
func (c *Controller) assertConsistent(op string) {
	err := c.world.CheckConsistency()
	if err == nil {
		return
	}
	c.log.WithError(err).WithField("op", op).Error("Invariant violation: roster and occupancy diverged")
	if c.cfg.StrictInvariants {
		panic(err)
	}
}

func sortedTaskIDs(m map[TaskID]pendingSpawn) []TaskID {
	ids := make([]TaskID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
