package systems

import (
	"errors"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

var (
	ErrEmptyPath   = errors.New("path is empty")
	ErrStaleBudget = errors.New("action budget changed or exhausted")
	ErrPathBlocked = errors.New("path is blocked")
	ErrUnitBusy    = errors.New("unit is busy")
	ErrUnitGone    = errors.New("unit is not in play")
)

// CommittedPath - зафиксированный путь, готовый к проигрыванию.
type CommittedPath struct {
	UnitID domain.UnitID
	Origin domain.Position
	Steps  []domain.PathStep
	Cost   int
	APCost int

	// Target - клетка противника сразу за последним шагом (ближний бой).
	Target *domain.Position
}

// PathBuilder накапливает путь предпросмотра по запросам соседних клеток.
// Мир и юнита он только читает.
type PathBuilder struct {
	world        *domain.GridWorld
	unitID       domain.UnitID
	origin       domain.Position
	ap           int
	budget       int
	tilesPerAP   int
	attackAPCost int

	steps  []domain.PathStep
	costs  []int
	spent  int
	target *domain.Position

	// tiles - клетки пути вместе со стартом, для быстрой проверки отката
	tiles mapset.Set[domain.Position]
}

// NewPathBuilder снимает бюджет юнита на момент выбора.
func NewPathBuilder(w *domain.GridWorld, u *domain.Unit, tilesPerAP, attackAPCost int) *PathBuilder {
	b := &PathBuilder{
		world:        w,
		unitID:       u.ID,
		origin:       u.Pos,
		ap:           u.ActionPoints,
		budget:       BudgetFor(u.ActionPoints, tilesPerAP),
		tilesPerAP:   tilesPerAP,
		attackAPCost: attackAPCost,
		tiles:        mapset.New[domain.Position](),
	}
	b.tiles.Put(b.origin)
	return b
}

func (b *PathBuilder) UnitID() domain.UnitID   { return b.unitID }
func (b *PathBuilder) Origin() domain.Position { return b.origin }
func (b *PathBuilder) Len() int                { return len(b.steps) }
func (b *PathBuilder) Cost() int               { return b.spent }
func (b *PathBuilder) Remaining() int          { return b.budget - b.spent }

// Steps возвращает копию шагов.
func (b *PathBuilder) Steps() []domain.PathStep {
	return append([]domain.PathStep(nil), b.steps...)
}

// Tail - клетка, где закончится движение.
func (b *PathBuilder) Tail() domain.Position {
	if len(b.steps) == 0 {
		return b.origin
	}
	return b.steps[len(b.steps)-1].Pos()
}

func (b *PathBuilder) Target() (domain.Position, bool) {
	if b.target == nil {
		return domain.Position{}, false
	}
	return *b.target, true
}

// APCost - цена пути с учетом атаки в конце.
func (b *PathBuilder) APCost() int {
	cost := APCost(b.spent, b.tilesPerAP)
	if b.target != nil {
		cost += b.attackAPCost
	}
	return cost
}

// Tiles - копия множества клеток пути, включая старт.
func (b *PathBuilder) Tiles() mapset.Set[domain.Position] {
	set := mapset.New[domain.Position]()
	b.tiles.Each(set.Put)
	return set
}

// TryExtend обрабатывает запрос клетки (x, y):
// повтор хвоста - ничего; предпоследняя клетка - откат; более ранняя - обрезка;
// соседняя свободная - новый шаг; соседний противник - цель атаки.
func (b *PathBuilder) TryExtend(x, y int) bool {
	if !b.world.InBounds(x, y) {
		return false
	}
	pos := domain.Position{X: x, Y: y}

	if b.target != nil && *b.target == pos {
		return true
	}

	// 1. Клетка уже в пути: откат или обрезка
	if k, ok := b.indexOf(pos); ok {
		b.target = nil
		b.truncate(k)
		return true
	}

	// 2. Сбрасываем цель и пробуем продлить от хвоста
	saved := b.target
	b.target = nil
	if b.extend(pos) {
		return true
	}
	b.target = saved
	return false
}

// Load заменяет предпросмотр готовым путем, проверяя каждый шаг.
func (b *PathBuilder) Load(steps []domain.PathStep) bool {
	b.Clear()
	for _, s := range steps {
		if !b.TryExtend(s.X, s.Y) || b.target != nil {
			b.Clear()
			return false
		}
	}
	return true
}

// Clear сбрасывает предпросмотр, состояние симуляции не меняется.
func (b *PathBuilder) Clear() {
	b.steps = b.steps[:0]
	b.costs = b.costs[:0]
	b.spent = 0
	b.target = nil
	b.tiles.Clear()
	b.tiles.Put(b.origin)
}

// Commit повторно проверяет путь против текущего мира и отдает его на исполнение.
func (b *PathBuilder) Commit() (CommittedPath, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"component": "path_builder",
		"unit_id":   b.unitID,
	})

	u := b.world.Unit(b.unitID)
	if u == nil || !u.Alive {
		return CommittedPath{}, ErrUnitGone
	}
	if u.Busy {
		return CommittedPath{}, ErrUnitBusy
	}
	if len(b.steps) == 0 && b.target == nil {
		return CommittedPath{}, ErrEmptyPath
	}

	apCost := b.APCost()
	if u.ActionPoints <= 0 || u.ActionPoints != b.ap || u.Pos != b.origin || apCost > u.ActionPoints {
		log.WithFields(logrus.Fields{
			"snapshot_ap": b.ap,
			"current_ap":  u.ActionPoints,
			"ap_cost":     apCost,
		}).Debug("Commit rejected: stale budget")
		return CommittedPath{}, ErrStaleBudget
	}

	// Пока игрок тянул путь, на клетках могли появиться новые юниты
	from := b.origin
	for _, s := range b.steps {
		res := CalculateStep(b.world, b.unitID, from, s.X-from.X, s.Y-from.Y)
		if !res.HasMoved {
			return CommittedPath{}, ErrPathBlocked
		}
		from = s.Pos()
	}

	cp := CommittedPath{
		UnitID: b.unitID,
		Origin: b.origin,
		Steps:  b.Steps(),
		Cost:   b.spent,
		APCost: apCost,
	}
	if b.target != nil {
		t := *b.target
		cp.Target = &t
	}

	log.WithFields(logrus.Fields{
		"steps":   len(cp.Steps),
		"ap_cost": cp.APCost,
		"attack":  cp.Target != nil,
	}).Debug("Path committed")

	b.Clear()
	return cp, nil
}

func (b *PathBuilder) extend(pos domain.Position) bool {
	tail := b.Tail()
	dx, dy := tail.Delta(pos)
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return false
	}

	res := CalculateStep(b.world, b.unitID, tail, dx, dy)

	// Противник на соседней клетке становится целью атаки
	if res.BlockedBy != nil {
		mover := b.world.Unit(b.unitID)
		if !mover.IsOpposing(res.BlockedBy) {
			return false
		}
		if APCost(b.spent, b.tilesPerAP)+b.attackAPCost > b.ap {
			return false
		}
		b.target = &pos
		return true
	}

	if !res.HasMoved {
		return false
	}
	if b.spent+res.Cost > b.budget {
		return false
	}

	b.steps = append(b.steps, domain.PathStep{X: pos.X, Y: pos.Y, IsDiagonal: res.IsDiagonal})
	b.costs = append(b.costs, res.Cost)
	b.spent += res.Cost
	b.tiles.Put(pos)
	return true
}

// indexOf возвращает число шагов до клетки: 0 - старт, len(steps) - хвост.
func (b *PathBuilder) indexOf(pos domain.Position) (int, bool) {
	if !b.tiles.Has(pos) {
		return 0, false
	}
	if pos == b.origin {
		return 0, true
	}
	for i, s := range b.steps {
		if s.X == pos.X && s.Y == pos.Y {
			return i + 1, true
		}
	}
	return 0, false
}

func (b *PathBuilder) truncate(n int) {
	for len(b.steps) > n {
		last := len(b.steps) - 1
		b.spent -= b.costs[last]
		b.tiles.Remove(b.steps[last].Pos())
		b.steps = b.steps[:last]
		b.costs = b.costs[:last]
	}
}
