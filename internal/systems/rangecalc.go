package systems

import (
	"sort"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/heap"
)

// RangeEntry - достижимая клетка с минимальной стоимостью и каноническим путем.
type RangeEntry struct {
	Target domain.Position
	Cost   int // полуочки движения
	APCost int
	Path   []domain.PathStep
}

// MovementPoints - стоимость в MP (1 за ортогональ, 1.5 за диагональ).
func (e RangeEntry) MovementPoints() float64 {
	return MovementPoints(e.Cost)
}

// MovementRange - результат поиска от клетки юнита. Пересчитывается целиком
// при каждом выборе юнита, никогда не патчится.
type MovementRange struct {
	UnitID domain.UnitID
	Origin domain.Position
	Budget int

	width   int
	entries map[int]RangeEntry
}

func (r *MovementRange) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

func (r *MovementRange) Contains(x, y int) bool {
	_, ok := r.Entry(x, y)
	return ok
}

// Entry возвращает запись клетки. Стартовая клетка в результат не входит.
func (r *MovementRange) Entry(x, y int) (RangeEntry, bool) {
	if r == nil || x < 0 || y < 0 || x >= r.width {
		return RangeEntry{}, false
	}
	e, ok := r.entries[y*r.width+x]
	return e, ok
}

// PathTo возвращает копию пути или nil, если клетка недостижима.
func (r *MovementRange) PathTo(x, y int) []domain.PathStep {
	e, ok := r.Entry(x, y)
	if !ok {
		return nil
	}
	return append([]domain.PathStep(nil), e.Path...)
}

// Entries - все записи по возрастанию стоимости, затем по (y, x).
func (r *MovementRange) Entries() []RangeEntry {
	if r == nil {
		return nil
	}
	result := make([]RangeEntry, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Cost != b.Cost {
			return a.Cost < b.Cost
		}
		if a.Target.Y != b.Target.Y {
			return a.Target.Y < b.Target.Y
		}
		return a.Target.X < b.Target.X
	})
	return result
}

type searchNode struct {
	idx  int
	cost int
	seq  int
}

// ComputeMovementRange - поиск Дейкстры по 8 направлениям в пределах бюджета юнита.
// Юнит без AP дает пустой результат, а не ошибку.
func ComputeMovementRange(w *domain.GridWorld, u *domain.Unit, tilesPerAP int) *MovementRange {
	result := &MovementRange{
		width:   w.Width,
		entries: make(map[int]RangeEntry),
	}
	if u == nil || !u.Alive {
		return result
	}
	result.UnitID = u.ID
	result.Origin = u.Pos
	result.Budget = BudgetFor(u.ActionPoints, tilesPerAP)

	log := logger.Log.WithFields(logrus.Fields{
		"component": "range_system",
		"unit_id":   u.ID,
		"budget":    result.Budget,
	})
	if result.Budget == 0 {
		log.Debug("Unit has no movement budget")
		return result
	}

	start := w.GetIndex(u.Pos.X, u.Pos.Y)
	dist := map[int]int{start: 0}
	prev := make(map[int]int)
	diag := make(map[int]bool)

	// seq разрывает ничьи в порядке обнаружения, чтобы путь был детерминирован
	seq := 0
	open := heap.New[searchNode](func(a, b searchNode) bool {
		if a.cost != b.cost {
			return a.cost < b.cost
		}
		return a.seq < b.seq
	})
	open.Push(searchNode{idx: start})

	for open.Size() > 0 {
		node, _ := open.Pop()
		if node.cost > dist[node.idx] {
			continue // устаревшая запись
		}
		from := domain.Position{X: node.idx % w.Width, Y: node.idx / w.Width}

		for _, d := range Directions {
			res := CalculateStep(w, u.ID, from, d[0], d[1])
			if !res.HasMoved {
				continue
			}
			next := node.cost + res.Cost
			if next > result.Budget {
				continue
			}
			idx := w.GetIndex(res.NewX, res.NewY)
			if known, ok := dist[idx]; ok && known <= next {
				continue
			}
			dist[idx] = next
			prev[idx] = node.idx
			diag[idx] = res.IsDiagonal
			seq++
			open.Push(searchNode{idx: idx, cost: next, seq: seq})
		}
	}

	for idx, cost := range dist {
		if idx == start {
			continue
		}
		result.entries[idx] = RangeEntry{
			Target: domain.Position{X: idx % w.Width, Y: idx / w.Width},
			Cost:   cost,
			APCost: APCost(cost, tilesPerAP),
			Path:   reconstruct(w.Width, start, idx, prev, diag),
		}
	}

	log.WithField("reachable", len(result.entries)).Debug("Movement range computed")
	return result
}

func reconstruct(width, start, target int, prev map[int]int, diag map[int]bool) []domain.PathStep {
	path := make([]domain.PathStep, 0)
	for cur := target; cur != start; cur = prev[cur] {
		path = append(path, domain.PathStep{X: cur % width, Y: cur / width, IsDiagonal: diag[cur]})
	}
	// Разворачиваем: от первого шага к цели
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
