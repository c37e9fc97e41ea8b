package domain

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrOutOfBounds  = errors.New("out of bounds")
	ErrTileOccupied = errors.New("tile occupied")
	ErrUnknownUnit  = errors.New("unknown unit")
)

func (w *GridWorld) GetIndex(x, y int) int {
	return y*w.Width + x
}

func (w *GridWorld) InBounds(x, y int) bool {
	return x >= 0 && x < w.Width && y >= 0 && y < w.Height
}

// IsWalkable - false за пределами карты, на препятствии и на оскверненной клетке.
func (w *GridWorld) IsWalkable(x, y int) bool {
	if !w.InBounds(x, y) {
		return false
	}
	return w.Map[y][x].Walkable
}

// SetWalkable единственный мутатор рельефа.
func (w *GridWorld) SetWalkable(x, y int, walkable bool) {
	if !w.InBounds(x, y) {
		return
	}
	w.Map[y][x].Walkable = walkable
}

// Corrupt навсегда закрывает клетку.
func (w *GridWorld) Corrupt(x, y int) {
	if !w.InBounds(x, y) {
		return
	}
	w.Map[y][x].Walkable = false
	w.Map[y][x].Corrupted = true
}

func (w *GridWorld) IsCorrupted(x, y int) bool {
	return w.InBounds(x, y) && w.Map[y][x].Corrupted
}

// IsOccupied - стоит ли на клетке живой юнит.
func (w *GridWorld) IsOccupied(x, y int) bool {
	return w.UnitAt(x, y) != nil
}

// UnitAt возвращает юнит на клетке (быстро, через индекс)
func (w *GridWorld) UnitAt(x, y int) *Unit {
	if !w.InBounds(x, y) {
		return nil
	}
	id, ok := w.Occupancy[w.GetIndex(x, y)]
	if !ok {
		return nil
	}
	return w.Roster[id]
}

// IsBlocked - клетка непроходима для юнита ignore: стена, осквернение или чужое тело.
func (w *GridWorld) IsBlocked(x, y int, ignore UnitID) bool {
	if !w.InBounds(x, y) {
		return true
	}
	if id, ok := w.Occupancy[w.GetIndex(x, y)]; ok && id != ignore {
		return true
	}
	return !w.Map[y][x].Walkable
}

// AddUnit регистрирует юнит и выдает ему новый ID.
// Проходимость не проверяется: порождение на оскверненной клетке легально.
func (w *GridWorld) AddUnit(u *Unit) (UnitID, error) {
	if !w.InBounds(u.Pos.X, u.Pos.Y) {
		return 0, fmt.Errorf("add unit at (%d,%d): %w", u.Pos.X, u.Pos.Y, ErrOutOfBounds)
	}
	idx := w.GetIndex(u.Pos.X, u.Pos.Y)
	if _, ok := w.Occupancy[idx]; ok {
		return 0, fmt.Errorf("add unit at (%d,%d): %w", u.Pos.X, u.Pos.Y, ErrTileOccupied)
	}

	w.nextID++
	u.ID = w.nextID
	w.Roster[u.ID] = u
	w.Occupancy[idx] = u.ID
	return u.ID, nil
}

// Unit ищет юнит по ID
func (w *GridWorld) Unit(id UnitID) *Unit {
	return w.Roster[id]
}

// Units возвращает активных юнитов в порядке возрастания ID.
func (w *GridWorld) Units() []*Unit {
	result := make([]*Unit, 0, len(w.Roster))
	for _, u := range w.Roster {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// UnitsOf - живые юниты фракции, по ID.
func (w *GridWorld) UnitsOf(f Faction) []*Unit {
	result := make([]*Unit, 0)
	for _, u := range w.Units() {
		if u.Alive && u.Faction == f {
			result = append(result, u)
		}
	}
	return result
}

// MoveUnit перемещает юнит в индексе
func (w *GridWorld) MoveUnit(id UnitID, to Position) error {
	u, ok := w.Roster[id]
	if !ok {
		return ErrUnknownUnit
	}

	// 1. Проверка границ
	if !w.InBounds(to.X, to.Y) {
		return ErrOutOfBounds
	}

	// 2. Чужое тело
	newIdx := w.GetIndex(to.X, to.Y)
	if other, busy := w.Occupancy[newIdx]; busy && other != id {
		return ErrTileOccupied
	}

	// 3. Перекладываем индекс
	delete(w.Occupancy, w.GetIndex(u.Pos.X, u.Pos.Y))
	u.Pos = to
	w.Occupancy[newIdx] = id
	return nil
}

// RemoveUnit убирает юнит из реестра и индекса (смерть).
func (w *GridWorld) RemoveUnit(id UnitID) {
	u, ok := w.Roster[id]
	if !ok {
		return
	}
	idx := w.GetIndex(u.Pos.X, u.Pos.Y)
	if w.Occupancy[idx] == id {
		delete(w.Occupancy, idx)
	}
	delete(w.Roster, id)
}

// CheckConsistency сверяет реестр с индексом занятости.
// Любое расхождение - ошибка синхронизации, а не штатная ситуация.
func (w *GridWorld) CheckConsistency() error {
	for id, u := range w.Roster {
		if u.ID != id {
			return fmt.Errorf("unit %d registered under id %d", u.ID, id)
		}
		if !u.Alive {
			return fmt.Errorf("dead unit %d still in roster", id)
		}
		if !w.InBounds(u.Pos.X, u.Pos.Y) {
			return fmt.Errorf("unit %d at (%d,%d): %w", id, u.Pos.X, u.Pos.Y, ErrOutOfBounds)
		}
		if got, ok := w.Occupancy[w.GetIndex(u.Pos.X, u.Pos.Y)]; !ok || got != id {
			return fmt.Errorf("unit %d at (%d,%d) missing from occupancy index", id, u.Pos.X, u.Pos.Y)
		}
	}
	for idx, id := range w.Occupancy {
		u, ok := w.Roster[id]
		if !ok {
			return fmt.Errorf("occupancy index %d points to unknown unit %d", idx, id)
		}
		if w.GetIndex(u.Pos.X, u.Pos.Y) != idx {
			return fmt.Errorf("occupancy index %d is stale for unit %d", idx, id)
		}
	}
	return nil
}
