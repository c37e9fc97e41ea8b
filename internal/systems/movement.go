package systems

import (
	"github.com/ChrisWaycott/mini-chalice/internal/domain"
)

// Directions - 8 соседей. Порядок фиксирован: от него зависит, какой из
// равных по стоимости путей станет каноническим.
var Directions = [8][2]int{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
}

// MovementResult - результат вычисления одного шага
type MovementResult struct {
	NewX, NewY int
	HasMoved   bool
	IsDiagonal bool
	Cost       int // в полуочках движения

	BlockedBy *domain.Unit // Если врезались в кого-то (для атаки)
	IsWall    bool         // Стена, осквернение или край карты
	CornerCut bool         // Диагональ между двумя закрытыми клетками
}

// StepCost возвращает цену шага в полуочках.
func StepCost(dx, dy int) int {
	if dx != 0 && dy != 0 {
		return domain.CostDiagonal
	}
	return domain.CostOrthogonal
}

// BudgetFor переводит AP в полуочки движения.
func BudgetFor(ap, tilesPerAP int) int {
	if ap <= 0 || tilesPerAP <= 0 {
		return 0
	}
	return ap * tilesPerAP * domain.CostScale
}

// APCost округляет стоимость вверх до целого AP.
func APCost(cost, tilesPerAP int) int {
	if cost <= 0 || tilesPerAP <= 0 {
		return 0
	}
	per := tilesPerAP * domain.CostScale
	return (cost + per - 1) / per
}

// MovementPoints - стоимость в MP для отображения.
func MovementPoints(cost int) float64 {
	return float64(cost) / domain.CostScale
}

// CalculateStep проверяет шаг юнита mover из from на (dx, dy). Не меняет состояние мира!
// Клетка самого mover считается свободной: при предпросмотре он уже "ушел" с нее.
func CalculateStep(w *domain.GridWorld, mover domain.UnitID, from domain.Position, dx, dy int) MovementResult {
	target := from.Shift(dx, dy)
	res := MovementResult{
		NewX:       target.X,
		NewY:       target.Y,
		IsDiagonal: dx != 0 && dy != 0,
		Cost:       StepCost(dx, dy),
	}

	// 0. Только соседние клетки
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
		res.IsWall = true
		return res
	}

	// 1. Проверка границ
	if !w.InBounds(target.X, target.Y) {
		res.IsWall = true
		return res
	}

	// 2. Срез угла: запрещен, только если закрыты ОБЕ боковые клетки
	if res.IsDiagonal &&
		w.IsBlocked(from.X+dx, from.Y, mover) &&
		w.IsBlocked(from.X, from.Y+dy, mover) {
		res.CornerCut = true
		return res
	}

	// 3. Чужое тело
	if other := w.UnitAt(target.X, target.Y); other != nil && other.ID != mover && other.Alive {
		res.BlockedBy = other
		return res
	}

	// 4. Стены и осквернение
	if !w.IsWalkable(target.X, target.Y) {
		res.IsWall = true
		return res
	}

	res.HasMoved = true
	return res
}
