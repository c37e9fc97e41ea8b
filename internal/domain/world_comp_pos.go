package domain

// DistanceSquaredTo возвращает квадрат расстояния (int) для сравнения без корней
func (p Position) DistanceSquaredTo(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// ChebyshevTo - число шагов короля между клетками.
func (p Position) ChebyshevTo(other Position) int {
	return max(abs(p.X-other.X), abs(p.Y-other.Y))
}

// IsAdjacent возвращает true, если цель в соседней клетке (включая диагональ)
func (p Position) IsAdjacent(other Position) bool {
	return p.ChebyshevTo(other) == 1
}

// Shift возвращает новую позицию со смещением, текущая не меняется.
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Delta возвращает смещение от p до other.
func (p Position) Delta(other Position) (dx, dy int) {
	return other.X - p.X, other.Y - p.Y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
