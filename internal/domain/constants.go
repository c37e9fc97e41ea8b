package domain

// Стоимость шага в полуочках движения (1 MP = 2).
// Целые числа избавляют от сравнения float на границе бюджета.
const (
	CostOrthogonal = 2
	CostDiagonal   = 3
	CostScale      = 2
)

// Параметры по умолчанию
const (
	DefaultTilesPerAP  = 4
	DefaultAPPerTurn   = 2
	DefaultVisionRange = 5
	DefaultMeleeDamage = 10
)
