package domain

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Tile хранит только проходимость. Corrupted выставляется правилом смерти
// и никогда не снимается в пределах сессии.
type Tile struct {
	Walkable  bool `json:"walkable"`
	Corrupted bool `json:"corrupted"`
}

// GridWorld - статичное окружение фиксированного размера плюс реестр юнитов.
// Владелец один: контроллер хода. Размер после создания не меняется.
type GridWorld struct {
	Map    [][]Tile `json:"map"`
	Width  int      `json:"width"`
	Height int      `json:"height"`

	// Occupancy: Индекс позиции -> ID юнита.
	// Ключ: Y * Width + X
	Occupancy map[int]UnitID   `json:"-"`
	Roster    map[UnitID]*Unit `json:"-"`

	// nextID монотонный, ID погибших юнитов не переиспользуются.
	nextID UnitID
}

// NewGridWorld создает пустую проходимую карту.
func NewGridWorld(width, height int) *GridWorld {
	w := &GridWorld{
		Map:       make([][]Tile, height),
		Width:     width,
		Height:    height,
		Occupancy: make(map[int]UnitID),
		Roster:    make(map[UnitID]*Unit),
	}
	for y := 0; y < height; y++ {
		w.Map[y] = make([]Tile, width)
		for x := 0; x < width; x++ {
			w.Map[y][x] = Tile{Walkable: true}
		}
	}
	return w
}
