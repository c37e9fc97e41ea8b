package domain

// VisibilityState - состояние тумана войны на клетке.
// Переходы только Unexplored -> Explored/Visible и Visible -> Explored.
type VisibilityState uint8

const (
	Unexplored VisibilityState = iota
	Explored
	Visible
)

func (v VisibilityState) String() string {
	switch v {
	case Explored:
		return "EXPLORED"
	case Visible:
		return "VISIBLE"
	default:
		return "UNEXPLORED"
	}
}

// Phase - фаза хода. Активна ровно одна на сессию.
type Phase uint8

const (
	PlayerPhase Phase = iota
	HostilePhase
)

func (p Phase) String() string {
	if p == HostilePhase {
		return "HOSTILE"
	}
	return "PLAYER"
}

// PathStep - один шаг пути от текущей клетки юнита.
type PathStep struct {
	X          int  `json:"x"`
	Y          int  `json:"y"`
	IsDiagonal bool `json:"isDiagonal"`
}

func (s PathStep) Pos() Position {
	return Position{X: s.X, Y: s.Y}
}
