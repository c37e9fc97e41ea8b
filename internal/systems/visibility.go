package systems

import (
	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// VisibilityMap - трехсостоянийный туман войны.
// visible пересобирается каждый проход, explored только накапливается.
type VisibilityMap struct {
	width, height int
	explored      []bool
	visible       []bool
	visibleCount  int
}

func NewVisibilityMap(width, height int) *VisibilityMap {
	return &VisibilityMap{
		width:    width,
		height:   height,
		explored: make([]bool, width*height),
		visible:  make([]bool, width*height),
	}
}

// Recompute отмечает круг радиуса VisionRange (dx²+dy² <= r²) вокруг каждого живого юнита.
// Клетки, выпавшие из обзора, остаются Explored.
func (v *VisibilityMap) Recompute(units []*domain.Unit) {
	next := make([]bool, len(v.visible))
	count := 0

	for _, u := range units {
		if u == nil || !u.Alive || u.VisionRange < 0 {
			continue
		}
		r := u.VisionRange
		r2 := r * r
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy > r2 {
					continue
				}
				x, y := u.Pos.X+dx, u.Pos.Y+dy
				if x < 0 || y < 0 || x >= v.width || y >= v.height {
					continue
				}
				idx := y*v.width + x
				if !next[idx] {
					next[idx] = true
					count++
				}
				v.explored[idx] = true
			}
		}
	}

	v.visible = next
	v.visibleCount = count

	logger.Log.WithFields(logrus.Fields{
		"component": "visibility_system",
		"units":     len(units),
		"visible":   count,
	}).Debug("Visibility recomputed")
}

func (v *VisibilityMap) State(x, y int) domain.VisibilityState {
	if x < 0 || y < 0 || x >= v.width || y >= v.height {
		return domain.Unexplored
	}
	idx := y*v.width + x
	switch {
	case v.visible[idx]:
		return domain.Visible
	case v.explored[idx]:
		return domain.Explored
	default:
		return domain.Unexplored
	}
}

func (v *VisibilityMap) IsVisible(x, y int) bool {
	return v.State(x, y) == domain.Visible
}

func (v *VisibilityMap) VisibleCount() int {
	return v.visibleCount
}

// VisibleSet - снимок видимых сейчас клеток.
func (v *VisibilityMap) VisibleSet() mapset.Set[domain.Position] {
	set := mapset.New[domain.Position]()
	for idx, ok := range v.visible {
		if ok {
			set.Put(domain.Position{X: idx % v.width, Y: idx / v.width})
		}
	}
	return set
}

// Grid - снимок всей карты состояний, [y][x].
func (v *VisibilityMap) Grid() [][]domain.VisibilityState {
	grid := make([][]domain.VisibilityState, v.height)
	for y := 0; y < v.height; y++ {
		grid[y] = make([]domain.VisibilityState, v.width)
		for x := 0; x < v.width; x++ {
			grid[y][x] = v.State(x, y)
		}
	}
	return grid
}
