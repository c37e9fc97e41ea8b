package systems

import (
	"os"
	"testing"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

// newTestWorld строит пустую карту с препятствиями walls.
func newTestWorld(width, height int, walls ...domain.Position) *domain.GridWorld {
	w := domain.NewGridWorld(width, height)
	for _, p := range walls {
		w.SetWalkable(p.X, p.Y, false)
	}
	return w
}

func addUnit(t *testing.T, w *domain.GridWorld, f domain.Faction, x, y, ap int) *domain.Unit {
	t.Helper()
	u := &domain.Unit{
		Name:         f.String(),
		Faction:      f,
		Pos:          domain.Position{X: x, Y: y},
		ActionPoints: ap,
		VisionRange:  3,
		HP:           20,
		MaxHP:        20,
		Alive:        true,
	}
	if _, err := w.AddUnit(u); err != nil {
		t.Fatalf("AddUnit(%d,%d): %v", x, y, err)
	}
	return u
}
