package systems

import (
	"testing"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
)

const testTilesPerAP = 4

func TestComputeMovementRange_EmptyGridScenario(t *testing.T) {
	world := newTestWorld(10, 10)
	u := addUnit(t, world, domain.FactionPlayer, 1, 1, 2)

	r := ComputeMovementRange(world, u, testTilesPerAP)

	tests := []struct {
		name      string
		x, y      int
		reachable bool
		mp        float64
		ap        int
	}{
		{"four orthogonal steps", 5, 1, true, 4, 1},
		{"exactly the whole budget", 9, 1, true, 8, 2},
		{"far corner", 9, 9, false, 0, 0},
		{"single diagonal", 2, 2, true, 1.5, 1},
		{"origin is excluded", 1, 1, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := r.Entry(tt.x, tt.y)
			if ok != tt.reachable {
				t.Fatalf("Entry(%d,%d) reachable = %v, want %v", tt.x, tt.y, ok, tt.reachable)
			}
			if !ok {
				if p := r.PathTo(tt.x, tt.y); p != nil {
					t.Errorf("PathTo on unreachable tile must be nil, got %v", p)
				}
				return
			}
			if e.MovementPoints() != tt.mp {
				t.Errorf("MP = %v, want %v", e.MovementPoints(), tt.mp)
			}
			if e.APCost != tt.ap {
				t.Errorf("AP = %d, want %d", e.APCost, tt.ap)
			}
		})
	}
}

func TestComputeMovementRange_CornerCutting(t *testing.T) {
	// Обе боковые клетки закрыты: прямая диагональ (1,1)->(2,2) запрещена,
	// а обход стоит 4.5 MP и не влезает в 1 AP.
	world := newTestWorld(6, 6, domain.Position{X: 2, Y: 1}, domain.Position{X: 1, Y: 2})
	u := addUnit(t, world, domain.FactionPlayer, 1, 1, 1)

	r := ComputeMovementRange(world, u, testTilesPerAP)
	if r.Contains(2, 2) {
		e, _ := r.Entry(2, 2)
		t.Fatalf("(2,2) must be unreachable, got path %v", e.Path)
	}

	// С бюджетом 2 AP клетка достижима только обходом
	u.ActionPoints = 2
	r = ComputeMovementRange(world, u, testTilesPerAP)
	e, ok := r.Entry(2, 2)
	if !ok {
		t.Fatal("(2,2) should be reachable around the corner with 2 AP")
	}
	if len(e.Path) < 2 {
		t.Errorf("expected detour, got direct path %v", e.Path)
	}

	// Одна открытая боковая клетка: диагональ разрешена
	world.SetWalkable(1, 2, true)
	u.ActionPoints = 1
	r = ComputeMovementRange(world, u, testTilesPerAP)
	e, ok = r.Entry(2, 2)
	if !ok || len(e.Path) != 1 || !e.Path[0].IsDiagonal {
		t.Errorf("expected single diagonal step, got %+v (ok=%v)", e, ok)
	}
}

func TestComputeMovementRange_Blockers(t *testing.T) {
	world := newTestWorld(7, 7, domain.Position{X: 4, Y: 3})
	u := addUnit(t, world, domain.FactionPlayer, 3, 3, 2)
	addUnit(t, world, domain.FactionHostile, 2, 3, 0)

	r := ComputeMovementRange(world, u, testTilesPerAP)
	if r.Contains(4, 3) {
		t.Error("obstacle tile must never be in range")
	}
	if r.Contains(2, 3) {
		t.Error("tile occupied by another unit must never be in range")
	}
	if !r.Contains(5, 3) {
		t.Error("tile behind the obstacle should be reachable around it")
	}
}

func TestComputeMovementRange_ZeroAP(t *testing.T) {
	world := newTestWorld(10, 10)
	u := addUnit(t, world, domain.FactionPlayer, 4, 4, 0)

	r := ComputeMovementRange(world, u, testTilesPerAP)
	if r.Len() != 0 {
		t.Errorf("zero AP must yield empty range, got %d entries", r.Len())
	}
}

func TestComputeMovementRange_StaysInBounds(t *testing.T) {
	world := newTestWorld(6, 5)
	u := addUnit(t, world, domain.FactionPlayer, 0, 0, 3)

	r := ComputeMovementRange(world, u, testTilesPerAP)
	if r.Len() == 0 {
		t.Fatal("expected reachable tiles")
	}
	for _, e := range r.Entries() {
		if !world.InBounds(e.Target.X, e.Target.Y) {
			t.Errorf("entry out of bounds: %v", e.Target)
		}
		if e.Cost > r.Budget {
			t.Errorf("entry %v costs %d over budget %d", e.Target, e.Cost, r.Budget)
		}
	}
}

func TestComputeMovementRange_PathRoundTrip(t *testing.T) {
	world := newTestWorld(12, 12,
		domain.Position{X: 5, Y: 4}, domain.Position{X: 5, Y: 5}, domain.Position{X: 5, Y: 6},
		domain.Position{X: 3, Y: 7}, domain.Position{X: 4, Y: 8},
	)
	u := addUnit(t, world, domain.FactionPlayer, 4, 5, 2)
	addUnit(t, world, domain.FactionHostile, 6, 2, 0)

	r := ComputeMovementRange(world, u, testTilesPerAP)
	for _, e := range r.Entries() {
		pos := r.Origin
		sum := 0
		for i, s := range e.Path {
			dx, dy := pos.Delta(s.Pos())
			res := CalculateStep(world, u.ID, pos, dx, dy)
			if !res.HasMoved {
				t.Fatalf("path to %v: step %d (%d,%d) is not a legal move", e.Target, i, s.X, s.Y)
			}
			if res.IsDiagonal != s.IsDiagonal {
				t.Errorf("path to %v: step %d diagonal flag mismatch", e.Target, i)
			}
			sum += StepCost(dx, dy)
			pos = s.Pos()
		}
		if pos != e.Target {
			t.Errorf("replaying path lands on %v, want %v", pos, e.Target)
		}
		if sum != e.Cost {
			t.Errorf("path to %v sums to %d, reported %d", e.Target, sum, e.Cost)
		}
		if APCost(sum, testTilesPerAP) != e.APCost {
			t.Errorf("path to %v AP %d, reported %d", e.Target, APCost(sum, testTilesPerAP), e.APCost)
		}
	}
}

func TestComputeMovementRange_APCostGrowsWithDistance(t *testing.T) {
	world := newTestWorld(15, 15)
	u := addUnit(t, world, domain.FactionPlayer, 7, 7, 2)
	r := ComputeMovementRange(world, u, testTilesPerAP)

	// Вдоль каждого из 8 лучей стоимость не убывает
	for _, d := range Directions {
		last := 0
		for step := 1; step <= 7; step++ {
			e, ok := r.Entry(7+d[0]*step, 7+d[1]*step)
			if !ok {
				break
			}
			if e.APCost < last {
				t.Errorf("ray %v: AP dropped from %d to %d at distance %d", d, last, e.APCost, step)
			}
			last = e.APCost
		}
	}

	// Минимальная стоимость кольца Чебышева не убывает
	prevMin := 0
	for dist := 1; dist <= 7; dist++ {
		ringMin := -1
		for _, e := range r.Entries() {
			if e.Target.ChebyshevTo(r.Origin) != dist {
				continue
			}
			if ringMin == -1 || e.APCost < ringMin {
				ringMin = e.APCost
			}
		}
		if ringMin == -1 {
			break
		}
		if ringMin < prevMin {
			t.Errorf("ring %d min AP %d below ring %d min %d", dist, ringMin, dist-1, prevMin)
		}
		prevMin = ringMin
	}
}
