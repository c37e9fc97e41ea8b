package systems

import (
	"testing"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
)

func TestComputeHostileAction(t *testing.T) {
	tests := []struct {
		name       string
		npc        domain.Position
		players    []domain.Position
		walls      []domain.Position
		wantAction domain.ActionType
		wantDx     int
		wantDy     int
	}{
		{"adjacent attacks", domain.Position{X: 3, Y: 3}, []domain.Position{{X: 4, Y: 4}}, nil, domain.ActionAttack, 0, 0},
		{"larger horizontal delta", domain.Position{X: 1, Y: 3}, []domain.Position{{X: 6, Y: 4}}, nil, domain.ActionMove, 1, 0},
		{"larger vertical delta", domain.Position{X: 3, Y: 8}, []domain.Position{{X: 4, Y: 2}}, nil, domain.ActionMove, 0, -1},
		{"tie goes vertical", domain.Position{X: 1, Y: 1}, []domain.Position{{X: 4, Y: 4}}, nil, domain.ActionMove, 0, 1},
		{"blocked step is skipped", domain.Position{X: 1, Y: 3}, []domain.Position{{X: 6, Y: 3}}, []domain.Position{{X: 2, Y: 3}}, domain.ActionWait, 0, 0},
		{"nearest target wins", domain.Position{X: 5, Y: 5}, []domain.Position{{X: 9, Y: 5}, {X: 5, Y: 2}}, nil, domain.ActionMove, 0, -1},
		{"no targets", domain.Position{X: 5, Y: 5}, nil, nil, domain.ActionWait, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := newTestWorld(10, 10, tt.walls...)
			for _, p := range tt.players {
				addUnit(t, world, domain.FactionPlayer, p.X, p.Y, 2)
			}
			npc := addUnit(t, world, domain.FactionHostile, tt.npc.X, tt.npc.Y, 0)

			got := ComputeHostileAction(world, npc)
			if got.Action != tt.wantAction {
				t.Fatalf("action = %v, want %v", got.Action, tt.wantAction)
			}
			if got.Dx != tt.wantDx || got.Dy != tt.wantDy {
				t.Errorf("step = (%d,%d), want (%d,%d)", got.Dx, got.Dy, tt.wantDx, tt.wantDy)
			}
			if got.Action == domain.ActionAttack && (got.Target == nil || got.Target.Faction != domain.FactionPlayer) {
				t.Errorf("attack must target a player unit, got %+v", got.Target)
			}
		})
	}
}

func TestComputeHostileAction_IgnoresOtherHostiles(t *testing.T) {
	world := newTestWorld(10, 10)
	npc := addUnit(t, world, domain.FactionHostile, 5, 5, 0)
	addUnit(t, world, domain.FactionHostile, 5, 6, 0)
	addUnit(t, world, domain.FactionPlayer, 5, 1, 2)

	got := ComputeHostileAction(world, npc)
	if got.Action != domain.ActionMove || got.Dy != -1 {
		t.Errorf("expected step toward the player, got %+v", got)
	}
}
