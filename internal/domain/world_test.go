package domain

import (
	"errors"
	"testing"
)

func TestGridWorld_Walkability(t *testing.T) {
	world := NewGridWorld(10, 8)
	world.SetWalkable(3, 3, false)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"open floor", 0, 0, true},
		{"obstacle", 3, 3, false},
		{"negative x", -1, 0, false},
		{"past width", 10, 0, false},
		{"past height", 0, 8, false},
		{"far corner", 9, 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := world.IsWalkable(tt.x, tt.y); got != tt.want {
				t.Errorf("IsWalkable(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	world.Corrupt(4, 4)
	if world.IsWalkable(4, 4) || !world.IsCorrupted(4, 4) {
		t.Error("Corrupted tile must be unwalkable and flagged")
	}
}

func TestGridWorld_AddMoveRemoveUnit(t *testing.T) {
	world := NewGridWorld(10, 10)

	u := &Unit{Name: "raider", Faction: FactionPlayer, Pos: Position{X: 5, Y: 5}, Alive: true}
	id, err := world.AddUnit(u)
	if err != nil {
		t.Fatalf("AddUnit: %v", err)
	}
	if id == 0 || u.ID != id {
		t.Fatalf("expected non-zero id assigned to unit, got %d / %d", id, u.ID)
	}
	if world.UnitAt(5, 5) != u || !world.IsOccupied(5, 5) {
		t.Fatal("unit should be indexed at (5,5)")
	}

	// Повторное занятие клетки
	_, err = world.AddUnit(&Unit{Pos: Position{X: 5, Y: 5}, Alive: true})
	if !errors.Is(err, ErrTileOccupied) {
		t.Errorf("expected ErrTileOccupied, got %v", err)
	}

	if err := world.MoveUnit(id, Position{X: 6, Y: 5}); err != nil {
		t.Fatalf("MoveUnit: %v", err)
	}
	if world.IsOccupied(5, 5) || world.UnitAt(6, 5) != u {
		t.Error("occupancy index not updated after move")
	}
	if err := world.MoveUnit(id, Position{X: -1, Y: 5}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}

	u.Alive = false
	world.RemoveUnit(id)
	if world.Unit(id) != nil || world.IsOccupied(6, 5) {
		t.Error("unit should be gone after removal")
	}

	// ID не переиспользуется
	next, err := world.AddUnit(&Unit{Pos: Position{X: 1, Y: 1}, Alive: true})
	if err != nil {
		t.Fatalf("AddUnit: %v", err)
	}
	if next <= id {
		t.Errorf("ids must be monotonic: got %d after %d", next, id)
	}
}

func TestGridWorld_IsBlockedIgnoresSelf(t *testing.T) {
	world := NewGridWorld(5, 5)
	u := &Unit{Pos: Position{X: 2, Y: 2}, Alive: true}
	id, _ := world.AddUnit(u)

	if world.IsBlocked(2, 2, id) {
		t.Error("own tile must not block its owner")
	}
	if !world.IsBlocked(2, 2, 0) {
		t.Error("occupied tile must block other units")
	}
}

func TestGridWorld_CheckConsistency(t *testing.T) {
	world := NewGridWorld(5, 5)
	id, _ := world.AddUnit(&Unit{Pos: Position{X: 1, Y: 1}, Alive: true})

	if err := world.CheckConsistency(); err != nil {
		t.Fatalf("fresh world should be consistent: %v", err)
	}

	// Юнит есть в реестре, но пропал из индекса
	delete(world.Occupancy, world.GetIndex(1, 1))
	if err := world.CheckConsistency(); err == nil {
		t.Error("expected inconsistency when occupancy entry is missing")
	}

	world.Occupancy[world.GetIndex(1, 1)] = id
	world.Occupancy[world.GetIndex(3, 3)] = UnitID(99)
	if err := world.CheckConsistency(); err == nil {
		t.Error("expected inconsistency for dangling occupancy entry")
	}
}

func TestPosition_Adjacency(t *testing.T) {
	origin := Position{X: 3, Y: 3}
	tests := []struct {
		other Position
		want  bool
	}{
		{Position{X: 4, Y: 3}, true},
		{Position{X: 4, Y: 4}, true},
		{Position{X: 2, Y: 2}, true},
		{Position{X: 3, Y: 3}, false},
		{Position{X: 5, Y: 3}, false},
	}
	for _, tt := range tests {
		if got := origin.IsAdjacent(tt.other); got != tt.want {
			t.Errorf("IsAdjacent(%v) = %v, want %v", tt.other, got, tt.want)
		}
	}
	if d := origin.ChebyshevTo(Position{X: 0, Y: 5}); d != 3 {
		t.Errorf("ChebyshevTo = %d, want 3", d)
	}
}

func TestUnit_TakeDamage(t *testing.T) {
	u := &Unit{HP: 10, MaxHP: 10, Alive: true}
	if u.TakeDamage(4) {
		t.Error("unit should survive 4 damage")
	}
	if !u.TakeDamage(20) {
		t.Error("unit should die")
	}
	if u.HP != 0 || u.Alive {
		t.Errorf("dead unit state: hp=%d alive=%v", u.HP, u.Alive)
	}
	if u.TakeDamage(5) {
		t.Error("dead unit cannot die twice")
	}
}
