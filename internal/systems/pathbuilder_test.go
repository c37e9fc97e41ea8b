package systems

import (
	"errors"
	"testing"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
)

func stepsOf(b *PathBuilder) []domain.Position {
	out := make([]domain.Position, 0, b.Len())
	for _, s := range b.Steps() {
		out = append(out, s.Pos())
	}
	return out
}

func TestPathBuilder_ExtendBacktrackTruncate(t *testing.T) {
	world := newTestWorld(10, 10)
	u := addUnit(t, world, domain.FactionPlayer, 1, 1, 2)
	b := NewPathBuilder(world, u, testTilesPerAP, 1)

	// Не соседняя клетка
	if b.TryExtend(3, 1) {
		t.Fatal("non-adjacent tile must be rejected")
	}

	for _, p := range []domain.Position{{X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 2}} {
		if !b.TryExtend(p.X, p.Y) {
			t.Fatalf("TryExtend(%d,%d) failed", p.X, p.Y)
		}
	}
	if b.Len() != 3 || b.Cost() != 2+2+3 {
		t.Fatalf("expected 3 steps costing 7, got %d steps cost %d", b.Len(), b.Cost())
	}
	if !b.Steps()[2].IsDiagonal {
		t.Error("last step should be diagonal")
	}

	// Откат: предпоследняя клетка снимает последний шаг
	if !b.TryExtend(3, 1) {
		t.Fatal("backtrack failed")
	}
	if b.Len() != 2 || b.Tail() != (domain.Position{X: 3, Y: 1}) || b.Cost() != 4 {
		t.Fatalf("after backtrack: %v cost %d", stepsOf(b), b.Cost())
	}

	// Обрезка до более ранней клетки
	b.TryExtend(4, 1)
	b.TryExtend(5, 1)
	if !b.TryExtend(2, 1) {
		t.Fatal("truncate failed")
	}
	if b.Len() != 1 || b.Cost() != 2 {
		t.Fatalf("after truncate: %v cost %d", stepsOf(b), b.Cost())
	}

	// Возврат на старт очищает путь
	if !b.TryExtend(1, 1) || b.Len() != 0 || b.Cost() != 0 {
		t.Fatalf("returning to origin should empty the path, got %v", stepsOf(b))
	}
}

func TestPathBuilder_Budget(t *testing.T) {
	world := newTestWorld(10, 10)
	u := addUnit(t, world, domain.FactionPlayer, 0, 0, 1)
	b := NewPathBuilder(world, u, testTilesPerAP, 1)

	for x := 1; x <= 4; x++ {
		if !b.TryExtend(x, 0) {
			t.Fatalf("step %d within budget rejected", x)
		}
	}
	if b.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", b.Remaining())
	}
	if b.TryExtend(5, 0) {
		t.Error("step over budget must be rejected")
	}
	if b.Len() != 4 || b.APCost() != 1 {
		t.Errorf("rejected step must not change the path: %v AP %d", stepsOf(b), b.APCost())
	}
}

func TestPathBuilder_CornerCutting(t *testing.T) {
	world := newTestWorld(5, 5, domain.Position{X: 2, Y: 1}, domain.Position{X: 1, Y: 2})
	u := addUnit(t, world, domain.FactionPlayer, 1, 1, 2)
	b := NewPathBuilder(world, u, testTilesPerAP, 1)

	if b.TryExtend(2, 2) {
		t.Fatal("diagonal between two blocked flanks must be rejected")
	}
	if b.Len() != 0 {
		t.Error("rejected step must leave the path empty")
	}
	if b.TryExtend(2, 1) {
		t.Error("obstacle tile must be rejected")
	}
}

func TestPathBuilder_AttackTarget(t *testing.T) {
	world := newTestWorld(10, 10)
	u := addUnit(t, world, domain.FactionPlayer, 1, 1, 2)
	enemy := addUnit(t, world, domain.FactionHostile, 3, 1, 0)
	ally := addUnit(t, world, domain.FactionPlayer, 2, 2, 2)

	b := NewPathBuilder(world, u, testTilesPerAP, 1)
	if b.TryExtend(ally.Pos.X, ally.Pos.Y) {
		t.Error("ally tile is neither a step nor a target")
	}
	if !b.TryExtend(2, 1) {
		t.Fatal("step next to the enemy failed")
	}
	if !b.TryExtend(enemy.Pos.X, enemy.Pos.Y) {
		t.Fatal("enemy tile should become the attack target")
	}
	if target, ok := b.Target(); !ok || target != enemy.Pos {
		t.Fatalf("target = %v, %v", target, ok)
	}
	if b.Len() != 1 || b.APCost() != 2 {
		t.Errorf("expected 1 step plus attack for 2 AP, got %d steps %d AP", b.Len(), b.APCost())
	}

	// Хвост повторно - цель снимается
	if !b.TryExtend(2, 1) {
		t.Fatal("requesting tail failed")
	}
	if _, ok := b.Target(); ok {
		t.Error("target should be dropped")
	}

	// Не хватает AP на атаку
	u.ActionPoints = 1
	poor := NewPathBuilder(world, u, testTilesPerAP, 1)
	poor.TryExtend(2, 1)
	if poor.TryExtend(enemy.Pos.X, enemy.Pos.Y) {
		t.Error("attack over budget must be rejected")
	}
}

func TestPathBuilder_Commit(t *testing.T) {
	world := newTestWorld(10, 10)
	u := addUnit(t, world, domain.FactionPlayer, 1, 1, 2)
	b := NewPathBuilder(world, u, testTilesPerAP, 1)

	if _, err := b.Commit(); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("expected ErrEmptyPath, got %v", err)
	}

	b.TryExtend(2, 1)
	b.TryExtend(3, 2)
	cp, err := b.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if len(cp.Steps) != 2 || cp.Cost != 5 || cp.APCost != 1 || cp.Target != nil {
		t.Errorf("unexpected committed path %+v", cp)
	}
	if b.Len() != 0 {
		t.Error("builder should be empty after commit")
	}
	if u.Pos != (domain.Position{X: 1, Y: 1}) || u.ActionPoints != 2 {
		t.Error("commit must not mutate the unit")
	}
}

func TestPathBuilder_CommitRejections(t *testing.T) {
	t.Run("stale budget", func(t *testing.T) {
		world := newTestWorld(10, 10)
		u := addUnit(t, world, domain.FactionPlayer, 1, 1, 2)
		b := NewPathBuilder(world, u, testTilesPerAP, 1)
		b.TryExtend(2, 1)
		u.ActionPoints = 0
		if _, err := b.Commit(); !errors.Is(err, ErrStaleBudget) {
			t.Errorf("expected ErrStaleBudget, got %v", err)
		}
	})

	t.Run("busy unit", func(t *testing.T) {
		world := newTestWorld(10, 10)
		u := addUnit(t, world, domain.FactionPlayer, 1, 1, 2)
		b := NewPathBuilder(world, u, testTilesPerAP, 1)
		b.TryExtend(2, 1)
		u.Busy = true
		if _, err := b.Commit(); !errors.Is(err, ErrUnitBusy) {
			t.Errorf("expected ErrUnitBusy, got %v", err)
		}
	})

	t.Run("tile taken after preview", func(t *testing.T) {
		world := newTestWorld(10, 10)
		u := addUnit(t, world, domain.FactionPlayer, 1, 1, 2)
		b := NewPathBuilder(world, u, testTilesPerAP, 1)
		b.TryExtend(2, 1)
		b.TryExtend(3, 1)
		addUnit(t, world, domain.FactionHostile, 3, 1, 0)
		if _, err := b.Commit(); !errors.Is(err, ErrPathBlocked) {
			t.Errorf("expected ErrPathBlocked, got %v", err)
		}
	})
}

func TestPathBuilder_LoadAndClear(t *testing.T) {
	world := newTestWorld(10, 10)
	u := addUnit(t, world, domain.FactionPlayer, 1, 1, 2)
	r := ComputeMovementRange(world, u, testTilesPerAP)
	b := NewPathBuilder(world, u, testTilesPerAP, 1)

	if !b.Load(r.PathTo(6, 3)) {
		t.Fatal("canonical path should load")
	}
	if b.Tail() != (domain.Position{X: 6, Y: 3}) {
		t.Errorf("tail = %v", b.Tail())
	}
	e, _ := r.Entry(6, 3)
	if b.Cost() != e.Cost {
		t.Errorf("loaded cost %d, range cost %d", b.Cost(), e.Cost)
	}
	if !b.Tiles().Has(domain.Position{X: 1, Y: 1}) {
		t.Error("tile set should include origin")
	}

	if b.Load([]domain.PathStep{{X: 5, Y: 5}}) {
		t.Error("non-adjacent path must not load")
	}
	if b.Len() != 0 {
		t.Error("failed load must leave an empty preview")
	}

	b.TryExtend(2, 2)
	b.Clear()
	if b.Len() != 0 || b.Cost() != 0 || u.Pos != (domain.Position{X: 1, Y: 1}) {
		t.Error("Clear must drop the preview without touching the unit")
	}
}

func TestPathBuilder_TilesFollowPreview(t *testing.T) {
	world := newTestWorld(10, 10)
	u := addUnit(t, world, domain.FactionPlayer, 1, 1, 2)
	b := NewPathBuilder(world, u, testTilesPerAP, 1)

	for _, p := range []domain.Position{{X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1}} {
		if !b.TryExtend(p.X, p.Y) {
			t.Fatalf("extend to %v failed", p)
		}
	}
	if got := b.Tiles().Size(); got != 4 {
		t.Fatalf("tiles = %d, want 4 (origin + 3 steps)", got)
	}

	// Обрезка до второй клетки снимает хвост из множества
	b.TryExtend(2, 1)
	tiles := b.Tiles()
	if tiles.Size() != 2 || tiles.Has(domain.Position{X: 4, Y: 1}) || tiles.Has(domain.Position{X: 3, Y: 1}) {
		t.Errorf("after truncate tiles size = %d", tiles.Size())
	}

	// Копия не связана с построителем
	tiles.Put(domain.Position{X: 9, Y: 9})
	if b.Tiles().Has(domain.Position{X: 9, Y: 9}) {
		t.Error("Tiles must return a copy")
	}

	b.Clear()
	if got := b.Tiles(); got.Size() != 1 || !got.Has(domain.Position{X: 1, Y: 1}) {
		t.Errorf("after Clear tiles = %d, want only origin", got.Size())
	}
}
