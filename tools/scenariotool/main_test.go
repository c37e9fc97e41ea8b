package main

import (
	"strings"
	"testing"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/internal/systems"
)

func TestRender(t *testing.T) {
	w := domain.NewGridWorld(4, 2)
	w.SetWalkable(3, 0, false)
	u := &domain.Unit{Faction: domain.FactionPlayer, ActionPoints: 1, Alive: true, HP: 1, MaxHP: 1}
	if _, err := w.AddUnit(u); err != nil {
		t.Fatal(err)
	}

	if got, want := render(w, nil), "@..#\n....\n"; got != want {
		t.Errorf("render = %q, want %q", got, want)
	}

	r := systems.ComputeMovementRange(w, u, 4)
	rows := strings.Split(render(w, r), "\n")
	if rows[0] != "@11#" || rows[1] != "1111" {
		t.Errorf("range render = %q", rows)
	}
}
