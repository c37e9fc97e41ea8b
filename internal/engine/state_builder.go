package engine

import (
	"sort"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/pkg/api"
	"github.com/zyedidia/generic/mapset"
)

// BuildSnapshot создает "снимок" поля боя для презентации.
// Неисследованные клетки и юниты вне видимости клиенту не отдаются.
func BuildSnapshot(c *Controller, events []domain.Event, logs []api.LogEntry) *api.ServerResponse {
	world := c.World()
	vis := c.Visibility()

	// 1. Карта с туманом
	mapDTO := make([]api.TileView, 0, world.Width*world.Height)
	for y := 0; y < world.Height; y++ {
		for x := 0; x < world.Width; x++ {
			state := vis.State(x, y)
			if state == domain.Unexplored {
				continue
			}
			tile := world.Map[y][x]
			mapDTO = append(mapDTO, api.TileView{
				X:           x,
				Y:           y,
				IsWall:      !tile.Walkable && !tile.Corrupted,
				IsCorrupted: tile.Corrupted,
				Visibility:  state.String(),
			})
		}
	}

	// 2. Юниты: свои всегда, чужие только в зоне видимости
	visible := vis.VisibleSet()
	units := make([]api.UnitView, 0, len(world.Roster))
	for _, u := range world.Units() {
		if u.Faction != domain.FactionPlayer && !visible.Has(u.Pos) {
			continue
		}
		units = append(units, toUnitView(u))
	}

	// 3. События
	eventViews := make([]api.EventView, 0, len(events))
	for _, e := range events {
		eventViews = append(eventViews, toEventView(e))
	}

	logsCopy := make([]api.LogEntry, len(logs))
	copy(logsCopy, logs)

	return &api.ServerResponse{
		Type:           "UPDATE",
		Turn:           c.Turn(),
		Phase:          c.Phase().String(),
		Clock:          c.Now().Milliseconds(),
		Busy:           c.IsBusy(),
		EndTurnPending: c.EndTurnPending(),
		Grid:           &api.GridMeta{Width: world.Width, Height: world.Height},
		Map:            mapDTO,
		Visible:        toVisibleView(visible),
		Units:          units,
		Selection:      buildSelection(c),
		Events:         eventViews,
		Logs:           logsCopy,
	}
}

func buildSelection(c *Controller) *api.SelectionView {
	id, ok := c.Selected()
	if !ok {
		return nil
	}

	view := &api.SelectionView{
		UnitID:    int(id),
		Reachable: make([]api.ReachView, 0),
		Preview:   toStepViews(c.Preview()),
		APCost:    c.PreviewAPCost(),
	}
	if r := c.MovementRange(); r != nil {
		for _, e := range r.Entries() {
			view.Reachable = append(view.Reachable, api.ReachView{
				X:      e.Target.X,
				Y:      e.Target.Y,
				MP:     e.MovementPoints(),
				APCost: e.APCost,
			})
		}
	}
	if t, ok := c.PreviewTarget(); ok {
		view.Target = &api.PositionPayload{X: t.X, Y: t.Y}
	}
	return view
}

// toUnitView конвертирует доменный юнит в DTO для отправки клиенту.
func toUnitView(u *domain.Unit) api.UnitView {
	view := api.UnitView{
		ID:           int(u.ID),
		Name:         u.Name,
		Archetype:    u.Archetype,
		Faction:      u.Faction.String(),
		HP:           u.HP,
		MaxHP:        u.MaxHP,
		ActionPoints: u.ActionPoints,
		VisionRange:  u.VisionRange,
		Busy:         u.Busy,
	}
	view.Pos.X = u.Pos.X
	view.Pos.Y = u.Pos.Y
	return view
}

func toEventView(e domain.Event) api.EventView {
	return api.EventView{
		Type:     e.Type.String(),
		UnitID:   int(e.UnitID),
		TargetID: int(e.TargetID),
		X:        e.Pos.X,
		Y:        e.Pos.Y,
		Path:     toStepViews(e.Path),
		APCost:   e.APCost,
		Damage:   e.Damage,
		HP:       e.HP,
		Phase:    e.Phase.String(),
		Turn:     e.Turn,
		At:       e.At.Milliseconds(),
		Due:      e.Due.Milliseconds(),
		Reason:   e.Reason,
	}
}

// toVisibleView разворачивает множество видимых клеток в отсортированный срез.
func toVisibleView(visible mapset.Set[domain.Position]) []api.PositionPayload {
	out := make([]api.PositionPayload, 0, visible.Size())
	visible.Each(func(p domain.Position) {
		out = append(out, api.PositionPayload{X: p.X, Y: p.Y})
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func toStepViews(steps []domain.PathStep) []api.StepView {
	out := make([]api.StepView, 0, len(steps))
	for _, s := range steps {
		out = append(out, api.StepView{X: s.X, Y: s.Y, IsDiagonal: s.IsDiagonal})
	}
	return out
}
