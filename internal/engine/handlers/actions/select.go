package actions

import (
	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/internal/engine/handlers"
	"github.com/ChrisWaycott/mini-chalice/pkg/api"
)

// HandleSelect выбирает юнит по ID или по клетке.
func HandleSelect(ctx handlers.Context, p api.SelectPayload) (handlers.Result, error) {
	var ok bool
	if p.UnitID != 0 {
		ok = ctx.Ctrl.Select(domain.UnitID(p.UnitID))
	} else {
		ok = ctx.Ctrl.SelectAt(*p.X, *p.Y)
	}
	if !ok {
		return handlers.ErrorResult("Этот юнит сейчас нельзя выбрать."), nil
	}
	return handlers.EmptyResult(), nil
}

func HandleDeselect(ctx handlers.Context) (handlers.Result, error) {
	ctx.Ctrl.Deselect()
	return handlers.EmptyResult(), nil
}
