package actions

import (
	"errors"

	"github.com/ChrisWaycott/mini-chalice/internal/engine/handlers"
	"github.com/ChrisWaycott/mini-chalice/internal/systems"
)

func HandleCommit(ctx handlers.Context) (handlers.Result, error) {
	err := ctx.Ctrl.Commit()
	switch {
	case err == nil:
		return handlers.EmptyResult(), nil
	case errors.Is(err, systems.ErrPathBlocked):
		return handlers.ErrorResult("Путь прегражден."), nil
	case errors.Is(err, systems.ErrStaleBudget):
		return handlers.ErrorResult("Не хватает очков действия."), nil
	default:
		return handlers.ErrorResult(err.Error()), nil
	}
}
