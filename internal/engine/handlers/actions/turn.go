package actions

import (
	"github.com/ChrisWaycott/mini-chalice/internal/engine/handlers"
)

func HandleEndTurn(ctx handlers.Context) (handlers.Result, error) {
	if !ctx.Ctrl.EndTurn() {
		return handlers.ErrorResult("Сейчас ход противника."), nil
	}
	return handlers.Result{Msg: "Ход завершен.", MsgType: "INFO"}, nil
}

// HandleInit ничего не меняет: сессия просто разошлет свежий снимок.
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.EmptyResult(), nil
}
