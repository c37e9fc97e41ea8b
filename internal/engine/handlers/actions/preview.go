package actions

import (
	"github.com/ChrisWaycott/mini-chalice/internal/engine/handlers"
	"github.com/ChrisWaycott/mini-chalice/pkg/api"
)

// HandlePreviewStep - курсор перешел на соседнюю клетку. Отказ не логируем:
// при перетаскивании он штатный.
func HandlePreviewStep(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	ctx.Ctrl.PreviewStep(p.X, p.Y)
	return handlers.EmptyResult(), nil
}

func HandlePreviewTo(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	if !ctx.Ctrl.PreviewTo(p.X, p.Y) {
		return handlers.ErrorResult("Туда не дойти."), nil
	}
	return handlers.EmptyResult(), nil
}

func HandleClearPreview(ctx handlers.Context) (handlers.Result, error) {
	ctx.Ctrl.ClearPreview()
	return handlers.EmptyResult(), nil
}
