package handlers

import (
	"encoding/json"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
)

// Commander описывает команды контроллера хода, доступные хендлерам.
// engine.Controller неявно реализует этот интерфейс.
type Commander interface {
	Select(id domain.UnitID) bool
	SelectAt(x, y int) bool
	Deselect()
	PreviewStep(x, y int) bool
	PreviewTo(x, y int) bool
	ClearPreview()
	Commit() error
	EndTurn() bool
}

// Context передает хендлеру контроллер сессии.
type Context struct {
	Ctrl Commander
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сессии напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, COMBAT, ERROR)
}

// HandlerFunc - это контракт для любой команды (SELECT, COMMIT, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// ErrorResult - сообщение об отклоненной команде для лога клиента.
func ErrorResult(msg string) Result {
	return Result{Msg: msg, MsgType: "ERROR"}
}
