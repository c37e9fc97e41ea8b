package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionSelect
	ActionDeselect
	ActionPreviewStep
	ActionPreviewTo
	ActionClearPreview
	ActionCommit
	ActionEndTurn

	// Решения враждебного ИИ, с клиента не приходят.
	ActionMove
	ActionAttack
	ActionWait
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":          ActionInit,
	"SELECT":        ActionSelect,
	"DESELECT":      ActionDeselect,
	"PREVIEW_STEP":  ActionPreviewStep,
	"PREVIEW_TO":    ActionPreviewTo,
	"CLEAR_PREVIEW": ActionClearPreview,
	"COMMIT":        ActionCommit,
	"END_TURN":      ActionEndTurn,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:         "INIT",
	ActionSelect:       "SELECT",
	ActionDeselect:     "DESELECT",
	ActionPreviewStep:  "PREVIEW_STEP",
	ActionPreviewTo:    "PREVIEW_TO",
	ActionClearPreview: "CLEAR_PREVIEW",
	ActionCommit:       "COMMIT",
	ActionEndTurn:      "END_TURN",
	ActionMove:         "MOVE",
	ActionAttack:       "ATTACK",
	ActionWait:         "WAIT",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
