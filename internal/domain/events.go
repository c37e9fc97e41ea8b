package domain

import (
	"strings"
	"time"
)

// EventType - Внутренний числовой идентификатор события
type EventType uint8

const (
	EventUnknown EventType = iota
	EventUnitSelected
	EventSelectionRejected
	EventPathCommitted
	EventCommitRejected
	EventUnitMoved
	EventMovementCompleted
	EventAttackResolved
	EventUnitDied
	EventSpawnTelegraphed
	EventUnitSpawned
	EventSpawnCanceled
	EventTurnEnded
)

// Маппинг для конвертации JSON -> Domain
var eventStringToType = map[string]EventType{
	"UNIT_SELECTED":      EventUnitSelected,
	"SELECTION_REJECTED": EventSelectionRejected,
	"PATH_COMMITTED":     EventPathCommitted,
	"COMMIT_REJECTED":    EventCommitRejected,
	"UNIT_MOVED":         EventUnitMoved,
	"MOVEMENT_COMPLETED": EventMovementCompleted,
	"ATTACK_RESOLVED":    EventAttackResolved,
	"UNIT_DIED":          EventUnitDied,
	"SPAWN_TELEGRAPHED":  EventSpawnTelegraphed,
	"UNIT_SPAWNED":       EventUnitSpawned,
	"SPAWN_CANCELED":     EventSpawnCanceled,
	"TURN_ENDED":         EventTurnEnded,
}

// Маппинг для логов Domain -> String
var eventTypeToString = map[EventType]string{
	EventUnitSelected:      "UNIT_SELECTED",
	EventSelectionRejected: "SELECTION_REJECTED",
	EventPathCommitted:     "PATH_COMMITTED",
	EventCommitRejected:    "COMMIT_REJECTED",
	EventUnitMoved:         "UNIT_MOVED",
	EventMovementCompleted: "MOVEMENT_COMPLETED",
	EventAttackResolved:    "ATTACK_RESOLVED",
	EventUnitDied:          "UNIT_DIED",
	EventSpawnTelegraphed:  "SPAWN_TELEGRAPHED",
	EventUnitSpawned:       "UNIT_SPAWNED",
	EventSpawnCanceled:     "SPAWN_CANCELED",
	EventTurnEnded:         "TURN_ENDED",
}

// ParseEvent конвертирует строку из JSON в EventType
func ParseEvent(s string) EventType {
	if val, ok := eventStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return EventUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (e EventType) String() string {
	if val, ok := eventTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// Event - дискретное событие ядра для презентации.
// Заполняются только поля, осмысленные для конкретного типа.
type Event struct {
	Type     EventType
	UnitID   UnitID
	TargetID UnitID
	Pos      Position

	Path   []PathStep
	APCost int
	Damage int
	HP     int

	Phase Phase
	Turn  int

	// At - время виртуальных часов контроллера; Due - срок отложенного события.
	At  time.Duration
	Due time.Duration

	Reason string
}
