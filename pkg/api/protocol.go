package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он представляет собой полный "снимок" поля боя после очередного кадра
// или команды: карта с туманом, юниты, выбор и новые события.
type ServerResponse struct {
	// Type тип сообщения: "UPDATE" или "ERROR".
	Type string `json:"type"`

	// Turn номер хода, начиная с 1.
	Turn int `json:"turn"`

	// Phase чья сейчас фаза: PLAYER или HOSTILE.
	// Клиент принимает ввод только в фазе PLAYER.
	Phase string `json:"phase"`

	// Clock виртуальное время сессии в миллисекундах.
	Clock int64 `json:"clock"`

	// Busy true, пока хотя бы один юнит анимирует движение.
	Busy bool `json:"busy"`

	// EndTurnPending конец хода запрошен и ждет завершения движений.
	EndTurnPending bool `json:"endTurnPending,omitempty"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map срез всех видимых и/или исследованных тайлов.
	Map []TileView `json:"map,omitempty"`

	// Visible клетки, видимые прямо сейчас (строка за строкой).
	Visible []PositionPayload `json:"visible,omitempty"`

	// Units срез видимых юнитов.
	Units []UnitView `json:"units,omitempty"`

	// Selection выбор, зона досягаемости и предпросмотр пути.
	Selection *SelectionView `json:"selection,omitempty"`

	// Events события ядра с прошлого снимка.
	Events []EventView `json:"events,omitempty"`

	// Logs срез новых сообщений для чата.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO (Data Transfer Object) для одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// IsWall true, если тайл является непроходимым препятствием.
	IsWall bool `json:"isWall"`

	// IsCorrupted клетка осквернена смертью юнита. Навсегда непроходима.
	IsCorrupted bool `json:"isCorrupted,omitempty"`

	// Visibility одно из UNEXPLORED, EXPLORED, VISIBLE.
	// EXPLORED рендерится тускло, VISIBLE ярко.
	Visibility string `json:"visibility"`
}

// UnitView это DTO для юнита.
type UnitView struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Archetype string `json:"archetype,omitempty"`
	Faction   string `json:"faction"` // PLAYER, HOSTILE

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	HP           int  `json:"hp"`
	MaxHP        int  `json:"maxHp"`
	ActionPoints int  `json:"actionPoints"`
	VisionRange  int  `json:"visionRange"`
	Busy         bool `json:"busy,omitempty"`
}

// SelectionView описывает выбранный юнит и его предпросмотр.
type SelectionView struct {
	UnitID int `json:"unitId"`

	// Reachable клетки зоны досягаемости с ценой.
	Reachable []ReachView `json:"reachable"`

	// Preview шаги пути предпросмотра.
	Preview []StepView `json:"preview"`

	// Target клетка атаки в конце пути.
	Target *PositionPayload `json:"target,omitempty"`

	// APCost цена предпросмотра с учетом атаки.
	APCost int `json:"apCost"`
}

// ReachView - клетка зоны досягаемости.
type ReachView struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	MP     float64 `json:"mp"`
	APCost int     `json:"apCost"`
}

type StepView struct {
	X          int  `json:"x"`
	Y          int  `json:"y"`
	IsDiagonal bool `json:"isDiagonal,omitempty"`
}

// EventView это DTO для события ядра.
type EventView struct {
	Type     string     `json:"type"`
	UnitID   int        `json:"unitId,omitempty"`
	TargetID int        `json:"targetId,omitempty"`
	X        int        `json:"x"`
	Y        int        `json:"y"`
	Path     []StepView `json:"path,omitempty"`
	APCost   int        `json:"apCost,omitempty"`
	Damage   int        `json:"damage,omitempty"`
	HP       int        `json:"hp,omitempty"`
	Phase    string     `json:"phase"`
	Turn     int        `json:"turn"`
	At       int64      `json:"at"`            // ms виртуального времени
	Due      int64      `json:"due,omitempty"` // для SPAWN_TELEGRAPHED
	Reason   string     `json:"reason,omitempty"`
}

// LogEntry представляет одну запись в игровом логе (чате).
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// VersionView ответ /version: сборка сервера и версия протокола,
// по которой клиент проверяет совместимость снимков.
type VersionView struct {
	Protocol int    `json:"protocol"`
	Build    int    `json:"build"`
	Date     string `json:"date,omitempty"`
	Commit   string `json:"commit"`
	Branch   string `json:"branch"`

	// Dev true для локальной сборки без даты (Build тогда 0).
	Dev   bool   `json:"dev,omitempty"`
	Error string `json:"error,omitempty"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// SelectPayload выбирает юнит по ID или по клетке (SELECT).
type SelectPayload struct {
	UnitID int  `json:"unitId,omitempty"`
	X      *int `json:"x,omitempty"`
	Y      *int `json:"y,omitempty"`
}

// PositionPayload используется для действий, нацеленных на клетку (PREVIEW_STEP, PREVIEW_TO).
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}
