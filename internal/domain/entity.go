package domain

import (
	"strconv"
	"strings"
)

// UnitID - стабильный целочисленный идентификатор. 0 означает "нет юнита".
type UnitID int

func (id UnitID) String() string {
	return strconv.Itoa(int(id))
}

type Faction uint8

const (
	FactionUnknown Faction = iota
	FactionPlayer
	FactionHostile
)

var factionStringToType = map[string]Faction{
	"PLAYER":  FactionPlayer,
	"HOSTILE": FactionHostile,
}

var factionTypeToString = map[Faction]string{
	FactionPlayer:  "PLAYER",
	FactionHostile: "HOSTILE",
}

func ParseFaction(s string) Faction {
	if val, ok := factionStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return FactionUnknown
}

func (f Faction) String() string {
	if val, ok := factionTypeToString[f]; ok {
		return val
	}
	return "UNKNOWN"
}

// Unit - юнит на поле. Живет в GridWorld.Roster, ссылки на рендер не хранит.
type Unit struct {
	ID        UnitID   `json:"id"`
	Name      string   `json:"name"`
	Archetype string   `json:"archetype"`
	Faction   Faction  `json:"faction"`
	Pos       Position `json:"pos"`

	ActionPoints int `json:"actionPoints"`
	VisionRange  int `json:"visionRange"`

	HP     int `json:"hp"`
	MaxHP  int `json:"maxHp"`
	Attack int `json:"attack"`

	Alive bool `json:"alive"`
	// Busy выставлен, пока анимированное перемещение не завершилось.
	Busy bool `json:"busy"`
}

// IsOpposing - true для живых юнитов разных фракций.
func (u *Unit) IsOpposing(other *Unit) bool {
	if u == nil || other == nil || !u.Alive || !other.Alive {
		return false
	}
	return u.Faction != other.Faction
}

// CanAct - юнит можно выбрать для приказа.
func (u *Unit) CanAct() bool {
	return u.Alive && !u.Busy && u.ActionPoints > 0
}
