package scenario

import (
	"github.com/ChrisWaycott/mini-chalice/internal/domain"
)

// Archetype определяет шаблон для создания юнита
type Archetype struct {
	Name    string
	Faction domain.Faction
	HP      int
	Attack  int
	Vision  int
}

// --- ИГРОК ---

var Raider = Archetype{
	Name:    "Raider",
	Faction: domain.FactionPlayer,
	HP:      120,
	Attack:  12,
	Vision:  5,
}

var Scout = Archetype{
	Name:    "Scout",
	Faction: domain.FactionPlayer,
	HP:      100,
	Attack:  15,
	Vision:  7,
}

// --- ВРАГИ ---

var Zombie = Archetype{
	Name:    "Zombie",
	Faction: domain.FactionHostile,
	HP:      80,
	Attack:  8,
	Vision:  3,
}

// Archetypes - реестр по ключу из файла сценария
var Archetypes = map[string]Archetype{
	"raider": Raider,
	"scout":  Scout,
	"zombie": Zombie,
}

// Spawn создает юнит из шаблона на заданной позиции. AP выдаются только игроку.
func (a Archetype) Spawn(pos domain.Position, apPerTurn int) *domain.Unit {
	u := &domain.Unit{
		Name:        a.Name,
		Faction:     a.Faction,
		Pos:         pos,
		VisionRange: a.Vision,
		HP:          a.HP,
		MaxHP:       a.HP,
		Attack:      a.Attack,
		Alive:       true,
	}
	if u.Faction == domain.FactionPlayer {
		u.ActionPoints = apPerTurn
	}
	return u
}
