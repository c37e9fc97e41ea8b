package systems

import (
	"fmt"

	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/pkg/logger"
	"github.com/sirupsen/logrus"
)

// AttackResult - исход одной атаки ближнего боя.
type AttackResult struct {
	AttackerID domain.UnitID
	TargetID   domain.UnitID
	Damage     int
	HPBefore   int
	HPAfter    int
	Killed     bool
	Msg        string
}

// ApplyAttack наносит фиксированный урон: Attack атакующего или fallbackDamage.
// Снятие убитого с поля делает контроллер.
func ApplyAttack(attacker, target *domain.Unit, fallbackDamage int) AttackResult {
	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":     "combat_system",
		"attacker_id":   attacker.ID,
		"attacker_name": attacker.Name,
		"target_id":     target.ID,
		"target_name":   target.Name,
	})

	res := AttackResult{AttackerID: attacker.ID, TargetID: target.ID, HPBefore: target.HP}

	if !target.Alive {
		combatLogger.Info("Attack ineffective: target is already dead.")
		res.HPAfter = target.HP
		res.Msg = fmt.Sprintf("%s бьет по останкам %s.", attacker.Name, target.Name)
		return res
	}

	damage := fallbackDamage
	if attacker.Attack > 0 {
		damage = attacker.Attack
	}

	res.Damage = damage
	res.Killed = target.TakeDamage(damage)
	res.HPAfter = target.HP

	combatLogger.WithFields(logrus.Fields{
		"damage":      damage,
		"hp_before":   res.HPBefore,
		"hp_after":    res.HPAfter,
		"target_died": res.Killed,
	}).Info("Attack resolved.")

	res.Msg = fmt.Sprintf("%s наносит %d урона по %s.", attacker.Name, damage, target.Name)
	if res.Killed {
		res.Msg += fmt.Sprintf(" %s погибает.", target.Name)
	}
	return res
}

// SpawnStats - характеристики порождения на месте погибшего.
type SpawnStats struct {
	MaxHP       int
	Attack      int
	VisionRange int
}

// DeriveSpawnStats ослабляет погибшего. ok=false, если здоровья не осталось:
// так цепочка смерть-порождение конечна.
func DeriveSpawnStats(dead *domain.Unit, hpRatio, attackRatio float64) (SpawnStats, bool) {
	maxHP := int(float64(dead.MaxHP) * hpRatio)
	if maxHP < 1 {
		return SpawnStats{}, false
	}
	return SpawnStats{
		MaxHP:       maxHP,
		Attack:      max(1, int(float64(dead.Attack)*attackRatio)),
		VisionRange: dead.VisionRange,
	}, true
}
