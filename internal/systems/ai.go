package systems

import (
	"github.com/ChrisWaycott/mini-chalice/internal/domain"
	"github.com/ChrisWaycott/mini-chalice/pkg/logger"
	"github.com/sirupsen/logrus"
)

// HostileDecision - что делает враждебный юнит в свой ход.
type HostileDecision struct {
	Action domain.ActionType // ActionAttack, ActionMove или ActionWait
	Target *domain.Unit
	Dx, Dy int
}

// ComputeHostileAction - жадное правило: бить соседа, иначе шаг к ближайшему игроку.
// Мир не меняет.
func ComputeHostileAction(w *domain.GridWorld, npc *domain.Unit) HostileDecision {
	aiLogger := logger.Log.WithFields(logrus.Fields{
		"component": "ai_system",
		"unit_id":   npc.ID,
		"x":         npc.Pos.X,
		"y":         npc.Pos.Y,
	})

	if !npc.Alive {
		return HostileDecision{Action: domain.ActionWait}
	}

	players := w.UnitsOf(domain.FactionPlayer)
	if len(players) == 0 {
		aiLogger.Debug("No living targets. Action: WAIT")
		return HostileDecision{Action: domain.ActionWait}
	}

	// 1. Сосед по Чебышеву - атака без движения
	for _, p := range players {
		if npc.Pos.IsAdjacent(p.Pos) {
			aiLogger.WithField("target_id", p.ID).Debug("Target adjacent. Action: ATTACK")
			return HostileDecision{Action: domain.ActionAttack, Target: p}
		}
	}

	// 2. Ближайшая цель, при равенстве - меньший ID
	target := players[0]
	best := npc.Pos.DistanceSquaredTo(target.Pos)
	for _, p := range players[1:] {
		if d := npc.Pos.DistanceSquaredTo(p.Pos); d < best {
			best = d
			target = p
		}
	}

	// 3. Один шаг по оси с большей разницей, при равенстве - по вертикали
	dx, dy := npc.Pos.Delta(target.Pos)
	stepX, stepY := 0, sign(dy)
	if abs(dx) > abs(dy) {
		stepX, stepY = sign(dx), 0
	}

	res := CalculateStep(w, npc.ID, npc.Pos, stepX, stepY)
	if !res.HasMoved {
		aiLogger.WithField("target_id", target.ID).Debug("Step blocked. Action: WAIT")
		return HostileDecision{Action: domain.ActionWait, Target: target}
	}

	aiLogger.WithFields(logrus.Fields{
		"target_id": target.ID,
		"dx":        stepX,
		"dy":        stepY,
	}).Debug("Action: MOVE")
	return HostileDecision{Action: domain.ActionMove, Target: target, Dx: stepX, Dy: stepY}
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
