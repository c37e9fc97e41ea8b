package domain

// TakeDamage наносит урон. Возвращает true, если цель погибла.
// Юнит остается в реестре: убирает его контроллер по правилу смерти.
func (u *Unit) TakeDamage(amount int) bool {
	if !u.Alive {
		return false
	}

	if amount < 0 {
		amount = 0
	}

	u.HP -= amount

	if u.HP <= 0 {
		u.HP = 0
		u.Alive = false
		return true
	}
	return false
}

// SpendAP списывает очки действия, не уходя в минус.
func (u *Unit) SpendAP(cost int) {
	u.ActionPoints -= cost
	if u.ActionPoints < 0 {
		u.ActionPoints = 0
	}
}

// RestoreAP выставляет бюджет начала хода.
func (u *Unit) RestoreAP(perTurn int) {
	if !u.Alive {
		return
	}
	u.ActionPoints = perTurn
}
