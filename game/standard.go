package game

type StandardRules struct {
	Sides     int
	MinTroops int
	MaxTroops int
	Garrison  int
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		Sides:     6,
		MinTroops: 3,
		MaxTroops: 7,
		Garrison:  1,
	}
}

func (sr *StandardRules) DiceSides() int {
	return sr.Sides
}

func (sr *StandardRules) InitialTroops() (int, int) {
	return sr.MinTroops, sr.MaxTroops
}

// DetermineAttackOutcome resolves a single die pair. Ties go to the defender.
func (sr *StandardRules) DetermineAttackOutcome(attackRoll, defenseRoll int) (attackerLosses, defenderLosses int) {
	if attackRoll > defenseRoll {
		return 0, 1
	}
	return 1, 0
}

func (sr *StandardRules) IsCaptured(defenderTroops int) bool {
	return defenderTroops <= sr.Garrison
}

func (sr *StandardRules) CaptureGarrison(attackerTroops int) int {
	return max(sr.Garrison, attackerTroops/2)
}

func (sr *StandardRules) MinGarrison() int {
	return sr.Garrison
}
