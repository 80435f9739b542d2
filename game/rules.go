package game

type Rules interface {
	DiceSides() int
	// InitialTroops is the inclusive range a territory's starting troops are drawn from.
	InitialTroops() (min, max int)
	DetermineAttackOutcome(attackRoll, defenseRoll int) (attackerLosses, defenderLosses int)
	// IsCaptured reports whether a defender left with this many troops changes hands.
	IsCaptured(defenderTroops int) bool
	// CaptureGarrison is the troop count a captured territory receives.
	CaptureGarrison(attackerTroops int) int
	// MinGarrison is the troop floor no territory drops below.
	MinGarrison() int
}
