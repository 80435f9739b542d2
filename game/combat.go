package game

// Outcome is the result of a single attack.
type Outcome int

const (
	OutcomeRefused Outcome = iota
	OutcomeDefenseHeld
	OutcomeDefenderWeakened
	OutcomeCaptured
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRefused:
		return "refused"
	case OutcomeDefenseHeld:
		return "defense held"
	case OutcomeDefenderWeakened:
		return "defender weakened"
	case OutcomeCaptured:
		return "captured"
	default:
		return "unknown"
	}
}

// AttackResult reports what an attack did, with enough detail to render it.
type AttackResult struct {
	Attacker    int     `json:"attacker"`
	Defender    int     `json:"defender"`
	AttackRoll  int     `json:"attackRoll"`  // 0 when refused
	DefenseRoll int     `json:"defenseRoll"` // 0 when refused
	Outcome     Outcome `json:"outcome"`

	AttackerFaction string `json:"attackerFaction"`
	DefenderFaction string `json:"defenderFaction"` // before the attack
	AttackerBefore  int    `json:"attackerBefore"`
	AttackerAfter   int    `json:"attackerAfter"`
	DefenderBefore  int    `json:"defenderBefore"`
	DefenderAfter   int    `json:"defenderAfter"`
}

func (ar AttackResult) Captured() bool {
	return ar.Outcome == OutcomeCaptured
}

// Refused reports whether the attacker lacked the troops to attack.
func (ar AttackResult) Refused() bool {
	return ar.Outcome == OutcomeRefused
}

// Attack resolves one attack from territory attackerID on defenderID.
//
// An attacker holding the minimum garrison is refused without any draw or
// mutation. Otherwise one die is rolled for each side; the defender loses a
// troop only on a strictly higher attack roll, and is captured once it falls
// to the garrison floor. A capture hands the defender to the attacker's
// faction with half the attacker's troops (at least the floor) and leaves the
// attacker's own count untouched. Any other roll costs the attacker a troop.
func Attack(reg *Registry, attackerID, defenderID int, src Source, rules Rules) (AttackResult, error) {
	attacker := reg.territory(attackerID)
	defender := reg.territory(defenderID)

	if attackerID == defenderID {
		return AttackResult{}, ErrSameTerritory
	}
	if attacker.Faction == defender.Faction {
		return AttackResult{}, ErrAlliedTarget
	}

	result := AttackResult{
		Attacker:        attackerID,
		Defender:        defenderID,
		AttackerFaction: attacker.Faction,
		DefenderFaction: defender.Faction,
		AttackerBefore:  attacker.Troops,
		DefenderBefore:  defender.Troops,
	}

	if attacker.Troops <= rules.MinGarrison() {
		result.Outcome = OutcomeRefused
		result.AttackerAfter = attacker.Troops
		result.DefenderAfter = defender.Troops
		return result, nil
	}

	result.AttackRoll = rollDie(src, rules.DiceSides())
	result.DefenseRoll = rollDie(src, rules.DiceSides())

	attackerLosses, defenderLosses := rules.DetermineAttackOutcome(result.AttackRoll, result.DefenseRoll)
	attacker.Troops -= attackerLosses
	defender.Troops -= defenderLosses

	switch {
	case defenderLosses > 0 && rules.IsCaptured(defender.Troops):
		defender.Faction = attacker.Faction
		defender.Troops = rules.CaptureGarrison(attacker.Troops)
		result.Outcome = OutcomeCaptured
	case defenderLosses > 0:
		result.Outcome = OutcomeDefenderWeakened
	default:
		result.Outcome = OutcomeDefenseHeld
	}

	result.AttackerAfter = attacker.Troops
	result.DefenderAfter = defender.Troops
	return result, nil
}
