package game

// IsDeadlocked reports whether the game can no longer progress: every
// territory is down to the rules' garrison floor (one troop under the
// standard rules), so every attack would be refused, and the mission was
// never completed. A completed mission is never a deadlock.
func IsDeadlocked(r *Registry, m Mission, rules Rules) bool {
	return !r.CanAttack(rules.MinGarrison()) && !m.Completed
}
