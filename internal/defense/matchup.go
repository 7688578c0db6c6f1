package defense

// Matchup returns the defender with a man assignment on offensiveID.
func Matchup(offensiveID string, a Assignments) (string, bool) {
	for _, as := range a.List {
		if as.Kind == KindMan && as.TargetID == offensiveID {
			return as.DefenderID, true
		}
	}
	return "", false
}

// DefenderFor is Matchup with the default-defender fallback. The second result reports whether
// the fallback was used; it is an approximation, not an error.
func DefenderFor(offensiveID string, a Assignments) (string, bool) {
	if id, ok := Matchup(offensiveID, a); ok {
		return id, false
	}
	return a.DefaultDefenderID, true
}

// Responsibility returns the assignment of a defender.
func (a Assignments) Responsibility(defenderID string) (Assignment, bool) {
	for _, as := range a.List {
		if as.DefenderID == defenderID {
			return as, true
		}
	}
	return Assignment{}, false
}
