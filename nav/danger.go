package nav

func teamIndex(team int) int {
	idx := team % MaxAreaTeams
	if idx < 0 {
		idx += MaxAreaTeams
	}
	return idx
}

// decayDanger applies the linear decay accumulated since the slot was last
// touched.
func (a *Area) decayDanger(idx int, now float64) {
	slot := &a.danger[idx]
	slot.value -= a.params().DangerDecayRate * (now - slot.timestamp)
	if slot.value < 0 {
		slot.value = 0
	}
	slot.timestamp = now
}

// IncreaseDanger adds amount to the team's danger after decaying the
// current value.
func (a *Area) IncreaseDanger(team int, amount float64) {
	now := a.now()
	idx := teamIndex(team)
	a.decayDanger(idx, now)
	a.danger[idx].value += amount
}

// GetDanger returns the team's current danger. Danger falls linearly by
// DangerDecayRate per second and never below zero.
func (a *Area) GetDanger(team int) float64 {
	idx := teamIndex(team)
	a.decayDanger(idx, a.now())
	return a.danger[idx].value
}

// MarkAsCleared records that the team has cleared this area now.
func (a *Area) MarkAsCleared(team int) {
	a.cleared[teamIndex(team)] = a.now()
}

// GetClearedTimestamp returns when the team last cleared this area.
func (a *Area) GetClearedTimestamp(team int) float64 {
	return a.cleared[teamIndex(team)]
}

func (a *Area) now() float64 {
	if a.mesh == nil {
		return 0
	}
	return a.mesh.now()
}
