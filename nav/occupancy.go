package nav

import "gonum.org/v1/gonum/spatial/r3"

// GetPlayerCount returns the number of live entities of the given team
// standing on the area. An entity above a stack of overlapping areas counts
// only toward the highest surface at or below it. Team 0 counts every team.
func (a *Area) GetPlayerCount(team int) int {
	if a.mesh == nil || a.mesh.entities == nil {
		return 0
	}

	count := 0
	a.mesh.entities.ForEachLiveEntity(func(t int, pos r3.Vec) {
		if (team == 0 || t == team) && a.Contains(pos) {
			count++
		}
	})
	return count
}
