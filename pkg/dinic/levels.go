// Package dinic implements the KCMC coverage/connectivity engine: level-graph
// construction, augmenting-path search, the k-coverage and m-connectivity
// validators, and the min/max flood algorithms that expand witness paths into
// redundancy sets.
//
// All functions are pure with respect to the instance: searches read the
// instance's adjacency and write only into caller-owned buffers (level
// slices, predecessor arrays, sensor sets), so independent calls may run
// concurrently on the same instance. The engine itself is single-threaded
// and runs each search to completion.
//
// Every entry point takes an inactive-sensor set: the sensors excluded from
// the search. Its complement is the candidate solution (the "installation
// spots"); threading the exclusion set through every call is what lets the
// optimizers probe candidate solutions without copying the instance.
package dinic

import "github.com/wsnlab/kcmc/pkg/instance"

// LevelUnreachable marks a sensor with no active path from any POI.
const LevelUnreachable = -1

// Levels assigns each sensor its BFS distance from the POI coverage
// frontier, or LevelUnreachable. Levels bound the augmenting-path search to
// strictly level-increasing moves (the Dinic phase restriction).
type Levels []int

// Reachable reports whether the sensor was reached by the level BFS.
func (l Levels) Reachable(sensor int) bool { return l[sensor] != LevelUnreachable }

// BuildLevels layers the active sensors by breadth-first search.
//
// The source frontier is every active sensor that covers some POI; those
// sensors get level 0 and each sensor-sensor hop increments the level.
// Inactive sensors are never visited and keep LevelUnreachable. Levels are
// shortest hop distances, so the result does not depend on set iteration
// order.
func BuildLevels(inst *instance.Instance, inactive *instance.Set) Levels {
	levels := make(Levels, inst.NumSensors())
	for i := range levels {
		levels[i] = LevelUnreachable
	}

	queue := make([]int, 0, inst.NumSensors())
	for poi := 0; poi < inst.NumPOIs(); poi++ {
		inst.Covers(poi).Each(func(sensor int) bool {
			if !inactive.Contains(sensor) && levels[sensor] == LevelUnreachable {
				levels[sensor] = 0
				queue = append(queue, sensor)
			}
			return true
		})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		inst.Neighbors(cur).Each(func(next int) bool {
			if !inactive.Contains(next) && levels[next] == LevelUnreachable {
				levels[next] = levels[cur] + 1
				queue = append(queue, next)
			}
			return true
		})
	}
	return levels
}
