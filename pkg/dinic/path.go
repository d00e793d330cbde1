package dinic

import "github.com/wsnlab/kcmc/pkg/instance"

// PredKind tags a predecessor entry.
type PredKind uint8

const (
	// PredUnvisited marks a sensor untouched by the current search.
	PredUnvisited PredKind = iota

	// PredRoot marks a sensor reached directly from the search's POI.
	PredRoot

	// PredViaSensor marks a sensor reached through another sensor (Via).
	PredViaSensor
)

// Pred records how a sensor was reached during one augmenting-path search.
type Pred struct {
	// Via is the predecessor sensor index; valid only for PredViaSensor.
	Via  int
	Kind PredKind
}

// Preds is a per-search predecessor array indexed by sensor.
// It must be Reset before every FindPath call.
type Preds []Pred

// NewPreds allocates a predecessor array for n sensors.
func NewPreds(n int) Preds { return make(Preds, n) }

// Reset marks every sensor unvisited.
func (p Preds) Reset() {
	for i := range p {
		p[i] = Pred{Kind: PredUnvisited}
	}
}

// FindPath searches for one augmenting path from poi to any sink.
//
// The search starts at the POI's covering sensors that are reachable in the
// level graph and not in used, and only ever moves to a neighbor exactly one
// level deeper. The first visited sensor adjacent to a sink terminates the
// search and is returned; preds then holds the full path back to the POI
// (PredRoot marks the first hop). Returns -1 when no sink is reachable
// under the current exclusions.
//
// The used set is caller-owned and may grow between calls; sensors in it
// are never visited, which is what makes repeated calls yield node-disjoint
// paths for the same POI.
func FindPath(inst *instance.Instance, poi int, used *instance.Set, levels Levels, preds Preds) int {
	queue := make([]int, 0, inst.NumSensors())
	found := -1

	inst.Covers(poi).Each(func(sensor int) bool {
		if used.Contains(sensor) || !levels.Reachable(sensor) {
			return true
		}
		preds[sensor] = Pred{Kind: PredRoot}
		if inst.ReachesSink(sensor) {
			found = sensor
			return false
		}
		queue = append(queue, sensor)
		return true
	})
	if found != -1 {
		return found
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		inst.Neighbors(cur).Each(func(next int) bool {
			if used.Contains(next) || preds[next].Kind != PredUnvisited {
				return true
			}
			if !levels.Reachable(next) || levels[next] != levels[cur]+1 {
				return true
			}
			preds[next] = Pred{Kind: PredViaSensor, Via: cur}
			if inst.ReachesSink(next) {
				found = next
				return false
			}
			queue = append(queue, next)
			return true
		})
		if found != -1 {
			return found
		}
	}
	return -1
}
