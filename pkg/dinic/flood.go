package dinic

import (
	kerrors "github.com/wsnlab/kcmc/pkg/errors"
	"github.com/wsnlab/kcmc/pkg/instance"
)

// Mode selects the flood stopping rule.
type Mode uint8

const (
	// MinFlood stops each POI's search as soon as m paths are found.
	MinFlood Mode = iota

	// MaxFlood keeps searching past m while newly found paths are no longer
	// than the longest among the first m, capturing every equally-short
	// alternative path.
	MaxFlood
)

func (m Mode) String() string {
	if m == MaxFlood {
		return "max_flood"
	}
	return "min_flood"
}

// Flood finds m node-disjoint paths per POI and expands each into the set
// of all active sensors that could substitute at any hop.
//
// Let path A connect POI P to sink S through sensors i0..in, where i0
// covers P and in is adjacent to S. The flooded version of A adds, for each
// consecutive triple (prev, cur, next) along A, every active sensor linking
// prev to next; at the POI end substitutes must cover P, and at the sink
// end they must be adjacent to some sink. The union over all paths of all
// POIs, plus every POI-covering sensor as baseline redundancy, is written
// into visited (any previous contents are discarded).
//
// K-coverage is re-validated up front and its failure is fatal to the call.
// The level graph is built once and shared across POIs, as in
// MConnectivity. Returns the total number of paths found; a POI that cannot
// reach m paths fails the whole call with insufficient connectivity.
func Flood(inst *instance.Instance, k, m int, mode Mode, inactive, visited *instance.Set) (int, error) {
	if m < 1 {
		return 0, kerrors.New(kerrors.ErrCodeInvalidInput, "m must be at least 1 (got %d)", m)
	}

	levels := BuildLevels(inst, inactive)

	scratch := instance.NewSet(inst.NumSensors())
	if poi := KCoverage(inst, k, inactive, scratch); poi != -1 {
		return 0, kerrors.New(kerrors.ErrCodeInsufficientCoverage,
			"POI %d has fewer than %d active covering sensors", poi, k)
	}

	visited.Clear()
	for poi := 0; poi < inst.NumPOIs(); poi++ {
		visited.AddAll(inst.Covers(poi))
	}

	preds := NewPreds(inst.NumSensors())
	used := instance.NewSet(inst.NumSensors())
	total := 0

	for poi := 0; poi < inst.NumPOIs(); poi++ {
		used.CopyFrom(inactive)
		paths := 0
		longest := 0

		for {
			preds.Reset()
			end := FindPath(inst, poi, used, levels, preds)
			if end == -1 {
				if paths < m {
					return 0, kerrors.New(kerrors.ErrCodeInsufficientConnectivity,
						"POI %d cannot reach %d node-disjoint paths to a sink", poi, m)
				}
				break
			}
			paths++
			total++

			length := floodPath(inst, poi, end, preds, inactive, used, visited)

			if mode == MaxFlood {
				if paths <= m && length > longest {
					longest = length
				}
				if length > longest {
					break
				}
			} else if paths == m {
				break
			}
		}
	}
	return total, nil
}

// floodPath walks one found path from its sink end back to the POI, marks
// its sensors used, adds each hop's substitutes to visited and returns the
// path length in sensors.
func floodPath(inst *instance.Instance, poi, end int, preds Preds, inactive, used, visited *instance.Set) int {
	length := 0
	next := -1 // -1 while cur is the last sensor before the sink
	for cur := end; ; {
		used.Add(cur)
		length++
		p := preds[cur]

		switch {
		case p.Kind == PredRoot && next == -1:
			// Single-sensor path: substitutes cover the POI and touch a sink.
			addSubstitutes(inst.Covers(poi), inactive, visited, inst.ReachesSink)
		case p.Kind == PredRoot:
			hop := cur
			addSubstitutes(inst.Covers(poi), inactive, visited, func(s int) bool {
				return inst.Neighbors(s).Contains(hop)
			})
		case next == -1:
			addSubstitutes(inst.Neighbors(p.Via), inactive, visited, inst.ReachesSink)
		default:
			hop := next
			addSubstitutes(inst.Neighbors(p.Via), inactive, visited, func(s int) bool {
				return inst.Neighbors(s).Contains(hop)
			})
		}

		next = cur
		if p.Kind != PredViaSensor {
			return length
		}
		cur = p.Via
	}
}

// addSubstitutes adds to visited every active candidate satisfying links.
func addSubstitutes(candidates, inactive, visited *instance.Set, links func(int) bool) {
	candidates.Each(func(s int) bool {
		if !inactive.Contains(s) && links(s) {
			visited.Add(s)
		}
		return true
	})
}
