package dinic

import "github.com/wsnlab/kcmc/pkg/instance"

// MConnectivity certifies that every POI has at least m node-disjoint
// active-sensor paths to some sink.
//
// The level graph is built once and shared across all POIs; per-POI path
// lengths therefore reflect distances in the same layering, which the flood
// tie-break rule depends on. For each POI the augmenting-path search runs
// with a used-sensor set seeded from inactive, so each found path's sensors
// are excluded from that POI's later searches (node-disjointness per POI;
// different POIs may share sensors).
//
// Returns -1 on success, or the index of the first POI that cannot reach m
// disjoint paths. On success every path sensor is accumulated into used.
func MConnectivity(inst *instance.Instance, m int, inactive, used *instance.Set) int {
	if m < 1 {
		return -1
	}

	levels := BuildLevels(inst, inactive)
	preds := NewPreds(inst.NumSensors())
	poiUsed := instance.NewSet(inst.NumSensors())

	for poi := 0; poi < inst.NumPOIs(); poi++ {
		poiUsed.CopyFrom(inactive)
		paths := 0
		for paths < m {
			preds.Reset()
			end := FindPath(inst, poi, poiUsed, levels, preds)
			if end == -1 {
				return poi
			}
			paths++
			for cur := end; ; {
				poiUsed.Add(cur)
				used.Add(cur)
				p := preds[cur]
				if p.Kind != PredViaSensor {
					break
				}
				cur = p.Via
			}
		}
	}
	return -1
}
