package dinic

import "github.com/wsnlab/kcmc/pkg/instance"

// KCoverage certifies that every POI is covered by at least k active
// sensors.
//
// Returns -1 on success, or the index of the first POI with fewer than k
// active covering sensors (fail-fast: no further POIs are examined). On
// success every active covering sensor is accumulated into used; on failure
// used must not be trusted.
func KCoverage(inst *instance.Instance, k int, inactive, used *instance.Set) int {
	for poi := 0; poi < inst.NumPOIs(); poi++ {
		covers := inst.Covers(poi)
		if covers.DiffLen(inactive) < k {
			return poi
		}
		covers.Each(func(sensor int) bool {
			if !inactive.Contains(sensor) {
				used.Add(sensor)
			}
			return true
		})
	}
	return -1
}
