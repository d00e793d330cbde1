package dinic

import (
	kerrors "github.com/wsnlab/kcmc/pkg/errors"
	"github.com/wsnlab/kcmc/pkg/instance"
)

// LocalOptimum returns the sensors certifying both guarantees under the
// given exclusions: the union of every POI's k-coverage witnesses and every
// path sensor from the m-connectivity search. The result is the first local
// optimum a network operator could install.
//
// Fails with insufficient coverage or insufficient connectivity when the
// complement of inactive is not a valid (k, m) solution.
func LocalOptimum(inst *instance.Instance, k, m int, inactive *instance.Set) (*instance.Set, error) {
	used := instance.NewSet(inst.NumSensors())
	if poi := KCoverage(inst, k, inactive, used); poi != -1 {
		return nil, kerrors.New(kerrors.ErrCodeInsufficientCoverage,
			"POI %d has fewer than %d active covering sensors", poi, k)
	}
	if poi := MConnectivity(inst, m, inactive, used); poi != -1 {
		return nil, kerrors.New(kerrors.ErrCodeInsufficientConnectivity,
			"POI %d cannot reach %d node-disjoint paths to a sink", poi, m)
	}
	return used, nil
}
