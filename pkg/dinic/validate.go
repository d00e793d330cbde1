package dinic

import (
	kerrors "github.com/wsnlab/kcmc/pkg/errors"
	"github.com/wsnlab/kcmc/pkg/instance"
)

// Validate checks both guarantees and reports which one fails.
//
// The returned error carries ErrCodeInsufficientCoverage or
// ErrCodeInsufficientConnectivity and names the first offending POI. A nil
// return means the complement of inactive is a valid solution for (k, m).
func Validate(inst *instance.Instance, k, m int, inactive *instance.Set) error {
	scratch := instance.NewSet(inst.NumSensors())
	if poi := KCoverage(inst, k, inactive, scratch); poi != -1 {
		return kerrors.New(kerrors.ErrCodeInsufficientCoverage,
			"POI %d has fewer than %d active covering sensors", poi, k)
	}
	if poi := MConnectivity(inst, m, inactive, scratch); poi != -1 {
		return kerrors.New(kerrors.ErrCodeInsufficientConnectivity,
			"POI %d cannot reach %d node-disjoint paths to a sink", poi, m)
	}
	return nil
}

// IsValid is the non-raising form of Validate for call sites that only
// probe validity.
func IsValid(inst *instance.Instance, k, m int, inactive *instance.Set) bool {
	return Validate(inst, k, m, inactive) == nil
}
