package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/wsnlab/kcmc/pkg/cache"
	"github.com/wsnlab/kcmc/pkg/dinic"
	"github.com/wsnlab/kcmc/pkg/instance"
	"github.com/wsnlab/kcmc/pkg/observability"
)

// Runner encapsulates preprocessing execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely use the same Runner
// with different instances and options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Preprocess runs the configured methods over the instance, consulting the
// cache first: a fresh cached result skips all computation.
func (r *Runner) Preprocess(ctx context.Context, inst *instance.Instance, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	instanceHash := r.Keyer.InstanceKey(inst.Serialize())
	cacheKey := r.Keyer.PreprocessKey(instanceHash, opts.K, opts.M)

	if !opts.Refresh {
		if reports, ok := r.cachedReports(ctx, cacheKey, opts.Methods); ok {
			observability.Cache().OnCacheHit(ctx, "preprocess")
			r.Logger.Info("preprocessing cached",
				"key", inst.Key(), "k", opts.K, "m", opts.M)
			return &Result{
				Reports:   reports,
				Stats:     Stats{Methods: len(reports), Duration: time.Since(start)},
				CacheInfo: CacheInfo{Hit: true},
			}, nil
		}
		observability.Cache().OnCacheMiss(ctx, "preprocess")
	}

	reports := make([]Report, 0, len(opts.Methods))
	for _, method := range opts.Methods {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report, err := r.runMethod(ctx, inst, method, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
		reports = append(reports, report)
		r.Logger.Info("preprocessing method done",
			"method", report.Method,
			"used", report.NumUsed,
			"duration", time.Duration(report.RuntimeMicros)*time.Microsecond)
	}

	if data, err := json.Marshal(reports); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, opts.TTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "preprocess", len(data))
		}
	}

	return &Result{
		Reports: reports,
		Stats:   Stats{Methods: len(reports), Duration: time.Since(start)},
	}, nil
}

// cachedReports loads reports from the cache; a mismatch with the requested
// methods is treated as a miss.
func (r *Runner) cachedReports(ctx context.Context, key string, methods []string) ([]Report, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var reports []Report
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, false
	}
	if len(reports) != len(methods) {
		return nil, false
	}
	return reports, true
}

// runMethod executes one preprocessing method and assembles its report.
func (r *Runner) runMethod(ctx context.Context, inst *instance.Instance, method string, opts Options) (Report, error) {
	key := inst.Key()
	observability.Engine().OnMethodStart(ctx, key, method)

	inactive := instance.NewSet(inst.NumSensors())
	var (
		used     *instance.Set
		numPaths int
		err      error
	)

	start := time.Now()
	switch method {
	case MethodDinic:
		used, err = dinic.LocalOptimum(inst, opts.K, opts.M, inactive)
	case MethodMinFlood:
		used = instance.NewSet(inst.NumSensors())
		numPaths, err = dinic.Flood(inst, opts.K, opts.M, dinic.MinFlood, inactive, used)
	case MethodMaxFlood:
		used = instance.NewSet(inst.NumSensors())
		numPaths, err = dinic.Flood(inst, opts.K, opts.M, dinic.MaxFlood, inactive, used)
	}
	elapsed := time.Since(start)
	observability.Engine().OnMethodComplete(ctx, key, method, numPaths, elapsed, err)
	if err != nil {
		return Report{}, err
	}

	name := method
	if method != MethodDinic {
		name = fmt.Sprintf("%s_%d", method, numPaths)
	}

	numSensors := inst.NumSensors()
	return Report{
		RunID:         uuid.NewString(),
		Key:           key,
		K:             opts.K,
		M:             opts.M,
		Method:        name,
		NumPaths:      numPaths,
		RuntimeMicros: elapsed.Microseconds(),
		Valid:         dinic.IsValid(inst, opts.K, opts.M, used.Complement()),
		NumUsed:       used.Len(),
		Compression:   float64(numSensors-used.Len()) / float64(numSensors),
		Solution:      solutionBitmap(used, numSensors),
	}, nil
}
