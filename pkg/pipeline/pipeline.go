// Package pipeline runs the KCMC preprocessing methods over an instance.
//
// Preprocessing answers one question per method: which sensors does this
// instance need to keep its (k, m) guarantees? Three methods answer it with
// different trade-offs:
//
//  1. dinic: the first local optimum from the validator's witnesses
//  2. min_flood: minimal flood, m paths per POI expanded into substitutes
//  3. max_flood: maximal flood, all equally-short paths included
//
// Each method produces a Report with timing, validity of the resulting
// solution, and the installation bitmap. Reports are deterministic in
// (instance, k, m), so the Runner memoizes them through a cache keyed by
// the instance hash and the requested guarantees.
//
// # Usage
//
// Create a Runner and preprocess an instance:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Preprocess(ctx, inst, pipeline.Options{K: 2, M: 2})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, report := range result.Reports {
//	    fmt.Println(report.TSV())
//	}
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wsnlab/kcmc/pkg/instance"
)

// Preprocessing method names.
const (
	MethodDinic    = "dinic"
	MethodMinFlood = "min_flood"
	MethodMaxFlood = "max_flood"
)

// DefaultMethods is the method sequence run when none is specified.
var DefaultMethods = []string{MethodDinic, MethodMinFlood, MethodMaxFlood}

// ValidMethods is the set of supported preprocessing methods.
var ValidMethods = map[string]bool{
	MethodDinic:    true,
	MethodMinFlood: true,
	MethodMaxFlood: true,
}

// DefaultTTL is how long cached preprocessing reports stay fresh.
// Reports are pure functions of (instance, k, m), so the TTL exists only to
// bound cache growth.
const DefaultTTL = 30 * 24 * time.Hour

// Options configures a preprocessing run.
type Options struct {
	// K is the required coverage level.
	K int `json:"k"`

	// M is the required connectivity level.
	M int `json:"m"`

	// Methods selects which preprocessing methods run, in order.
	// Empty means DefaultMethods.
	Methods []string `json:"methods,omitempty"`

	// Refresh bypasses the cache read (results are still written back).
	Refresh bool `json:"refresh,omitempty"`

	// TTL overrides DefaultTTL for the cache write.
	TTL time.Duration `json:"ttl,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.K < 1 {
		return fmt.Errorf("k must be at least 1 (got %d)", o.K)
	}
	if o.M < 1 {
		return fmt.Errorf("m must be at least 1 (got %d)", o.M)
	}
	if len(o.Methods) == 0 {
		o.Methods = DefaultMethods
	}
	for _, method := range o.Methods {
		if !ValidMethods[method] {
			return fmt.Errorf("invalid method: %q (must be one of: dinic, min_flood, max_flood)", method)
		}
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Report is the outcome of one preprocessing method on one instance.
type Report struct {
	// RunID uniquely identifies the run that produced this report.
	RunID string `json:"run_id"`

	// Key is the instance's canonical parameter summary.
	Key string `json:"key"`

	K int `json:"k"`
	M int `json:"m"`

	// Method names the preprocessing method; flood methods carry the
	// number of paths found as a suffix (e.g. "min_flood_17").
	Method string `json:"method"`

	// NumPaths is the total number of augmenting paths found (flood only).
	NumPaths int `json:"num_paths"`

	// RuntimeMicros is the method's wall-clock runtime in microseconds.
	RuntimeMicros int64 `json:"runtime_us"`

	// Valid reports whether the produced solution passed re-validation.
	Valid bool `json:"valid"`

	// NumUsed is the number of installed sensors in the solution.
	NumUsed int `json:"num_used"`

	// Compression is the fraction of sensors the solution leaves out.
	Compression float64 `json:"compression"`

	// Solution is the installation bitmap, one 0/1 digit per sensor.
	Solution string `json:"solution"`
}

// TSV renders the report as one tab-separated line:
// key, k, m, method, runtime, validity, solution size, compression, bitmap.
func (r Report) TSV() string {
	validity := "INVALID"
	if r.Valid {
		validity = "OK"
	}
	return fmt.Sprintf("%s\t%d\t%d\t%s\t%d\t%s\t%d\t%.5f\t%s",
		r.Key, r.K, r.M, r.Method, r.RuntimeMicros, validity, r.NumUsed, r.Compression, r.Solution)
}

// TSVHeader is the column header matching Report.TSV.
const TSVHeader = "Key\tK\tM\tMethod\tRuntime\tValid\tObjective\tCompression\tSolution"

// Result contains the outputs of a preprocessing run.
type Result struct {
	// Reports holds one report per method, in execution order.
	Reports []Report

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks whether the reports came from cache.
	CacheInfo CacheInfo
}

// Stats contains preprocessing execution statistics.
type Stats struct {
	Methods  int
	Duration time.Duration
}

// CacheInfo tracks cache usage for a preprocessing run.
type CacheInfo struct {
	Hit bool // Whether the reports came from cache
}

// solutionBitmap renders an installation set as a 0/1 string over n sensors.
func solutionBitmap(used *instance.Set, n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		if used.Contains(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
