package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/wsnlab/kcmc/pkg/cache"
	"github.com/wsnlab/kcmc/pkg/instance"
)

func chainInstance(t *testing.T) *instance.Instance {
	t.Helper()
	in, err := instance.Parse("KCMC;1 3 1;10 5 5;1;PS;0 0;SS;0 1;1 2;SK;2 0;END")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return in
}

func TestPreprocessRunsAllMethods(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	in := chainInstance(t)

	result, err := runner.Preprocess(context.Background(), in, Options{K: 1, M: 1})
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if len(result.Reports) != 3 {
		t.Fatalf("got %d reports, want 3", len(result.Reports))
	}
	if result.CacheInfo.Hit {
		t.Error("null cache should never hit")
	}

	names := []string{result.Reports[0].Method, result.Reports[1].Method, result.Reports[2].Method}
	if names[0] != "dinic" || names[1] != "min_flood_1" || names[2] != "max_flood_1" {
		t.Errorf("methods = %v", names)
	}

	for _, report := range result.Reports {
		if report.RunID == "" {
			t.Error("report should carry a run ID")
		}
		if report.Key != in.Key() {
			t.Errorf("report key = %q, want %q", report.Key, in.Key())
		}
		// The whole chain is needed for (1, 1), so every method installs
		// all three sensors and the solution validates.
		if !report.Valid {
			t.Errorf("%s report should be valid", report.Method)
		}
		if report.NumUsed != 3 || report.Solution != "111" {
			t.Errorf("%s: used=%d solution=%q, want full installation", report.Method, report.NumUsed, report.Solution)
		}
		if report.Compression != 0 {
			t.Errorf("%s: compression = %f, want 0", report.Method, report.Compression)
		}
	}
}

func TestReportTSV(t *testing.T) {
	report := Report{
		Key: "1 3 1;10 5 5;1", K: 1, M: 1, Method: "min_flood_1",
		RuntimeMicros: 42, Valid: true, NumUsed: 3, Compression: 0, Solution: "111",
	}
	want := "1 3 1;10 5 5;1\t1\t1\tmin_flood_1\t42\tOK\t3\t0.00000\t111"
	if got := report.TSV(); got != want {
		t.Errorf("TSV = %q, want %q", got, want)
	}

	report.Valid = false
	if !strings.Contains(report.TSV(), "\tINVALID\t") {
		t.Error("invalid report should print INVALID")
	}
}

func TestPreprocessCaching(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fileCache, nil, nil)
	in := chainInstance(t)
	ctx := context.Background()

	first, err := runner.Preprocess(ctx, in, Options{K: 1, M: 1})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.CacheInfo.Hit {
		t.Error("first run should not hit the cache")
	}

	second, err := runner.Preprocess(ctx, in, Options{K: 1, M: 1})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.CacheInfo.Hit {
		t.Error("second run should hit the cache")
	}
	if second.Reports[0].RunID != first.Reports[0].RunID {
		t.Error("cached reports should be returned verbatim")
	}

	refreshed, err := runner.Preprocess(ctx, in, Options{K: 1, M: 1, Refresh: true})
	if err != nil {
		t.Fatalf("refresh run: %v", err)
	}
	if refreshed.CacheInfo.Hit {
		t.Error("refresh should bypass the cache read")
	}
	if refreshed.Reports[0].RunID == first.Reports[0].RunID {
		t.Error("refresh should recompute reports")
	}
}

func TestPreprocessDistinguishesParameters(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fileCache, nil, nil)
	in := chainInstance(t)
	ctx := context.Background()

	if _, err := runner.Preprocess(ctx, in, Options{K: 1, M: 1}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	// A different (k, m) must not reuse the (1, 1) entry; for this chain
	// (1, 2) is unsatisfiable and errors instead of hitting the cache.
	if _, err := runner.Preprocess(ctx, in, Options{K: 1, M: 2}); err == nil {
		t.Error("unsatisfiable parameters should fail, not hit the cache")
	}
}

func TestPreprocessInvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	in := chainInstance(t)

	if _, err := runner.Preprocess(context.Background(), in, Options{K: 0, M: 1}); err == nil {
		t.Error("k below 1 should fail")
	}
	if _, err := runner.Preprocess(context.Background(), in, Options{K: 1, M: 1, Methods: []string{"dijkstra"}}); err == nil {
		t.Error("unknown method should fail")
	}
}

func TestPreprocessMethodSubset(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	in := chainInstance(t)

	result, err := runner.Preprocess(context.Background(), in, Options{
		K: 1, M: 1, Methods: []string{MethodDinic},
	})
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if len(result.Reports) != 1 || result.Reports[0].Method != "dinic" {
		t.Errorf("reports = %+v, want single dinic report", result.Reports)
	}
}
