package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/wsnlab/kcmc/pkg/instance"
)

// loadInstance reads an instance from arg, which is either a path to a file
// containing one serialized instance or the serialized string itself.
// Existing files win; anything else must carry the serialization prefix.
func loadInstance(arg string) (*instance.Instance, error) {
	if _, err := os.Stat(arg); err == nil {
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
		return instance.Parse(strings.TrimSpace(string(data)))
	}
	if strings.HasPrefix(arg, "KCMC;") {
		return instance.Parse(arg)
	}
	return nil, fmt.Errorf("no such file and not a serialized instance: %s", arg)
}

// parseKM parses a combined guarantee string like "K2M3" (case-insensitive,
// optionally parenthesized) into its coverage and connectivity levels.
func parseKM(s string) (k, m int, err error) {
	trimmed := strings.ToUpper(strings.Trim(strings.TrimSpace(s), "()"))
	rest, ok := strings.CutPrefix(trimmed, "K")
	if !ok {
		return 0, 0, fmt.Errorf("invalid guarantee %q (want K<k>M<m>)", s)
	}
	kStr, mStr, ok := strings.Cut(rest, "M")
	if !ok {
		return 0, 0, fmt.Errorf("invalid guarantee %q (want K<k>M<m>)", s)
	}
	if k, err = strconv.Atoi(kStr); err != nil {
		return 0, 0, fmt.Errorf("invalid guarantee %q: %w", s, err)
	}
	if m, err = strconv.Atoi(mStr); err != nil {
		return 0, 0, fmt.Errorf("invalid guarantee %q: %w", s, err)
	}
	return k, m, nil
}

// parseIndexSet parses a comma-separated list of sensor indices into a set
// of the given capacity. An empty string yields an empty set.
func parseIndexSet(csv string, capacity int) (*instance.Set, error) {
	set := instance.NewSet(capacity)
	if strings.TrimSpace(csv) == "" {
		return set, nil
	}
	for _, field := range strings.Split(csv, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("invalid sensor index %q: %w", field, err)
		}
		if idx < 0 || idx >= capacity {
			return nil, fmt.Errorf("sensor index %d out of range [0, %d)", idx, capacity)
		}
		set.Add(idx)
	}
	return set, nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
