package render

import (
	"strings"
	"testing"

	"github.com/wsnlab/kcmc/pkg/instance"
)

func testInstance(t *testing.T) *instance.Instance {
	t.Helper()
	b, err := instance.NewBuilder(instance.Params{
		NumPOIs: 1, NumSensors: 3, NumSinks: 1,
		AreaSide: 10, CoverageRadius: 5, CommunicationRadius: 5, Seed: 1,
	})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	for _, step := range []error{
		b.AddCoverage(0, 0),
		b.AddLink(0, 1),
		b.AddLink(1, 2),
		b.AddSinkLink(2, 0),
	} {
		if step != nil {
			t.Fatalf("build: %v", step)
		}
	}
	return b.Build()
}

func TestToDOTContainsAllNodes(t *testing.T) {
	dot := ToDOT(testInstance(t), Options{})

	for _, want := range []string{
		`"p0" [shape=triangle, fillcolor=green]`,
		`"i0" [shape=circle, fillcolor=black`,
		`"s0" [shape=square, fillcolor=grey]`,
		`"p0" -- "i0" [color=green]`,
		`"i0" -- "i1"`,
		`"i2" -- "s0" [color=red]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTMarksOfflineSensors(t *testing.T) {
	dot := ToDOT(testInstance(t), Options{Solution: instance.SetOf(3, 0, 2)})

	if !strings.Contains(dot, `"i1" [shape=circle, fillcolor=white`) {
		t.Errorf("sensor 1 should be drawn offline:\n%s", dot)
	}
	if !strings.Contains(dot, `"i0" [shape=circle, fillcolor=black`) {
		t.Errorf("sensor 0 should be drawn installed:\n%s", dot)
	}
}

func TestToDOTHideOffline(t *testing.T) {
	dot := ToDOT(testInstance(t), Options{Solution: instance.SetOf(3, 0, 2), HideOffline: true})

	if strings.Contains(dot, `"i1"`) {
		t.Errorf("offline sensor 1 should be omitted:\n%s", dot)
	}
	if strings.Contains(dot, `"i0" -- "i1"`) || strings.Contains(dot, `"i1" -- "i2"`) {
		t.Errorf("edges of omitted sensors should be omitted:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<svg width="8pt" height="6pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg">`)
	got := string(normalizeViewBox(svg))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`
	if got != want {
		t.Errorf("normalizeViewBox = %q, want %q", got, want)
	}
}
