package genetic

import (
	"math/rand"
	"testing"

	kerrors "github.com/wsnlab/kcmc/pkg/errors"
)

func TestNewIndividualBias(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	allOnes := NewIndividual(rng, 1.0, 20)
	if allOnes.Ones() != 20 {
		t.Errorf("bias 1.0 should give all ones, got %d", allOnes.Ones())
	}
	if !Inspect(allOnes) {
		t.Error("generated individual should pass inspection")
	}
}

func TestInspect(t *testing.T) {
	if !Inspect(Individual{0, 1, 1, 0}) {
		t.Error("valid bitmap rejected")
	}
	if Inspect(Individual{0, 2, 1}) {
		t.Error("out-of-range bit accepted")
	}
	if InspectPopulation([]Individual{{0, 1}, {1, 3}}) {
		t.Error("population with a bad individual accepted")
	}
}

func TestInactive(t *testing.T) {
	ind := Individual{1, 0, 0, 1}
	inactive := ind.Inactive()
	if inactive.Len() != 2 || !inactive.Contains(1) || !inactive.Contains(2) {
		t.Errorf("Inactive = %v, want {1,2}", inactive)
	}
}

func TestIndividualString(t *testing.T) {
	if got := (Individual{1, 0, 1, 1}).String(); got != "1011" {
		t.Errorf("String = %q, want 1011", got)
	}
}

func TestRouletteSelect(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	fitness := []float64{1.0, 0.1, 2.0, 0.1, 1.5}

	selection, err := RouletteSelect(rng, 3, fitness)
	if err != nil {
		t.Fatalf("RouletteSelect: %v", err)
	}
	if len(selection) != 3 {
		t.Fatalf("selected %d, want 3", len(selection))
	}
	seen := map[int]bool{}
	for _, pos := range selection {
		if pos < 0 || pos >= len(fitness) {
			t.Fatalf("selected position %d out of range", pos)
		}
		if seen[pos] {
			t.Fatal("selection with replacement: position picked twice")
		}
		seen[pos] = true
	}
}

func TestRouletteSelectRejectsZeroFitness(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	_, err := RouletteSelect(rng, 2, []float64{0, 0, 0})
	if !kerrors.Is(err, kerrors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestRouletteSelectRejectsOversizedSelection(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	if _, err := RouletteSelect(rng, 5, []float64{1, 1}); err == nil {
		t.Error("selecting more than the population should fail")
	}
}

func TestPickMate(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	selection := []int{4, 9}
	for i := 0; i < 20; i++ {
		if got := PickMate(rng, selection, 4); got != 9 {
			t.Fatalf("PickMate = %d, want 9", got)
		}
	}
}

func TestCrossover(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := Individual{0, 0, 0, 0, 0, 0}
	b := Individual{1, 1, 1, 1, 1, 1}

	child, pos := Crossover(rng, a, b)
	if len(child) != len(a) {
		t.Fatalf("child length = %d, want %d", len(child), len(a))
	}
	for i := range child {
		want := 0
		if i >= pos {
			want = 1
		}
		if child[i] != want {
			t.Fatalf("child = %v with point %d: bit %d = %d, want %d", child, pos, i, child[i], want)
		}
	}
}

func TestMutateFlipsOneBit(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	ind := Individual{0, 0, 0, 0}
	pos := Mutate(rng, ind)
	if ind.Ones() != 1 || ind[pos] != 1 {
		t.Errorf("after mutation ind = %v, flipped %d", ind, pos)
	}
	Mutate(rand.New(rand.NewSource(5)), ind)
	if ind.Ones() != 0 {
		t.Errorf("same seed should flip the same bit back, got %v", ind)
	}
}

func TestBest(t *testing.T) {
	if got := Best([]float64{0.1, 2.5, 1.0}); got != 1 {
		t.Errorf("Best = %d, want 1", got)
	}
}
