// Package genetic implements the bit-string genetic algorithm used to shrink
// KCMC solutions: individuals are 0/1 installation bitmaps over the
// instance's sensors, and fitness rewards valid solutions that leave many
// sensors uninstalled.
//
// The operators are generic bit-string GA primitives (biased creation,
// roulette selection without replacement, single-point crossover, random
// bit flip); Evolve wires them into a generational loop driven by the
// coverage/connectivity validator.
package genetic

import (
	"math/rand"

	kerrors "github.com/wsnlab/kcmc/pkg/errors"
	"github.com/wsnlab/kcmc/pkg/instance"
)

// Individual is a candidate solution: one bit per sensor, 1 meaning the
// sensor is installed (active).
type Individual []int

// NewIndividual draws a random individual of the given size where each bit
// is 1 with probability oneBias.
func NewIndividual(rng *rand.Rand, oneBias float64, size int) Individual {
	chromo := make(Individual, size)
	for i := range chromo {
		if rng.Float64() < oneBias {
			chromo[i] = 1
		}
	}
	return chromo
}

// Ones counts the installed sensors.
func (ind Individual) Ones() int {
	n := 0
	for _, bit := range ind {
		n += bit
	}
	return n
}

// Inactive returns the uninstalled sensors as an exclusion set for the
// validator.
func (ind Individual) Inactive() *instance.Set {
	inactive := instance.NewSet(len(ind))
	for i, bit := range ind {
		if bit == 0 {
			inactive.Add(i)
		}
	}
	return inactive
}

// Clone returns an independent copy.
func (ind Individual) Clone() Individual {
	out := make(Individual, len(ind))
	copy(out, ind)
	return out
}

// String renders the individual as its 0/1 bitmap.
func (ind Individual) String() string {
	buf := make([]byte, len(ind))
	for i, bit := range ind {
		buf[i] = '0' + byte(bit)
	}
	return string(buf)
}

// Inspect reports whether every position holds a valid bit.
func Inspect(ind Individual) bool {
	for _, bit := range ind {
		if bit < 0 || bit > 1 {
			return false
		}
	}
	return true
}

// InspectPopulation reports whether every individual passes Inspect.
func InspectPopulation(population []Individual) bool {
	for _, ind := range population {
		if !Inspect(ind) {
			return false
		}
	}
	return true
}

// RouletteSelect picks selSize distinct population indices with probability
// proportional to fitness, without replacement: each pick removes the
// selected individual's fitness from the wheel.
//
// The total remaining fitness must stay positive throughout, or the wheel
// could spin forever; a non-positive total fails with INVALID_INPUT.
func RouletteSelect(rng *rand.Rand, selSize int, fitness []float64) ([]int, error) {
	if selSize > len(fitness) {
		return nil, kerrors.New(kerrors.ErrCodeInvalidInput,
			"cannot select %d individuals from a population of %d", selSize, len(fitness))
	}

	total := 0.0
	for _, f := range fitness {
		total += f
	}

	selected := make([]bool, len(fitness))
	selection := make([]int, 0, selSize)
	for len(selection) < selSize {
		if total <= 0 {
			return nil, kerrors.New(kerrors.ErrCodeInvalidInput,
				"the sum of all fitness must be a positive value")
		}
		spin := rng.Float64() * total
		pos := -1
		for spin > 0 {
			pos = (pos + 1) % len(fitness)
			if !selected[pos] {
				spin -= fitness[pos]
			}
		}
		if pos == -1 {
			// A zero spin never drains; take the first unselected slot.
			for pos = 0; selected[pos]; pos++ {
			}
		}
		selected[pos] = true
		selection = append(selection, pos)
		total -= fitness[pos]
	}
	return selection, nil
}

// PickMate draws a random member of selection different from avoid.
// The selection must contain at least one other value.
func PickMate(rng *rand.Rand, selection []int, avoid int) int {
	for {
		pick := selection[rng.Intn(len(selection))]
		if pick != avoid {
			return pick
		}
	}
}

// Crossover combines two parents at a single random point: the child takes
// a's bits before the point and b's bits from the point on. Returns the
// child and the crossover point.
func Crossover(rng *rand.Rand, a, b Individual) (Individual, int) {
	pos := rng.Intn(len(a))
	child := make(Individual, len(a))
	copy(child, a[:pos])
	copy(child[pos:], b[pos:])
	return child, pos
}

// Mutate flips one random bit in place and returns its position.
func Mutate(rng *rand.Rand, ind Individual) int {
	pos := rng.Intn(len(ind))
	ind[pos] = 1 - ind[pos]
	return pos
}

// Best returns the index of the highest fitness.
func Best(fitness []float64) int {
	best := 0
	for i, f := range fitness {
		if f > fitness[best] {
			best = i
		}
	}
	return best
}
