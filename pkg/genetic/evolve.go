package genetic

import (
	"context"
	"math/rand"
	"time"

	"github.com/wsnlab/kcmc/pkg/dinic"
	"github.com/wsnlab/kcmc/pkg/instance"
)

// invalidFitness keeps invalid individuals on the roulette wheel with a
// small, positive weight so selection never degenerates to a zero total.
const invalidFitness = 0.1

// Generation is a per-generation progress report.
type Generation struct {
	Number   int
	Best     Individual
	Fitness  float64
	NumUsed  int
	Improved bool
	Elapsed  time.Duration
}

// ReportFunc receives generation reports during Evolve. Reports fire on the
// configured interval and whenever the best solution shrinks.
type ReportFunc func(Generation)

// Result is the outcome of an evolution run.
type Result struct {
	Best        Individual
	Fitness     float64
	NumUsed     int
	Unused      *instance.Set
	Generations int
	Elapsed     time.Duration
}

// Evolve runs the generational loop: evaluate, select parents by roulette,
// refill the population with crossover children, mutate, repeat.
//
// Fitness rewards valid solutions by the fraction of sensors they leave
// uninstalled: 1 + unused/numSensors when the individual's complement
// passes the (k, m) validator, invalidFitness otherwise. One individual is
// seeded fully installed, which is always valid for a validatable instance
// and anchors the roulette total above zero. The best individual of each
// generation survives unchanged (elitism).
//
// The context is checked once per generation; cancellation returns the best
// result found so far along with ctx.Err().
func Evolve(ctx context.Context, inst *instance.Instance, k, m int, cfg Config, rng *rand.Rand, report ReportFunc) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := dinic.Validate(inst, k, m, instance.NewSet(inst.NumSensors())); err != nil {
		return nil, err
	}

	start := time.Now()
	size := inst.NumSensors()

	population := make([]Individual, cfg.PopulationSize)
	for i := range population {
		population[i] = NewIndividual(rng, cfg.OneBias, size)
	}
	// The fully-installed individual is valid whenever the instance itself
	// is, keeping the roulette total positive from the first generation.
	for i := range population[0] {
		population[0][i] = 1
	}

	fitness := make([]float64, cfg.PopulationSize)
	best := Individual(nil)
	bestFitness := 0.0
	bestUsed := size + 1

	for gen := 0; gen < cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return resultOf(best, bestFitness, gen, start), err
		}

		for i, ind := range population {
			fitness[i] = evaluate(inst, k, m, ind)
		}

		genBest := Best(fitness)
		used := population[genBest].Ones()
		improved := fitness[genBest] > invalidFitness && used < bestUsed
		if improved || best == nil {
			best = population[genBest].Clone()
			bestFitness = fitness[genBest]
			if fitness[genBest] > invalidFitness {
				bestUsed = used
			}
		}
		if report != nil && (improved || gen%cfg.ReportInterval == 0) {
			report(Generation{
				Number:   gen,
				Best:     best,
				Fitness:  bestFitness,
				NumUsed:  best.Ones(),
				Improved: improved,
				Elapsed:  time.Since(start),
			})
		}

		selection, err := RouletteSelect(rng, cfg.SelectionSize, fitness)
		if err != nil {
			return nil, err
		}

		next := make([]Individual, cfg.PopulationSize)
		next[0] = best.Clone()
		for i := 1; i < cfg.PopulationSize; i++ {
			parentA := selection[rng.Intn(len(selection))]
			parentB := PickMate(rng, selection, parentA)
			child, _ := Crossover(rng, population[parentA], population[parentB])
			if rng.Float64() < cfg.MutationRate {
				Mutate(rng, child)
			}
			next[i] = child
		}
		population = next
	}

	return resultOf(best, bestFitness, cfg.Generations, start), nil
}

func evaluate(inst *instance.Instance, k, m int, ind Individual) float64 {
	inactive := ind.Inactive()
	if !dinic.IsValid(inst, k, m, inactive) {
		return invalidFitness
	}
	return 1 + float64(inactive.Len())/float64(inst.NumSensors())
}

func resultOf(best Individual, fitness float64, generations int, start time.Time) *Result {
	if best == nil {
		return nil
	}
	return &Result{
		Best:        best,
		Fitness:     fitness,
		NumUsed:     best.Ones(),
		Unused:      best.Inactive(),
		Generations: generations,
		Elapsed:     time.Since(start),
	}
}
