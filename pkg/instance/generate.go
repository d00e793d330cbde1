package instance

import (
	"math"
	"math/rand"
)

// placement is a node's coordinates during generation. Placements exist
// only to compute edges and are discarded once the instance is built.
type placement struct {
	x, y int
}

func (p placement) distance(o placement) float64 {
	return math.Hypot(float64(p.x-o.x), float64(p.y-o.y))
}

// Generate builds a random instance from the given parameters.
//
// Nodes are placed uniformly at random in the [0, AreaSide]² square using a
// PRNG seeded with Params.Seed, except that a lone sink is placed at the
// center of the area. Edges follow from Euclidean distance thresholds:
// CoverageRadius for POI-sensor coverage, CommunicationRadius for
// sensor-sensor and sensor-sink communication. The same Params always yield
// the same instance.
func Generate(params Params) (*Instance, error) {
	b, err := NewBuilder(params)
	if err != nil {
		return nil, err
	}
	if err := generate(b); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func generate(b *Builder) error {
	params := b.params
	rng := rand.New(rand.NewSource(params.Seed))
	point := func() int { return int(rng.Float64() * float64(params.AreaSide)) }

	pois := make([]placement, params.NumPOIs)
	for i := range pois {
		pois[i] = placement{point(), point()}
	}
	sensors := make([]placement, params.NumSensors)
	for i := range sensors {
		sensors[i] = placement{point(), point()}
	}
	sinks := make([]placement, params.NumSinks)
	if params.NumSinks == 1 {
		center := params.AreaSide / 2
		sinks[0] = placement{center, center}
	} else {
		for i := range sinks {
			sinks[i] = placement{point(), point()}
		}
	}

	covR := float64(params.CoverageRadius)
	comR := float64(params.CommunicationRadius)
	for s := range sensors {
		for p := range pois {
			if sensors[s].distance(pois[p]) <= covR {
				if err := b.AddCoverage(p, s); err != nil {
					return err
				}
			}
		}
		for k := range sinks {
			if sensors[s].distance(sinks[k]) <= comR {
				if err := b.AddSinkLink(s, k); err != nil {
					return err
				}
			}
		}
		for t := s + 1; t < len(sensors); t++ {
			if sensors[s].distance(sensors[t]) <= comR {
				if err := b.AddLink(s, t); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
