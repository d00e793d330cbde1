package instance

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genParams draws small but non-trivial generation parameters.
func genParams() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(1, 5),      // pois
		gen.IntRange(3, 40),     // sensors
		gen.IntRange(1, 3),      // sinks
		gen.IntRange(20, 150),   // area side
		gen.IntRange(10, 80),    // coverage radius
		gen.IntRange(10, 120),   // communication radius
		gen.Int64Range(0, 1<<31), // seed
	).Map(func(vals []interface{}) Params {
		return Params{
			NumPOIs:             vals[0].(int),
			NumSensors:          vals[1].(int),
			NumSinks:            vals[2].(int),
			AreaSide:            vals[3].(int),
			CoverageRadius:      vals[4].(int),
			CommunicationRadius: vals[5].(int),
			Seed:                vals[6].(int64),
		}
	})
}

func TestInstanceInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("all edge relations are symmetric under their inverse maps", prop.ForAll(
		func(params Params) bool {
			in, err := Generate(params)
			if err != nil {
				return false
			}
			for poi := 0; poi < in.NumPOIs(); poi++ {
				ok := true
				in.Covers(poi).Each(func(sensor int) bool {
					ok = in.CoveredBy(sensor).Contains(poi)
					return ok
				})
				if !ok {
					return false
				}
			}
			for s := 0; s < in.NumSensors(); s++ {
				ok := true
				in.Neighbors(s).Each(func(o int) bool {
					ok = o != s && in.Neighbors(o).Contains(s)
					return ok
				})
				if !ok {
					return false
				}
				in.SinkLinks(s).Each(func(sink int) bool {
					ok = in.SinkSensors(sink).Contains(s)
					return ok
				})
				if !ok {
					return false
				}
			}
			return true
		},
		genParams(),
	))

	properties.Property("serialization round-trips to identical edge relations", prop.ForAll(
		func(params Params) bool {
			in, err := Generate(params)
			if err != nil {
				return false
			}
			parsed, err := Parse(in.Serialize())
			if err != nil {
				return false
			}
			return parsed.Serialize() == in.Serialize()
		},
		genParams(),
	))

	properties.TestingRun(t)
}
