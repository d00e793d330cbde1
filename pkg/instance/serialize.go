package instance

import (
	"strconv"
	"strings"

	kerrors "github.com/wsnlab/kcmc/pkg/errors"
)

// Parser stages. The serialized format is a flat, ;-delimited token stream;
// section tags switch the stage the following tokens are parsed in.
type parseStage int

const (
	stagePrefix parseStage = iota
	stageCounts
	stageGeometry
	stageSeed
	stageSections
	stagePOISensor
	stageSensorSensor
	stageSensorSink
	stageEnd
)

// Section tags. The PI/II/IS spellings are legacy aliases produced by an
// older serializer version; they are accepted on load but never written.
var sectionTags = map[string]parseStage{
	"PS": stagePOISensor, "PI": stagePOISensor,
	"SS": stageSensorSensor, "II": stageSensorSensor,
	"SK": stageSensorSink, "IS": stageSensorSink,
	"END": stageEnd,
}

// Serialize renders the instance as its canonical text form:
//
//	KCMC;<pois> <sensors> <sinks>;<area> <covR> <comR>;<seed>;PS;<p> <s>;...;SS;<s> <t>;...;SK;<s> <k>;...;END
//
// Edges are emitted in ascending index order so the output is deterministic;
// sensor-sensor pairs are listed once with source ≤ target.
func (in *Instance) Serialize() string {
	var out strings.Builder
	out.WriteString("KCMC;")
	out.WriteString(in.Key())
	out.WriteString(";PS;")
	for poi := 0; poi < in.NumPOIs(); poi++ {
		in.poiSensor[poi].Each(func(sensor int) bool {
			writePair(&out, poi, sensor)
			return true
		})
	}
	out.WriteString("SS;")
	for sensor := 0; sensor < in.NumSensors(); sensor++ {
		in.sensorSensor[sensor].Each(func(other int) bool {
			if other > sensor {
				writePair(&out, sensor, other)
			}
			return true
		})
	}
	out.WriteString("SK;")
	for sensor := 0; sensor < in.NumSensors(); sensor++ {
		in.sensorSink[sensor].Each(func(sink int) bool {
			writePair(&out, sensor, sink)
			return true
		})
	}
	out.WriteString("END")
	return out.String()
}

func writePair(out *strings.Builder, src, tgt int) {
	out.WriteString(strconv.Itoa(src))
	out.WriteByte(' ')
	out.WriteString(strconv.Itoa(tgt))
	out.WriteByte(';')
}

// Parse reconstructs an instance from its serialized text form.
//
// A stream carrying only the header (no edge sections before END) does not
// describe an edgeless instance: it instructs the loader to regenerate the
// geometry from the header parameters, exactly as Generate would. Malformed
// prefixes, unknown section tags and zero node counts are rejected with a
// MALFORMED_INSTANCE error.
func Parse(serialized string) (*Instance, error) {
	stage := stagePrefix
	hasEdges := false

	var params Params
	var b *Builder

	// The builder can only exist once counts are known; edge tokens arriving
	// while b is nil mean the stream is out of order.
	ensureBuilder := func() error {
		if b != nil {
			return nil
		}
		var err error
		if b, err = NewBuilder(params); err != nil {
			return kerrors.Wrap(kerrors.ErrCodeMalformedInstance, err, "invalid header")
		}
		return nil
	}

	for _, token := range strings.Split(strings.TrimSpace(serialized), ";") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		switch stage {
		case stagePrefix:
			if token != "KCMC" {
				return nil, kerrors.New(kerrors.ErrCodeMalformedInstance,
					"instance does not start with prefix KCMC (got %q)", token)
			}
			stage = stageCounts
		case stageCounts:
			if err := scanInts(token, &params.NumPOIs, &params.NumSensors, &params.NumSinks); err != nil {
				return nil, kerrors.Wrap(kerrors.ErrCodeMalformedInstance, err, "node counts %q", token)
			}
			stage = stageGeometry
		case stageGeometry:
			if err := scanInts(token, &params.AreaSide, &params.CoverageRadius, &params.CommunicationRadius); err != nil {
				return nil, kerrors.Wrap(kerrors.ErrCodeMalformedInstance, err, "geometry %q", token)
			}
			stage = stageSeed
		case stageSeed:
			seed, err := strconv.ParseInt(token, 10, 64)
			if err != nil {
				return nil, kerrors.Wrap(kerrors.ErrCodeMalformedInstance, err, "seed %q", token)
			}
			params.Seed = seed
			stage = stageSections
		case stageSections:
			next, ok := sectionTags[token]
			if !ok {
				return nil, kerrors.New(kerrors.ErrCodeMalformedInstance, "unknown token %q", token)
			}
			if next != stageEnd {
				hasEdges = true
			}
			stage = next
		case stagePOISensor, stageSensorSensor, stageSensorSink:
			if next, ok := sectionTags[token]; ok {
				if next != stageEnd {
					hasEdges = true
				}
				stage = next
				continue
			}
			var src, tgt int
			if err := scanInts(token, &src, &tgt); err != nil {
				return nil, kerrors.Wrap(kerrors.ErrCodeMalformedInstance, err, "edge %q", token)
			}
			if err := ensureBuilder(); err != nil {
				return nil, err
			}
			var err error
			switch stage {
			case stagePOISensor:
				err = b.AddCoverage(src, tgt)
			case stageSensorSensor:
				err = b.AddLink(src, tgt)
			case stageSensorSink:
				err = b.AddSinkLink(src, tgt)
			}
			if err != nil {
				return nil, kerrors.Wrap(kerrors.ErrCodeMalformedInstance, err, "edge %q", token)
			}
		case stageEnd:
			// Tokens after END are ignored.
		}
	}

	if err := params.Validate(); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeMalformedInstance, err, "invalid header")
	}
	if !hasEdges {
		return Generate(params)
	}
	if err := ensureBuilder(); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func scanInts(token string, out ...*int) error {
	fields := strings.Fields(token)
	if len(fields) != len(out) {
		return kerrors.New(kerrors.ErrCodeInvalidFormat, "expected %d fields, got %d", len(out), len(fields))
	}
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return err
		}
		*out[i] = v
	}
	return nil
}
