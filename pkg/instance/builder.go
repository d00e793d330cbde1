package instance

import (
	"errors"
	"fmt"
)

// Builder errors.
var (
	// ErrZeroCount indicates a node count below 1.
	ErrZeroCount = errors.New("all node counts must be at least 1")

	// ErrIndexOutOfRange indicates an edge endpoint outside its node range.
	ErrIndexOutOfRange = errors.New("node index out of range")

	// ErrSelfLoop indicates a sensor-sensor edge from a sensor to itself.
	ErrSelfLoop = errors.New("sensor-sensor edges must connect distinct sensors")
)

// Params holds the construction parameters of an instance: node counts,
// geometry thresholds and the random seed. Params alone identify an
// instance's generation inputs; they say nothing about its edges.
type Params struct {
	NumPOIs             int
	NumSensors          int
	NumSinks            int
	AreaSide            int
	CoverageRadius      int
	CommunicationRadius int
	Seed                int64
}

// Validate checks that all node counts are at least 1.
func (p Params) Validate() error {
	if p.NumPOIs < 1 || p.NumSensors < 1 || p.NumSinks < 1 {
		return fmt.Errorf("%w: pois=%d sensors=%d sinks=%d",
			ErrZeroCount, p.NumPOIs, p.NumSensors, p.NumSinks)
	}
	return nil
}

// Builder accumulates edges for an instance under construction and freezes
// them into an immutable Instance. Edges are mirrored into both adjacency
// directions as they are added; the frozen Instance is never mutated.
type Builder struct {
	params Params

	poiSensor    []*Set // poi index -> covering sensors
	sensorPOI    []*Set // sensor index -> covered POIs
	sensorSensor []*Set // sensor index -> communicating sensors
	sensorSink   []*Set // sensor index -> reachable sinks
	sinkSensor   []*Set // sink index -> adjacent sensors
}

// NewBuilder creates a builder for an instance with the given parameters.
// Returns ErrZeroCount if any node count is below 1.
func NewBuilder(params Params) (*Builder, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	b := &Builder{
		params:       params,
		poiSensor:    newSets(params.NumPOIs, params.NumSensors),
		sensorPOI:    newSets(params.NumSensors, params.NumPOIs),
		sensorSensor: newSets(params.NumSensors, params.NumSensors),
		sensorSink:   newSets(params.NumSensors, params.NumSinks),
		sinkSensor:   newSets(params.NumSinks, params.NumSensors),
	}
	return b, nil
}

func newSets(n, capacity int) []*Set {
	sets := make([]*Set, n)
	for i := range sets {
		sets[i] = NewSet(capacity)
	}
	return sets
}

// AddCoverage records that sensor covers poi. The inverse direction is
// mirrored automatically.
func (b *Builder) AddCoverage(poi, sensor int) error {
	if poi < 0 || poi >= b.params.NumPOIs || sensor < 0 || sensor >= b.params.NumSensors {
		return fmt.Errorf("%w: coverage edge %d-%d", ErrIndexOutOfRange, poi, sensor)
	}
	b.poiSensor[poi].Add(sensor)
	b.sensorPOI[sensor].Add(poi)
	return nil
}

// AddLink records a communication edge between two distinct sensors.
// The edge is stored symmetrically.
func (b *Builder) AddLink(s1, s2 int) error {
	if s1 < 0 || s1 >= b.params.NumSensors || s2 < 0 || s2 >= b.params.NumSensors {
		return fmt.Errorf("%w: sensor edge %d-%d", ErrIndexOutOfRange, s1, s2)
	}
	if s1 == s2 {
		return fmt.Errorf("%w: sensor %d", ErrSelfLoop, s1)
	}
	b.sensorSensor[s1].Add(s2)
	b.sensorSensor[s2].Add(s1)
	return nil
}

// AddSinkLink records that sensor can communicate with sink. The inverse
// direction is mirrored automatically.
func (b *Builder) AddSinkLink(sensor, sink int) error {
	if sensor < 0 || sensor >= b.params.NumSensors || sink < 0 || sink >= b.params.NumSinks {
		return fmt.Errorf("%w: sink edge %d-%d", ErrIndexOutOfRange, sensor, sink)
	}
	b.sensorSink[sensor].Add(sink)
	b.sinkSensor[sink].Add(sensor)
	return nil
}

// Build freezes the accumulated edges into an immutable Instance.
// The builder must not be reused afterwards.
func (b *Builder) Build() *Instance {
	return &Instance{
		params:       b.params,
		poiSensor:    b.poiSensor,
		sensorPOI:    b.sensorPOI,
		sensorSensor: b.sensorSensor,
		sensorSink:   b.sensorSink,
		sinkSensor:   b.sinkSensor,
	}
}
