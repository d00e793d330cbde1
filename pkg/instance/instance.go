// Package instance models K-Coverage M-Connectivity (KCMC) wireless sensor
// network instances.
//
// An instance is a tri-partite graph of Points of Interest (POIs), sensors
// and sinks with three edge relations: coverage edges between POIs and
// sensors, communication edges between sensors, and communication edges
// between sensors and sinks. Instances are built either by random geometric
// placement (Generate) or by parsing a serialized instance string (Parse),
// and are immutable once built.
//
// Adjacency is stored as bitsets indexed by node id, which keeps the
// set-difference operations in the coverage and connectivity hot loops cheap.
package instance

import "fmt"

// Instance is an immutable KCMC problem instance.
//
// Every edge relation is stored in both directions and the two directions
// are always consistent: j ∈ CoveredBy(i) ⇔ i ∈ Covers(j), and sensor-sensor
// adjacency is symmetric and irreflexive. Build an Instance through a
// Builder, Generate or Parse; the zero value is not usable.
type Instance struct {
	params Params

	poiSensor    []*Set
	sensorPOI    []*Set
	sensorSensor []*Set
	sensorSink   []*Set
	sinkSensor   []*Set
}

// NumPOIs returns the number of points of interest.
func (in *Instance) NumPOIs() int { return in.params.NumPOIs }

// NumSensors returns the number of sensors.
func (in *Instance) NumSensors() int { return in.params.NumSensors }

// NumSinks returns the number of sinks.
func (in *Instance) NumSinks() int { return in.params.NumSinks }

// Params returns the construction parameters.
func (in *Instance) Params() Params { return in.params }

// Covers returns the set of sensors covering the given POI.
// The returned set is shared; callers must not modify it.
func (in *Instance) Covers(poi int) *Set { return in.poiSensor[poi] }

// CoveredBy returns the set of POIs covered by the given sensor.
func (in *Instance) CoveredBy(sensor int) *Set { return in.sensorPOI[sensor] }

// Neighbors returns the sensors the given sensor can communicate with.
func (in *Instance) Neighbors(sensor int) *Set { return in.sensorSensor[sensor] }

// SinkLinks returns the sinks the given sensor can communicate with.
func (in *Instance) SinkLinks(sensor int) *Set { return in.sensorSink[sensor] }

// SinkSensors returns the sensors adjacent to the given sink.
func (in *Instance) SinkSensors(sink int) *Set { return in.sinkSensor[sink] }

// ReachesSink reports whether the given sensor is adjacent to any sink.
func (in *Instance) ReachesSink(sensor int) bool {
	return in.sensorSink[sensor].Len() > 0
}

// Key returns the canonical parameter summary of the instance, excluding
// edges: "<pois> <sensors> <sinks>;<area> <covR> <comR>;<seed>".
func (in *Instance) Key() string {
	p := in.params
	return fmt.Sprintf("%d %d %d;%d %d %d;%d",
		p.NumPOIs, p.NumSensors, p.NumSinks,
		p.AreaSide, p.CoverageRadius, p.CommunicationRadius,
		p.Seed)
}
