package instance

import (
	"errors"
	"testing"
)

func validParams() Params {
	return Params{
		NumPOIs:             2,
		NumSensors:          4,
		NumSinks:            1,
		AreaSide:            100,
		CoverageRadius:      50,
		CommunicationRadius: 100,
		Seed:                42,
	}
}

func TestBuilderRejectsZeroCounts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero pois", func(p *Params) { p.NumPOIs = 0 }},
		{"zero sensors", func(p *Params) { p.NumSensors = 0 }},
		{"zero sinks", func(p *Params) { p.NumSinks = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(&params)
			if _, err := NewBuilder(params); !errors.Is(err, ErrZeroCount) {
				t.Errorf("NewBuilder error = %v, want ErrZeroCount", err)
			}
		})
	}
}

func TestBuilderRejectsBadEdges(t *testing.T) {
	b, err := NewBuilder(validParams())
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}

	if err := b.AddCoverage(5, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("AddCoverage out of range = %v, want ErrIndexOutOfRange", err)
	}
	if err := b.AddLink(0, 0); !errors.Is(err, ErrSelfLoop) {
		t.Errorf("AddLink self loop = %v, want ErrSelfLoop", err)
	}
	if err := b.AddSinkLink(0, 3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("AddSinkLink out of range = %v, want ErrIndexOutOfRange", err)
	}
}

func TestBuilderMirrorsEdges(t *testing.T) {
	b, err := NewBuilder(validParams())
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if err := b.AddCoverage(1, 2); err != nil {
		t.Fatalf("AddCoverage: %v", err)
	}
	if err := b.AddLink(0, 3); err != nil {
		t.Fatalf("AddLink: %v", err)
	}
	if err := b.AddSinkLink(3, 0); err != nil {
		t.Fatalf("AddSinkLink: %v", err)
	}
	in := b.Build()

	if !in.Covers(1).Contains(2) || !in.CoveredBy(2).Contains(1) {
		t.Error("coverage edge not mirrored")
	}
	if !in.Neighbors(0).Contains(3) || !in.Neighbors(3).Contains(0) {
		t.Error("sensor-sensor edge not symmetric")
	}
	if !in.SinkLinks(3).Contains(0) || !in.SinkSensors(0).Contains(3) {
		t.Error("sink edge not mirrored")
	}
	if !in.ReachesSink(3) {
		t.Error("ReachesSink(3) = false, want true")
	}
	if in.ReachesSink(0) {
		t.Error("ReachesSink(0) = true, want false")
	}
}

func TestKey(t *testing.T) {
	in, err := Generate(Params{
		NumPOIs: 3, NumSensors: 10, NumSinks: 1,
		AreaSide: 200, CoverageRadius: 60, CommunicationRadius: 80,
		Seed: 7,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got, want := in.Key(), "3 10 1;200 60 80;7"; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	params := Params{
		NumPOIs: 5, NumSensors: 30, NumSinks: 1,
		AreaSide: 100, CoverageRadius: 40, CommunicationRadius: 60,
		Seed: 1234,
	}
	a, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if a.Serialize() != b.Serialize() {
		t.Error("same params should generate identical instances")
	}
}

func TestGenerateSingleSinkAtCenter(t *testing.T) {
	// With a communication radius just over half the diagonal of the area,
	// a sensor anywhere in the square reaches a sink placed at the center.
	params := Params{
		NumPOIs: 2, NumSensors: 20, NumSinks: 1,
		AreaSide: 100, CoverageRadius: 30, CommunicationRadius: 71,
		Seed: 99,
	}
	in, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Every sensor is within 71 units of (50, 50) since the farthest
	// possible placement (a corner) is ~70.7 away.
	for s := 0; s < in.NumSensors(); s++ {
		if !in.ReachesSink(s) {
			t.Errorf("sensor %d should reach the centered sink", s)
		}
	}
}

func TestSetOperations(t *testing.T) {
	s := SetOf(8, 1, 3, 5)
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	if !s.Contains(3) || s.Contains(2) {
		t.Error("Contains gave wrong membership")
	}

	o := SetOf(8, 3, 4)
	if got := s.DiffLen(o); got != 2 {
		t.Errorf("DiffLen = %d, want 2", got)
	}

	c := s.Clone()
	c.Add(7)
	if s.Contains(7) {
		t.Error("Clone should be independent")
	}

	s.AddAll(o)
	want := []int{1, 3, 4, 5}
	got := s.Members()
	if len(got) != len(want) {
		t.Fatalf("Members = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Members = %v, want %v", got, want)
		}
	}

	comp := SetOf(4, 0, 2).Complement()
	if !comp.Equal(SetOf(4, 1, 3)) {
		t.Errorf("Complement = %v, want {1,3}", comp)
	}

	r := NewSet(8)
	r.CopyFrom(o)
	if !r.Equal(o) {
		t.Error("CopyFrom should replicate contents")
	}
	r.Clear()
	if r.Len() != 0 {
		t.Error("Clear should empty the set")
	}
}
