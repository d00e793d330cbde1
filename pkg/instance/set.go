package instance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Set is a fixed-capacity set of node indices backed by a bitset.
//
// Every hot loop in the engine (coverage counting, used-sensor bookkeeping,
// flood accumulation) works on sets of sensor indices sized to the instance's
// sensor count, so a bitset gives O(word) difference/union operations where a
// hash set would allocate. Capacity is fixed at construction; indices must be
// in [0, capacity).
type Set struct {
	bits *bitset.BitSet
}

// NewSet creates an empty set with the given capacity.
func NewSet(capacity int) *Set {
	return &Set{bits: bitset.New(uint(capacity))}
}

// Capacity returns the index space of the set.
func (s *Set) Capacity() int { return int(s.bits.Len()) }

// Add inserts i into the set.
func (s *Set) Add(i int) { s.bits.Set(uint(i)) }

// Remove deletes i from the set.
func (s *Set) Remove(i int) { s.bits.Clear(uint(i)) }

// Contains reports whether i is in the set.
func (s *Set) Contains(i int) bool { return s.bits.Test(uint(i)) }

// Len returns the number of members.
func (s *Set) Len() int { return int(s.bits.Count()) }

// Clear removes all members, keeping the capacity.
func (s *Set) Clear() { s.bits.ClearAll() }

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	return &Set{bits: s.bits.Clone()}
}

// CopyFrom overwrites the set's contents with o's.
// Both sets must have the same capacity. This is the reset used by per-POI
// search loops to reseed a used-sensor set without reallocating.
func (s *Set) CopyFrom(o *Set) {
	o.bits.CopyFull(s.bits)
}

// AddAll inserts every member of o (set union in place).
func (s *Set) AddAll(o *Set) {
	s.bits.InPlaceUnion(o.bits)
}

// DiffLen returns |s \ o|: the number of members of s not in o.
func (s *Set) DiffLen(o *Set) int {
	return int(s.bits.DifferenceCardinality(o.bits))
}

// Complement returns a new set holding every index in [0, capacity) not in s.
func (s *Set) Complement() *Set {
	return &Set{bits: s.bits.Complement()}
}

// Each calls fn for every member in ascending order.
// Iteration stops early if fn returns false.
func (s *Set) Each(fn func(i int) bool) {
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		if !fn(int(i)) {
			return
		}
	}
}

// Members returns the set's members in ascending order.
func (s *Set) Members() []int {
	out := make([]int, 0, s.Len())
	s.Each(func(i int) bool {
		out = append(out, i)
		return true
	})
	return out
}

// Equal reports whether s and o have the same members.
func (s *Set) Equal(o *Set) bool {
	return s.bits.Equal(o.bits)
}

// String renders the set as a sorted, comma-separated index list.
func (s *Set) String() string {
	members := s.Members()
	sort.Ints(members)
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = fmt.Sprintf("%d", m)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// SetOf builds a set with the given capacity and members.
func SetOf(capacity int, members ...int) *Set {
	s := NewSet(capacity)
	for _, m := range members {
		s.Add(m)
	}
	return s
}
