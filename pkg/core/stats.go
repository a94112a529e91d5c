package core

// TraversalStats accumulates intersection work for one worker. It is passed
// explicitly into BVH queries so the shared BVH stays free of mutable state;
// a nil *TraversalStats discards the counts.
type TraversalStats struct {
	Rays           int64 // Top-level BVH queries
	NodeVisits     int64 // BVH nodes whose box test was performed
	PrimitiveTests int64 // Primitive intersection tests
}

// AddRay records a top-level query
func (s *TraversalStats) AddRay() {
	if s != nil {
		s.Rays++
	}
}

// AddNodeVisit records a node box test
func (s *TraversalStats) AddNodeVisit() {
	if s != nil {
		s.NodeVisits++
	}
}

// AddPrimitiveTest records a primitive intersection test
func (s *TraversalStats) AddPrimitiveTest() {
	if s != nil {
		s.PrimitiveTests++
	}
}

// Merge adds other's counts into s
func (s *TraversalStats) Merge(other TraversalStats) {
	s.Rays += other.Rays
	s.NodeVisits += other.NodeVisits
	s.PrimitiveTests += other.PrimitiveTests
}
