package pso

import (
	"github.com/bits-and-blooms/bitset"
)

// CommMatrix is the N×N communication relation of a swarm.
// Entry (i, j) set means particle i informs particle j.
type CommMatrix struct {
	n    int
	rows []*bitset.BitSet
}

// NewCommMatrix returns an n×n relation with every entry cleared.
func NewCommMatrix(n int) *CommMatrix {
	m := &CommMatrix{n: n, rows: make([]*bitset.BitSet, n)}
	for i := range m.rows {
		m.rows[i] = bitset.New(uint(n))
	}
	return m
}

// Size returns N.
func (m *CommMatrix) Size() int { return m.n }

// Set marks i as an informant of j.
func (m *CommMatrix) Set(i, j int) { m.rows[i].Set(uint(j)) }

// Informs reports whether i informs j.
func (m *CommMatrix) Informs(i, j int) bool { return m.rows[i].Test(uint(j)) }

// Degree returns the number of particles informed by i, itself included.
func (m *CommMatrix) Degree(i int) int { return int(m.rows[i].Count()) }

// Clear resets every entry.
func (m *CommMatrix) Clear() {
	for _, r := range m.rows {
		r.ClearAll()
	}
}

// Equal reports whether both relations have the same entries.
func (m *CommMatrix) Equal(o *CommMatrix) bool {
	if m.n != o.n {
		return false
	}
	for i := range m.rows {
		if !m.rows[i].Equal(o.rows[i]) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (m *CommMatrix) Clone() *CommMatrix {
	c := &CommMatrix{n: m.n, rows: make([]*bitset.BitSet, m.n)}
	for i, r := range m.rows {
		c.rows[i] = r.Clone()
	}
	return c
}

// bestInformant returns the informant of j with the lowest personal-best fitness.
// Ties keep the first index found, starting from j itself.
func (m *CommMatrix) bestInformant(j int, bestFit []float64) int {
	b := j
	for i := 0; i < m.n; i++ {
		if m.Informs(i, j) && bestFit[i] < bestFit[b] {
			b = i
		}
	}
	return b
}
