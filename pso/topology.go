package pso

import (
	"fmt"
	"math/rand"
)

// NeighborhoodTopology decides which personal best pulls each particle.
//
// Inform fills sw.Informant[j] for every particle j. improved reports
// whether the previous step lowered the global best.
type NeighborhoodTopology interface {
	Inform(sw *Swarm, gbest []float64, improved bool)
}

// NewTopology builds the topology selected by s. The Random topology draws
// its relation from rng, so it must be the run's random stream.
func NewTopology(s *Settings, rng *rand.Rand) (NeighborhoodTopology, error) {
	switch s.Neighborhood {
	case NeighborhoodGlobal:
		return GlobalTopology{}, nil
	case NeighborhoodRing:
		return NewRingTopology(s.Size), nil
	case NeighborhoodRandom:
		return NewRandomTopology(s.Size, s.NeighborhoodSize, rng), nil
	default:
		return nil, fmt.Errorf("unsupported neighborhood strategy: %v", s.Neighborhood)
	}
}

// GlobalTopology informs every particle with the global best.
type GlobalTopology struct{}

func (GlobalTopology) Inform(sw *Swarm, gbest []float64, _ bool) {
	for _, nb := range sw.Informant {
		copy(nb, gbest)
	}
}

// RingTopology connects each particle to itself and its two ring neighbors.
// The relation never changes after construction.
type RingTopology struct {
	comm *CommMatrix
}

// NewRingTopology builds the ring relation for n particles.
func NewRingTopology(n int) *RingTopology {
	comm := NewCommMatrix(n)
	for i := 0; i < n; i++ {
		comm.Set(i, i)
		comm.Set(i, (i+1)%n)
		comm.Set(i, (i-1+n)%n)
	}
	return &RingTopology{comm: comm}
}

// Comm exposes the relation; callers must not modify it.
func (t *RingTopology) Comm() *CommMatrix { return t.comm }

func (t *RingTopology) Inform(sw *Swarm, _ []float64, _ bool) {
	informFromComm(t.comm, sw)
}

// RandomTopology links each particle to itself and fanout random targets.
// The relation is redrawn whenever the previous step failed to improve the
// global best.
type RandomTopology struct {
	comm       *CommMatrix
	fanout     int
	rng        *rand.Rand
	reshuffles int
}

// NewRandomTopology draws an initial relation for n particles from rng.
func NewRandomTopology(n, fanout int, rng *rand.Rand) *RandomTopology {
	t := &RandomTopology{comm: NewCommMatrix(n), fanout: fanout, rng: rng}
	t.shuffle()
	return t
}

// Comm exposes the relation; it is rewritten in place on every reshuffle.
func (t *RandomTopology) Comm() *CommMatrix { return t.comm }

// Reshuffles counts the relations drawn after construction.
func (t *RandomTopology) Reshuffles() int { return t.reshuffles }

func (t *RandomTopology) Inform(sw *Swarm, _ []float64, improved bool) {
	if !improved {
		t.shuffle()
		t.reshuffles++
	}
	informFromComm(t.comm, sw)
}

func (t *RandomTopology) shuffle() {
	n := t.comm.Size()
	t.comm.Clear()
	for i := 0; i < n; i++ {
		t.comm.Set(i, i)
		for k := 0; k < t.fanout; k++ {
			t.comm.Set(i, t.rng.Intn(n))
		}
	}
}

func informFromComm(comm *CommMatrix, sw *Swarm) {
	for j := range sw.Informant {
		b := comm.bestInformant(j, sw.BestFit)
		copy(sw.Informant[j], sw.BestPos[b])
	}
}
