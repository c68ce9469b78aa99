// Package metrics summarises recorded frames: energy, drift and contacts.
package metrics

import (
	"math"

	"github.com/san-kum/arena/internal/dynamo"
	"github.com/san-kum/arena/internal/sim"
)

// Metric accumulates a single scalar over observed frames. Every Metric is
// also a sim.Observer.
type Metric interface {
	sim.Observer
	Name() string
	Value() float64
	Reset()
}

// KineticEnergyOf sums ½|v|² over unit-mass bodies.
func KineticEnergyOf(bodies []dynamo.Body) float64 {
	e := 0.0
	for _, b := range bodies {
		e += 0.5 * b.Vel.Dot(b.Vel)
	}
	return e
}

// MomentumOf returns the total momentum vector of unit-mass bodies.
func MomentumOf(bodies []dynamo.Body) dynamo.Vec2 {
	var p dynamo.Vec2
	for _, b := range bodies {
		p = p.Add(b.Vel)
	}
	return p
}

// KineticEnergy reports the energy of the last observed frame.
type KineticEnergy struct {
	last float64
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) OnFrame(_ sim.FrameStats, bodies []dynamo.Body) {
	k.last = KineticEnergyOf(bodies)
}

func (k *KineticEnergy) Value() float64 { return k.last }

func (k *KineticEnergy) Reset() { k.last = 0 }

// EnergyDrift tracks the largest relative change in kinetic energy since
// the first observed frame with motion. Pointer impulses re-baseline it.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	started  bool
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) OnFrame(stats sim.FrameStats, bodies []dynamo.Body) {
	if stats.Events > 0 {
		e.Rebase()
	}
	energy := KineticEnergyOf(bodies)
	if !e.started || e.initial == 0 {
		e.initial = energy
		e.started = true
		return
	}
	drift := math.Abs(energy-e.initial) / e.initial
	e.maxDrift = math.Max(e.maxDrift, drift)
}

// Rebase restarts drift measurement from the next frame.
func (e *EnergyDrift) Rebase() { e.started = false }

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.started = false
}

// Contacts counts resolved body pairs.
type Contacts struct {
	total int
}

func NewContacts() *Contacts { return &Contacts{} }

func (c *Contacts) Name() string { return "contacts" }

func (c *Contacts) OnFrame(stats sim.FrameStats, _ []dynamo.Body) { c.total += stats.Contacts }

func (c *Contacts) Value() float64 { return float64(c.total) }

func (c *Contacts) Reset() { c.total = 0 }

// WallHits counts body-frames spent touching a wall.
type WallHits struct {
	total int
}

func NewWallHits() *WallHits { return &WallHits{} }

func (w *WallHits) Name() string { return "wall_hits" }

func (w *WallHits) OnFrame(stats sim.FrameStats, _ []dynamo.Body) { w.total += stats.WallHits }

func (w *WallHits) Value() float64 { return float64(w.total) }

func (w *WallHits) Reset() { w.total = 0 }

// Standard returns the metrics recorded with every run.
func Standard() []Metric {
	return []Metric{NewKineticEnergy(), NewEnergyDrift(), NewContacts(), NewWallHits()}
}

// Collect reads every metric into a name→value map.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
