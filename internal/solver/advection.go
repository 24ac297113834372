// Package solver holds the reference CPU kernel used by the driver binary.
//
// Production solver backends (OpenMP, GPU) live outside this module; the
// built-in kernel exists so the driver runs end to end without them.
package solver

import (
	"fmt"

	"github.com/me/sailfish/internal/mesh"
)

// Advection integrates the 1-D scalar advection equation du/dt + a du/dx = 0
// on a face-positions mesh with periodic boundaries, first-order Godunov
// fluxes, and SSP Runge-Kutta time stepping of order 1, 2, or 3.
type Advection struct {
	faces     mesh.FacePositions1D
	primitive []float64
	scratch   []float64
	cache     []float64
	waveSpeed float64
	rkOrder   int
	time      float64
}

// NewAdvection builds a solver on the given mesh with a shocktube-like
// initial profile: u = 1 on the left half of the domain, u = 0.1 on the
// right. Wave speed is unity.
func NewAdvection(faces mesh.FacePositions1D, rkOrder int) (*Advection, error) {
	if faces.NumTotalZones() < 1 {
		return nil, fmt.Errorf("mesh has no zones")
	}
	if rkOrder < 1 || rkOrder > 3 {
		return nil, fmt.Errorf("rk order must be 1, 2, or 3, got %d", rkOrder)
	}

	centers := faces.CellCenters()
	mid := 0.5 * (faces[0] + faces[len(faces)-1])
	primitive := make([]float64, len(centers))
	for i, x := range centers {
		if x < mid {
			primitive[i] = 1.0
		} else {
			primitive[i] = 0.1
		}
	}

	return &Advection{
		faces:     faces,
		primitive: primitive,
		scratch:   make([]float64, len(primitive)),
		cache:     make([]float64, len(primitive)),
		waveSpeed: 1.0,
		rkOrder:   rkOrder,
	}, nil
}

// Primitive returns the current solution array. The slice is live; callers
// must copy it before mutating or retaining it across Advance calls.
func (s *Advection) Primitive() []float64 { return s.primitive }

// Time returns the current simulated time.
func (s *Advection) Time() float64 { return s.time }

// MaxWavespeed returns the largest signal speed on the grid, used by the
// driver to compute the CFL-limited time step.
func (s *Advection) MaxWavespeed() float64 { return s.waveSpeed }

// Advance moves the solution forward by dt using the configured RK order.
// The averaging weights are the standard SSP values: each stage is an Euler
// update blended with the cached start-of-step state.
func (s *Advection) Advance(dt float64) {
	copy(s.cache, s.primitive)

	switch s.rkOrder {
	case 1:
		s.eulerStep(dt)
	case 2:
		s.eulerStep(dt)
		s.eulerStep(dt)
		s.average(0.5)
	case 3:
		s.eulerStep(dt)
		s.eulerStep(dt)
		s.average(0.75)
		s.eulerStep(dt)
		s.average(1.0 / 3.0)
	}
	s.time += dt
}

// eulerStep applies one first-order conservative update. The upwind Godunov
// flux for positive wave speed is a * u taken from the zone to the left of
// each face.
func (s *Advection) eulerStep(dt float64) {
	p := s.primitive
	n := len(p)
	for i := 0; i < n; i++ {
		left := i - 1
		if left < 0 {
			left = n - 1
		}
		fm := s.waveSpeed * p[left]
		fp := s.waveSpeed * p[i]
		dx := s.faces[i+1] - s.faces[i]
		s.scratch[i] = p[i] - (fp-fm)*dt/dx
	}
	copy(p, s.scratch)
}

// average blends the current state toward the cached start-of-step state:
// u <- b*u0 + (1-b)*u.
func (s *Advection) average(b float64) {
	for i := range s.primitive {
		s.primitive[i] = b*s.cache[i] + (1.0-b)*s.primitive[i]
	}
}
