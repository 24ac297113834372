// Package driver owns the main simulation loop: CFL-limited time stepping,
// periodic progress messages, and checkpoint output.
package driver

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/me/sailfish/internal/checkpoint"
	"github.com/me/sailfish/internal/cmdline"
	"github.com/me/sailfish/internal/mesh"
)

// Solver advances the solution in time. Backends implement this; the driver
// never inspects the state beyond what the interface exposes.
type Solver interface {
	// Primitive returns the current solution array.
	Primitive() []float64

	// Time returns the current simulated time.
	Time() float64

	// MaxWavespeed returns the largest signal speed on the grid.
	MaxWavespeed() float64

	// Advance moves the solution forward by dt.
	Advance(dt float64)
}

// Options configures a run.
type Options struct {
	Config cmdline.RunConfig
	Mesh   mesh.Mesh
	Solver Solver
	Logger *slog.Logger

	// OnCheckpoint, if set, is called after each checkpoint file is
	// written. A returned error aborts the run.
	OnCheckpoint func(c checkpoint.Checkpoint, path string, size int64) error
}

// Result summarizes a completed run.
type Result struct {
	Iterations     int
	FinalTime      float64
	ZonesPerSecond float64
}

// Run drives the solver from its current time to the configured end time.
//
// The time step is cfl * min_spacing / max_wavespeed, recomputed each
// iteration. A checkpoint is written whenever simulated time crosses the
// next multiple of the checkpoint interval, including one at the start. A
// progress message is logged every fold iterations.
func Run(opts Options) (Result, error) {
	cfg := opts.Config
	s := opts.Solver
	log := opts.Logger

	numZones := opts.Mesh.NumTotalZones()
	if numZones < 1 {
		return Result{}, fmt.Errorf("mesh has no zones")
	}
	if s.MaxWavespeed() <= 0 {
		return Result{}, fmt.Errorf("max wavespeed must be positive")
	}

	log.Info("start simulation",
		"zones", numZones,
		"end_time", cfg.EndTime,
		"rk_order", cfg.RKOrder,
		"cfl", cfg.CFLNumber)

	var (
		iteration int
		chkptNum  int
		foldStart = time.Now()
		zps       float64
	)

	writeDue := func() error {
		if cfg.CheckpointInterval <= 0 {
			return nil
		}
		for s.Time() >= float64(chkptNum)*cfg.CheckpointInterval {
			c := checkpoint.Checkpoint{
				Iteration: iteration,
				Time:      s.Time(),
				Mesh:      opts.Mesh,
				Primitive: append([]float64(nil), s.Primitive()...),
			}
			path, size, err := checkpoint.Write(cfg.Outdir, chkptNum, c)
			if err != nil {
				return err
			}
			log.Info("write checkpoint", "path", path, "time", s.Time())
			if opts.OnCheckpoint != nil {
				if err := opts.OnCheckpoint(c, path, size); err != nil {
					return err
				}
			}
			chkptNum++
		}
		return nil
	}

	for s.Time() < cfg.EndTime {
		if err := writeDue(); err != nil {
			return Result{}, err
		}

		dt := cfg.CFLNumber * opts.Mesh.MinSpacing() / s.MaxWavespeed()
		s.Advance(dt)
		iteration++

		if cfg.Fold > 0 && iteration%int(cfg.Fold) == 0 {
			elapsed := time.Since(foldStart).Seconds()
			zps = float64(numZones) * float64(cfg.Fold) / elapsed
			log.Info("iteration",
				"n", iteration,
				"time", fmt.Sprintf("%.4f", s.Time()),
				"Mzps", fmt.Sprintf("%.3f", zps/1e6))
			foldStart = time.Now()
		}
	}

	if err := writeDue(); err != nil {
		return Result{}, err
	}

	log.Info("simulation complete", "iterations", iteration, "time", s.Time())
	return Result{
		Iterations:     iteration,
		FinalTime:      s.Time(),
		ZonesPerSecond: zps,
	}, nil
}
