package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/me/sailfish/internal/checkpoint"
	"github.com/me/sailfish/internal/cmdline"
	"github.com/me/sailfish/internal/driver"
	"github.com/me/sailfish/internal/logging"
	"github.com/me/sailfish/internal/mesh"
	"github.com/me/sailfish/internal/solver"
	"github.com/me/sailfish/internal/store"
)

func main() {
	cfg, err := cmdline.Parse(os.Args[1:], capabilities())
	if err != nil {
		var info *cmdline.InformationRequested
		if errors.As(err, &info) {
			fmt.Print(info.Text)
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg cmdline.RunConfig) error {
	logger := logging.New(
		os.Getenv("SAILFISH_LOG_LEVEL"),
		os.Getenv("SAILFISH_LOG_FORMAT"),
		os.Stderr)

	if cfg.UseOMP {
		// Thread count is owned by the OpenMP backend, which reads
		// OMP_NUM_THREADS itself.
		logger.Info("parallel cpu execution requested", "omp_num_threads", os.Getenv("OMP_NUM_THREADS"))
	}
	if cfg.UseGPU {
		logger.Info("gpu execution requested")
	}

	faces := mesh.Uniform1D(0.0, 1.0, int(cfg.Resolution))
	sol, err := solver.NewAdvection(faces, cfg.RKOrder)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Outdir, 0o755); err != nil {
		return fmt.Errorf("create outdir %s: %w", cfg.Outdir, err)
	}

	ctx := context.Background()
	st, err := store.NewSQLiteStore(filepath.Join(cfg.Outdir, "history.db"), logger)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate history: %w", err)
	}

	run := &store.Run{
		ID:        uuid.New().String(),
		Config:    cfg,
		Zones:     faces.NumTotalZones(),
		StartedAt: time.Now().UTC(),
	}
	if err := st.CreateRun(ctx, run); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	chkptNum := 0
	result, err := driver.Run(driver.Options{
		Config: cfg,
		Mesh:   faces,
		Solver: sol,
		Logger: logger,
		OnCheckpoint: func(c checkpoint.Checkpoint, path string, size int64) error {
			rec := &store.CheckpointRecord{
				RunID:     run.ID,
				Number:    chkptNum,
				Iteration: c.Iteration,
				Time:      c.Time,
				Path:      path,
				SizeBytes: size,
				CreatedAt: time.Now().UTC(),
			}
			chkptNum++
			return st.AddCheckpoint(ctx, rec)
		},
	})
	if err != nil {
		return err
	}

	if err := st.FinishRun(ctx, run.ID, result.Iterations, result.FinalTime); err != nil {
		return fmt.Errorf("record run result: %w", err)
	}
	logger.Info("run recorded", "id", run.ID)
	return nil
}
