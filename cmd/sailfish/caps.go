package main

import "github.com/me/sailfish/internal/cmdline"

// capabilities reports which execution backends this build supports. The
// flags come from the omp and gpu build tags, mirroring how the backends
// themselves are linked in.
func capabilities() cmdline.Capabilities {
	return cmdline.Capabilities{
		OpenMP: capOMP,
		GPU:    capGPU,
	}
}
