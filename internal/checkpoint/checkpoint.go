// Package checkpoint reads and writes simulation snapshots.
//
// A checkpoint is a JSON document carrying the iteration count, simulated
// time, the mesh (in its untagged union form, for compatibility with
// external checkpoint files), and the primitive solution array.
package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/me/sailfish/internal/mesh"
)

// Checkpoint is one snapshot of the run.
type Checkpoint struct {
	Iteration int
	Time      float64
	Mesh      mesh.Mesh
	Primitive []float64
}

// fileForm is the on-disk layout. The mesh is deferred to raw JSON so the
// untagged codec in the mesh package owns its shape.
type fileForm struct {
	Iteration int             `json:"iteration"`
	Time      float64         `json:"time"`
	Mesh      json.RawMessage `json:"mesh"`
	Primitive []float64       `json:"primitive"`
}

// MarshalJSON implements json.Marshaler.
func (c Checkpoint) MarshalJSON() ([]byte, error) {
	meshJSON, err := mesh.Marshal(c.Mesh)
	if err != nil {
		return nil, fmt.Errorf("marshal mesh: %w", err)
	}
	return json.Marshal(fileForm{
		Iteration: c.Iteration,
		Time:      c.Time,
		Mesh:      meshJSON,
		Primitive: c.Primitive,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Checkpoint) UnmarshalJSON(data []byte) error {
	var f fileForm
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	m, err := mesh.Unmarshal(f.Mesh)
	if err != nil {
		return fmt.Errorf("unmarshal mesh: %w", err)
	}
	c.Iteration = f.Iteration
	c.Time = f.Time
	c.Mesh = m
	c.Primitive = f.Primitive
	return nil
}

// Filename returns the name of the n-th checkpoint file.
func Filename(n int) string {
	return fmt.Sprintf("chkpt.%04d.json", n)
}

// Write stores the checkpoint as file number n under dir, creating the
// directory if needed. It returns the written path and file size.
func Write(dir string, n int, c Checkpoint) (string, int64, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create outdir %s: %w", dir, err)
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", 0, fmt.Errorf("marshal checkpoint: %w", err)
	}
	path := filepath.Join(dir, Filename(n))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", 0, fmt.Errorf("write %s: %w", path, err)
	}
	return path, int64(len(data)), nil
}

// Read restores a checkpoint from path.
func Read(path string) (Checkpoint, error) {
	var c Checkpoint
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}
