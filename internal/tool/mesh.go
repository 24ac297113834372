package tool

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/me/sailfish/internal/checkpoint"
	"github.com/me/sailfish/internal/mesh"
	"github.com/spf13/cobra"
)

func newMeshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mesh <file>",
		Short: "Describe the mesh in a mesh or checkpoint file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			m, err := loadMesh(path)
			if err != nil {
				return err
			}

			fmt.Printf("%-12s  %s\n", "variant:", variantName(m))
			fmt.Printf("%-12s  %s\n", "zones:", humanize.Comma(int64(m.NumTotalZones())))
			fmt.Printf("%-12s  %g\n", "min spacing:", m.MinSpacing())

			if s, ok := m.(mesh.StructuredMesh); ok {
				fmt.Printf("%-12s  %d x %d\n", "shape:", s.NI, s.NJ)
				fmt.Printf("%-12s  (%g, %g)\n", "origin:", s.X0, s.Y0)
			}
			return nil
		},
	}
}

// loadMesh reads either a bare mesh document or a checkpoint file and
// returns the mesh. Checkpoints are tried first since their shape (an
// object with a "mesh" key) is also a valid candidate for the structured
// mesh decoder.
func loadMesh(path string) (mesh.Mesh, error) {
	if c, err := checkpoint.Read(path); err == nil && c.Mesh != nil {
		return c.Mesh, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	m, err := mesh.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

func variantName(m mesh.Mesh) string {
	switch m.(type) {
	case mesh.StructuredMesh:
		return "structured"
	case mesh.FacePositions1D:
		return "face-positions-1d"
	default:
		return fmt.Sprintf("%T", m)
	}
}
