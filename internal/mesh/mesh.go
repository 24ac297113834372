// Package mesh describes the spatial discretization consumed by the solver.
//
// A Mesh is one of exactly two variants: a structured 2-D grid or an ordered
// list of 1-D face positions. Both are built once at startup and read-only
// afterward.
package mesh

import "math"

// Mesh is a read-only geometric view of the discretization.
//
// The interface is sealed: StructuredMesh and FacePositions1D are the only
// implementations, and a new variant requires touching every dispatch site.
type Mesh interface {
	// NumTotalZones returns the number of zones (cells) in the mesh.
	NumTotalZones() int

	// MinSpacing returns the smallest cell spacing. Positive and finite
	// for any mesh with at least one zone.
	MinSpacing() float64

	sealed()
}

// StructuredMesh is a uniform 2-D grid: NI x NJ zones starting at (X0, Y0)
// with spacings DX and DY.
type StructuredMesh struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	NI int     `json:"ni"`
	NJ int     `json:"nj"`
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// NumTotalZones returns NI * NJ.
func (m StructuredMesh) NumTotalZones() int {
	return m.NI * m.NJ
}

// MinSpacing returns the smaller of the two axis spacings.
func (m StructuredMesh) MinSpacing() float64 {
	return math.Min(m.DX, m.DY)
}

func (StructuredMesh) sealed() {}

// FacePositions1D is a strictly increasing sequence of face coordinates.
// Callers must guarantee len >= 2 at construction; zone i spans
// faces[i]..faces[i+1].
type FacePositions1D []float64

// NumTotalZones returns len(faces) - 1.
func (f FacePositions1D) NumTotalZones() int {
	return len(f) - 1
}

// MinSpacing returns the minimum gap between adjacent faces. A single-zone
// mesh yields exactly its one gap.
func (f FacePositions1D) MinSpacing() float64 {
	min := math.Inf(1)
	for i := 0; i+1 < len(f); i++ {
		if d := f[i+1] - f[i]; d < min {
			min = d
		}
	}
	return min
}

func (FacePositions1D) sealed() {}

// Uniform1D returns face positions for n equal zones spanning [x0, x1].
// The driver uses this to build the default 1-D mesh from the configured
// resolution.
func Uniform1D(x0, x1 float64, n int) FacePositions1D {
	faces := make(FacePositions1D, n+1)
	dx := (x1 - x0) / float64(n)
	for i := range faces {
		faces[i] = x0 + dx*float64(i)
	}
	faces[n] = x1
	return faces
}

// CellCenters returns the midpoint of every zone.
func (f FacePositions1D) CellCenters() []float64 {
	centers := make([]float64, f.NumTotalZones())
	for i := range centers {
		centers[i] = 0.5 * (f[i] + f[i+1])
	}
	return centers
}
