package mesh

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The serialized form is an untagged union, kept compatible with external
// checkpoint files: a StructuredMesh is an object with named fields, a
// FacePositions1D is a bare array of numbers. Decoding disambiguates on
// shape alone; there is no discriminator field.

// Marshal serializes a mesh to its untagged JSON form.
func Marshal(m Mesh) ([]byte, error) {
	switch v := m.(type) {
	case StructuredMesh:
		return json.Marshal(v)
	case FacePositions1D:
		return json.Marshal([]float64(v))
	default:
		return nil, fmt.Errorf("unknown mesh variant %T", m)
	}
}

// Unmarshal restores a mesh from its untagged JSON form. An object decodes
// as a StructuredMesh, an array as FacePositions1D.
func Unmarshal(data []byte) (Mesh, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty mesh document")
	}
	switch trimmed[0] {
	case '{':
		var m StructuredMesh
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil, fmt.Errorf("structured mesh: %w", err)
		}
		return m, nil
	case '[':
		var faces []float64
		if err := json.Unmarshal(trimmed, &faces); err != nil {
			return nil, fmt.Errorf("face positions: %w", err)
		}
		return FacePositions1D(faces), nil
	default:
		return nil, fmt.Errorf("mesh document must be an object or an array, got %q", trimmed[0])
	}
}
