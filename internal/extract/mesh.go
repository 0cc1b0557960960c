package extract

import (
	"fmt"

	"github.com/qmuntal/gltf"

	"gltfpack/internal/gltfdoc"
)

// meshOutputs fixes the attribute set the runtime consumes and the exact
// accessor types each attribute must declare. The files are raw headerless
// dumps; element size and count are convention between packer and engine.
var meshOutputs = []struct {
	file  string
	attr  string
	comp  gltf.ComponentType
	shape gltf.AccessorType
}{
	{"positions.bin", gltf.POSITION, gltf.ComponentFloat, gltf.AccessorVec3},
	{"normals.bin", gltf.NORMAL, gltf.ComponentFloat, gltf.AccessorVec3},
	{"vert_joints.bin", gltf.JOINTS_0, gltf.ComponentUbyte, gltf.AccessorVec4},
	{"vert_weights.bin", gltf.WEIGHTS_0, gltf.ComponentFloat, gltf.AccessorVec4},
}

// PackMesh stages the five vertex data files of the single mesh primitive.
func PackMesh(doc *gltfdoc.Document, out *OutputSet) error {
	prim, err := doc.Primitive()
	if err != nil {
		return err
	}

	for _, mo := range meshOutputs {
		idx, ok := prim.Attributes[mo.attr]
		if !ok {
			return fmt.Errorf("extract: %w: primitive is missing the %s attribute", gltfdoc.ErrStructuralViolation, mo.attr)
		}
		data, err := doc.Resolve(int(idx), mo.comp, mo.shape)
		if err != nil {
			return fmt.Errorf("extract: %s attribute: %w", mo.attr, err)
		}
		out.Add(mo.file, data)
	}

	if prim.Indices == nil {
		return fmt.Errorf("extract: %w: primitive has no indices", gltfdoc.ErrStructuralViolation)
	}
	indices, err := doc.Resolve(int(*prim.Indices), gltf.ComponentUshort, gltf.AccessorScalar)
	if err != nil {
		return fmt.Errorf("extract: indices: %w", err)
	}
	out.Add("indices.bin", indices)

	return nil
}
