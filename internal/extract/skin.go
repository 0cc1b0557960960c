package extract

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/qmuntal/gltf"

	"gltfpack/internal/gltfdoc"
)

// PackSkin stages joint_info.bin: joint count, joint node indices in declared
// order, then the raw inverse-bind matrices (one MAT4 per joint, same order).
func PackSkin(doc *gltfdoc.Document, out *OutputSet) error {
	skin, err := doc.Skin()
	if err != nil {
		return err
	}

	if skin.InverseBindMatrices == nil {
		return fmt.Errorf("extract: %w: skin has no inverse-bind matrices", gltfdoc.ErrStructuralViolation)
	}
	ibmIdx := int(*skin.InverseBindMatrices)
	matrices, err := doc.Resolve(ibmIdx, gltf.ComponentFloat, gltf.AccessorMat4)
	if err != nil {
		return fmt.Errorf("extract: inverse-bind matrices: %w", err)
	}
	count, err := doc.AccessorCount(ibmIdx)
	if err != nil {
		return err
	}
	if count != len(skin.Joints) {
		return fmt.Errorf("extract: %w: %d inverse-bind matrices for %d joints", gltfdoc.ErrStructuralViolation, count, len(skin.Joints))
	}

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(len(skin.Joints)))
	for _, joint := range skin.Joints {
		binary.Write(&buf, binary.LittleEndian, uint32(joint))
	}
	buf.Write(matrices)

	out.Add("joint_info.bin", buf.Bytes())
	return nil
}
