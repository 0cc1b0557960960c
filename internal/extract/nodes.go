package extract

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/qmuntal/gltf"

	"gltfpack/internal/gltfdoc"
)

// NoParent marks a root node in the packed parent table.
const NoParent uint32 = 0xFFFFFFFF

// nodeRecord is the fixed-stride layout of one entry in nodes.bin:
// 10 little-endian float32 followed by one uint32, 44 bytes.
type nodeRecord struct {
	Translation [3]float32
	Rotation    [4]float32
	Scale       [3]float32
	Parent      uint32
}

// BuildParents inverts the child lists into a parent table. Every entry
// starts at NoParent; a child already claimed by another parent or a child
// index outside the node array is ambiguous input and fails the run.
func BuildParents(nodes []*gltf.Node) ([]uint32, error) {
	parents := make([]uint32, len(nodes))
	for i := range parents {
		parents[i] = NoParent
	}

	for i, node := range nodes {
		for _, child := range node.Children {
			c := int(child)
			if c < 0 || c >= len(nodes) {
				return nil, fmt.Errorf("extract: %w: node %d lists child %d but there are %d nodes", gltfdoc.ErrStructuralViolation, i, c, len(nodes))
			}
			if parents[c] != NoParent {
				return nil, fmt.Errorf("extract: %w: node %d is a child of both node %d and node %d", gltfdoc.ErrStructuralViolation, c, parents[c], i)
			}
			parents[c] = uint32(i)
		}
	}
	return parents, nil
}

// nodeTRS applies the glTF transform defaults to a node. A zero-valued
// rotation or scale means the field was absent from the source (a zero
// quaternion and a zero scale are both meaningless), so the defaults
// [0,0,0,1] and [1,1,1] are substituted.
func nodeTRS(n *gltf.Node) (t [3]float32, r [4]float32, s [3]float32) {
	for i := 0; i < 3; i++ {
		t[i] = float32(n.Translation[i])
	}

	r = [4]float32{0, 0, 0, 1}
	if n.Rotation != [4]float64{} {
		for i := 0; i < 4; i++ {
			r[i] = float32(n.Rotation[i])
		}
	}

	s = [3]float32{1, 1, 1}
	if n.Scale != [3]float64{} {
		for i := 0; i < 3; i++ {
			s[i] = float32(n.Scale[i])
		}
	}
	return t, r, s
}

// PackNodes stages nodes.bin: one nodeRecord per node, in source order.
func PackNodes(doc *gltfdoc.Document, out *OutputSet) error {
	nodes := doc.Nodes()
	parents, err := BuildParents(nodes)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	for i, node := range nodes {
		var rec nodeRecord
		rec.Translation, rec.Rotation, rec.Scale = nodeTRS(node)
		rec.Parent = parents[i]
		if err := binary.Write(&buf, binary.LittleEndian, rec); err != nil {
			return fmt.Errorf("extract: %w: encode node %d: %v", gltfdoc.ErrIO, i, err)
		}
	}

	out.Add("nodes.bin", buf.Bytes())
	return nil
}
