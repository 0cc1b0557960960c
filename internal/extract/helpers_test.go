package extract

import (
	"encoding/binary"
	"math"

	"github.com/qmuntal/gltf"
)

// docBuilder assembles an in-memory document backed by a single buffer.
type docBuilder struct {
	doc *gltf.Document
	buf *gltf.Buffer
}

func newDocBuilder() *docBuilder {
	buf := &gltf.Buffer{}
	return &docBuilder{
		doc: &gltf.Document{Buffers: []*gltf.Buffer{buf}},
		buf: buf,
	}
}

// addAccessor appends data to the buffer behind a fresh bufferView and
// returns the new accessor's index.
func (b *docBuilder) addAccessor(comp gltf.ComponentType, shape gltf.AccessorType, count int, data []byte) int {
	viewIdx := len(b.doc.BufferViews)
	b.doc.BufferViews = append(b.doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: len(b.buf.Data),
		ByteLength: len(data),
	})
	b.buf.Data = append(b.buf.Data, data...)
	b.buf.ByteLength = len(b.buf.Data)

	accIdx := len(b.doc.Accessors)
	b.doc.Accessors = append(b.doc.Accessors, &gltf.Accessor{
		BufferView:    gltf.Index(viewIdx),
		ComponentType: comp,
		Type:          shape,
		Count:         count,
	})
	return accIdx
}

func f32le(vals ...float32) []byte {
	out := make([]byte, 0, len(vals)*4)
	for _, v := range vals {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}

func u16le(vals ...uint16) []byte {
	out := make([]byte, 0, len(vals)*2)
	for _, v := range vals {
		out = binary.LittleEndian.AppendUint16(out, v)
	}
	return out
}

// fullDocument builds the smallest document the packer accepts: a 3-vertex
// triangle skinned to a 3-node chain, with a 2-channel animation.
func fullDocument() *gltf.Document {
	b := newDocBuilder()

	positions := b.addAccessor(gltf.ComponentFloat, gltf.AccessorVec3, 3,
		f32le(0, 0, 0, 1, 0, 0, 0, 1, 0))
	normals := b.addAccessor(gltf.ComponentFloat, gltf.AccessorVec3, 3,
		f32le(0, 0, 1, 0, 0, 1, 0, 0, 1))
	indices := b.addAccessor(gltf.ComponentUshort, gltf.AccessorScalar, 3,
		u16le(0, 1, 2))
	joints := b.addAccessor(gltf.ComponentUbyte, gltf.AccessorVec4, 3,
		[]byte{0, 1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0})
	weights := b.addAccessor(gltf.ComponentFloat, gltf.AccessorVec4, 3,
		f32le(1, 0, 0, 0, 0.5, 0.5, 0, 0, 1, 0, 0, 0))

	times := b.addAccessor(gltf.ComponentFloat, gltf.AccessorScalar, 2,
		f32le(0, 1))
	transValues := b.addAccessor(gltf.ComponentFloat, gltf.AccessorVec3, 2,
		f32le(0, 0, 0, 0, 2, 0))
	rotValues := b.addAccessor(gltf.ComponentFloat, gltf.AccessorVec4, 2,
		f32le(0, 0, 0, 1, 0, 0.707, 0, 0.707))

	ibms := make([]float32, 0, 32)
	for j := 0; j < 2; j++ {
		ibms = append(ibms,
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, float32(j), 1)
	}
	inverseBind := b.addAccessor(gltf.ComponentFloat, gltf.AccessorMat4, 2, f32le(ibms...))

	b.doc.Meshes = []*gltf.Mesh{{
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{
				gltf.POSITION:  positions,
				gltf.NORMAL:    normals,
				gltf.JOINTS_0:  joints,
				gltf.WEIGHTS_0: weights,
			},
			Indices: gltf.Index(indices),
		}},
	}}

	b.doc.Nodes = []*gltf.Node{
		{Name: "root", Children: []int{1}, Translation: [3]float64{0, 1, 0}},
		{Name: "spine", Children: []int{2}, Rotation: [4]float64{0, 0, 0, 1}},
		{Name: "head", Scale: [3]float64{2, 2, 2}},
	}

	b.doc.Animations = []*gltf.Animation{{
		Channels: []*gltf.AnimationChannel{
			{Sampler: 0, Target: gltf.AnimationChannelTarget{Node: gltf.Index(0), Path: gltf.TRSTranslation}},
			{Sampler: 1, Target: gltf.AnimationChannelTarget{Node: gltf.Index(1), Path: gltf.TRSRotation}},
		},
		Samplers: []*gltf.AnimationSampler{
			{Input: times, Output: transValues},
			{Input: times, Output: rotValues},
		},
	}}

	b.doc.Skins = []*gltf.Skin{{
		Joints:              []int{1, 2},
		InverseBindMatrices: gltf.Index(inverseBind),
	}}

	return b.doc
}
