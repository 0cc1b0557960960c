package batch

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeAsset drops a minimal extractable asset (document + buffer) into dir.
func writeAsset(t *testing.T, dir string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))

	var buf []byte
	f32 := func(vals ...float32) {
		for _, v := range vals {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		}
	}
	// Positions, normals, one index, joints, weights, times, translation
	// values, inverse-bind matrix.
	f32(0, 0, 0)
	f32(0, 0, 1)
	buf = binary.LittleEndian.AppendUint16(buf, 0)
	buf = append(buf, 0, 0, 0, 0)
	f32(1, 0, 0, 0)
	f32(0, 1)
	f32(0, 0, 0, 0, 2, 0)
	f32(1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.bin"), buf, 0644))

	views := ""
	type span struct{ off, length int }
	for i, s := range []span{{0, 12}, {12, 12}, {24, 2}, {26, 4}, {30, 16}, {46, 8}, {54, 24}, {78, 64}} {
		if i > 0 {
			views += ","
		}
		views += fmt.Sprintf(`{"buffer":0,"byteOffset":%d,"byteLength":%d}`, s.off, s.length)
	}

	doc := `{
		"asset": {"version": "2.0"},
		"buffers": [{"uri": "model.bin", "byteLength": ` + fmt.Sprint(len(buf)) + `}],
		"bufferViews": [` + views + `],
		"accessors": [
			{"bufferView":0,"componentType":5126,"type":"VEC3","count":1},
			{"bufferView":1,"componentType":5126,"type":"VEC3","count":1},
			{"bufferView":2,"componentType":5123,"type":"SCALAR","count":1},
			{"bufferView":3,"componentType":5121,"type":"VEC4","count":1},
			{"bufferView":4,"componentType":5126,"type":"VEC4","count":1},
			{"bufferView":5,"componentType":5126,"type":"SCALAR","count":2},
			{"bufferView":6,"componentType":5126,"type":"VEC3","count":2},
			{"bufferView":7,"componentType":5126,"type":"MAT4","count":1}
		],
		"meshes": [{"primitives": [{
			"attributes": {"POSITION":0,"NORMAL":1,"JOINTS_0":3,"WEIGHTS_0":4},
			"indices": 2
		}]}],
		"nodes": [{"name": "root"}],
		"animations": [{
			"channels": [{"sampler":0,"target":{"node":0,"path":"translation"}}],
			"samplers": [{"input":5,"output":6}]
		}],
		"skins": [{"joints":[0],"inverseBindMatrices":7}]
	}`

	path := filepath.Join(dir, "model.gltf")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, filepath.Join(root, "guy"))
	writeAsset(t, filepath.Join(root, "props", "crate"))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), nil, 0644))

	docs, err := Discover(root)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, d := range docs {
		assert.Equal(t, ".gltf", filepath.Ext(d))
	}
}

func TestRun_ExtractsNextToEachDocument(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, filepath.Join(root, "guy"))
	writeAsset(t, filepath.Join(root, "crate"))

	docs, err := Discover(root)
	require.NoError(t, err)

	results := Run(Config{Root: root, Workers: 2}, docs)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Success, r.Error)
		assert.NotEmpty(t, r.Files)
		for _, f := range r.Files {
			_, err := os.Stat(filepath.Join(filepath.Dir(r.Document), f))
			assert.NoError(t, err)
		}
	}
}

func TestRun_MirrorsOutputDir(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, filepath.Join(root, "chars", "guy"))
	outRoot := t.TempDir()

	docs, err := Discover(root)
	require.NoError(t, err)

	results := Run(Config{Root: root, OutputDir: outRoot, Workers: 1}, docs)
	require.Len(t, results, 1)
	require.True(t, results[0].Success, results[0].Error)

	_, err = os.Stat(filepath.Join(outRoot, "chars", "guy", "positions.bin"))
	assert.NoError(t, err)
}

func TestRun_ReportsFailures(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "broken")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.gltf"), []byte(`{"asset":{"version":"2.0"}}`), 0644))

	results := Run(Config{Root: root, Workers: 1}, []string{filepath.Join(dir, "broken.gltf")})
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.NotEmpty(t, results[0].Error)
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")

	results := []Result{
		{Document: "a/model.gltf", Files: []string{"positions.bin"}, Success: true},
		{Document: "b/model.gltf", Error: "structural violation"},
	}
	require.NoError(t, WriteManifest(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "a/model.gltf")
	assert.Contains(t, string(data), "structural violation")
}
