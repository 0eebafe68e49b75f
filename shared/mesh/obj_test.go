package mesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/0-zen/ObjToSchematic/shared/util"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("escrever %s: %v", name, err)
	}
	return path
}

func TestLoadOBJQuadFan(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "quad.obj", `
# quadrado no plano XZ
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
f 1 2 3 4
`)

	tm, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}

	// Quadrado triangulado em leque: 2 triângulos
	if tm.TriangleCount() != 2 {
		t.Fatalf("TriangleCount = %d, esperava 2", tm.TriangleCount())
	}
	for _, tri := range tm.Triangles {
		if tri.Material != DefaultMaterialName {
			t.Errorf("face sem usemtl recebeu material %q", tri.Material)
		}
	}
}

func TestLoadOBJWithMTL(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cube.mtl", `
newmtl red
Kd 1.0 0.0 0.0
newmtl glass
Kd 0.9 0.9 1.0
d 0.5
`)
	path := writeFile(t, dir, "cube.obj", `
mtllib cube.mtl
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
usemtl red
f 1 2 3
usemtl glass
f 1 2 4
`)

	tm, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}

	red, ok := tm.Materials["red"]
	if !ok {
		t.Fatal("material red não foi carregado do MTL")
	}
	if !approxColour(red.Colour, util.NewRGBA(1, 0, 0, 1)) {
		t.Errorf("cor de red = %v", red.Colour)
	}

	glass := tm.Materials["glass"]
	if glass.AlphaFactor != 0.5 {
		t.Errorf("AlphaFactor de glass = %v, esperava 0.5", glass.AlphaFactor)
	}

	if tm.Triangles[0].Material != "red" || tm.Triangles[1].Material != "glass" {
		t.Errorf("materiais das faces = (%s, %s)",
			tm.Triangles[0].Material, tm.Triangles[1].Material)
	}
}

func TestLoadOBJResolvesUVsAndNegativeIndices(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tri.obj", `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
f -3/-3 -2/-2 -1/-1
`)

	tm, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if tm.TriangleCount() != 1 {
		t.Fatalf("TriangleCount = %d", tm.TriangleCount())
	}

	tri := tm.Triangles[0]
	if tri.UV1.X() != 1 || tri.UV2.Y() != 1 {
		t.Errorf("UVs não resolvidas: %v %v %v", tri.UV0, tri.UV1, tri.UV2)
	}
}

func TestLoadOBJRejectsEmptyAndBroken(t *testing.T) {
	dir := t.TempDir()

	empty := writeFile(t, dir, "empty.obj", "v 0 0 0\n")
	if _, err := LoadOBJ(empty); err == nil {
		t.Error("OBJ sem faces deveria falhar")
	}

	broken := writeFile(t, dir, "broken.obj", "v 0 0 0\nf 1 2 9\n")
	if _, err := LoadOBJ(broken); err == nil {
		t.Error("índice fora do intervalo deveria falhar")
	}
}

func TestLoadModelDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "quad.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")

	if _, err := LoadModel(path); err != nil {
		t.Fatalf("LoadModel(.obj): %v", err)
	}
	if _, err := LoadModel(filepath.Join(dir, "model.stl")); err == nil {
		t.Error("extensão desconhecida deveria falhar")
	}
}

func TestBuildTriangleBuffers(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "quad.obj", `
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
f 1 2 3 4
`)

	tm, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}

	buffers := tm.BuildTriangleBuffers()
	if len(buffers) != 1 {
		t.Fatalf("%d buffers, esperava 1", len(buffers))
	}
	if buffers[0].Name != DefaultMaterialName {
		t.Errorf("Name = %q", buffers[0].Name)
	}
	// 2 triângulos * 3 vértices
	if got := buffers[0].Geometry.VertexCount(); got != 6 {
		t.Errorf("VertexCount = %d, esperava 6", got)
	}
}
