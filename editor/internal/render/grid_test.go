package render

import (
	"math"
	"testing"

	"github.com/0-zen/ObjToSchematic/shared/mesh"
	"github.com/0-zen/ObjToSchematic/shared/util"
)

// gridExtents varre todos os segmentos de todos os planos e devolve o
// menor e o maior valor de cada coordenada.
func gridExtents(g *gridBuffers) (min, max [3]float32) {
	min = [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	max = [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	include := func(x, y, z float32) {
		for i, v := range [3]float32{x, y, z} {
			if v < min[i] {
				min[i] = v
			}
			if v > max[i] {
				max[i] = v
			}
		}
	}
	for axis := gridAxis(0); axis < gridAxisCount; axis++ {
		for _, seg := range g.lines[axis] {
			include(seg.a.X, seg.a.Y, seg.a.Z)
			include(seg.b.X, seg.b.Y, seg.b.Z)
		}
	}
	return min, max
}

func approxF(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestGridForVoxelsSpansOneCellBeyondModel(t *testing.T) {
	dims := util.Vector3i{X: 2, Y: 3, Z: 4}
	const voxelSize = 0.5

	g := buildGridForVoxels(dims, voxelSize)
	min, max := gridExtents(g)

	// Extensão por eixo: uma célula a mais que o modelo.
	wantSpan := [3]float32{
		float32(dims.X+1) * voxelSize,
		float32(dims.Y+1) * voxelSize,
		float32(dims.Z+1) * voxelSize,
	}
	for i, want := range wantSpan {
		if got := max[i] - min[i]; !approxF(got, want) {
			t.Errorf("extensão do eixo %d: quer %v, veio %v", i, want, got)
		}
	}

	// Eixos de dimensão par (X e Z) deslocados meia célula para que as
	// linhas caiam nas fronteiras dos cubos; o eixo ímpar (Y) fica centrado.
	wantCentre := [3]float32{-0.5 * voxelSize, 0, -0.5 * voxelSize}
	for i, want := range wantCentre {
		if got := (min[i] + max[i]) * 0.5; !approxF(got, want) {
			t.Errorf("centro do eixo %d: quer %v, veio %v", i, want, got)
		}
	}

	// Linhas por eixo: dims+2 (fronteiras de dims+1 células). Cada eixo
	// alimenta dois planos.
	nX := int(dims.X) + 2
	nY := int(dims.Y) + 2
	nZ := int(dims.Z) + 2
	if want := 2 * (nX + nY + nZ); g.segments != want {
		t.Errorf("segmentos: quer %d, veio %d", want, g.segments)
	}
}

func TestFirstVoxelChunkSizesGridToDimensions(t *testing.T) {
	r := NewRenderer(nil)

	chunk := voxelChunk(true, false) // dims (4,4,4), célula 1.0
	r.UseVoxelMeshChunk(chunk)

	// 6 linhas por eixo (4+2), dois planos por eixo.
	if want := 2 * (6 + 6 + 6); r.GridSegmentCount() != want {
		t.Fatalf("segmentos da grade: quer %d, veio %d", want, r.GridSegmentCount())
	}

	min, max := gridExtents(r.grid)
	for i := 0; i < 3; i++ {
		if got := max[i] - min[i]; !approxF(got, 5.0) {
			t.Errorf("extensão do eixo %d: quer 5.0, veio %v", i, got)
		}
		// Dimensão 4 é par: centro deslocado em meia célula.
		if got := (min[i] + max[i]) * 0.5; !approxF(got, -0.5) {
			t.Errorf("centro do eixo %d: quer -0.5, veio %v", i, got)
		}
	}

	// Um novo primeiro chunk com outra escala reconstrói a grade.
	chunk = mesh.VoxelMeshChunk{
		Geometry:     triangleGeometry(),
		IsFirstChunk: true,
		VoxelSize:    2.0,
		Dimensions:   util.Vector3i{X: 1, Y: 1, Z: 1},
	}
	r.UseVoxelMeshChunk(chunk)
	if want := 2 * (3 + 3 + 3); r.GridSegmentCount() != want {
		t.Fatalf("grade não foi reconstruída: quer %d segmentos, veio %d",
			want, r.GridSegmentCount())
	}
}
