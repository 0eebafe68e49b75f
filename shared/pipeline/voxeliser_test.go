package pipeline

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/0-zen/ObjToSchematic/shared/mesh"
	"github.com/0-zen/ObjToSchematic/shared/util"
	"github.com/0-zen/ObjToSchematic/shared/voxel"
)

// flatSquare monta uma malha com dois triângulos formando um quadrado
// no plano XZ, com um material sólido.
func flatSquare(colour util.RGBA) *mesh.TriMesh {
	return &mesh.TriMesh{
		Triangles: []mesh.Triangle{
			{
				V0: mgl32.Vec3{-1, 0, -1}, V1: mgl32.Vec3{1, 0, -1}, V2: mgl32.Vec3{1, 0, 1},
				Material: "solid",
			},
			{
				V0: mgl32.Vec3{-1, 0, -1}, V1: mgl32.Vec3{1, 0, 1}, V2: mgl32.Vec3{-1, 0, 1},
				Material: "solid",
			},
		},
		Materials: map[string]mesh.Material{
			"solid": mesh.NewSolidMaterial(colour, false),
		},
	}
}

func TestVoxeliseFlatSquare(t *testing.T) {
	colour := util.NewRGBA(0.8, 0.2, 0.1, 1.0)
	tm := flatSquare(colour)

	v := NewVoxeliser(VoxeliseParams{
		TargetSize: 8,
		Rule:       voxel.OverlapFirst,
		Threads:    1,
	}, tm.Materials)

	vm, err := v.Voxelise(context.Background(), tm)
	if err != nil {
		t.Fatalf("Voxelise: %v", err)
	}
	if vm.VoxelCount() == 0 {
		t.Fatal("quadrado plano não gerou voxel nenhum")
	}

	b, ok := vm.Bounds()
	if !ok {
		t.Fatal("malha voxelizada sem bounds")
	}
	dims := b.Dimensions()
	// O quadrado tem 2 de lado nos eixos X e Z; o maior eixo vira 8 voxels
	// (mais a borda da rasterização por centro de célula).
	if dims.X < 8 || dims.X > 9 || dims.Z < 8 || dims.Z > 9 {
		t.Errorf("dimensões XZ = (%d, %d), esperava 8 ou 9", dims.X, dims.Z)
	}
	if dims.Y > 2 {
		t.Errorf("plano gerou %d camadas verticais, esperava no máximo 2", dims.Y)
	}

	// Material sólido: todos os voxels herdam a cor do material
	for _, pos := range vm.Positions() {
		vox, _ := vm.VoxelAt(pos)
		if vox.Colour != colour {
			t.Fatalf("voxel %v com cor %v, esperava %v", pos, vox.Colour, colour)
		}
	}
}

func TestVoxeliseDeterministicAcrossThreads(t *testing.T) {
	tm := flatSquare(util.NewRGBA(0.5, 0.5, 0.5, 1.0))

	run := func(threads int) *voxel.Mesh {
		v := NewVoxeliser(VoxeliseParams{
			TargetSize: 16,
			Rule:       voxel.OverlapFirst,
			Threads:    threads,
		}, tm.Materials)
		vm, err := v.Voxelise(context.Background(), tm)
		if err != nil {
			t.Fatalf("Voxelise com %d threads: %v", threads, err)
		}
		return vm
	}

	serial := run(1)
	parallel := run(4)

	if serial.VoxelCount() != parallel.VoxelCount() {
		t.Fatalf("contagens divergem: %d serial, %d paralelo",
			serial.VoxelCount(), parallel.VoxelCount())
	}
	for _, pos := range serial.Positions() {
		a, _ := serial.VoxelAt(pos)
		b, ok := parallel.VoxelAt(pos)
		if !ok {
			t.Fatalf("voxel %v só existe na execução serial", pos)
		}
		if a.Colour != b.Colour {
			t.Fatalf("voxel %v com cores divergentes: %v vs %v", pos, a.Colour, b.Colour)
		}
	}
}

func TestVoxeliseRejectsEmptyMesh(t *testing.T) {
	tm := &mesh.TriMesh{Materials: map[string]mesh.Material{}}
	v := NewVoxeliser(VoxeliseParams{TargetSize: 8}, tm.Materials)
	if _, err := v.Voxelise(context.Background(), tm); err == nil {
		t.Fatal("malha vazia deveria falhar")
	}
}

func TestVoxeliseRejectsInvalidTargetSize(t *testing.T) {
	tm := flatSquare(util.NewRGBA(1, 1, 1, 1))
	v := NewVoxeliser(VoxeliseParams{TargetSize: 0}, tm.Materials)
	if _, err := v.Voxelise(context.Background(), tm); err == nil {
		t.Fatal("tamanho alvo zero deveria falhar")
	}
}

func TestClosestBarycentricClampsToTriangle(t *testing.T) {
	a := mgl32.Vec3{0, 0, 0}
	b := mgl32.Vec3{1, 0, 0}
	c := mgl32.Vec3{0, 1, 0}

	tests := []struct {
		name   string
		p      mgl32.Vec3
		u, w   float32
	}{
		{"ponto no vértice A", mgl32.Vec3{0, 0, 0}, 0, 0},
		{"ponto no vértice B", mgl32.Vec3{1, 0, 0}, 1, 0},
		{"ponto no vértice C", mgl32.Vec3{0, 1, 0}, 0, 1},
		{"ponto além de A", mgl32.Vec3{-5, -5, 0}, 0, 0},
		{"ponto além de B", mgl32.Vec3{5, -1, 0}, 1, 0},
		{"ponto sobre o interior", mgl32.Vec3{0.25, 0.25, 3}, 0.25, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, w := closestBarycentric(tt.p, a, b, c)
			const eps = 1e-5
			if absf(u-tt.u) > eps || absf(w-tt.w) > eps {
				t.Errorf("closestBarycentric = (%v, %v), esperava (%v, %v)", u, w, tt.u, tt.w)
			}
		})
	}
}
