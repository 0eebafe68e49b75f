package pipeline

import (
	"testing"

	"github.com/0-zen/ObjToSchematic/shared/blocks"
	"github.com/0-zen/ObjToSchematic/shared/util"
	"github.com/0-zen/ObjToSchematic/shared/voxel"
)

func TestVertexAO(t *testing.T) {
	tests := []struct {
		side1, side2, corner bool
		want                 float32
	}{
		{false, false, false, 1.0},
		{true, false, false, 0.95},
		{false, true, false, 0.95},
		{false, false, true, 0.95},
		{true, false, true, 0.90},
		{false, true, true, 0.90},
		{true, true, false, 0.8},
		{true, true, true, 0.8},
	}

	for _, tt := range tests {
		got := vertexAO(tt.side1, tt.side2, tt.corner)
		if got != tt.want {
			t.Errorf("vertexAO(%v, %v, %v) = %v, esperava %v",
				tt.side1, tt.side2, tt.corner, got, tt.want)
		}
	}
}

func TestVoxelBuffererSingleVoxel(t *testing.T) {
	vm := voxel.NewMesh(voxel.OverlapFirst, false)
	vm.AddVoxel(util.Vector3i{}, util.NewRGBA(1, 0, 0, 1))

	b := NewVoxelBufferer(vm, 1.0, 0)
	chunk, ok := b.NextChunk()
	if !ok {
		t.Fatal("NextChunk sem chunk")
	}
	if !chunk.IsFirstChunk || chunk.MoreVoxelsToBuffer {
		t.Fatalf("flags = (%v, %v), esperava (true, false)",
			chunk.IsFirstChunk, chunk.MoreVoxelsToBuffer)
	}

	// Voxel isolado: 6 faces, 2 triângulos cada, 3 vértices por triângulo
	if got := chunk.Geometry.VertexCount(); got != 36 {
		t.Errorf("VertexCount = %d, esperava 36", got)
	}
	if chunk.Dimensions != (util.Vector3i{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Dimensions = %v, esperava (1, 1, 1)", chunk.Dimensions)
	}

	if b.HasMore() {
		t.Error("HasMore após o último chunk")
	}
	if _, ok := b.NextChunk(); ok {
		t.Error("NextChunk após esgotar os voxels")
	}
}

func TestVoxelBuffererSplitsChunks(t *testing.T) {
	vm := voxel.NewMesh(voxel.OverlapFirst, false)
	for i := int32(0); i < 5; i++ {
		vm.AddVoxel(util.Vector3i{X: i * 2}, util.NewRGBA(1, 1, 1, 1))
	}

	b := NewVoxelBufferer(vm, 1.0, 2)

	var flags []struct{ first, more bool }
	for {
		chunk, ok := b.NextChunk()
		if !ok {
			break
		}
		flags = append(flags, struct{ first, more bool }{chunk.IsFirstChunk, chunk.MoreVoxelsToBuffer})
	}

	want := []struct{ first, more bool }{
		{true, true},
		{false, true},
		{false, false},
	}
	if len(flags) != len(want) {
		t.Fatalf("%d chunks, esperava %d", len(flags), len(want))
	}
	for i := range want {
		if flags[i] != want[i] {
			t.Errorf("chunk %d: flags = %+v, esperava %+v", i, flags[i], want[i])
		}
	}
}

func TestVoxelBuffererCullsSharedFaces(t *testing.T) {
	vm := voxel.NewMesh(voxel.OverlapFirst, false)
	vm.AddVoxel(util.Vector3i{}, util.NewRGBA(1, 1, 1, 1))
	vm.AddVoxel(util.Vector3i{X: 1}, util.NewRGBA(1, 1, 1, 1))

	b := NewVoxelBufferer(vm, 1.0, 0)
	chunk, _ := b.NextChunk()

	// Dois voxels adjacentes: 5 faces visíveis cada, 6 vértices por face
	if got := chunk.Geometry.VertexCount(); got != 60 {
		t.Errorf("VertexCount = %d, esperava 60", got)
	}
}

func TestVoxelBuffererWritesAOToUV(t *testing.T) {
	// L de três voxels: o de cima ocluí os cantos vizinhos dos de baixo
	build := func(ao bool) *voxel.Mesh {
		vm := voxel.NewMesh(voxel.OverlapFirst, ao)
		vm.AddVoxel(util.Vector3i{X: 0, Y: 0, Z: 0}, util.NewRGBA(1, 1, 1, 1))
		vm.AddVoxel(util.Vector3i{X: 1, Y: 0, Z: 0}, util.NewRGBA(1, 1, 1, 1))
		vm.AddVoxel(util.Vector3i{X: 1, Y: 1, Z: 0}, util.NewRGBA(1, 1, 1, 1))
		return vm
	}

	uvFactors := func(vm *voxel.Mesh) map[float32]bool {
		b := NewVoxelBufferer(vm, 1.0, 0)
		chunk, _ := b.NextChunk()
		seen := make(map[float32]bool)
		for i := 0; i+1 < len(chunk.Geometry.UVs); i += 2 {
			seen[chunk.Geometry.UVs[i]] = true
		}
		return seen
	}

	withAO := uvFactors(build(true))
	if !withAO[0.95] {
		t.Error("nenhum canto ocluído recebeu fator 0.95 no eixo U")
	}
	if !withAO[1.0] {
		t.Error("cantos livres deveriam manter fator 1.0")
	}

	withoutAO := uvFactors(build(false))
	for factor := range withoutAO {
		if factor != 1.0 {
			t.Errorf("com AO desligado apareceu fator %v, esperava só 1.0", factor)
		}
	}
}

func TestBlockBuffererUsesAtlasAndShade(t *testing.T) {
	vm := voxel.NewMesh(voxel.OverlapFirst, true)
	vm.AddVoxel(util.Vector3i{X: 0, Y: 0, Z: 0}, util.NewRGBA(0.5, 0.5, 0.5, 1))
	vm.AddVoxel(util.Vector3i{X: 1, Y: 0, Z: 0}, util.NewRGBA(0.5, 0.5, 0.5, 1))
	vm.AddVoxel(util.Vector3i{X: 1, Y: 1, Z: 0}, util.NewRGBA(0.5, 0.5, 0.5, 1))

	palette, err := blocks.NewPalette([]blocks.Block{
		{Name: "minecraft:stone", Colour: util.NewRGBA(0.5, 0.5, 0.5, 1)},
	})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}

	bm, err := AssignBlocks(vm, palette)
	if err != nil {
		t.Fatalf("AssignBlocks: %v", err)
	}

	atlas, err := blocks.NewGridAtlas("atlas.png", 8, palette.Names())
	if err != nil {
		t.Fatalf("NewGridAtlas: %v", err)
	}

	b := NewBlockBufferer(bm, atlas, 1.0, 0)
	chunk, ok := b.NextChunk()
	if !ok {
		t.Fatal("NextChunk sem chunk")
	}

	if chunk.AtlasTexturePath != "atlas.png" {
		t.Errorf("AtlasTexturePath = %q", chunk.AtlasTexturePath)
	}
	if chunk.AtlasSize != 128 {
		t.Errorf("AtlasSize = %v, esperava 128 (8 células de 16px)", chunk.AtlasSize)
	}

	// As UVs vêm do atlas, então o AO vai na cor do vértice
	shades := make(map[uint8]bool)
	for i := 0; i+3 < len(chunk.Geometry.Colors); i += 4 {
		shades[chunk.Geometry.Colors[i]] = true
	}
	if !shades[255] {
		t.Error("cantos livres deveriam manter sombra 255")
	}
	if !shades[242] {
		t.Error("cantos ocluídos deveriam escurecer para 242")
	}
}
