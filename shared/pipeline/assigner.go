package pipeline

import (
	"fmt"
	"log"

	"github.com/0-zen/ObjToSchematic/shared/blocks"
	"github.com/0-zen/ObjToSchematic/shared/util"
	"github.com/0-zen/ObjToSchematic/shared/voxel"
)

// BlockMesh é o resultado da atribuição: a malha de voxels original
// mais o bloco da paleta escolhido para cada voxel, na mesma ordem de
// inserção de Positions.
type BlockMesh struct {
	Voxels  *voxel.Mesh
	Palette *blocks.Palette

	blocks map[util.Vector3i]blocks.Block
}

// BlockAt devolve o bloco atribuído ao voxel na posição dada.
func (m *BlockMesh) BlockAt(pos util.Vector3i) (blocks.Block, bool) {
	b, ok := m.blocks[pos]
	return b, ok
}

// Counts devolve quantos voxels receberam cada bloco.
func (m *BlockMesh) Counts() map[string]int {
	counts := make(map[string]int)
	for _, b := range m.blocks {
		counts[b.Name]++
	}
	return counts
}

// AssignBlocks escolhe, para cada voxel, o bloco da paleta com a cor
// média mais próxima da cor do voxel.
func AssignBlocks(vm *voxel.Mesh, palette *blocks.Palette) (*BlockMesh, error) {
	if vm.VoxelCount() == 0 {
		return nil, fmt.Errorf("malha de voxels vazia")
	}
	if palette == nil || palette.Len() == 0 {
		return nil, fmt.Errorf("paleta vazia")
	}

	out := &BlockMesh{
		Voxels:  vm,
		Palette: palette,
		blocks:  make(map[util.Vector3i]blocks.Block, vm.VoxelCount()),
	}

	for _, pos := range vm.Positions() {
		v, _ := vm.VoxelAt(pos)
		out.blocks[pos] = palette.NearestBlock(v.Colour)
	}

	log.Printf("[Assigner] %d voxels mapeados sobre %d blocos da paleta",
		vm.VoxelCount(), palette.Len())
	return out, nil
}
