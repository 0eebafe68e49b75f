package pipeline

import (
	"github.com/0-zen/ObjToSchematic/shared/blocks"
	"github.com/0-zen/ObjToSchematic/shared/mesh"
	"github.com/0-zen/ObjToSchematic/shared/util"
	"github.com/0-zen/ObjToSchematic/shared/voxel"
)

// DefaultVoxelsPerChunk limita quantos voxels entram em cada chunk de
// geometria. Mantém cada upload de GPU pequeno o bastante para não
// travar o frame.
const DefaultVoxelsPerChunk = 8192

// faceTangents dá, para cada face, os dois eixos tangentes ordenados de
// modo que A1 x A2 aponte para fora da face. A ordem fixa o winding dos
// quads como anti-horário visto de fora.
var faceTangents = [util.FaceCount][2]util.Vector3i{
	util.FaceUp:    {{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 0}},
	util.FaceDown:  {{X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}},
	util.FaceNorth: {{X: 0, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 0}},
	util.FaceSouth: {{X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
	util.FaceEast:  {{X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}},
	util.FaceWest:  {{X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 0}},
}

// cornerSigns percorre os 4 cantos de um quad na ordem do winding.
var cornerSigns = [4][2]int32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// vertexAO calcula o fator de oclusão de um canto a partir da ocupação
// dos dois vizinhos laterais e do diagonal. Dois lados ocupados fecham
// o canto por completo.
func vertexAO(side1, side2, corner bool) float32 {
	if side1 && side2 {
		return 0.8
	}
	occ := 0
	if side1 {
		occ++
	}
	if side2 {
		occ++
	}
	if corner {
		occ++
	}
	return 1.0 - 0.05*float32(occ)
}

// VoxelBufferer transforma uma malha de voxels em chunks de geometria,
// na ordem de inserção dos voxels. Caveiras de voxels totalmente
// cercados não geram face nenhuma.
type VoxelBufferer struct {
	vm        *voxel.Mesh
	positions []util.Vector3i
	cursor    int
	voxelSize float32
	perChunk  int
	dims      util.Vector3i
}

// NewVoxelBufferer prepara o bufferer. voxelSize é o tamanho de aresta
// de cada cubo no espaço do mundo.
func NewVoxelBufferer(vm *voxel.Mesh, voxelSize float32, voxelsPerChunk int) *VoxelBufferer {
	if voxelsPerChunk <= 0 {
		voxelsPerChunk = DefaultVoxelsPerChunk
	}
	var dims util.Vector3i
	if b, ok := vm.Bounds(); ok {
		dims = b.Dimensions()
	}
	return &VoxelBufferer{
		vm:        vm,
		positions: vm.Positions(),
		voxelSize: voxelSize,
		perChunk:  voxelsPerChunk,
		dims:      dims,
	}
}

// HasMore informa se ainda há voxels por transformar em geometria.
func (b *VoxelBufferer) HasMore() bool {
	return b.cursor < len(b.positions)
}

// NextChunk gera o próximo chunk de geometria. O fator de AO de cada
// canto vai no eixo U da coordenada de textura, para que o shader possa
// ligar e desligar o sombreamento sem reconstruir os buffers.
func (b *VoxelBufferer) NextChunk() (mesh.VoxelMeshChunk, bool) {
	if !b.HasMore() {
		return mesh.VoxelMeshChunk{}, false
	}

	first := b.cursor == 0
	end := b.cursor + b.perChunk
	if end > len(b.positions) {
		end = len(b.positions)
	}

	buf := mesh.GetMeshBuffer()
	defer mesh.PutMeshBuffer(buf)

	for ; b.cursor < end; b.cursor++ {
		pos := b.positions[b.cursor]
		vox, _ := b.vm.VoxelAt(pos)
		b.emitVoxel(buf, pos, vox)
	}

	return mesh.VoxelMeshChunk{
		Geometry:           buf.Geometry.Clone(),
		IsFirstChunk:       first,
		MoreVoxelsToBuffer: b.HasMore(),
		VoxelSize:          b.voxelSize,
		Dimensions:         b.dims,
	}, true
}

func (b *VoxelBufferer) emitVoxel(buf *mesh.MeshBuffer, pos util.Vector3i, vox voxel.Voxel) {
	neighbours := b.vm.Neighbours(pos)
	colour := vox.Colour.Bytes()
	half := b.voxelSize * 0.5
	cx := float32(pos.X) * b.voxelSize
	cy := float32(pos.Y) * b.voxelSize
	cz := float32(pos.Z) * b.voxelSize

	for face := util.FaceDir(0); face < util.FaceCount; face++ {
		n := util.FaceOffsets[face]
		if neighbours.Has(n) {
			continue
		}

		a1 := faceTangents[face][0]
		a2 := faceTangents[face][1]

		var verts [4][3]float32
		var uvs [4][2]float32
		for i, s := range cornerSigns {
			off := n.Add(a1.Scale(s[0])).Add(a2.Scale(s[1]))
			verts[i] = [3]float32{
				cx + float32(off.X)*half,
				cy + float32(off.Y)*half,
				cz + float32(off.Z)*half,
			}

			ao := float32(1.0)
			if b.vm.AmbientOcclusionEnabled() {
				side1 := neighbours.Has(n.Add(a1.Scale(s[0])))
				side2 := neighbours.Has(n.Add(a2.Scale(s[1])))
				corner := neighbours.Has(off)
				ao = vertexAO(side1, side2, corner)
			}
			uvs[i] = [2]float32{ao, 0}
		}

		normal := [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
		buf.AddFaceUV(verts[0], verts[1], verts[2], verts[3],
			uvs[0], uvs[1], uvs[2], uvs[3], normal, colour)
	}
}

// BlockBufferer gera os chunks da representação final em blocos. As
// UVs vêm do atlas, por face de bloco; o AO vai multiplicado na cor do
// vértice, já que o canal de UV está ocupado pelo atlas.
type BlockBufferer struct {
	bm        *BlockMesh
	atlas     *blocks.Atlas
	positions []util.Vector3i
	cursor    int
	voxelSize float32
	perChunk  int
}

// NewBlockBufferer prepara o bufferer de blocos.
func NewBlockBufferer(bm *BlockMesh, atlas *blocks.Atlas, voxelSize float32, voxelsPerChunk int) *BlockBufferer {
	if voxelsPerChunk <= 0 {
		voxelsPerChunk = DefaultVoxelsPerChunk
	}
	return &BlockBufferer{
		bm:        bm,
		atlas:     atlas,
		positions: bm.Voxels.Positions(),
		voxelSize: voxelSize,
		perChunk:  voxelsPerChunk,
	}
}

// HasMore informa se ainda há blocos por transformar em geometria.
func (b *BlockBufferer) HasMore() bool {
	return b.cursor < len(b.positions)
}

// NextChunk gera o próximo chunk de geometria de blocos.
func (b *BlockBufferer) NextChunk() (mesh.BlockMeshChunk, bool) {
	if !b.HasMore() {
		return mesh.BlockMeshChunk{}, false
	}

	first := b.cursor == 0
	end := b.cursor + b.perChunk
	if end > len(b.positions) {
		end = len(b.positions)
	}

	buf := mesh.GetMeshBuffer()
	defer mesh.PutMeshBuffer(buf)

	for ; b.cursor < end; b.cursor++ {
		pos := b.positions[b.cursor]
		block, _ := b.bm.BlockAt(pos)
		b.emitBlock(buf, pos, block)
	}

	return mesh.BlockMeshChunk{
		Geometry:         buf.Geometry.Clone(),
		IsFirstChunk:     first,
		AtlasTexturePath: b.atlas.TexturePath,
		AtlasSize:        float32(b.atlas.Size),
	}, true
}

func (b *BlockBufferer) emitBlock(buf *mesh.MeshBuffer, pos util.Vector3i, block blocks.Block) {
	vm := b.bm.Voxels
	neighbours := vm.Neighbours(pos)
	half := b.voxelSize * 0.5
	cx := float32(pos.X) * b.voxelSize
	cy := float32(pos.Y) * b.voxelSize
	cz := float32(pos.Z) * b.voxelSize

	for face := util.FaceDir(0); face < util.FaceCount; face++ {
		n := util.FaceOffsets[face]
		if neighbours.Has(n) {
			continue
		}

		a1 := faceTangents[face][0]
		a2 := faceTangents[face][1]
		rect := b.atlas.FaceUV(block.Name, face)

		var verts [4][3]float32
		var uvs [4][2]float32
		var cols [4][4]uint8
		for i, s := range cornerSigns {
			off := n.Add(a1.Scale(s[0])).Add(a2.Scale(s[1]))
			verts[i] = [3]float32{
				cx + float32(off.X)*half,
				cy + float32(off.Y)*half,
				cz + float32(off.Z)*half,
			}

			u := rect.MinU
			if s[0] > 0 {
				u = rect.MaxU
			}
			v := rect.MaxV
			if s[1] > 0 {
				v = rect.MinV
			}
			uvs[i] = [2]float32{u, v}

			ao := float32(1.0)
			if vm.AmbientOcclusionEnabled() {
				side1 := neighbours.Has(n.Add(a1.Scale(s[0])))
				side2 := neighbours.Has(n.Add(a2.Scale(s[1])))
				corner := neighbours.Has(off)
				ao = vertexAO(side1, side2, corner)
			}
			shade := uint8(255 * ao)
			cols[i] = [4]uint8{shade, shade, shade, 255}
		}

		normal := [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
		buf.AddFaceShaded(verts[0], verts[1], verts[2], verts[3],
			uvs[0], uvs[1], uvs[2], uvs[3], normal,
			cols[0], cols[1], cols[2], cols[3])
	}
}
