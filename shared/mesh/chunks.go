package mesh

import "github.com/0-zen/ObjToSchematic/shared/util"

// VoxelMeshChunk é uma fatia serializada de um voxel mesh, entregue ao
// renderer de forma incremental para suportar modelos grandes sem travar
// o loop de desenho.
type VoxelMeshChunk struct {
	Geometry GeometryData

	// IsFirstChunk indica que o renderer deve descartar os buffers de voxel
	// anteriores e reconstruir as grades de referência.
	IsFirstChunk bool

	// MoreVoxelsToBuffer indica que ainda há fatias por chegar; enquanto for
	// true o sombreamento de AO fica desabilitado no shader.
	MoreVoxelsToBuffer bool

	VoxelSize  float32
	Dimensions util.Vector3i
}

// BlockMeshChunk é o equivalente do VoxelMeshChunk para a representação
// em blocos, com os metadados do atlas de texturas no primeiro chunk.
type BlockMeshChunk struct {
	Geometry GeometryData

	IsFirstChunk bool

	AtlasTexturePath string
	AtlasSize        float32
}
