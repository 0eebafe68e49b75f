package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/0-zen/ObjToSchematic/shared/mesh"
)

// MaterialBuffer amarra a geometria de um material da malha de
// triângulos ao seu estado de GPU. A geometria sobrevive a trocas de
// material: RecreateMaterialBuffer substitui só os metadados e as
// texturas, nunca os vértices.
type MaterialBuffer struct {
	Name     string
	Material mesh.Material

	model gpuModel

	texture     rl.Texture2D
	hasTexture  bool
	alphaTex    rl.Texture2D
	hasAlphaTex bool
}

func newMaterialBuffer(name string, mg mesh.MaterialGeometry) *MaterialBuffer {
	b := &MaterialBuffer{
		Name:  name,
		model: uploadGeometry(mg.Geometry),
	}
	b.setMaterial(mg.Material)
	return b
}

// setMaterial troca o material e recarrega as texturas necessárias.
func (b *MaterialBuffer) setMaterial(mat mesh.Material) {
	b.releaseTextures()
	b.Material = mat

	if mat.Kind != mesh.MaterialTextured {
		return
	}
	b.texture, b.hasTexture = loadTexture(mat.Path, mat.Interpolation, mat.Extension)
	if mat.AlphaPath != "" {
		b.alphaTex, b.hasAlphaTex = loadTexture(mat.AlphaPath, mat.Interpolation, mat.Extension)
	}
}

func (b *MaterialBuffer) releaseTextures() {
	if b.hasTexture {
		rl.UnloadTexture(b.texture)
		b.hasTexture = false
	}
	if b.hasAlphaTex {
		rl.UnloadTexture(b.alphaTex)
		b.hasAlphaTex = false
	}
}

func (b *MaterialBuffer) unload() {
	b.releaseTextures()
	b.model.unload()
}

// VertexCount devolve o número de vértices da geometria deste material.
func (b *MaterialBuffer) VertexCount() int {
	return b.model.vertexCount
}
