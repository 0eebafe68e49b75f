package render

/*
#include <stdlib.h>
*/
import "C"

import (
	"log"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/0-zen/ObjToSchematic/shared/mesh"
)

// gpuModel guarda um modelo enviado à GPU junto com a contagem de
// vértices do lado da CPU. A contagem permite inspecionar o estado do
// renderizador em testes sem janela, onde nenhum upload acontece.
type gpuModel struct {
	model       rl.Model
	uploaded    bool
	vertexCount int
}

// uploadGeometry converte um GeometryData em um modelo Raylib. Fora de
// uma janela ativa só a contagem de vértices é preenchida.
func uploadGeometry(data mesh.GeometryData) gpuModel {
	g := gpuModel{vertexCount: data.VertexCount()}
	if !rl.IsWindowReady() || g.vertexCount == 0 {
		return g
	}

	m := geometryToMesh(data)
	rl.UploadMesh(&m, false)
	g.model = rl.LoadModelFromMesh(m)
	g.uploaded = true
	return g
}

func (g *gpuModel) unload() {
	if g.uploaded {
		rl.UnloadModel(g.model)
		g.uploaded = false
	}
}

// geometryToMesh copia os buffers Go para memória C, como o Raylib
// exige para poder liberar a malha depois.
func geometryToMesh(data mesh.GeometryData) rl.Mesh {
	var m rl.Mesh
	vCount := int32(data.VertexCount())
	m.VertexCount = vCount
	m.TriangleCount = vCount / 3

	if len(data.Vertices) > 0 {
		m.Vertices = (*float32)(copyToC(unsafe.Pointer(&data.Vertices[0]), len(data.Vertices)*4))
	}
	if len(data.Normals) > 0 {
		m.Normals = (*float32)(copyToC(unsafe.Pointer(&data.Normals[0]), len(data.Normals)*4))
	}
	if len(data.Colors) > 0 {
		m.Colors = (*uint8)(copyToC(unsafe.Pointer(&data.Colors[0]), len(data.Colors)))
	}
	if len(data.UVs) > 0 {
		m.Texcoords = (*float32)(copyToC(unsafe.Pointer(&data.UVs[0]), len(data.UVs)*4))
	}
	return m
}

func copyToC(data unsafe.Pointer, size int) unsafe.Pointer {
	if size <= 0 || data == nil {
		return nil
	}
	ptr := C.malloc(C.size_t(size))
	if ptr == nil {
		return nil
	}
	cSlice := unsafe.Slice((*byte)(ptr), size)
	goSlice := unsafe.Slice((*byte)(data), size)
	copy(cSlice, goSlice)
	return ptr
}

// unsafeMaterials expõe o array C de materiais de um modelo Raylib.
func unsafeMaterials(model *rl.Model) []rl.Material {
	return unsafe.Slice(model.Materials, model.MaterialCount)
}

// loadTexture carrega uma textura do disco aplicando o filtro e o modo
// de extensão do material.
func loadTexture(path string, filtering mesh.TextureFiltering, wrap mesh.TextureWrap) (rl.Texture2D, bool) {
	if !rl.IsWindowReady() {
		return rl.Texture2D{}, false
	}

	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		log.Printf("[Renderer] Falha ao carregar textura: %s", path)
		return rl.Texture2D{}, false
	}

	if filtering == mesh.FilterLinear {
		rl.SetTextureFilter(tex, rl.FilterBilinear)
	} else {
		rl.SetTextureFilter(tex, rl.FilterPoint)
	}
	if wrap == mesh.WrapRepeat {
		rl.SetTextureWrap(tex, rl.WrapRepeat)
	} else {
		rl.SetTextureWrap(tex, rl.WrapClamp)
	}
	return tex, true
}
