package mesh

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/0-zen/ObjToSchematic/shared/util"
)

// LoadGLTF lê um arquivo glTF/GLB e devolve a malha de triângulos.
// Transformações de nós são ignoradas: o modelo é importado no espaço
// local das primitivas, igual ao caminho OBJ.
func LoadGLTF(path string) (*TriMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir glTF: %w", err)
	}

	result := &TriMesh{
		Materials: map[string]Material{
			DefaultMaterialName: NewSolidMaterial(util.NewRGBA(0.8, 0.8, 0.8, 1.0), false),
		},
	}

	// Materiais primeiro, para que as primitivas possam referenciá-los.
	matNames := make([]string, len(doc.Materials))
	for i, gm := range doc.Materials {
		name := gm.Name
		if name == "" {
			name = fmt.Sprintf("material_%d", i)
		}
		matNames[i] = name
		result.Materials[name] = convertGLTFMaterial(doc, gm, filepath.Dir(path))
	}

	for _, gmesh := range doc.Meshes {
		for _, prim := range gmesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}

			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("falha ao ler posições: %w", err)
			}

			var texcoords [][2]float32
			if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
				texcoords, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
				if err != nil {
					return nil, fmt.Errorf("falha ao ler UVs: %w", err)
				}
			}

			var indices []uint32
			if prim.Indices != nil {
				indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("falha ao ler índices: %w", err)
				}
			} else {
				indices = make([]uint32, len(positions))
				for i := range indices {
					indices[i] = uint32(i)
				}
			}

			matName := DefaultMaterialName
			if prim.Material != nil && int(*prim.Material) < len(matNames) {
				matName = matNames[*prim.Material]
			}

			for i := 0; i+2 < len(indices); i += 3 {
				a, b, c := indices[i], indices[i+1], indices[i+2]
				tri := Triangle{
					V0:       mgl32.Vec3(positions[a]),
					V1:       mgl32.Vec3(positions[b]),
					V2:       mgl32.Vec3(positions[c]),
					Material: matName,
				}
				if texcoords != nil {
					tri.UV0 = mgl32.Vec2(texcoords[a])
					tri.UV1 = mgl32.Vec2(texcoords[b])
					tri.UV2 = mgl32.Vec2(texcoords[c])
				}
				result.Triangles = append(result.Triangles, tri)
			}
		}
	}

	if len(result.Triangles) == 0 {
		return nil, fmt.Errorf("glTF sem primitivas de triângulos: %s", path)
	}

	log.Printf("[Importer] glTF carregado: %s (%d triângulos, %d materiais)",
		path, len(result.Triangles), len(result.Materials))
	return result, nil
}

func convertGLTFMaterial(doc *gltf.Document, gm *gltf.Material, baseDir string) Material {
	mat := NewSolidMaterial(util.NewRGBA(0.8, 0.8, 0.8, 1.0), false)

	pbr := gm.PBRMetallicRoughness
	if pbr == nil {
		return mat
	}

	if pbr.BaseColorFactor != nil {
		f := *pbr.BaseColorFactor
		mat.Colour = util.NewRGBA(float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3]))
	}

	if pbr.BaseColorTexture != nil {
		texIdx := int(pbr.BaseColorTexture.Index)
		if texIdx < len(doc.Textures) && doc.Textures[texIdx].Source != nil {
			imgIdx := int(*doc.Textures[texIdx].Source)
			if imgIdx < len(doc.Images) && doc.Images[imgIdx].URI != "" {
				mat.Kind = MaterialTextured
				mat.Path = filepath.Join(baseDir, doc.Images[imgIdx].URI)
				mat.Interpolation = FilterLinear
				mat.Extension = WrapRepeat
				mat.CanBeTextured = true
			}
		}
	}

	return mat
}

// LoadModel despacha para o leitor adequado pela extensão do arquivo.
func LoadModel(path string) (*TriMesh, error) {
	switch ext := filepath.Ext(path); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("formato de modelo não suportado: %q", ext)
	}
}
