package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Triangle é um triângulo do modelo importado, já resolvido:
// posições, UVs e o nome do material a que pertence.
type Triangle struct {
	V0, V1, V2    mgl32.Vec3
	UV0, UV1, UV2 mgl32.Vec2
	Material      string
}

// Normal calcula a normal geométrica do triângulo.
func (t Triangle) Normal() mgl32.Vec3 {
	n := t.V1.Sub(t.V0).Cross(t.V2.Sub(t.V0))
	if n.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}

// TriMesh é a malha de triângulos importada, agrupada por material.
type TriMesh struct {
	Triangles []Triangle
	Materials map[string]Material
}

// Bounds retorna a caixa envolvente da malha no espaço do modelo.
func (m *TriMesh) Bounds() (min, max mgl32.Vec3) {
	if len(m.Triangles) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	min = m.Triangles[0].V0
	max = m.Triangles[0].V0
	extend := func(v mgl32.Vec3) {
		for i := 0; i < 3; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	for _, t := range m.Triangles {
		extend(t.V0)
		extend(t.V1)
		extend(t.V2)
	}
	return min, max
}

// TriangleCount retorna o número de triângulos da malha.
func (m *TriMesh) TriangleCount() int {
	return len(m.Triangles)
}

// MaterialGeometry associa um nome de material, seu descritor e a
// geometria serializada pronta para upload.
type MaterialGeometry struct {
	Name     string
	Material Material
	Geometry GeometryData
}

// BuildTriangleBuffers serializa a malha em um buffer de geometria por
// material, no formato que o renderer consome de uma vez (caminho não
// fatiado: assume que o modelo inteiro cabe em um upload).
func (m *TriMesh) BuildTriangleBuffers() []MaterialGeometry {
	buffers := make(map[string]*MeshBuffer)
	order := make([]string, 0, len(m.Materials))

	getBuffer := func(name string) *MeshBuffer {
		if buf, ok := buffers[name]; ok {
			return buf
		}
		buf := GetMeshBuffer()
		buffers[name] = buf
		order = append(order, name)
		return buf
	}

	for _, tri := range m.Triangles {
		n := tri.Normal()
		mat := m.Materials[tri.Material]
		c := mat.Colour.Bytes()
		if mat.Kind == MaterialTextured {
			c = [4]uint8{255, 255, 255, 255}
		}
		getBuffer(tri.Material).AddTriangleUV(
			[3]float32{tri.V0.X(), tri.V0.Y(), tri.V0.Z()},
			[3]float32{tri.V1.X(), tri.V1.Y(), tri.V1.Z()},
			[3]float32{tri.V2.X(), tri.V2.Y(), tri.V2.Z()},
			[2]float32{tri.UV0.X(), tri.UV0.Y()},
			[2]float32{tri.UV1.X(), tri.UV1.Y()},
			[2]float32{tri.UV2.X(), tri.UV2.Y()},
			[3]float32{n.X(), n.Y(), n.Z()},
			c,
		)
	}

	result := make([]MaterialGeometry, 0, len(order))
	for _, name := range order {
		buf := buffers[name]
		result = append(result, MaterialGeometry{
			Name:     name,
			Material: m.Materials[name],
			Geometry: buf.Geometry.Clone(),
		})
		PutMeshBuffer(buf)
	}
	return result
}
