package pipeline

import (
	"context"
	"fmt"
	"log"
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"

	"github.com/0-zen/ObjToSchematic/shared/mesh"
	"github.com/0-zen/ObjToSchematic/shared/util"
	"github.com/0-zen/ObjToSchematic/shared/voxel"
)

// VoxeliseParams controla a voxelização de uma malha de triângulos.
type VoxeliseParams struct {
	// TargetSize é o número de voxels ao longo do maior eixo do modelo.
	TargetSize int32
	// Rule decide o que fazer quando dois triângulos caem no mesmo voxel.
	Rule voxel.OverlapRule
	// AmbientOcclusion liga o registro de vizinhança no resultado.
	AmbientOcclusion bool
	// Threads limita os workers. Zero usa o número de CPUs.
	Threads int
}

// Voxeliser converte malhas de triângulos em malhas de voxels,
// rasterizando cada triângulo sobre a grade com teste de sobreposição
// triângulo-caixa e amostrando a cor do material no ponto mais próximo.
type Voxeliser struct {
	params   VoxeliseParams
	samplers map[string]*mesh.TextureSampler
}

// NewVoxeliser prepara um voxelizador, decodificando as texturas dos
// materiais texturizados uma única vez. Texturas que falham ao carregar
// degradam para a cor sólida do material.
func NewVoxeliser(params VoxeliseParams, materials map[string]mesh.Material) *Voxeliser {
	if params.Threads <= 0 {
		params.Threads = runtime.NumCPU()
	}

	samplers := make(map[string]*mesh.TextureSampler)
	for name, mat := range materials {
		if mat.Kind != mesh.MaterialTextured {
			continue
		}
		s, err := mesh.NewTextureSampler(mat)
		if err != nil {
			log.Printf("[Voxeliser] Textura de %q indisponível, usando cor sólida: %v", name, err)
			continue
		}
		samplers[name] = s
	}

	return &Voxeliser{params: params, samplers: samplers}
}

type voxelSample struct {
	pos    util.Vector3i
	colour util.RGBA
}

// Voxelise rasteriza a malha inteira. Os triângulos são divididos entre
// os workers em blocos contíguos e os resultados são aplicados em ordem
// de triângulo, para que a regra de sobreposição seja determinística.
func (v *Voxeliser) Voxelise(ctx context.Context, tm *mesh.TriMesh) (*voxel.Mesh, error) {
	if tm.TriangleCount() == 0 {
		return nil, fmt.Errorf("malha sem triângulos")
	}
	if v.params.TargetSize < 1 {
		return nil, fmt.Errorf("tamanho alvo inválido: %d", v.params.TargetSize)
	}

	min, max := tm.Bounds()
	extent := max.Sub(min)
	longest := extent.X()
	if extent.Y() > longest {
		longest = extent.Y()
	}
	if extent.Z() > longest {
		longest = extent.Z()
	}
	if longest <= 0 {
		return nil, fmt.Errorf("malha degenerada, sem extensão")
	}
	scale := float32(v.params.TargetSize) / longest
	centre := min.Add(max).Mul(0.5)

	workers := v.params.Threads
	if workers > len(tm.Triangles) {
		workers = len(tm.Triangles)
	}

	results := make([][]voxelSample, workers)
	group, gctx := errgroup.WithContext(ctx)
	chunk := (len(tm.Triangles) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		w := w
		lo := w * chunk
		hi := lo + chunk
		if hi > len(tm.Triangles) {
			hi = len(tm.Triangles)
		}
		group.Go(func() error {
			var local []voxelSample
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				local = v.rasterise(tm, tm.Triangles[i], centre, scale, local)
			}
			results[w] = local
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	out := voxel.NewMesh(v.params.Rule, v.params.AmbientOcclusion)
	for _, shard := range results {
		for _, s := range shard {
			out.AddVoxel(s.pos, s.colour)
		}
	}

	log.Printf("[Voxeliser] %d triângulos -> %d voxels (alvo %d)",
		tm.TriangleCount(), out.VoxelCount(), v.params.TargetSize)
	return out, nil
}

// rasterise acumula os voxels cobertos por um triângulo já trazido para
// o espaço da grade.
func (v *Voxeliser) rasterise(tm *mesh.TriMesh, tri mesh.Triangle, centre mgl32.Vec3, scale float32, acc []voxelSample) []voxelSample {
	v0 := tri.V0.Sub(centre).Mul(scale)
	v1 := tri.V1.Sub(centre).Mul(scale)
	v2 := tri.V2.Sub(centre).Mul(scale)

	lo := mgl32.Vec3{
		minf3(v0.X(), v1.X(), v2.X()),
		minf3(v0.Y(), v1.Y(), v2.Y()),
		minf3(v0.Z(), v1.Z(), v2.Z()),
	}
	hi := mgl32.Vec3{
		maxf3(v0.X(), v1.X(), v2.X()),
		maxf3(v0.Y(), v1.Y(), v2.Y()),
		maxf3(v0.Z(), v1.Z(), v2.Z()),
	}

	x0 := int32(math.Floor(float64(lo.X() + 0.5)))
	y0 := int32(math.Floor(float64(lo.Y() + 0.5)))
	z0 := int32(math.Floor(float64(lo.Z() + 0.5)))
	x1 := int32(math.Floor(float64(hi.X() + 0.5)))
	y1 := int32(math.Floor(float64(hi.Y() + 0.5)))
	z1 := int32(math.Floor(float64(hi.Z() + 0.5)))

	half := mgl32.Vec3{0.5, 0.5, 0.5}
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				c := mgl32.Vec3{float32(x), float32(y), float32(z)}
				if !triBoxOverlap(c, half, v0, v1, v2) {
					continue
				}
				acc = append(acc, voxelSample{
					pos:    util.Vector3i{X: x, Y: y, Z: z},
					colour: v.sampleColour(tm, tri, c, v0, v1, v2),
				})
			}
		}
	}
	return acc
}

// sampleColour amostra a cor do material no ponto do triângulo mais
// próximo do centro do voxel. Materiais sólidos devolvem a cor direta.
func (v *Voxeliser) sampleColour(tm *mesh.TriMesh, tri mesh.Triangle, p, v0, v1, v2 mgl32.Vec3) util.RGBA {
	mat := tm.Materials[tri.Material]
	sampler := v.samplers[tri.Material]
	if mat.Kind != mesh.MaterialTextured || sampler == nil {
		return mat.Colour
	}

	u, w := closestBarycentric(p, v0, v1, v2)
	uv := tri.UV0.Mul(1 - u - w).Add(tri.UV1.Mul(u)).Add(tri.UV2.Mul(w))
	return sampler.Sample(uv.X(), uv.Y())
}

// closestBarycentric devolve as coordenadas baricêntricas (pesos de V1
// e V2) do ponto do triângulo mais próximo de p, com clamp nas bordas.
func closestBarycentric(p, a, b, c mgl32.Vec3) (float32, float32) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return 0, 0
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return 1, 0
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		return d1 / (d1 - d3), 0
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return 0, 1
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		return 0, d2 / (d2 - d6)
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return 1 - w, w
	}

	denom := 1.0 / (va + vb + vc)
	return vb * denom, vc * denom
}

func minf3(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func maxf3(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
