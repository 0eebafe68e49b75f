package util

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Vector3 é um alias para rl.Vector3 para conveniência
type Vector3 = rl.Vector3

// Vector3i representa uma coordenada inteira no espaço de voxels.
// X = leste/oeste, Y = vertical, Z = norte/sul
type Vector3i struct {
	X, Y, Z int32
}

// NewVector3i cria uma nova coordenada de voxel.
func NewVector3i(x, y, z int32) Vector3i {
	return Vector3i{X: x, Y: y, Z: z}
}

// Add soma duas coordenadas.
func (v Vector3i) Add(other Vector3i) Vector3i {
	return Vector3i{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub subtrai duas coordenadas.
func (v Vector3i) Sub(other Vector3i) Vector3i {
	return Vector3i{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Scale multiplica cada componente por um fator.
func (v Vector3i) Scale(f int32) Vector3i {
	return Vector3i{
		X: v.X * f,
		Y: v.Y * f,
		Z: v.Z * f,
	}
}

// Equals verifica igualdade entre coordenadas.
func (v Vector3i) Equals(other Vector3i) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// String retorna a representação em string da coordenada.
func (v Vector3i) String() string {
	return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z)
}

// VoxelToWorldPos converte uma coordenada de voxel para o canto do cubo no mundo 3D.
func VoxelToWorldPos(v Vector3i, voxelSize float32) rl.Vector3 {
	return rl.Vector3{
		X: float32(v.X) * voxelSize,
		Y: float32(v.Y) * voxelSize,
		Z: float32(v.Z) * voxelSize,
	}
}

// VoxelToWorldCenter converte para o centro do cubo no mundo 3D.
func VoxelToWorldCenter(v Vector3i, voxelSize float32) rl.Vector3 {
	pos := VoxelToWorldPos(v, voxelSize)
	pos.X += voxelSize * 0.5
	pos.Y += voxelSize * 0.5
	pos.Z += voxelSize * 0.5
	return pos
}

// WorldToVoxel converte uma posição 3D de volta para a coordenada do voxel que a contém.
func WorldToVoxel(pos rl.Vector3, voxelSize float32) Vector3i {
	return Vector3i{
		X: int32(math.Floor(float64(pos.X / voxelSize))),
		Y: int32(math.Floor(float64(pos.Y / voxelSize))),
		Z: int32(math.Floor(float64(pos.Z / voxelSize))),
	}
}

// Bounds é uma caixa alinhada aos eixos em coordenadas de voxel (inclusiva).
type Bounds struct {
	Min, Max Vector3i
}

// NewBounds cria uma caixa degenerada contendo apenas um ponto.
func NewBounds(p Vector3i) Bounds {
	return Bounds{Min: p, Max: p}
}

// Extend expande a caixa para conter o ponto informado.
func (b Bounds) Extend(p Vector3i) Bounds {
	return Bounds{
		Min: Vector3i{X: Min(b.Min.X, p.X), Y: Min(b.Min.Y, p.Y), Z: Min(b.Min.Z, p.Z)},
		Max: Vector3i{X: Max(b.Max.X, p.X), Y: Max(b.Max.Y, p.Y), Z: Max(b.Max.Z, p.Z)},
	}
}

// Dimensions retorna o tamanho da caixa em voxels por eixo.
func (b Bounds) Dimensions() Vector3i {
	return Vector3i{
		X: b.Max.X - b.Min.X + 1,
		Y: b.Max.Y - b.Min.Y + 1,
		Z: b.Max.Z - b.Min.Z + 1,
	}
}

// FaceDir identifica as 6 faces de um voxel.
type FaceDir int

const (
	FaceUp FaceDir = iota
	FaceDown
	FaceNorth
	FaceSouth
	FaceEast
	FaceWest
	FaceCount
)

// FaceOffsets mapeia faces para offsets de coordenada.
// Y é o eixo vertical (convenção do Raylib), Z cresce para o sul.
var FaceOffsets = [FaceCount]Vector3i{
	FaceUp:    {X: 0, Y: 1, Z: 0},
	FaceDown:  {X: 0, Y: -1, Z: 0},
	FaceNorth: {X: 0, Y: 0, Z: -1},
	FaceSouth: {X: 0, Y: 0, Z: 1},
	FaceEast:  {X: 1, Y: 0, Z: 0},
	FaceWest:  {X: -1, Y: 0, Z: 0},
}

// NeighbourOffsets lista os 26 offsets vizinhos de um voxel:
// o cubo unitário completo menos o vetor zero.
var NeighbourOffsets = buildNeighbourOffsets()

func buildNeighbourOffsets() [26]Vector3i {
	var offsets [26]Vector3i
	i := 0
	for x := int32(-1); x <= 1; x++ {
		for y := int32(-1); y <= 1; y++ {
			for z := int32(-1); z <= 1; z++ {
				if x == 0 && y == 0 && z == 0 {
					continue
				}
				offsets[i] = Vector3i{X: x, Y: y, Z: z}
				i++
			}
		}
	}
	return offsets
}

// NeighbourIndex retorna o índice (0-25) de um offset vizinho, ou -1 se o
// offset não pertencer ao cubo unitário.
func NeighbourIndex(offset Vector3i) int {
	if offset.X < -1 || offset.X > 1 || offset.Y < -1 || offset.Y > 1 || offset.Z < -1 || offset.Z > 1 {
		return -1
	}
	idx := int(offset.X+1)*9 + int(offset.Y+1)*3 + int(offset.Z+1)
	if idx == 13 {
		return -1 // vetor zero não é vizinho
	}
	if idx > 13 {
		idx--
	}
	return idx
}

// AddFace retorna uma nova coordenada deslocada na direção da face.
func (v Vector3i) AddFace(dir FaceDir) Vector3i {
	return v.Add(FaceOffsets[dir])
}

// Helpers para direções rápidas
func (v Vector3i) Up() Vector3i    { return v.AddFace(FaceUp) }
func (v Vector3i) Down() Vector3i  { return v.AddFace(FaceDown) }
func (v Vector3i) North() Vector3i { return v.AddFace(FaceNorth) }
func (v Vector3i) South() Vector3i { return v.AddFace(FaceSouth) }
func (v Vector3i) East() Vector3i  { return v.AddFace(FaceEast) }
func (v Vector3i) West() Vector3i  { return v.AddFace(FaceWest) }
