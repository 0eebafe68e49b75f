package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/0-zen/ObjToSchematic/shared/util"
)

// gridAxis identifica o eixo perpendicular a um plano de grade.
type gridAxis int

const (
	gridAxisX gridAxis = iota
	gridAxisY
	gridAxisZ
	gridAxisCount
)

type lineSeg struct {
	a, b rl.Vector3
}

// gridBuffers guarda as linhas de referência da grade, um conjunto por
// plano. São reconstruídas sempre que um novo estágio de malha chega,
// nunca por frame.
type gridBuffers struct {
	lines     [gridAxisCount][]lineSeg
	segments  int
	lineColor rl.Color
}

// buildGridFromBox monta a grade a partir de uma caixa delimitadora em
// coordenadas do mundo, com o espaçamento dado.
func buildGridFromBox(min, max rl.Vector3, spacing float32) *gridBuffers {
	if spacing <= 0 {
		spacing = 1.0
	}
	g := &gridBuffers{lineColor: rl.NewColor(128, 128, 128, 160)}
	g.buildPlanes(min, max, spacing)
	return g
}

// buildGridForVoxels monta a grade de um estágio voxelizado: a extensão
// é uma célula maior que o modelo e os eixos de dimensão par recebem um
// deslocamento de meia célula, para que as linhas caiam nas fronteiras
// dos cubos e não nos centros.
func buildGridForVoxels(dims util.Vector3i, voxelSize float32) *gridBuffers {
	ext := rl.Vector3{
		X: float32(dims.X+1) * voxelSize,
		Y: float32(dims.Y+1) * voxelSize,
		Z: float32(dims.Z+1) * voxelSize,
	}

	var offset rl.Vector3
	if dims.X%2 == 0 {
		offset.X = -0.5 * voxelSize
	}
	if dims.Y%2 == 0 {
		offset.Y = -0.5 * voxelSize
	}
	if dims.Z%2 == 0 {
		offset.Z = -0.5 * voxelSize
	}

	min := rl.Vector3{
		X: offset.X - ext.X*0.5,
		Y: offset.Y - ext.Y*0.5,
		Z: offset.Z - ext.Z*0.5,
	}
	max := rl.Vector3{
		X: offset.X + ext.X*0.5,
		Y: offset.Y + ext.Y*0.5,
		Z: offset.Z + ext.Z*0.5,
	}

	g := &gridBuffers{lineColor: rl.NewColor(128, 128, 128, 160)}
	g.buildPlanes(min, max, voxelSize)
	return g
}

func (g *gridBuffers) buildPlanes(min, max rl.Vector3, spacing float32) {
	// Plano Y: linhas no chão da caixa, ao longo de X e Z.
	for x := min.X; x <= max.X+spacing*0.01; x += spacing {
		g.lines[gridAxisY] = append(g.lines[gridAxisY], lineSeg{
			a: rl.Vector3{X: x, Y: min.Y, Z: min.Z},
			b: rl.Vector3{X: x, Y: min.Y, Z: max.Z},
		})
	}
	for z := min.Z; z <= max.Z+spacing*0.01; z += spacing {
		g.lines[gridAxisY] = append(g.lines[gridAxisY], lineSeg{
			a: rl.Vector3{X: min.X, Y: min.Y, Z: z},
			b: rl.Vector3{X: max.X, Y: min.Y, Z: z},
		})
	}

	// Plano X: grade vertical YZ cortando o centro do modelo.
	cx := (min.X + max.X) * 0.5
	for y := min.Y; y <= max.Y+spacing*0.01; y += spacing {
		g.lines[gridAxisX] = append(g.lines[gridAxisX], lineSeg{
			a: rl.Vector3{X: cx, Y: y, Z: min.Z},
			b: rl.Vector3{X: cx, Y: y, Z: max.Z},
		})
	}
	for z := min.Z; z <= max.Z+spacing*0.01; z += spacing {
		g.lines[gridAxisX] = append(g.lines[gridAxisX], lineSeg{
			a: rl.Vector3{X: cx, Y: min.Y, Z: z},
			b: rl.Vector3{X: cx, Y: max.Y, Z: z},
		})
	}

	// Plano Z: grade vertical XY cortando o centro do modelo.
	cz := (min.Z + max.Z) * 0.5
	for y := min.Y; y <= max.Y+spacing*0.01; y += spacing {
		g.lines[gridAxisZ] = append(g.lines[gridAxisZ], lineSeg{
			a: rl.Vector3{X: min.X, Y: y, Z: cz},
			b: rl.Vector3{X: max.X, Y: y, Z: cz},
		})
	}
	for x := min.X; x <= max.X+spacing*0.01; x += spacing {
		g.lines[gridAxisZ] = append(g.lines[gridAxisZ], lineSeg{
			a: rl.Vector3{X: x, Y: min.Y, Z: cz},
			b: rl.Vector3{X: x, Y: max.Y, Z: cz},
		})
	}

	for _, lines := range g.lines {
		g.segments += len(lines)
	}
}

// draw desenha o plano de grade escolhido.
func (g *gridBuffers) draw(axis gridAxis) {
	for _, seg := range g.lines[axis] {
		rl.DrawLine3D(seg.a, seg.b, g.lineColor)
	}
}

// drawAxisGizmo desenha os três eixos do mundo em RGB, com o teste de
// profundidade desligado para ficarem sempre visíveis.
func drawAxisGizmo(length float32) {
	rl.DisableDepthTest()
	rl.DrawLine3D(rl.Vector3{}, rl.Vector3{X: length}, rl.Red)
	rl.DrawLine3D(rl.Vector3{}, rl.Vector3{Y: length}, rl.Green)
	rl.DrawLine3D(rl.Vector3{}, rl.Vector3{Z: length}, rl.Blue)
	rl.EnableDepthTest()
}
