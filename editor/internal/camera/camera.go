package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/0-zen/ObjToSchematic/shared/util"
)

// Mode define o tipo de projeção.
type Mode int

const (
	ModePerspective Mode = iota
	ModeOrthographic
)

// Controller é a câmera orbital do editor: gira em torno de um ponto
// de interesse com interpolação suave de ângulo e zoom.
type Controller struct {
	RLCamera rl.Camera3D

	Mode         Mode
	MinZoom      float32
	MaxZoom      float32
	RotateSpeed  float32
	ZoomSpeed    float32
	SmoothFactor float32

	// Estado alvo, para onde a interpolação converge.
	TargetLookAt rl.Vector3
	TargetZoom   float32
	TargetAngleY float32
	TargetAngleX float32

	// Estado atual, interpolado a cada frame.
	CurrentLookAt rl.Vector3
	CurrentZoom   float32
	CurrentAngleY float32
	CurrentAngleX float32

	aspect       float32
	userRotating bool
}

// New cria a câmera com o enquadramento isométrico padrão.
func New() *Controller {
	c := &Controller{
		Mode:         ModePerspective,
		MinZoom:      2.0,
		MaxZoom:      200.0,
		RotateSpeed:  2.0,
		ZoomSpeed:    4.0,
		SmoothFactor: 0.15,

		TargetZoom:   40.0,
		TargetAngleY: 45.0 * rl.Deg2rad,
		TargetAngleX: -30.0 * rl.Deg2rad,
		aspect:       16.0 / 9.0,
	}

	c.CurrentLookAt = c.TargetLookAt
	c.CurrentZoom = c.TargetZoom
	c.CurrentAngleY = c.TargetAngleY
	c.CurrentAngleX = c.TargetAngleX

	c.RLCamera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}

	c.recompute()
	return c
}

// SetTarget pousa a câmera sobre um ponto sem suavização.
func (c *Controller) SetTarget(pos rl.Vector3) {
	c.TargetLookAt = pos
	c.CurrentLookAt = pos
	c.recompute()
}

// FrameModel ajusta o zoom para enquadrar um modelo do tamanho dado.
func (c *Controller) FrameModel(radius float32) {
	if radius <= 0 {
		return
	}
	c.TargetZoom = util.Clamp(radius*2.5, c.MinZoom, c.MaxZoom)
}

// Update interpola ângulos, alvo e zoom na direção do estado desejado.
// Chamado uma vez por frame.
func (c *Controller) Update(dt float32) {
	factor := c.SmoothFactor * 60.0 * dt
	if factor > 1.0 {
		factor = 1.0
	}

	cur := mgl32.Vec3{c.CurrentLookAt.X, c.CurrentLookAt.Y, c.CurrentLookAt.Z}
	tgt := mgl32.Vec3{c.TargetLookAt.X, c.TargetLookAt.Y, c.TargetLookAt.Z}
	lerped := cur.Add(tgt.Sub(cur).Mul(factor))

	c.CurrentLookAt = rl.Vector3{X: lerped.X(), Y: lerped.Y(), Z: lerped.Z()}
	c.CurrentZoom = util.Lerp(c.CurrentZoom, c.TargetZoom, factor)
	c.CurrentAngleY = util.Lerp(c.CurrentAngleY, c.TargetAngleY, factor)
	c.CurrentAngleX = util.Lerp(c.CurrentAngleX, c.TargetAngleX, factor)

	c.recompute()
}

// recompute converte os ângulos esféricos atuais na posição cartesiana
// da câmera.
func (c *Controller) recompute() {
	dist := c.CurrentZoom

	if c.Mode == ModeOrthographic {
		c.RLCamera.Fovy = c.CurrentZoom * 0.5
		c.RLCamera.Projection = rl.CameraOrthographic
		dist = 200.0
	} else {
		c.RLCamera.Fovy = 45.0
		c.RLCamera.Projection = rl.CameraPerspective
	}

	cosX := float32(math.Cos(float64(c.CurrentAngleX)))
	sinX := float32(math.Sin(float64(c.CurrentAngleX)))
	cosY := float32(math.Cos(float64(c.CurrentAngleY)))
	sinY := float32(math.Sin(float64(c.CurrentAngleY)))

	c.RLCamera.Position = rl.Vector3{
		X: c.CurrentLookAt.X + dist*cosX*sinY,
		Y: c.CurrentLookAt.Y + dist*-sinX,
		Z: c.CurrentLookAt.Z + dist*cosX*cosY,
	}
	c.RLCamera.Target = c.CurrentLookAt
}

// SetMode alterna entre perspectiva e ortográfica.
func (c *Controller) SetMode(mode Mode) {
	c.Mode = mode
	c.recompute()
}

// HandleInput processa o mouse: scroll para zoom e botão esquerdo para
// orbitar. Devolve true se houve movimento.
func (c *Controller) HandleInput(dt float32) bool {
	moved := false

	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		moved = true
		c.TargetZoom = util.Clamp(c.TargetZoom-wheel*c.ZoomSpeed, c.MinZoom, c.MaxZoom)
	}

	c.userRotating = false
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			moved = true
			c.userRotating = true
		}
		c.TargetAngleY -= delta.X * c.RotateSpeed * 0.005
		c.TargetAngleX -= delta.Y * c.RotateSpeed * 0.005

		// Elevação limitada para a câmera nunca virar de cabeça para baixo.
		maxElev := float32(85.0 * rl.Deg2rad)
		minElev := float32(-89.0 * rl.Deg2rad)
		c.TargetAngleX = util.Clamp(c.TargetAngleX, minElev, maxElev)
	}

	return moved
}

// Camera3D devolve a câmera Raylib pronta para BeginMode3D.
func (c *Controller) Camera3D() rl.Camera3D {
	return c.RLCamera
}

// Position devolve a posição atual da câmera no mundo.
func (c *Controller) Position() rl.Vector3 {
	return c.RLCamera.Position
}

// Direction devolve o vetor unitário da câmera para o alvo.
func (c *Controller) Direction() rl.Vector3 {
	d := mgl32.Vec3{
		c.RLCamera.Target.X - c.RLCamera.Position.X,
		c.RLCamera.Target.Y - c.RLCamera.Position.Y,
		c.RLCamera.Target.Z - c.RLCamera.Position.Z,
	}
	if d.Len() == 0 {
		return rl.Vector3{Z: -1}
	}
	d = d.Normalize()
	return rl.Vector3{X: d.X(), Y: d.Y(), Z: d.Z()}
}

// ViewProjection devolve a matriz view-projection atual, para quem
// precisar projetar pontos fora do caminho fixo do Raylib.
func (c *Controller) ViewProjection() mgl32.Mat4 {
	eye := mgl32.Vec3{c.RLCamera.Position.X, c.RLCamera.Position.Y, c.RLCamera.Position.Z}
	target := mgl32.Vec3{c.RLCamera.Target.X, c.RLCamera.Target.Y, c.RLCamera.Target.Z}
	up := mgl32.Vec3{0, 1, 0}

	view := mgl32.LookAtV(eye, target, up)

	var proj mgl32.Mat4
	if c.Mode == ModeOrthographic {
		h := c.RLCamera.Fovy
		w := h * c.aspect
		proj = mgl32.Ortho(-w/2, w/2, -h/2, h/2, 0.01, 1000.0)
	} else {
		proj = mgl32.Perspective(mgl32.DegToRad(c.RLCamera.Fovy), c.aspect, 0.01, 1000.0)
	}
	return proj.Mul4(view)
}

// WorldInverseTranspose devolve a matriz para transformar normais dado
// o modelo do mundo. Com o modelo na identidade, é a própria identidade.
func (c *Controller) WorldInverseTranspose(model mgl32.Mat4) mgl32.Mat4 {
	return model.Inv().Transpose()
}

// SetAspect informa a razão de aspecto do canvas.
func (c *Controller) SetAspect(aspect float32) {
	if aspect > 0 {
		c.aspect = aspect
	}
}

// Aspect devolve a razão de aspecto configurada.
func (c *Controller) Aspect() float32 {
	return c.aspect
}

// IsUserRotating informa se o usuário está orbitando neste frame.
func (c *Controller) IsUserRotating() bool {
	return c.userRotating
}

// AlignedAxis informa se a câmera está de frente para o eixo x ou z,
// com tolerância de alguns graus, e quase nivelada com o horizonte. É
// o critério para trocar o plano da grade de referência.
func (c *Controller) AlignedAxis() (byte, bool) {
	const tolerance = 10.0 * rl.Deg2rad

	if absf(c.CurrentAngleX) > tolerance {
		return 0, false
	}

	azimuth := float64(c.CurrentAngleY)
	quarter := math.Round(azimuth / (math.Pi / 2))
	if math.Abs(azimuth-quarter*(math.Pi/2)) > float64(tolerance) {
		return 0, false
	}

	// Quadrantes pares olham ao longo de z, ímpares ao longo de x.
	if int(quarter)%2 == 0 {
		return 'z', true
	}
	return 'x', true
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
