package util

import rl "github.com/gen2brain/raylib-go/raylib"

// RGBA é uma cor com canais normalizados (0.0 a 1.0).
// É o formato usado durante a voxelização; a conversão para bytes
// só acontece na hora de montar os buffers de vértices.
type RGBA struct {
	R, G, B, A float32
}

// NewRGBA cria uma cor normalizada.
func NewRGBA(r, g, b, a float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// RGBAFromBytes converte uma cor de bytes (0-255) para normalizada.
func RGBAFromBytes(r, g, b, a uint8) RGBA {
	return RGBA{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// Bytes converte a cor para o formato de 8 bits por canal dos buffers.
func (c RGBA) Bytes() [4]uint8 {
	return [4]uint8{
		uint8(Clamp(c.R, 0, 1) * 255.0),
		uint8(Clamp(c.G, 0, 1) * 255.0),
		uint8(Clamp(c.B, 0, 1) * 255.0),
		uint8(Clamp(c.A, 0, 1) * 255.0),
	}
}

// ToRaylib converte para rl.Color.
func (c RGBA) ToRaylib() rl.Color {
	b := c.Bytes()
	return rl.NewColor(b[0], b[1], b[2], b[3])
}

// DistSq2 retorna a distância quadrada entre duas cores (RGB, sem alpha).
// Usada pelo pareamento voxel → bloco da paleta.
func (c RGBA) DistSq2(other RGBA) float32 {
	dr := c.R - other.R
	dg := c.G - other.G
	db := c.B - other.B
	return dr*dr + dg*dg + db*db
}

// Scale multiplica os canais RGB por um fator, preservando o alpha.
func (c RGBA) Scale(f float32) RGBA {
	return RGBA{R: c.R * f, G: c.G * f, B: c.B * f, A: c.A}
}
