package pipeline

import "github.com/go-gl/mathgl/mgl32"

// triBoxOverlap testa a sobreposição entre um triângulo e uma caixa
// alinhada aos eixos pelo teorema do eixo separador: os 3 eixos da
// caixa, a normal do triângulo e os 9 produtos vetoriais aresta-eixo.
func triBoxOverlap(boxCentre, boxHalf mgl32.Vec3, v0, v1, v2 mgl32.Vec3) bool {
	// Tudo no referencial da caixa.
	a := v0.Sub(boxCentre)
	b := v1.Sub(boxCentre)
	c := v2.Sub(boxCentre)

	e0 := b.Sub(a)
	e1 := c.Sub(b)
	e2 := a.Sub(c)

	// Eixos da caixa.
	for i := 0; i < 3; i++ {
		lo := minf3(a[i], b[i], c[i])
		hi := maxf3(a[i], b[i], c[i])
		if lo > boxHalf[i] || hi < -boxHalf[i] {
			return false
		}
	}

	// Normal do triângulo contra a caixa.
	n := e0.Cross(e1)
	d := n.Dot(a)
	r := boxHalf.X()*absf(n.X()) + boxHalf.Y()*absf(n.Y()) + boxHalf.Z()*absf(n.Z())
	if d > r || d < -r {
		return false
	}

	// Produtos vetoriais aresta-eixo.
	edges := [3]mgl32.Vec3{e0, e1, e2}
	verts := [3]mgl32.Vec3{a, b, c}
	for _, e := range edges {
		axes := [3]mgl32.Vec3{
			{0, -e.Z(), e.Y()},
			{e.Z(), 0, -e.X()},
			{-e.Y(), e.X(), 0},
		}
		for _, axis := range axes {
			p0 := axis.Dot(verts[0])
			p1 := axis.Dot(verts[1])
			p2 := axis.Dot(verts[2])
			lo := minf3(p0, p1, p2)
			hi := maxf3(p0, p1, p2)
			r := boxHalf.X()*absf(axis.X()) + boxHalf.Y()*absf(axis.Y()) + boxHalf.Z()*absf(axis.Z())
			if lo > r || hi < -r {
				return false
			}
		}
	}

	return true
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
