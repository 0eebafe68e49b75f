package pipeline

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTriBoxOverlap(t *testing.T) {
	half := mgl32.Vec3{0.5, 0.5, 0.5}

	tests := []struct {
		name       string
		centre     mgl32.Vec3
		v0, v1, v2 mgl32.Vec3
		want       bool
	}{
		{
			name:   "triângulo atravessando o centro",
			centre: mgl32.Vec3{0, 0, 0},
			v0:     mgl32.Vec3{-1, 0, -1},
			v1:     mgl32.Vec3{1, 0, -1},
			v2:     mgl32.Vec3{0, 0, 1},
			want:   true,
		},
		{
			name:   "triângulo longe da caixa",
			centre: mgl32.Vec3{0, 0, 0},
			v0:     mgl32.Vec3{5, 5, 5},
			v1:     mgl32.Vec3{6, 5, 5},
			v2:     mgl32.Vec3{5, 6, 5},
			want:   false,
		},
		{
			name:   "triângulo grande cobrindo a caixa inteira",
			centre: mgl32.Vec3{0, 0, 0},
			v0:     mgl32.Vec3{-10, 0, -10},
			v1:     mgl32.Vec3{10, 0, -10},
			v2:     mgl32.Vec3{0, 0, 10},
			want:   true,
		},
		{
			name:   "plano paralelo logo acima da caixa",
			centre: mgl32.Vec3{0, 0, 0},
			v0:     mgl32.Vec3{-1, 0.6, -1},
			v1:     mgl32.Vec3{1, 0.6, -1},
			v2:     mgl32.Vec3{0, 0.6, 1},
			want:   false,
		},
		{
			name:   "só um vértice dentro da caixa",
			centre: mgl32.Vec3{0, 0, 0},
			v0:     mgl32.Vec3{0.2, 0.2, 0.2},
			v1:     mgl32.Vec3{3, 3, 3},
			v2:     mgl32.Vec3{3, 4, 3},
			want:   true,
		},
		{
			name:   "aabb sobrepõe mas o plano não corta",
			centre: mgl32.Vec3{1, 1, 1},
			v0:     mgl32.Vec3{-1, 0, -1},
			v1:     mgl32.Vec3{1.4, 0, -1},
			v2:     mgl32.Vec3{0, 0, 1.4},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := triBoxOverlap(tt.centre, half, tt.v0, tt.v1, tt.v2)
			if got != tt.want {
				t.Errorf("triBoxOverlap = %v, esperava %v", got, tt.want)
			}
		})
	}
}
