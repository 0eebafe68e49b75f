package util

import "testing"

func TestNeighbourIndexRoundTrip(t *testing.T) {
	seen := make(map[int]bool)
	for _, offset := range NeighbourOffsets {
		idx := NeighbourIndex(offset)
		if idx < 0 || idx > 25 {
			t.Fatalf("NeighbourIndex(%v) = %d fora do intervalo", offset, idx)
		}
		if seen[idx] {
			t.Fatalf("índice %d duplicado para offset %v", idx, offset)
		}
		seen[idx] = true
		if !NeighbourOffsets[idx].Equals(offset) {
			t.Errorf("NeighbourOffsets[%d] = %v, esperado %v", idx, NeighbourOffsets[idx], offset)
		}
	}
	if len(seen) != 26 {
		t.Errorf("%d índices distintos, esperado 26", len(seen))
	}
}

func TestNeighbourIndexRejectsInvalid(t *testing.T) {
	tests := []Vector3i{
		{X: 0, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
		{X: 0, Y: -2, Z: 1},
		{X: 5, Y: 5, Z: 5},
	}
	for _, tt := range tests {
		if idx := NeighbourIndex(tt); idx != -1 {
			t.Errorf("NeighbourIndex(%v) = %d, esperado -1", tt, idx)
		}
	}
}

func TestBoundsExtend(t *testing.T) {
	b := NewBounds(Vector3i{X: 1, Y: 1, Z: 1})
	b = b.Extend(Vector3i{X: -2, Y: 3, Z: 1})
	b = b.Extend(Vector3i{X: 0, Y: 0, Z: 7})

	if !b.Min.Equals(Vector3i{X: -2, Y: 0, Z: 1}) {
		t.Errorf("Min = %v", b.Min)
	}
	if !b.Max.Equals(Vector3i{X: 1, Y: 3, Z: 7}) {
		t.Errorf("Max = %v", b.Max)
	}
}

func TestWorldToVoxel(t *testing.T) {
	tests := []struct {
		pos  Vector3
		size float32
		want Vector3i
	}{
		{Vector3{X: 0.5, Y: 0.5, Z: 0.5}, 1.0, Vector3i{X: 0, Y: 0, Z: 0}},
		{Vector3{X: -0.1, Y: 2.0, Z: 3.9}, 1.0, Vector3i{X: -1, Y: 2, Z: 3}},
		{Vector3{X: 1.0, Y: 1.0, Z: 1.0}, 0.5, Vector3i{X: 2, Y: 2, Z: 2}},
	}
	for _, tt := range tests {
		got := WorldToVoxel(tt.pos, tt.size)
		if !got.Equals(tt.want) {
			t.Errorf("WorldToVoxel(%v, %f) = %v, esperado %v", tt.pos, tt.size, got, tt.want)
		}
	}
}
