package meshnet

import (
	"reflect"
	"testing"

	"github.com/0-zen/ObjToSchematic/shared/util"
)

func TestVoxelChunkEnvelopeRoundTrip(t *testing.T) {
	original := VoxelChunkMessage{
		Geometry: GeometryPayload{
			Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
			Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
			Colors:   []byte{255, 0, 0, 255, 255, 0, 0, 255, 255, 0, 0, 255},
			UVs:      []float32{0.95, 0, 1, 0, 1, 0},
		},
		IsFirstChunk:       true,
		MoreVoxelsToBuffer: true,
		VoxelSize:          0.5,
		DimX:               4, DimY: 8, DimZ: 2,
	}

	data := Wrap(MsgVoxelChunk, original.Marshal())
	msg, err := DecodeEnvelope(data)
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}

	decoded, ok := msg.(*VoxelChunkMessage)
	if !ok {
		t.Fatalf("DecodeEnvelope devolveu %T", msg)
	}
	if !reflect.DeepEqual(*decoded, original) {
		t.Errorf("round trip divergiu:\n  got  %+v\n  want %+v", *decoded, original)
	}
	if decoded.Dimensions() != (util.Vector3i{X: 4, Y: 8, Z: 2}) {
		t.Errorf("Dimensions = %v", decoded.Dimensions())
	}
}

func TestVoxeliseRequestRoundTrip(t *testing.T) {
	original := VoxeliseRequest{
		ModelPath:        "models/castle.obj",
		TargetSize:       120,
		OverlapRule:      1,
		AmbientOcclusion: true,
		VoxelSize:        1.0,
		PalettePath:      "palettes/default.json",
	}

	msg, err := DecodeEnvelope(Wrap(MsgVoxeliseRequest, original.Marshal()))
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	decoded, ok := msg.(*VoxeliseRequest)
	if !ok {
		t.Fatalf("DecodeEnvelope devolveu %T", msg)
	}
	if !reflect.DeepEqual(*decoded, original) {
		t.Errorf("round trip divergiu:\n  got  %+v\n  want %+v", *decoded, original)
	}
}

func TestStatusErrorRoundTrip(t *testing.T) {
	original := StatusMessage{Phase: "voxelise", Detail: "malha sem triângulos", IsError: true}

	msg, err := DecodeEnvelope(Wrap(MsgStatus, original.Marshal()))
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	decoded, ok := msg.(*StatusMessage)
	if !ok {
		t.Fatalf("DecodeEnvelope devolveu %T", msg)
	}
	if *decoded != original {
		t.Errorf("round trip divergiu: %+v", *decoded)
	}
}

func TestDecodeEnvelopeRejectsUnknownType(t *testing.T) {
	if _, err := DecodeEnvelope(Wrap(99, nil)); err == nil {
		t.Fatal("tipo desconhecido deveria falhar")
	}
}

func TestDecodeEnvelopeRejectsGarbage(t *testing.T) {
	if _, err := DecodeEnvelope([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Fatal("bytes inválidos deveriam falhar")
	}
}
