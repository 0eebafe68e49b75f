// Package meshnet define o protocolo binário entre o editor e o worker
// de voxelização. As mensagens viajam dentro de um Envelope com o tipo
// e o payload serializado.
package meshnet

import (
	"fmt"

	"github.com/0-zen/ObjToSchematic/shared/pkg/protowire"
	"github.com/0-zen/ObjToSchematic/shared/util"
)

// Tipos de mensagem do Envelope.
const (
	MsgVoxeliseRequest = 1
	MsgStatus          = 2
	MsgVoxelChunk      = 3
	MsgBlockChunk      = 4
)

// Envelope embrulha qualquer mensagem do protocolo.
type Envelope struct {
	Type    int32
	Payload []byte
}

func (m *Envelope) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeVarint(1, int64(m.Type))
	e.EncodeBytes(2, m.Payload)
	return e.Bytes()
}

func (m *Envelope) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.Type = int32(v)
		case 2:
			b, err := d.ReadBytes()
			if err != nil {
				return err
			}
			m.Payload = b
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// VoxeliseRequest pede ao worker que voxelize um modelo do disco.
type VoxeliseRequest struct {
	ModelPath        string
	TargetSize       int32
	OverlapRule      int32
	AmbientOcclusion bool
	VoxelSize        float32
	PalettePath      string
	AtlasPath        string
}

func (m *VoxeliseRequest) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeString(1, m.ModelPath)
	e.EncodeVarint(2, int64(m.TargetSize))
	e.EncodeVarint(3, int64(m.OverlapRule))
	e.EncodeBool(4, m.AmbientOcclusion)
	e.EncodeFixed32(5, m.VoxelSize)
	e.EncodeString(6, m.PalettePath)
	e.EncodeString(7, m.AtlasPath)
	return e.Bytes()
}

func (m *VoxeliseRequest) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			s, err := d.ReadString()
			if err != nil {
				return err
			}
			m.ModelPath = s
		case 2:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.TargetSize = int32(v)
		case 3:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.OverlapRule = int32(v)
		case 4:
			b, err := d.ReadBool()
			if err != nil {
				return err
			}
			m.AmbientOcclusion = b
		case 5:
			f, err := d.ReadFixed32()
			if err != nil {
				return err
			}
			m.VoxelSize = f
		case 6:
			s, err := d.ReadString()
			if err != nil {
				return err
			}
			m.PalettePath = s
		case 7:
			s, err := d.ReadString()
			if err != nil {
				return err
			}
			m.AtlasPath = s
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// StatusMessage reporta progresso ou erro de uma fase do worker.
type StatusMessage struct {
	Phase   string
	Detail  string
	IsError bool
}

func (m *StatusMessage) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeString(1, m.Phase)
	e.EncodeString(2, m.Detail)
	e.EncodeBool(3, m.IsError)
	return e.Bytes()
}

func (m *StatusMessage) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			s, err := d.ReadString()
			if err != nil {
				return err
			}
			m.Phase = s
		case 2:
			s, err := d.ReadString()
			if err != nil {
				return err
			}
			m.Detail = s
		case 3:
			b, err := d.ReadBool()
			if err != nil {
				return err
			}
			m.IsError = b
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// GeometryPayload carrega os buffers de vértices de um chunk.
type GeometryPayload struct {
	Vertices []float32
	Normals  []float32
	Colors   []byte
	UVs      []float32
}

func (g *GeometryPayload) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodePackedFloat32(1, g.Vertices)
	e.EncodePackedFloat32(2, g.Normals)
	e.EncodeBytes(3, g.Colors)
	e.EncodePackedFloat32(4, g.UVs)
	return e.Bytes()
}

func (g *GeometryPayload) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			f, err := d.ReadPackedFloat32()
			if err != nil {
				return err
			}
			g.Vertices = f
		case 2:
			f, err := d.ReadPackedFloat32()
			if err != nil {
				return err
			}
			g.Normals = f
		case 3:
			b, err := d.ReadBytes()
			if err != nil {
				return err
			}
			g.Colors = append([]byte(nil), b...)
		case 4:
			f, err := d.ReadPackedFloat32()
			if err != nil {
				return err
			}
			g.UVs = f
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// VoxelChunkMessage é um chunk do estágio de voxels em trânsito.
type VoxelChunkMessage struct {
	Geometry           GeometryPayload
	IsFirstChunk       bool
	MoreVoxelsToBuffer bool
	VoxelSize          float32
	DimX, DimY, DimZ   int32
}

// Dimensions devolve as dimensões como coordenada de voxel.
func (m *VoxelChunkMessage) Dimensions() util.Vector3i {
	return util.Vector3i{X: m.DimX, Y: m.DimY, Z: m.DimZ}
}

func (m *VoxelChunkMessage) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeSubmessage(1, m.Geometry.Marshal())
	e.EncodeBool(2, m.IsFirstChunk)
	e.EncodeBool(3, m.MoreVoxelsToBuffer)
	e.EncodeFixed32(4, m.VoxelSize)
	e.EncodeVarint(5, int64(m.DimX))
	e.EncodeVarint(6, int64(m.DimY))
	e.EncodeVarint(7, int64(m.DimZ))
	return e.Bytes()
}

func (m *VoxelChunkMessage) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			sub, err := d.ReadBytes()
			if err != nil {
				return err
			}
			if err := m.Geometry.Unmarshal(sub); err != nil {
				return err
			}
		case 2:
			b, err := d.ReadBool()
			if err != nil {
				return err
			}
			m.IsFirstChunk = b
		case 3:
			b, err := d.ReadBool()
			if err != nil {
				return err
			}
			m.MoreVoxelsToBuffer = b
		case 4:
			f, err := d.ReadFixed32()
			if err != nil {
				return err
			}
			m.VoxelSize = f
		case 5:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.DimX = int32(v)
		case 6:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.DimY = int32(v)
		case 7:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.DimZ = int32(v)
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// BlockChunkMessage é um chunk do estágio de blocos em trânsito.
type BlockChunkMessage struct {
	Geometry         GeometryPayload
	IsFirstChunk     bool
	AtlasTexturePath string
	AtlasSize        float32
}

func (m *BlockChunkMessage) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeSubmessage(1, m.Geometry.Marshal())
	e.EncodeBool(2, m.IsFirstChunk)
	e.EncodeString(3, m.AtlasTexturePath)
	e.EncodeFixed32(4, m.AtlasSize)
	return e.Bytes()
}

func (m *BlockChunkMessage) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			sub, err := d.ReadBytes()
			if err != nil {
				return err
			}
			if err := m.Geometry.Unmarshal(sub); err != nil {
				return err
			}
		case 2:
			b, err := d.ReadBool()
			if err != nil {
				return err
			}
			m.IsFirstChunk = b
		case 3:
			s, err := d.ReadString()
			if err != nil {
				return err
			}
			m.AtlasTexturePath = s
		case 4:
			f, err := d.ReadFixed32()
			if err != nil {
				return err
			}
			m.AtlasSize = f
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// DecodeEnvelope interpreta um envelope e devolve a mensagem embutida.
func DecodeEnvelope(data []byte) (interface{}, error) {
	var env Envelope
	if err := env.Unmarshal(data); err != nil {
		return nil, err
	}

	switch env.Type {
	case MsgVoxeliseRequest:
		var m VoxeliseRequest
		if err := m.Unmarshal(env.Payload); err != nil {
			return nil, err
		}
		return &m, nil
	case MsgStatus:
		var m StatusMessage
		if err := m.Unmarshal(env.Payload); err != nil {
			return nil, err
		}
		return &m, nil
	case MsgVoxelChunk:
		var m VoxelChunkMessage
		if err := m.Unmarshal(env.Payload); err != nil {
			return nil, err
		}
		return &m, nil
	case MsgBlockChunk:
		var m BlockChunkMessage
		if err := m.Unmarshal(env.Payload); err != nil {
			return nil, err
		}
		return &m, nil
	default:
		return nil, fmt.Errorf("meshnet: tipo de mensagem desconhecido: %d", env.Type)
	}
}

// Wrap embrulha uma mensagem num envelope serializado.
func Wrap(msgType int32, payload []byte) []byte {
	env := Envelope{Type: msgType, Payload: payload}
	return env.Marshal()
}
