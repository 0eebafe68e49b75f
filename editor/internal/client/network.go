package client

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/0-zen/ObjToSchematic/shared/mesh"
	"github.com/0-zen/ObjToSchematic/shared/proto/meshnet"
	"github.com/0-zen/ObjToSchematic/shared/voxel"
)

// WorkerClient conversa com o worker de voxelização via WebSocket. Os
// chunks chegam pela readLoop e são entregues por callbacks; cabe ao
// app encaminhá-los para a thread de render.
type WorkerClient struct {
	conn      *websocket.Conn
	url       string
	connected bool
	mu        sync.RWMutex

	// Callbacks para o App
	OnStatus     func(phase, detail string, isError bool)
	OnVoxelChunk func(chunk mesh.VoxelMeshChunk)
	OnBlockChunk func(chunk mesh.BlockMeshChunk)
}

// NewWorkerClient cria o cliente apontado para a URL do worker.
func NewWorkerClient(url string) *WorkerClient {
	return &WorkerClient{url: url}
}

// Connect disca para o worker com algumas tentativas, já que o worker
// pode estar subindo em paralelo com o editor.
func (c *WorkerClient) Connect() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
	}

	var err error
	const maxRetries = 5
	for i := 0; i < maxRetries; i++ {
		log.Printf("[Network] Tentativa de conexão %d/%d em %s...", i+1, maxRetries, c.url)
		c.conn, _, err = dialer.Dial(c.url, nil)
		if err == nil {
			break
		}
		log.Printf("[Network] Worker ainda não está pronto: %v", err)
		time.Sleep(time.Second)
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()

	go c.readLoop()
	return nil
}

// IsConnected informa se a conexão está de pé.
func (c *WorkerClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Close encerra a conexão.
func (c *WorkerClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	if c.conn != nil {
		c.conn.Close()
	}
}

// RequestVoxelise pede ao worker que voxelize o modelo do caminho dado.
func (c *WorkerClient) RequestVoxelise(modelPath string, targetSize int32, rule voxel.OverlapRule, ao bool, voxelSize float32, palettePath, atlasPath string) {
	req := meshnet.VoxeliseRequest{
		ModelPath:        modelPath,
		TargetSize:       targetSize,
		OverlapRule:      int32(rule),
		AmbientOcclusion: ao,
		VoxelSize:        voxelSize,
		PalettePath:      palettePath,
		AtlasPath:        atlasPath,
	}
	c.send(meshnet.MsgVoxeliseRequest, req.Marshal())
}

func (c *WorkerClient) send(msgType int32, payload []byte) {
	if !c.IsConnected() {
		return
	}

	data := meshnet.Wrap(msgType, payload)

	c.mu.Lock()
	err := c.conn.WriteMessage(websocket.BinaryMessage, data)
	if err != nil {
		c.connected = false
	}
	c.mu.Unlock()

	if err != nil {
		log.Printf("[Network] Erro ao enviar mensagem: %v", err)
	}
}

func (c *WorkerClient) readLoop() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		if c.conn != nil {
			c.conn.Close()
		}
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			log.Printf("[Network] Conexão perdida: %v", err)
			return
		}

		msg, err := meshnet.DecodeEnvelope(message)
		if err != nil {
			log.Printf("[Network] Mensagem inválida: %v", err)
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *WorkerClient) handleMessage(msg interface{}) {
	switch m := msg.(type) {
	case *meshnet.StatusMessage:
		if c.OnStatus != nil {
			c.OnStatus(m.Phase, m.Detail, m.IsError)
		}
	case *meshnet.VoxelChunkMessage:
		if c.OnVoxelChunk != nil {
			c.OnVoxelChunk(mesh.VoxelMeshChunk{
				Geometry: mesh.GeometryData{
					Vertices: m.Geometry.Vertices,
					Normals:  m.Geometry.Normals,
					Colors:   m.Geometry.Colors,
					UVs:      m.Geometry.UVs,
				},
				IsFirstChunk:       m.IsFirstChunk,
				MoreVoxelsToBuffer: m.MoreVoxelsToBuffer,
				VoxelSize:          m.VoxelSize,
				Dimensions:         m.Dimensions(),
			})
		}
	case *meshnet.BlockChunkMessage:
		if c.OnBlockChunk != nil {
			c.OnBlockChunk(mesh.BlockMeshChunk{
				Geometry: mesh.GeometryData{
					Vertices: m.Geometry.Vertices,
					Normals:  m.Geometry.Normals,
					Colors:   m.Geometry.Colors,
					UVs:      m.Geometry.UVs,
				},
				IsFirstChunk:     m.IsFirstChunk,
				AtlasTexturePath: m.AtlasTexturePath,
				AtlasSize:        m.AtlasSize,
			})
		}
	}
}
