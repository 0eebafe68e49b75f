// O worker roda a pipeline de voxelização fora do processo do editor e
// devolve os chunks de geometria por WebSocket, para que modelos
// grandes não congelem a interface.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/0-zen/ObjToSchematic/shared/pipeline"
	"github.com/0-zen/ObjToSchematic/shared/blocks"
	"github.com/0-zen/ObjToSchematic/shared/mesh"
	"github.com/0-zen/ObjToSchematic/shared/proto/meshnet"
	"github.com/0-zen/ObjToSchematic/shared/voxel"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// session é uma conexão de editor. O mutex serializa as escritas, já
// que a pipeline produz chunks de uma goroutine própria.
type session struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (s *session) send(msgType int32, payload []byte) error {
	data := meshnet.Wrap(msgType, payload)
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (s *session) sendStatus(phase, detail string, isError bool) {
	msg := meshnet.StatusMessage{Phase: phase, Detail: detail, IsError: isError}
	if err := s.send(meshnet.MsgStatus, msg.Marshal()); err != nil {
		log.Printf("[Worker] Falha ao enviar status: %v", err)
	}
}

func main() {
	addr := flag.String("addr", "127.0.0.1:8177", "endereço de escuta do worker")
	flag.Parse()

	http.HandleFunc("/ws", handleWS)

	log.Printf("[Worker] Escutando em ws://%s/ws", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatalf("[Worker] Servidor encerrou: %v", err)
	}
}

func handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Worker] Falha no upgrade: %v", err)
		return
	}
	log.Printf("[Worker] Editor conectado: %s", conn.RemoteAddr())

	s := &session{conn: conn}
	defer conn.Close()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[Worker] Editor desconectado: %v", err)
			return
		}

		msg, err := meshnet.DecodeEnvelope(message)
		if err != nil {
			log.Printf("[Worker] Mensagem inválida: %v", err)
			continue
		}

		if req, ok := msg.(*meshnet.VoxeliseRequest); ok {
			go runPipeline(s, req)
		}
	}
}

// runPipeline executa importação, voxelização, atribuição de blocos e
// bufferização, enviando os chunks conforme ficam prontos.
func runPipeline(s *session, req *meshnet.VoxeliseRequest) {
	s.sendStatus("import", req.ModelPath, false)

	tm, err := mesh.LoadModel(req.ModelPath)
	if err != nil {
		s.sendStatus("import", err.Error(), true)
		return
	}

	s.sendStatus("voxelise", "", false)
	voxeliser := pipeline.NewVoxeliser(pipeline.VoxeliseParams{
		TargetSize:       req.TargetSize,
		Rule:             voxel.OverlapRule(req.OverlapRule),
		AmbientOcclusion: req.AmbientOcclusion,
	}, tm.Materials)

	vm, err := voxeliser.Voxelise(context.Background(), tm)
	if err != nil {
		s.sendStatus("voxelise", err.Error(), true)
		return
	}

	voxelSize := req.VoxelSize
	if voxelSize <= 0 {
		voxelSize = 1.0
	}

	s.sendStatus("buffer-voxels", "", false)
	vb := pipeline.NewVoxelBufferer(vm, voxelSize, 0)
	for {
		chunk, ok := vb.NextChunk()
		if !ok {
			break
		}
		if err := sendVoxelChunk(s, chunk); err != nil {
			log.Printf("[Worker] Envio de chunk de voxels falhou: %v", err)
			return
		}
	}

	s.sendStatus("assign", "", false)
	palette, err := loadPalette(req.PalettePath)
	if err != nil {
		s.sendStatus("assign", err.Error(), true)
		return
	}
	bm, err := pipeline.AssignBlocks(vm, palette)
	if err != nil {
		s.sendStatus("assign", err.Error(), true)
		return
	}

	atlas, err := loadAtlas(req.AtlasPath, palette)
	if err != nil {
		s.sendStatus("assign", err.Error(), true)
		return
	}

	s.sendStatus("buffer-blocks", "", false)
	bb := pipeline.NewBlockBufferer(bm, atlas, voxelSize, 0)
	for {
		chunk, ok := bb.NextChunk()
		if !ok {
			break
		}
		if err := sendBlockChunk(s, chunk); err != nil {
			log.Printf("[Worker] Envio de chunk de blocos falhou: %v", err)
			return
		}
	}

	s.sendStatus("done", "", false)
}

func loadPalette(path string) (*blocks.Palette, error) {
	if path == "" {
		return blocks.DefaultPalette(), nil
	}
	return blocks.LoadPalette(path)
}

func loadAtlas(path string, palette *blocks.Palette) (*blocks.Atlas, error) {
	if path == "" {
		return blocks.NewGridAtlas("assets/atlas.png", 8, palette.Names())
	}
	return blocks.LoadAtlas(path)
}

func sendVoxelChunk(s *session, chunk mesh.VoxelMeshChunk) error {
	msg := meshnet.VoxelChunkMessage{
		Geometry: meshnet.GeometryPayload{
			Vertices: chunk.Geometry.Vertices,
			Normals:  chunk.Geometry.Normals,
			Colors:   chunk.Geometry.Colors,
			UVs:      chunk.Geometry.UVs,
		},
		IsFirstChunk:       chunk.IsFirstChunk,
		MoreVoxelsToBuffer: chunk.MoreVoxelsToBuffer,
		VoxelSize:          chunk.VoxelSize,
		DimX:               chunk.Dimensions.X,
		DimY:               chunk.Dimensions.Y,
		DimZ:               chunk.Dimensions.Z,
	}
	return s.send(meshnet.MsgVoxelChunk, msg.Marshal())
}

func sendBlockChunk(s *session, chunk mesh.BlockMeshChunk) error {
	msg := meshnet.BlockChunkMessage{
		Geometry: meshnet.GeometryPayload{
			Vertices: chunk.Geometry.Vertices,
			Normals:  chunk.Geometry.Normals,
			Colors:   chunk.Geometry.Colors,
			UVs:      chunk.Geometry.UVs,
		},
		IsFirstChunk:     chunk.IsFirstChunk,
		AtlasTexturePath: chunk.AtlasTexturePath,
		AtlasSize:        chunk.AtlasSize,
	}
	return s.send(meshnet.MsgBlockChunk, msg.Marshal())
}
