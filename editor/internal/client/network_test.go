package client

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/0-zen/ObjToSchematic/shared/proto/meshnet"
	"github.com/0-zen/ObjToSchematic/shared/voxel"
)

func TestRequestVoxeliseCarriesAllParameters(t *testing.T) {
	received := make(chan *meshnet.VoxeliseRequest, 1)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := meshnet.DecodeEnvelope(data)
		if err != nil {
			t.Errorf("DecodeEnvelope: %v", err)
			return
		}
		req, ok := msg.(*meshnet.VoxeliseRequest)
		if !ok {
			t.Errorf("mensagem inesperada: %T", msg)
			return
		}
		received <- req
	}))
	defer srv.Close()

	c := NewWorkerClient("ws" + strings.TrimPrefix(srv.URL, "http"))
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer c.Close()

	c.RequestVoxelise("casa.obj", 64, voxel.OverlapAverage, true, 0.5,
		"palettes/custom.json", "atlas/custom.png")

	select {
	case req := <-received:
		if req.ModelPath != "casa.obj" || req.TargetSize != 64 {
			t.Errorf("parâmetros do modelo errados: %+v", req)
		}
		if req.OverlapRule != int32(voxel.OverlapAverage) || !req.AmbientOcclusion || req.VoxelSize != 0.5 {
			t.Errorf("parâmetros de voxelização errados: %+v", req)
		}
		if req.PalettePath != "palettes/custom.json" {
			t.Errorf("caminho da paleta não chegou: %q", req.PalettePath)
		}
		if req.AtlasPath != "atlas/custom.png" {
			t.Errorf("caminho do atlas não chegou: %q", req.AtlasPath)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("worker de teste não recebeu o request")
	}
}

func TestRequestVoxeliseIsNoOpWhenDisconnected(t *testing.T) {
	c := NewWorkerClient("ws://127.0.0.1:1/pipeline")
	// Sem Connect: enviar não pode entrar em pânico nem bloquear.
	c.RequestVoxelise("casa.obj", 64, voxel.OverlapFirst, false, 1.0, "", "")
	if c.IsConnected() {
		t.Fatal("cliente nunca conectou, IsConnected deveria ser false")
	}
}
