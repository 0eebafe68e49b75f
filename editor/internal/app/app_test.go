package app

import (
	"testing"
	"time"

	"github.com/0-zen/ObjToSchematic/shared/config"
)

func TestConnectWorkerAssignsClientOnCallerThread(t *testing.T) {
	cfg := &config.Config{WorkerURL: "ws://127.0.0.1:1/pipeline"}
	a := New(cfg)

	// connectWorker roda na thread principal; o campo precisa estar
	// atribuído no retorno, antes de o handshake em background terminar,
	// para que o loop leia netClient sem sincronização.
	a.connectWorker()

	if a.netClient == nil {
		t.Fatal("netClient não foi atribuído no retorno de connectWorker")
	}
	if a.netClient.OnStatus == nil || a.netClient.OnVoxelChunk == nil || a.netClient.OnBlockChunk == nil {
		t.Fatal("callbacks do worker não foram instalados")
	}

	// Os callbacks alimentam a fila de eventos da thread principal.
	a.netClient.OnStatus("done", "", false)
	select {
	case ev := <-a.events:
		if ev.status != "done" || !ev.done {
			t.Fatalf("evento inesperado: %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("status do worker não chegou na fila de eventos")
	}
}
