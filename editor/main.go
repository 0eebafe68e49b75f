package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/0-zen/ObjToSchematic/editor/internal/app"
	"github.com/0-zen/ObjToSchematic/shared/config"
)

func main() {
	// Raylib/OpenGL exige rodar na thread principal do SO
	runtime.LockOSThread()

	// Flags de linha de comando
	model := flag.String("model", "", "Modelo a carregar ao iniciar (.obj/.gltf/.glb)")
	workerURL := flag.String("worker", "", "URL do worker de voxelização (vazio: pipeline local)")
	targetSize := flag.Int("size", 0, "Tamanho alvo da voxelização (maior eixo, em voxels)")
	fullscreen := flag.Bool("fullscreen", false, "Iniciar em tela cheia")
	debug := flag.Bool("debug", false, "Mostrar informações de debug")
	width := flag.Int("width", 0, "Largura da janela")
	height := flag.Int("height", 0, "Altura da janela")
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Println("[ObjToSchematic] Editor de voxelização iniciando...")

	// Carregar configurações
	cfg := config.Load()

	// Flags de linha de comando sobrescrevem o config salvo
	if *workerURL != "" {
		cfg.WorkerURL = *workerURL
	}
	if *targetSize > 0 {
		cfg.TargetSize = int32(*targetSize)
	}
	if *fullscreen {
		cfg.Fullscreen = true
	}
	if *debug {
		cfg.ShowDebugInfo = true
	}
	if *width > 0 {
		cfg.WindowWidth = int32(*width)
	}
	if *height > 0 {
		cfg.WindowHeight = int32(*height)
	}

	application := app.New(cfg)
	if *model != "" {
		application.LoadModelOnStart(*model)
	}
	application.Run()
}
