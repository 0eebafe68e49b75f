package app

import (
	"log"
	"runtime"

	"github.com/0-zen/ObjToSchematic/editor/internal/camera"
	"github.com/0-zen/ObjToSchematic/editor/internal/client"
	"github.com/0-zen/ObjToSchematic/shared/pipeline"
	"github.com/0-zen/ObjToSchematic/editor/internal/render"
	"github.com/0-zen/ObjToSchematic/shared/config"
	"github.com/0-zen/ObjToSchematic/shared/mesh"
	"github.com/0-zen/ObjToSchematic/shared/project"
	"github.com/0-zen/ObjToSchematic/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AppState representa os estados possíveis do editor.
type AppState int

const (
	StateIdle       AppState = iota // Nenhum modelo carregado
	StateViewing                    // Modelo carregado, navegação livre
	StateProcessing                 // Pipeline de voxelização em andamento
)

// pipelineEvent é o que a pipeline (local ou remota) entrega para a thread
// principal. Os campos são mutuamente exclusivos; o consumidor aplica o que
// estiver preenchido.
type pipelineEvent struct {
	status  string
	detail  string
	isError bool

	voxelChunk *mesh.VoxelMeshChunk
	blockChunk *mesh.BlockMeshChunk

	blockMesh  *pipeline.BlockMesh
	voxelCount int

	done bool
}

// App é a aplicação principal do editor ObjToSchematic.
type App struct {
	Config *config.Config
	State  AppState

	Cam      *camera.Controller
	renderer *render.Renderer

	store     *project.Store
	netClient *client.WorkerClient

	// Modelo carregado
	modelPath     string
	triMesh       *mesh.TriMesh
	triangleCount int

	// Comunicação pipeline -> thread principal
	events       chan pipelineEvent
	pipelineBusy bool

	// Edições de material coalescidas por nome (só a última vence)
	materialEdits *util.UniqueQueue[string, mesh.Material]

	// Resultado da última voxelização (modo local)
	lastBlockMesh *pipeline.BlockMesh
	voxelCount    int

	statusLine    string
	statusIsError bool

	startupModel string

	frameCount int
}

// LoadModelOnStart agenda a importação de um modelo para logo após a
// janela existir. Deve ser chamado antes de Run.
func (a *App) LoadModelOnStart(path string) {
	a.startupModel = path
}

// New cria uma nova instância do editor.
func New(cfg *config.Config) *App {
	return &App{
		Config:        cfg,
		State:         StateIdle,
		events:        make(chan pipelineEvent, 256),
		materialEdits: util.NewUniqueQueue[string, mesh.Material](),
		statusLine:    "Arraste um modelo .obj/.gltf/.glb para a janela",
	}
}

// Run inicia o loop principal do editor.
func (a *App) Run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro fatal recuperado: %v", r)
			panic(r)
		}
	}()

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(a.Config.WindowWidth, a.Config.WindowHeight, a.Config.WindowTitle)
	rl.SetTraceLogLevel(rl.LogWarning)

	if a.Config.Fullscreen {
		rl.ToggleFullscreen()
	}

	rl.SetTargetFPS(a.Config.TargetFPS)
	rl.SetExitKey(0)

	a.Cam = camera.New()

	log.Println("[ObjToSchematic] Janela inicializada com sucesso")
	log.Printf("[ObjToSchematic] Resolução: %dx%d", a.Config.WindowWidth, a.Config.WindowHeight)

	a.renderer = render.NewRenderer(a.Cam)
	a.applyConfigToggles()

	// Cache de voxelizações em disco
	if a.Config.CachePath != "" {
		store, err := project.Open(a.Config.CachePath)
		if err != nil {
			log.Printf("[App] Cache indisponível (%v), seguindo sem cache", err)
		} else {
			a.store = store
		}
	}

	// Worker remoto de voxelização, se configurado
	if a.Config.WorkerURL != "" {
		a.connectWorker()
	} else {
		log.Printf("[App] Pipeline local com %d threads (CPU Cores: %d)",
			a.pipelineThreads(), runtime.NumCPU())
	}

	if a.startupModel != "" {
		a.loadModel(a.startupModel)
	}

	for !rl.WindowShouldClose() {
		a.update()
		a.draw()
	}

	a.shutdown()
	rl.CloseWindow()
}

// applyConfigToggles sincroniza os toggles persistidos com o renderer,
// que nasce com grid e eixos ligados.
func (a *App) applyConfigToggles() {
	if !a.Config.ShowGrid {
		a.renderer.ToggleGrid()
	}
	if !a.Config.ShowAxes {
		a.renderer.ToggleAxes()
	}
	if a.Config.WireframeMode {
		a.renderer.ToggleWireframe()
	}
}

// pipelineThreads resolve a contagem de workers da voxelização.
func (a *App) pipelineThreads() int {
	if a.Config.VoxeliserThreads > 0 {
		return a.Config.VoxeliserThreads
	}
	return runtime.NumCPU()
}

// update atualiza a lógica do editor a cada frame.
func (a *App) update() {
	a.frameCount++

	a.updateCamera()
	a.updateInput()
	a.updateDroppedFiles()
	a.processPipelineEvents()
	a.processMaterialEdits()
}

// shutdown realiza a limpeza de recursos.
func (a *App) shutdown() {
	log.Println("[App] Finalizando aplicação...")

	if a.netClient != nil {
		a.netClient.Close()
	}
	if a.store != nil {
		a.store.Close()
	}
	if a.renderer != nil {
		a.renderer.Unload()
	}

	if err := a.Config.Save(); err != nil {
		log.Printf("[ObjToSchematic] Erro ao salvar configurações: %v", err)
	}
}
