package app

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/0-zen/ObjToSchematic/editor/internal/client"
	"github.com/0-zen/ObjToSchematic/shared/pipeline"
	"github.com/0-zen/ObjToSchematic/shared/blocks"
	"github.com/0-zen/ObjToSchematic/shared/mesh"
	"github.com/0-zen/ObjToSchematic/shared/project"
	"github.com/0-zen/ObjToSchematic/shared/schematic"
	"github.com/0-zen/ObjToSchematic/shared/voxel"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// overlapRule converte a regra persistida no config para o tipo do mesh.
func (a *App) overlapRule() voxel.OverlapRule {
	if strings.EqualFold(a.Config.OverlapRule, "first") {
		return voxel.OverlapFirst
	}
	return voxel.OverlapAverage
}

// loadModel importa um modelo e o entrega ao renderer no estágio de
// triângulos. Roda na thread principal (upload de GPU).
func (a *App) loadModel(path string) {
	if a.pipelineBusy {
		log.Printf("[App] Pipeline em andamento, ignorando carga de %s", path)
		return
	}

	tm, err := mesh.LoadModel(path)
	if err != nil {
		log.Printf("[App] Falha ao importar %s: %v", path, err)
		a.statusLine = fmt.Sprintf("Falha ao importar: %v", err)
		a.statusIsError = true
		return
	}

	a.modelPath = path
	a.triMesh = tm
	a.triangleCount = tm.TriangleCount()
	a.lastBlockMesh = nil
	a.voxelCount = 0

	a.renderer.UseMesh(tm.BuildTriangleBuffers())

	// Enquadra a câmera no modelo recém carregado
	min, max := tm.Bounds()
	radius := max.Sub(min).Len() / 2
	if radius > 0 {
		a.Cam.FrameModel(radius)
	}

	if a.store != nil {
		a.store.TouchRecent(path)
	}

	a.State = StateViewing
	a.statusLine = fmt.Sprintf("%s (%d triângulos, %d materiais)",
		filepath.Base(path), a.triangleCount, len(tm.Materials))
	a.statusIsError = false
	log.Printf("[App] Modelo carregado: %s (%d triângulos)", path, a.triangleCount)
}

// startVoxelise dispara a pipeline, local ou no worker remoto.
func (a *App) startVoxelise() {
	if a.pipelineBusy {
		return
	}
	if a.modelPath == "" {
		a.statusLine = "Nenhum modelo carregado"
		a.statusIsError = true
		return
	}

	a.pipelineBusy = true
	a.State = StateProcessing
	a.statusIsError = false
	a.lastBlockMesh = nil

	if a.netClient != nil && a.netClient.IsConnected() {
		log.Printf("[App] Enviando %s para o worker", a.modelPath)
		a.netClient.RequestVoxelise(a.modelPath, a.Config.TargetSize,
			a.overlapRule(), a.Config.AmbientOcclusion, a.Config.VoxelSize,
			a.Config.PalettePath, a.Config.AtlasPath)
		return
	}

	go a.runLocalPipeline(a.modelPath, a.triMesh)
}

// runLocalPipeline executa a pipeline completa em uma goroutine e entrega
// os resultados por eventos; nada aqui toca a GPU.
func (a *App) runLocalPipeline(modelPath string, tm *mesh.TriMesh) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro na pipeline: %v", r)
			a.events <- pipelineEvent{status: "voxelise", detail: fmt.Sprint(r), isError: true, done: true}
		}
	}()

	emit := func(ev pipelineEvent) { a.events <- ev }

	vm, err := a.voxeliseWithCache(modelPath, tm, emit)
	if err != nil {
		emit(pipelineEvent{status: "voxelise", detail: err.Error(), isError: true, done: true})
		return
	}

	voxelSize := a.Config.VoxelSize
	if voxelSize <= 0 {
		voxelSize = 1.0
	}

	emit(pipelineEvent{status: "buffer-voxels", voxelCount: vm.VoxelCount()})
	vb := pipeline.NewVoxelBufferer(vm, voxelSize, 0)
	for {
		chunk, ok := vb.NextChunk()
		if !ok {
			break
		}
		c := chunk
		emit(pipelineEvent{voxelChunk: &c})
	}

	emit(pipelineEvent{status: "assign"})
	palette, err := a.loadPalette()
	if err != nil {
		emit(pipelineEvent{status: "assign", detail: err.Error(), isError: true, done: true})
		return
	}
	bm, err := pipeline.AssignBlocks(vm, palette)
	if err != nil {
		emit(pipelineEvent{status: "assign", detail: err.Error(), isError: true, done: true})
		return
	}

	atlas, err := a.loadAtlas(palette)
	if err != nil {
		emit(pipelineEvent{status: "assign", detail: err.Error(), isError: true, done: true})
		return
	}

	emit(pipelineEvent{status: "buffer-blocks"})
	bb := pipeline.NewBlockBufferer(bm, atlas, voxelSize, 0)
	for {
		chunk, ok := bb.NextChunk()
		if !ok {
			break
		}
		c := chunk
		emit(pipelineEvent{blockChunk: &c})
	}

	emit(pipelineEvent{status: "done", blockMesh: bm, done: true})
}

// voxeliseWithCache consulta o cache em disco antes de voxelizar e grava
// o resultado quando precisa recomputar.
func (a *App) voxeliseWithCache(modelPath string, tm *mesh.TriMesh, emit func(pipelineEvent)) (*voxel.Mesh, error) {
	rule := a.overlapRule()

	var key string
	if a.store != nil {
		k, err := project.CacheKey(modelPath, a.Config.TargetSize, rule, a.Config.AmbientOcclusion)
		if err == nil {
			key = k
			if vm, ok := a.store.LoadVoxelisation(key); ok {
				log.Printf("[App] Voxelização recuperada do cache (%s)", key)
				emit(pipelineEvent{status: "voxelise", detail: "cache"})
				return vm, nil
			}
		}
	}

	emit(pipelineEvent{status: "voxelise"})
	voxeliser := pipeline.NewVoxeliser(pipeline.VoxeliseParams{
		TargetSize:       a.Config.TargetSize,
		Rule:             rule,
		AmbientOcclusion: a.Config.AmbientOcclusion,
		Threads:          a.Config.VoxeliserThreads,
	}, tm.Materials)

	vm, err := voxeliser.Voxelise(context.Background(), tm)
	if err != nil {
		return nil, err
	}

	if a.store != nil && key != "" {
		if err := a.store.SaveVoxelisation(key, modelPath, a.Config.TargetSize, vm); err != nil {
			log.Printf("[App] Falha ao gravar cache: %v", err)
		}
	}
	return vm, nil
}

func (a *App) loadPalette() (*blocks.Palette, error) {
	if a.Config.PalettePath == "" {
		return blocks.DefaultPalette(), nil
	}
	return blocks.LoadPalette(a.Config.PalettePath)
}

func (a *App) loadAtlas(palette *blocks.Palette) (*blocks.Atlas, error) {
	if a.Config.AtlasPath == "" {
		return blocks.NewGridAtlas("assets/atlas.png", 8, palette.Names())
	}
	return blocks.LoadAtlas(a.Config.AtlasPath)
}

// processPipelineEvents consome eventos da pipeline e sobe geometria para
// a GPU com um orçamento de tempo por frame, para não travar o desenho.
func (a *App) processPipelineEvents() {
	timeBudget := 0.004 // 4 milissegundos por frame
	if a.State == StateProcessing {
		timeBudget = 0.016 // Durante o processamento toleramos um frame cheio
	}

	startTime := rl.GetTime()

	for {
		if rl.GetTime()-startTime > timeBudget {
			return
		}

		select {
		case ev := <-a.events:
			a.applyPipelineEvent(ev)
		default:
			return
		}
	}
}

func (a *App) applyPipelineEvent(ev pipelineEvent) {
	switch {
	case ev.voxelChunk != nil:
		a.renderer.UseVoxelMeshChunk(*ev.voxelChunk)
	case ev.blockChunk != nil:
		a.renderer.UseBlockMeshChunk(*ev.blockChunk)
	}

	if ev.voxelCount > 0 {
		a.voxelCount = ev.voxelCount
	}
	if ev.blockMesh != nil {
		a.lastBlockMesh = ev.blockMesh
	}

	if ev.status != "" {
		a.statusIsError = ev.isError
		if ev.isError {
			a.statusLine = fmt.Sprintf("Erro (%s): %s", ev.status, ev.detail)
			log.Printf("[Pipeline] Erro em %s: %s", ev.status, ev.detail)
		} else {
			a.statusLine = statusText(ev.status, ev.detail)
		}
	}

	if ev.done {
		a.pipelineBusy = false
		a.State = StateViewing
		if !ev.isError {
			log.Printf("[Pipeline] Concluída: %d voxels", a.voxelCount)
		}
	}
}

// statusText traduz as fases da pipeline para a HUD.
func statusText(phase, detail string) string {
	switch phase {
	case "import":
		return "Importando modelo..."
	case "voxelise":
		if detail == "cache" {
			return "Voxelização recuperada do cache"
		}
		return "Voxelizando..."
	case "buffer-voxels":
		return "Montando malha de voxels..."
	case "assign":
		return "Atribuindo blocos da paleta..."
	case "buffer-blocks":
		return "Montando malha de blocos..."
	case "done":
		return "Pipeline concluída"
	}
	return phase
}

// processMaterialEdits aplica as edições de material pendentes. A fila
// coalesce por nome, então só a última edição de cada material chega aqui.
func (a *App) processMaterialEdits() {
	for {
		name, mat, ok := a.materialEdits.Dequeue()
		if !ok {
			return
		}
		if mat.Kind == mesh.MaterialTextured {
			a.renderer.UpdateMeshMaterialTexture(name, mat)
		} else {
			a.renderer.RecreateMaterialBuffer(name, mat)
		}
	}
}

// connectWorker cria o cliente do worker e instala os callbacks que
// redirecionam chunks e status para a fila de eventos. Roda na thread
// principal: netClient é lido pelo loop sem sincronização, então a
// atribuição precisa acontecer antes de qualquer leitura. Só o handshake
// vai para uma goroutine.
func (a *App) connectWorker() {
	nc := client.NewWorkerClient(a.Config.WorkerURL)

	nc.OnStatus = func(phase, detail string, isError bool) {
		done := isError || phase == "done"
		a.events <- pipelineEvent{status: phase, detail: detail, isError: isError, done: done}
	}
	nc.OnVoxelChunk = func(chunk mesh.VoxelMeshChunk) {
		c := chunk
		a.events <- pipelineEvent{voxelChunk: &c}
	}
	nc.OnBlockChunk = func(chunk mesh.BlockMeshChunk) {
		c := chunk
		a.events <- pipelineEvent{blockChunk: &c}
	}

	a.netClient = nc

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[PANIC] Erro ao conectar no worker: %v", r)
			}
		}()
		if err := nc.Connect(); err != nil {
			log.Printf("[Worker] Erro ao conectar: %v", err)
			return
		}
		log.Printf("[Worker] Conectado a %s", a.Config.WorkerURL)
	}()
}

// exportSchematic grava o resultado da última voxelização em .schem.
// Sem resultado em memória, tenta reconstruir a partir do cache.
func (a *App) exportSchematic() {
	if a.modelPath == "" {
		a.statusLine = "Nenhum modelo carregado"
		a.statusIsError = true
		return
	}

	bm := a.lastBlockMesh
	if bm == nil {
		var err error
		bm, err = a.rebuildBlockMesh()
		if err != nil {
			a.statusLine = fmt.Sprintf("Exportação falhou: %v", err)
			a.statusIsError = true
			log.Printf("[Export] %v", err)
			return
		}
	}

	outPath := strings.TrimSuffix(a.modelPath, filepath.Ext(a.modelPath)) + ".schem"
	if err := schematic.Export(bm, outPath); err != nil {
		a.statusLine = fmt.Sprintf("Exportação falhou: %v", err)
		a.statusIsError = true
		log.Printf("[Export] Falha ao gravar %s: %v", outPath, err)
		return
	}

	a.statusLine = fmt.Sprintf("Exportado: %s", filepath.Base(outPath))
	a.statusIsError = false
	log.Printf("[Export] Schematic gravado em %s", outPath)
}

// rebuildBlockMesh refaz a atribuição de blocos para exportação. Cobre o
// modo worker, onde o block mesh vive fora do processo: tenta o cache em
// disco e, na falta dele, voxeliza localmente de forma síncrona.
func (a *App) rebuildBlockMesh() (*pipeline.BlockMesh, error) {
	var vm *voxel.Mesh

	if a.store != nil {
		key, err := project.CacheKey(a.modelPath, a.Config.TargetSize, a.overlapRule(), a.Config.AmbientOcclusion)
		if err == nil {
			if cached, ok := a.store.LoadVoxelisation(key); ok {
				vm = cached
			}
		}
	}

	if vm == nil {
		if a.triMesh == nil {
			return nil, fmt.Errorf("voxelize o modelo antes de exportar")
		}
		log.Printf("[Export] Sem voxelização em cache, recomputando localmente")
		rebuilt, err := a.voxeliseWithCache(a.modelPath, a.triMesh, func(pipelineEvent) {})
		if err != nil {
			return nil, err
		}
		vm = rebuilt
	}

	palette, err := a.loadPalette()
	if err != nil {
		return nil, err
	}
	return pipeline.AssignBlocks(vm, palette)
}
