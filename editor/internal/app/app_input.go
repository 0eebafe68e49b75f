package app

import (
	"log"

	"github.com/0-zen/ObjToSchematic/editor/internal/camera"
	"github.com/0-zen/ObjToSchematic/editor/internal/render"
	"github.com/0-zen/ObjToSchematic/shared/mesh"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// updateCamera atualiza a câmera baseado no input.
func (a *App) updateCamera() {
	dt := rl.GetFrameTime()

	a.Cam.HandleInput(dt)
	a.renderer.Update(dt)

	// Alternar projeção com P
	if rl.IsKeyPressed(rl.KeyP) {
		if a.Cam.Mode == camera.ModePerspective {
			a.Cam.SetMode(camera.ModeOrthographic)
			log.Println("[Camera] Modo Ortográfico")
		} else {
			a.Cam.SetMode(camera.ModePerspective)
			log.Println("[Camera] Modo Perspectiva")
		}
	}
}

// updateInput processa entradas de teclado gerais.
func (a *App) updateInput() {
	// Seleção de estágio (1: triângulos, 2: voxels, 3: blocos)
	if rl.IsKeyPressed(rl.KeyOne) {
		a.renderer.SetModelToUse(render.MeshTriangle)
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		a.renderer.SetModelToUse(render.MeshVoxel)
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		a.renderer.SetModelToUse(render.MeshBlock)
	}

	// Disparo da pipeline e exportação
	if rl.IsKeyPressed(rl.KeyV) || rl.IsKeyPressed(rl.KeyEnter) {
		a.startVoxelise()
	}
	if rl.IsKeyPressed(rl.KeyE) {
		a.exportSchematic()
	}

	// Toggle grid
	if rl.IsKeyPressed(rl.KeyG) {
		a.renderer.ToggleGrid()
		a.Config.ShowGrid = a.renderer.IsGridEnabled()
	}

	// Toggle eixos
	if rl.IsKeyPressed(rl.KeyX) {
		a.renderer.ToggleAxes()
		a.Config.ShowAxes = a.renderer.IsAxesEnabled()
	}

	// Night vision (só tem efeito no estágio de blocos)
	if rl.IsKeyPressed(rl.KeyN) {
		a.renderer.ToggleNightVision()
	}

	// Filtragem de textura dos materiais (coalescida pela fila)
	if rl.IsKeyPressed(rl.KeyT) {
		a.toggleTextureFiltering()
	}

	// Toggle debug info
	if rl.IsKeyPressed(rl.KeyF3) {
		a.Config.ShowDebugInfo = !a.Config.ShowDebugInfo
	}

	// Toggle wireframe
	if rl.IsKeyPressed(rl.KeyF4) {
		a.renderer.ToggleWireframe()
		a.Config.WireframeMode = a.renderer.IsWireframeEnabled()
	}

	// Toggle de normais e debug de desenvolvimento
	if rl.IsKeyPressed(rl.KeyF5) {
		a.renderer.ToggleNormals()
	}
	if rl.IsKeyPressed(rl.KeyF10) {
		a.renderer.ToggleDevDebug()
	}

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
}

// updateDroppedFiles importa modelos arrastados para a janela.
func (a *App) updateDroppedFiles() {
	if !rl.IsFileDropped() {
		return
	}
	files := rl.LoadDroppedFiles()
	defer rl.UnloadDroppedFiles()

	if len(files) == 0 {
		return
	}
	// Com múltiplos arquivos, só o primeiro vale
	a.loadModel(files[0])
}

// toggleTextureFiltering alterna linear/nearest em todos os materiais
// texturizados do modelo carregado.
func (a *App) toggleTextureFiltering() {
	if a.triMesh == nil {
		return
	}
	for name, mat := range a.triMesh.Materials {
		if mat.Kind != mesh.MaterialTextured {
			continue
		}
		if mat.Interpolation == mesh.FilterLinear {
			mat.Interpolation = mesh.FilterNearest
		} else {
			mat.Interpolation = mesh.FilterLinear
		}
		a.triMesh.Materials[name] = mat
		a.materialEdits.Enqueue(name, mat)
	}
}
