package app

import (
	"fmt"

	"github.com/0-zen/ObjToSchematic/editor/internal/camera"
	"github.com/0-zen/ObjToSchematic/editor/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// draw renderiza a cena.
func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(30, 30, 40, 255))

	a.drawScene()
	a.drawHUD()

	rl.EndDrawing()
}

// drawScene renderiza a cena 3D.
func (a *App) drawScene() {
	rl.BeginMode3D(a.Cam.Camera3D())
	a.renderer.Draw()
	rl.EndMode3D()
}

// drawHUD desenha a interface sobreposta.
func (a *App) drawHUD() {
	a.drawStatusBar()

	if a.Config.ShowDebugInfo {
		a.drawDebugPanel()
	}

	// Título no canto inferior direito
	title := "ObjToSchematic v0.1.0"
	titleWidth := rl.MeasureText(title, 18)
	rl.DrawText(title,
		int32(rl.GetScreenWidth())-titleWidth-20, int32(rl.GetScreenHeight())-30,
		18, rl.NewColor(200, 200, 200, 150))
}

// drawStatusBar desenha a barra inferior com o estado da pipeline e os
// estágios disponíveis.
func (a *App) drawStatusBar() {
	screenWidth := int32(rl.GetScreenWidth())
	screenHeight := int32(rl.GetScreenHeight())

	barHeight := int32(36)
	y := screenHeight - barHeight

	rl.DrawRectangle(0, y, screenWidth, barHeight, rl.NewColor(0, 0, 0, 180))
	rl.DrawLine(0, y, screenWidth, y, rl.NewColor(50, 50, 50, 255))

	statusColor := rl.LightGray
	if a.statusIsError {
		statusColor = rl.Red
	} else if a.State == StateProcessing {
		statusColor = rl.Orange
	}
	rl.DrawText(a.statusLine, 10, y+9, 18, statusColor)

	// Estágios: o ativo em destaque, os disponíveis em branco
	stages := []struct {
		label string
		t     render.MeshType
	}{
		{"1:Triângulos", render.MeshTriangle},
		{"2:Voxels", render.MeshVoxel},
		{"3:Blocos", render.MeshBlock},
	}

	x := screenWidth - 10
	for i := len(stages) - 1; i >= 0; i-- {
		s := stages[i]
		color := rl.DarkGray
		if a.renderer.ActiveMeshType() == s.t {
			color = rl.Gold
		} else if s.t <= a.renderer.ModelsAvailable() {
			color = rl.White
		}
		w := rl.MeasureText(s.label, 18)
		x -= w
		rl.DrawText(s.label, x, y+9, 18, color)
		x -= 16
	}
}

// drawDebugPanel desenha o painel de informações (F3).
func (a *App) drawDebugPanel() {
	width := int32(340)
	height := int32(230)
	x := int32(rl.GetScreenWidth()) - width - 10
	y := int32(10)

	rl.DrawRectangle(x, y, width, height, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(x, y, width, height, rl.NewColor(50, 50, 50, 255))

	// FPS
	fps := rl.GetFPS()
	fpsColor := rl.Green
	if fps < 30 {
		fpsColor = rl.Red
	} else if fps < 50 {
		fpsColor = rl.Yellow
	}
	rl.DrawText(fmt.Sprintf("FPS: %d", fps), x+10, y+10, 20, fpsColor)

	projStr := "Perspectiva"
	if a.Cam.Mode == camera.ModeOrthographic {
		projStr = "Ortográfica"
	}
	rl.DrawText(projStr, x+215, y+10, 20, rl.SkyBlue)

	rl.DrawLine(x+10, y+35, x+width-10, y+35, rl.NewColor(100, 100, 100, 100))

	rl.DrawText("MODELO", x+10, y+45, 12, rl.Gray)
	rl.DrawText(fmt.Sprintf("Triângulos: %d | Materiais: %d",
		a.triangleCount, a.renderer.MaterialBufferCount()), x+10, y+60, 16, rl.White)
	rl.DrawText(fmt.Sprintf("Voxels: %d", a.voxelCount), x+10, y+80, 16, rl.White)
	rl.DrawText(fmt.Sprintf("Chunks: %d voxel, %d bloco",
		a.renderer.VoxelChunkCount(), a.renderer.BlockChunkCount()), x+10, y+100, 14, rl.LightGray)

	if a.renderer.IsDevDebugEnabled() {
		rl.DrawLine(x+10, y+120, x+width-10, y+120, rl.NewColor(100, 100, 100, 100))
		rl.DrawText("RENDERER", x+10, y+127, 12, rl.Gray)
		rl.DrawText(fmt.Sprintf("Estágio: %s (máx: %s)",
			a.renderer.ActiveMeshType(), a.renderer.ModelsAvailable()), x+10, y+140, 14, rl.LightGray)
		rl.DrawText(fmt.Sprintf("Grid: %d segmentos | AO completo: %v",
			a.renderer.GridSegmentCount(), a.renderer.AllVoxelChunksLoaded()), x+10, y+157, 14, rl.LightGray)
	}

	rl.DrawLine(x+10, y+177, x+width-10, y+177, rl.NewColor(100, 100, 100, 100))
	rl.DrawText("CONTROLES", x+10, y+184, 12, rl.Gray)
	rl.DrawText("V: Voxelizar | E: Exportar | 1-3: Estágio", x+10, y+198, 14, rl.LightGray)

	wireframeExtra := ""
	if a.renderer.IsWireframeEnabled() {
		wireframeExtra = " [WIREFRAME]"
	}
	rl.DrawText(fmt.Sprintf("G: Grid | X: Eixos | N: Night Vision%s", wireframeExtra),
		x+10, y+213, 14, rl.SkyBlue)
}
