package render

import (
	"log"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/0-zen/ObjToSchematic/shared/mesh"
	"github.com/0-zen/ObjToSchematic/shared/util"
)

// MeshType é a escada de estágios da pipeline. Cada estágio só se torna
// selecionável depois que os seus buffers chegam ao renderizador.
type MeshType int

const (
	MeshNone MeshType = iota
	MeshTriangle
	MeshVoxel
	MeshBlock
)

func (t MeshType) String() string {
	switch t {
	case MeshTriangle:
		return "triangle"
	case MeshVoxel:
		return "voxel"
	case MeshBlock:
		return "block"
	default:
		return "none"
	}
}

// ingestState acompanha a ingestão incremental de chunks de um estágio.
type ingestState int

const (
	ingestEmpty ingestState = iota
	ingestReceiving
	ingestComplete
)

// CameraProvider é o que o renderizador precisa da câmera. O eixo
// alinhado é 'x' ou 'z'; qualquer outra orientação reporta aligned
// como falso.
type CameraProvider interface {
	Update(dt float32)
	Camera3D() rl.Camera3D
	Position() rl.Vector3
	SetAspect(aspect float32)
	IsUserRotating() bool
	AlignedAxis() (axis byte, aligned bool)
}

// Renderer é o contexto de renderização do editor, construído uma vez
// no arranque e injetado em quem precisar. Guarda os buffers de cada
// estágio da pipeline e a marca d'água de estágios disponíveis.
//
// A mutação de estado e o desenho acontecem na thread principal; o
// mutex existe para que os testes e a ingestão via fila possam
// inspecionar o estado com segurança.
type Renderer struct {
	mu  sync.RWMutex
	cam CameraProvider

	modelsAvailable MeshType
	meshToUse       MeshType

	// Estágio de triângulos: um buffer por material, em ordem estável.
	materialBuffers map[string]*MaterialBuffer
	materialOrder   []string

	// Estágio de voxels: lista ordenada de chunks.
	voxelModels []gpuModel
	voxelIngest ingestState
	voxelSize   float32
	voxelDims   util.Vector3i

	// Estágio de blocos.
	blockModels  []gpuModel
	blockIngest  ingestState
	atlasTexture rl.Texture2D
	hasAtlas     bool
	atlasSize    float32

	grid *gridBuffers

	gridEnabled        bool
	axesEnabled        bool
	nightVisionEnabled bool
	wireframeEnabled   bool
	normalsEnabled     bool
	devDebugEnabled    bool

	solidTriShader    rl.Shader
	texturedTriShader rl.Shader
	voxelShader       rl.Shader
	blockShader       rl.Shader
	shadersLoaded     bool

	solidCamPosLoc      int32
	solidFresnelExpLoc  int32
	solidFresnelMixLoc  int32
	texCamPosLoc        int32
	texFresnelExpLoc    int32
	texFresnelMixLoc    int32
	texAlphaFactorLoc   int32
	texUseAlphaMapLoc   int32
	texAlphaMapLoc      int32
	voxelAOLoc          int32
	blockNightVisionLoc int32
}

// NewRenderer cria o contexto de renderização. Os shaders só são
// compilados se houver uma janela ativa; sem janela o renderizador
// funciona como máquina de estado pura, o que os testes exploram.
func NewRenderer(cam CameraProvider) *Renderer {
	r := &Renderer{
		cam:             cam,
		materialBuffers: make(map[string]*MaterialBuffer),
		gridEnabled:     true,
		axesEnabled:     true,
	}

	if rl.IsWindowReady() {
		r.solidTriShader = rl.LoadShaderFromMemory(solidTriVertexShader, solidTriFragmentShader)
		r.texturedTriShader = rl.LoadShaderFromMemory(texturedTriVertexShader, texturedTriFragmentShader)
		r.voxelShader = rl.LoadShaderFromMemory(voxelVertexShader, voxelFragmentShader)
		r.blockShader = rl.LoadShaderFromMemory(blockVertexShader, blockFragmentShader)
		r.shadersLoaded = true

		r.solidCamPosLoc = rl.GetShaderLocation(r.solidTriShader, "camPos")
		r.solidFresnelExpLoc = rl.GetShaderLocation(r.solidTriShader, "fresnelExponent")
		r.solidFresnelMixLoc = rl.GetShaderLocation(r.solidTriShader, "fresnelMix")

		r.texCamPosLoc = rl.GetShaderLocation(r.texturedTriShader, "camPos")
		r.texFresnelExpLoc = rl.GetShaderLocation(r.texturedTriShader, "fresnelExponent")
		r.texFresnelMixLoc = rl.GetShaderLocation(r.texturedTriShader, "fresnelMix")
		r.texAlphaFactorLoc = rl.GetShaderLocation(r.texturedTriShader, "alphaFactor")
		r.texUseAlphaMapLoc = rl.GetShaderLocation(r.texturedTriShader, "useAlphaMap")
		r.texAlphaMapLoc = rl.GetShaderLocation(r.texturedTriShader, "alphaMap")

		r.voxelAOLoc = rl.GetShaderLocation(r.voxelShader, "ambientOcclusion")
		r.blockNightVisionLoc = rl.GetShaderLocation(r.blockShader, "nightVision")

		log.Printf("[Renderer] Shaders compilados")
	}

	return r
}

// UseMesh substitui por inteiro os buffers de materiais do estágio de
// triângulos. A grade é redimensionada para a caixa delimitadora da
// malha e o estágio ativo passa a ser o de triângulos.
func (r *Renderer) UseMesh(buffers []mesh.MaterialGeometry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.materialBuffers {
		b.unload()
	}
	r.materialBuffers = make(map[string]*MaterialBuffer, len(buffers))
	r.materialOrder = r.materialOrder[:0]

	min := rl.Vector3{}
	max := rl.Vector3{}
	hasBounds := false

	for _, mg := range buffers {
		r.materialBuffers[mg.Name] = newMaterialBuffer(mg.Name, mg)
		r.materialOrder = append(r.materialOrder, mg.Name)

		for i := 0; i+2 < len(mg.Geometry.Vertices); i += 3 {
			v := rl.Vector3{
				X: mg.Geometry.Vertices[i],
				Y: mg.Geometry.Vertices[i+1],
				Z: mg.Geometry.Vertices[i+2],
			}
			if !hasBounds {
				min, max = v, v
				hasBounds = true
				continue
			}
			if v.X < min.X {
				min.X = v.X
			}
			if v.Y < min.Y {
				min.Y = v.Y
			}
			if v.Z < min.Z {
				min.Z = v.Z
			}
			if v.X > max.X {
				max.X = v.X
			}
			if v.Y > max.Y {
				max.Y = v.Y
			}
			if v.Z > max.Z {
				max.Z = v.Z
			}
		}
	}

	if hasBounds {
		spacing := (max.X - min.X) / 10
		if spacing <= 0 {
			spacing = 1
		}
		r.grid = buildGridFromBox(min, max, spacing)
	}

	if r.modelsAvailable < MeshTriangle {
		r.modelsAvailable = MeshTriangle
	}
	r.meshToUse = MeshTriangle

	log.Printf("[Renderer] Malha de triângulos carregada: %d materiais", len(buffers))
}

// UseVoxelMeshChunk ingere um chunk do estágio de voxels. O primeiro
// chunk descarta a lista anterior, reconstrói a grade e avança a marca
// d'água; os seguintes só anexam. O sombreamento de AO fica desligado
// até o último chunk chegar.
func (r *Renderer) UseVoxelMeshChunk(chunk mesh.VoxelMeshChunk) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if chunk.IsFirstChunk {
		for i := range r.voxelModels {
			r.voxelModels[i].unload()
		}
		r.voxelModels = r.voxelModels[:0]
		r.voxelSize = chunk.VoxelSize
		r.voxelDims = chunk.Dimensions
		r.grid = buildGridForVoxels(chunk.Dimensions, chunk.VoxelSize)

		if r.modelsAvailable < MeshVoxel {
			r.modelsAvailable = MeshVoxel
		}
		r.meshToUse = MeshVoxel
	}

	r.voxelModels = append(r.voxelModels, uploadGeometry(chunk.Geometry))
	if chunk.MoreVoxelsToBuffer {
		r.voxelIngest = ingestReceiving
	} else {
		r.voxelIngest = ingestComplete
	}
}

// UseBlockMeshChunk ingere um chunk do estágio de blocos. O primeiro
// chunk também carrega o atlas de texturas e seu tamanho de célula.
func (r *Renderer) UseBlockMeshChunk(chunk mesh.BlockMeshChunk) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if chunk.IsFirstChunk {
		for i := range r.blockModels {
			r.blockModels[i].unload()
		}
		r.blockModels = r.blockModels[:0]

		if r.hasAtlas {
			rl.UnloadTexture(r.atlasTexture)
			r.hasAtlas = false
		}
		r.atlasTexture, r.hasAtlas = loadTexture(chunk.AtlasTexturePath, mesh.FilterNearest, mesh.WrapClamp)
		r.atlasSize = chunk.AtlasSize

		if r.modelsAvailable < MeshBlock {
			r.modelsAvailable = MeshBlock
		}
		r.meshToUse = MeshBlock
		r.blockIngest = ingestReceiving
	}

	r.blockModels = append(r.blockModels, uploadGeometry(chunk.Geometry))
}

// RecreateMaterialBuffer troca o material de um buffer existente sem
// tocar na geometria. Nome desconhecido é bug do chamador.
func (r *Renderer) RecreateMaterialBuffer(name string, mat mesh.Material) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.materialBuffers[name]
	if !ok {
		log.Panicf("[Renderer] RecreateMaterialBuffer para material inexistente: %q", name)
	}
	b.setMaterial(mat)
}

// UpdateMeshMaterialTexture recarrega só as texturas de um material
// existente. Nome desconhecido é bug do chamador.
func (r *Renderer) UpdateMeshMaterialTexture(name string, mat mesh.Material) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.materialBuffers[name]
	if !ok {
		log.Panicf("[Renderer] UpdateMeshMaterialTexture para material inexistente: %q", name)
	}
	b.setMaterial(mat)
}

// ClearMesh descarta todos os buffers de todos os estágios e devolve a
// marca d'água para o início.
func (r *Renderer) ClearMesh() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.materialBuffers {
		b.unload()
	}
	r.materialBuffers = make(map[string]*MaterialBuffer)
	r.materialOrder = r.materialOrder[:0]

	for i := range r.voxelModels {
		r.voxelModels[i].unload()
	}
	r.voxelModels = r.voxelModels[:0]
	r.voxelIngest = ingestEmpty

	for i := range r.blockModels {
		r.blockModels[i].unload()
	}
	r.blockModels = r.blockModels[:0]
	r.blockIngest = ingestEmpty
	if r.hasAtlas {
		rl.UnloadTexture(r.atlasTexture)
		r.hasAtlas = false
	}

	r.grid = nil
	r.voxelSize = 0
	r.voxelDims = util.Vector3i{}
	r.modelsAvailable = MeshNone
	r.meshToUse = MeshNone
}

// SetModelToUse troca o estágio exibido. Pedidos além da marca d'água
// são ignorados em silêncio, para que a UI possa alternar sem checar.
func (r *Renderer) SetModelToUse(t MeshType) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t > r.modelsAvailable {
		return
	}
	r.meshToUse = t
}

// ModelsAvailable devolve a marca d'água de estágios carregados.
func (r *Renderer) ModelsAvailable() MeshType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.modelsAvailable
}

// ActiveMeshType devolve o estágio exibido no momento.
func (r *Renderer) ActiveMeshType() MeshType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.meshToUse
}

// MaterialBufferCount devolve quantos buffers de material existem.
func (r *Renderer) MaterialBufferCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.materialBuffers)
}

// VoxelChunkCount devolve quantos chunks de voxels foram anexados.
func (r *Renderer) VoxelChunkCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.voxelModels)
}

// BlockChunkCount devolve quantos chunks de blocos foram anexados.
func (r *Renderer) BlockChunkCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.blockModels)
}

// AllVoxelChunksLoaded informa se o estágio de voxels terminou de chegar.
func (r *Renderer) AllVoxelChunksLoaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.voxelIngest == ingestComplete
}

// GridSegmentCount devolve o total de segmentos da grade atual.
func (r *Renderer) GridSegmentCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.grid == nil {
		return 0
	}
	return r.grid.segments
}

// ToggleGrid alterna a visibilidade da grade de referência.
func (r *Renderer) ToggleGrid() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gridEnabled = !r.gridEnabled
}

// IsGridEnabled informa se a grade está visível.
func (r *Renderer) IsGridEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gridEnabled
}

// ToggleAxes alterna o gizmo de eixos.
func (r *Renderer) ToggleAxes() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.axesEnabled = !r.axesEnabled
}

// IsAxesEnabled informa se o gizmo de eixos está visível.
func (r *Renderer) IsAxesEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.axesEnabled
}

// ToggleNightVision alterna a visão noturna. Só tem efeito quando o
// estágio ativo tem iluminação própria; nos demais estágios a visão
// noturna volta a ficar forçada.
func (r *Renderer) ToggleNightVision() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.meshToUse == MeshBlock {
		r.nightVisionEnabled = !r.nightVisionEnabled
	}
}

// IsNightVisionEnabled informa o estado efetivo da visão noturna:
// forçada quando o estágio ativo não tem iluminação.
func (r *Renderer) IsNightVisionEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.meshToUse != MeshBlock {
		return true
	}
	return r.nightVisionEnabled
}

// ToggleWireframe alterna o modo wireframe.
func (r *Renderer) ToggleWireframe() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wireframeEnabled = !r.wireframeEnabled
}

// IsWireframeEnabled informa se o modo wireframe está ativo.
func (r *Renderer) IsWireframeEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.wireframeEnabled
}

// ToggleNormals alterna a depuração de normais no HUD.
func (r *Renderer) ToggleNormals() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalsEnabled = !r.normalsEnabled
}

// IsNormalsEnabled informa se a depuração de normais está ativa.
func (r *Renderer) IsNormalsEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.normalsEnabled
}

// ToggleDevDebug alterna o overlay de depuração.
func (r *Renderer) ToggleDevDebug() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devDebugEnabled = !r.devDebugEnabled
}

// IsDevDebugEnabled informa se o overlay de depuração está ativo.
func (r *Renderer) IsDevDebugEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.devDebugEnabled
}

// Update avança a câmera. Chamado uma vez por frame, antes de Draw.
func (r *Renderer) Update(dt float32) {
	if r.cam != nil {
		r.cam.Update(dt)
	}
}

// Draw desenha o estágio ativo e os overlays. Deve ser chamado entre
// BeginMode3D e EndMode3D, na thread principal.
func (r *Renderer) Draw() {
	if !r.shadersLoaded {
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.cam != nil {
		w := float32(rl.GetScreenWidth())
		h := float32(rl.GetScreenHeight())
		if h > 0 {
			r.cam.SetAspect(w / h)
		}
	}

	if r.wireframeEnabled {
		rl.EnableWireMode()
		defer rl.DisableWireMode()
	}

	switch r.meshToUse {
	case MeshTriangle:
		r.drawTriangleMesh()
	case MeshVoxel:
		r.drawVoxelMesh()
	case MeshBlock:
		r.drawBlockMesh()
	}

	r.drawOverlays()
}

func (r *Renderer) drawTriangleMesh() {
	camPos := rl.Vector3{}
	if r.cam != nil {
		camPos = r.cam.Position()
	}
	camVec := []float32{camPos.X, camPos.Y, camPos.Z}
	fresnelExp := []float32{3.0}
	fresnelMix := []float32{0.2}

	for _, name := range r.materialOrder {
		b := r.materialBuffers[name]
		if b == nil || !b.model.uploaded {
			continue
		}

		switch b.Material.Kind {
		case mesh.MaterialTextured:
			rl.SetShaderValue(r.texturedTriShader, r.texCamPosLoc, camVec, rl.ShaderUniformVec3)
			rl.SetShaderValue(r.texturedTriShader, r.texFresnelExpLoc, fresnelExp, rl.ShaderUniformFloat)
			rl.SetShaderValue(r.texturedTriShader, r.texFresnelMixLoc, fresnelMix, rl.ShaderUniformFloat)
			rl.SetShaderValue(r.texturedTriShader, r.texAlphaFactorLoc,
				[]float32{b.Material.AlphaFactor}, rl.ShaderUniformFloat)

			useAlpha := float32(0)
			if b.hasAlphaTex {
				useAlpha = 1
				rl.SetShaderValueTexture(r.texturedTriShader, r.texAlphaMapLoc, b.alphaTex)
			}
			rl.SetShaderValue(r.texturedTriShader, r.texUseAlphaMapLoc,
				[]float32{useAlpha}, rl.ShaderUniformFloat)

			r.applyShaderAndTexture(&b.model.model, r.texturedTriShader, b.texture, b.hasTexture)
		default:
			rl.SetShaderValue(r.solidTriShader, r.solidCamPosLoc, camVec, rl.ShaderUniformVec3)
			rl.SetShaderValue(r.solidTriShader, r.solidFresnelExpLoc, fresnelExp, rl.ShaderUniformFloat)
			rl.SetShaderValue(r.solidTriShader, r.solidFresnelMixLoc, fresnelMix, rl.ShaderUniformFloat)

			r.applyShaderAndTexture(&b.model.model, r.solidTriShader, rl.Texture2D{}, false)
		}

		tint := rl.White
		if b.Material.Kind == mesh.MaterialSolid {
			bytes := b.Material.Colour.Bytes()
			tint = rl.NewColor(bytes[0], bytes[1], bytes[2], bytes[3])
		}
		rl.DrawModel(b.model.model, rl.Vector3{}, 1.0, tint)
	}
}

func (r *Renderer) drawVoxelMesh() {
	ao := float32(0)
	if r.voxelIngest == ingestComplete {
		ao = 1
	}
	rl.SetShaderValue(r.voxelShader, r.voxelAOLoc, []float32{ao}, rl.ShaderUniformFloat)

	for i := range r.voxelModels {
		m := &r.voxelModels[i]
		if !m.uploaded {
			continue
		}
		r.applyShaderAndTexture(&m.model, r.voxelShader, rl.Texture2D{}, false)
		rl.DrawModel(m.model, rl.Vector3{}, 1.0, rl.White)
	}
}

func (r *Renderer) drawBlockMesh() {
	rl.EnableBackfaceCulling()
	defer rl.DisableBackfaceCulling()

	nv := float32(0)
	if r.nightVisionEnabled {
		nv = 1
	}
	rl.SetShaderValue(r.blockShader, r.blockNightVisionLoc, []float32{nv}, rl.ShaderUniformFloat)

	for i := range r.blockModels {
		m := &r.blockModels[i]
		if !m.uploaded {
			continue
		}
		r.applyShaderAndTexture(&m.model, r.blockShader, r.atlasTexture, r.hasAtlas)
		rl.DrawModel(m.model, rl.Vector3{}, 1.0, rl.White)
	}
}

func (r *Renderer) applyShaderAndTexture(model *rl.Model, shader rl.Shader, tex rl.Texture2D, hasTex bool) {
	if model.MaterialCount == 0 {
		return
	}
	materials := unsafeMaterials(model)
	materials[0].Shader = shader
	if hasTex {
		rl.SetMaterialTexture(&materials[0], rl.MapDiffuse, tex)
	}
}

// drawOverlays desenha a grade de referência e o gizmo de eixos. O
// plano da grade acompanha a câmera: alinhada a x ou z e parada, o
// plano perpendicular correspondente; caso contrário, o plano do chão.
func (r *Renderer) drawOverlays() {
	if r.gridEnabled && r.grid != nil {
		axis := gridAxisY
		if r.cam != nil && !r.cam.IsUserRotating() {
			if a, aligned := r.cam.AlignedAxis(); aligned {
				switch a {
				case 'x':
					axis = gridAxisX
				case 'z':
					axis = gridAxisZ
				}
			}
		}
		r.grid.draw(axis)
	}

	if r.axesEnabled {
		length := float32(1.0)
		if r.voxelSize > 0 {
			length = float32(util.Max(r.voxelDims.X, util.Max(r.voxelDims.Y, r.voxelDims.Z))) * r.voxelSize * 0.6
		}
		if length < 1 {
			length = 1
		}
		drawAxisGizmo(length)
	}
}

// Unload libera todos os recursos de GPU. Chamado no encerramento.
func (r *Renderer) Unload() {
	r.ClearMesh()

	if r.shadersLoaded {
		rl.UnloadShader(r.solidTriShader)
		rl.UnloadShader(r.texturedTriShader)
		rl.UnloadShader(r.voxelShader)
		rl.UnloadShader(r.blockShader)
		r.shadersLoaded = false
	}
}
