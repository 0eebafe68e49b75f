package voxel

import (
	"github.com/0-zen/ObjToSchematic/shared/util"
)

// OverlapRule define como resolver duas escritas na mesma coordenada.
type OverlapRule int

const (
	// OverlapFirst mantém a primeira cor escrita e ignora as seguintes.
	OverlapFirst OverlapRule = iota
	// OverlapAverage mantém a média incremental de todas as cores escritas.
	OverlapAverage
)

// Voxel é uma célula unitária em uma coordenada inteira.
type Voxel struct {
	Position util.Vector3i
	Colour   util.RGBA

	// neighbours é o cache preguiçoso de adjacência: cada bit corresponde a
	// um offset de util.NeighbourOffsets e só é ligado quando uma avaliação
	// de Neighbours registra a relação. Voxels nunca avaliados ficam com
	// a máscara zerada mesmo que tenham vizinhos físicos.
	neighbours uint32
}

// Neighbours descreve o resultado de uma consulta de adjacência:
// a ocupação de cada um dos 26 offsets e a contagem usada pelo AO.
type Neighbours struct {
	Mask  uint32
	Count int
}

// Has verifica se o offset informado estava ocupado na avaliação.
func (n Neighbours) Has(offset util.Vector3i) bool {
	idx := util.NeighbourIndex(offset)
	if idx < 0 {
		return false
	}
	return n.Mask&(1<<uint(idx)) != 0
}

// Mesh é o conjunto esparso de voxels de um modelo voxelizado.
// Mutação apenas por AddVoxel; não existe remoção.
type Mesh struct {
	rule             OverlapRule
	ambientOcclusion bool

	voxels map[util.Vector3i]*Voxel
	order  []util.Vector3i

	// samples conta quantas escritas cada coordenada recebeu (regra average).
	samples map[util.Vector3i]int

	bounds    util.Bounds
	hasBounds bool
}

// NewMesh cria um VoxelMesh vazio com a configuração fixa informada.
func NewMesh(rule OverlapRule, ambientOcclusion bool) *Mesh {
	return &Mesh{
		rule:             rule,
		ambientOcclusion: ambientOcclusion,
		voxels:           make(map[util.Vector3i]*Voxel),
		samples:          make(map[util.Vector3i]int),
	}
}

// Rule devolve a regra de sobreposição configurada.
func (m *Mesh) Rule() OverlapRule {
	return m.rule
}

// AmbientOcclusionEnabled informa se a malha foi criada com suporte a AO.
func (m *Mesh) AmbientOcclusionEnabled() bool {
	return m.ambientOcclusion
}

// AddVoxel insere ou mescla um voxel na coordenada informada.
// Nunca falha; colisões seguem a regra de sobreposição configurada.
func (m *Mesh) AddVoxel(pos util.Vector3i, colour util.RGBA) {
	existing, ok := m.voxels[pos]
	if !ok {
		m.voxels[pos] = &Voxel{Position: pos, Colour: colour}
		m.order = append(m.order, pos)
		m.samples[pos] = 1

		if !m.hasBounds {
			m.bounds = util.NewBounds(pos)
			m.hasBounds = true
		} else {
			m.bounds = m.bounds.Extend(pos)
		}
		return
	}

	switch m.rule {
	case OverlapFirst:
		// Primeira escrita vence; nada a fazer.
	case OverlapAverage:
		// Média incremental: new = old + (c - old)/n.
		// Evita reprocessar o histórico e é numericamente estável.
		n := m.samples[pos] + 1
		m.samples[pos] = n
		inv := 1.0 / float32(n)
		existing.Colour.R += (colour.R - existing.Colour.R) * inv
		existing.Colour.G += (colour.G - existing.Colour.G) * inv
		existing.Colour.B += (colour.B - existing.Colour.B) * inv
		existing.Colour.A += (colour.A - existing.Colour.A) * inv
	}
}

// IsVoxelAt verifica em O(1) se existe voxel na coordenada.
func (m *Mesh) IsVoxelAt(pos util.Vector3i) bool {
	_, ok := m.voxels[pos]
	return ok
}

// VoxelAt retorna o voxel armazenado na coordenada, ou ok=false se vazio.
func (m *Mesh) VoxelAt(pos util.Vector3i) (Voxel, bool) {
	v, ok := m.voxels[pos]
	if !ok {
		return Voxel{}, false
	}
	return *v, true
}

// VoxelCount retorna o número de coordenadas ocupadas distintas.
func (m *Mesh) VoxelCount() int {
	return len(m.voxels)
}

// Positions retorna as coordenadas ocupadas em ordem de inserção.
// O slice retornado pertence à malha; não modificar.
func (m *Mesh) Positions() []util.Vector3i {
	return m.order
}

// Bounds retorna a caixa envolvente da malha e ok=false se a malha
// estiver vazia.
func (m *Mesh) Bounds() (util.Bounds, bool) {
	return m.bounds, m.hasBounds
}

// Neighbours avalia sob demanda a ocupação dos 26 offsets ao redor de pos.
// O resultado nunca é cacheado entre mutações: voxels podem ser adicionados
// depois, e a resposta precisa refletir o estado atual da malha.
//
// Quando o AO está habilitado, a avaliação também registra a máscara de
// adjacência no voxel em pos (se existir) — é esse registro que alimenta
// HasNeighbour.
func (m *Mesh) Neighbours(pos util.Vector3i) Neighbours {
	var result Neighbours
	for i, offset := range util.NeighbourOffsets {
		if m.IsVoxelAt(pos.Add(offset)) {
			result.Mask |= 1 << uint(i)
			result.Count++
		}
	}

	if m.ambientOcclusion {
		if v, ok := m.voxels[pos]; ok {
			v.neighbours = result.Mask
		}
	}

	return result
}

// HasNeighbour responde se existe voxel em pos E se a relação de adjacência
// na direção informada foi registrada por alguma avaliação de Neighbours.
// Um voxel fisicamente presente na coordenada alvo cujo relacionamento nunca
// foi avaliado retorna false: a adjacência é materializada por consulta,
// não derivada da ocupação.
func (m *Mesh) HasNeighbour(pos util.Vector3i, offset util.Vector3i) bool {
	v, ok := m.voxels[pos]
	if !ok {
		return false
	}
	idx := util.NeighbourIndex(offset)
	if idx < 0 {
		return false
	}
	return v.neighbours&(1<<uint(idx)) != 0
}
