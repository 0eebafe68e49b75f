package blocks

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/0-zen/ObjToSchematic/shared/util"
)

// UVRect delimita a célula de um bloco dentro do atlas, em coordenadas
// de textura normalizadas.
type UVRect struct {
	MinU float32 `json:"minU"`
	MinV float32 `json:"minV"`
	MaxU float32 `json:"maxU"`
	MaxV float32 `json:"maxV"`
}

// AtlasEntry guarda as células de textura de um bloco, uma por face.
// Blocos com a mesma textura nas seis faces repetem a mesma célula.
type AtlasEntry struct {
	Name  string                 `json:"name"`
	Faces [util.FaceCount]UVRect `json:"faces"`
}

// Atlas descreve o atlas de texturas dos blocos: o arquivo de imagem,
// o tamanho em pixels e a célula de cada face de cada bloco.
type Atlas struct {
	TexturePath string
	Size        int

	entries map[string]AtlasEntry
	missing UVRect
}

type atlasFile struct {
	Texture string       `json:"texture"`
	Size    int          `json:"size"`
	Entries []AtlasEntry `json:"entries"`
}

// LoadAtlas lê a descrição de um atlas de um arquivo JSON.
func LoadAtlas(path string) (*Atlas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler atlas: %w", err)
	}

	var file atlasFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("falha ao decodificar atlas: %w", err)
	}
	if file.Size <= 0 {
		return nil, fmt.Errorf("atlas com tamanho inválido: %d", file.Size)
	}

	a := &Atlas{
		TexturePath: file.Texture,
		Size:        file.Size,
		entries:     make(map[string]AtlasEntry, len(file.Entries)),
	}
	for _, e := range file.Entries {
		a.entries[e.Name] = e
	}
	if m, ok := a.entries["missing"]; ok {
		a.missing = m.Faces[0]
	}
	return a, nil
}

// NewGridAtlas monta um atlas em grade regular: cada bloco ocupa uma
// célula quadrada, todas as faces com a mesma textura, na ordem dos
// nomes dados. Usado pelos testes e por atlases gerados.
func NewGridAtlas(texturePath string, cellsPerSide int, names []string) (*Atlas, error) {
	if cellsPerSide <= 0 {
		return nil, fmt.Errorf("atlas com grade inválida: %d", cellsPerSide)
	}
	if len(names) > cellsPerSide*cellsPerSide {
		return nil, fmt.Errorf("atlas pequeno demais: %d células para %d blocos",
			cellsPerSide*cellsPerSide, len(names))
	}

	a := &Atlas{
		TexturePath: texturePath,
		Size:        cellsPerSide * 16,
		entries:     make(map[string]AtlasEntry, len(names)),
	}

	cell := 1.0 / float32(cellsPerSide)
	for i, name := range names {
		col := i % cellsPerSide
		row := i / cellsPerSide
		rect := UVRect{
			MinU: float32(col) * cell,
			MinV: float32(row) * cell,
			MaxU: float32(col+1) * cell,
			MaxV: float32(row+1) * cell,
		}
		entry := AtlasEntry{Name: name}
		for f := range entry.Faces {
			entry.Faces[f] = rect
		}
		a.entries[name] = entry
	}
	return a, nil
}

// FaceUV devolve a célula do atlas para a face dada do bloco. Blocos
// desconhecidos caem na célula "missing".
func (a *Atlas) FaceUV(blockName string, face util.FaceDir) UVRect {
	if e, ok := a.entries[blockName]; ok {
		return e.Faces[face]
	}
	return a.missing
}

// HasBlock informa se o atlas tem célula própria para o bloco.
func (a *Atlas) HasBlock(blockName string) bool {
	_, ok := a.entries[blockName]
	return ok
}
