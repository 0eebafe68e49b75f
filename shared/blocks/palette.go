package blocks

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/0-zen/ObjToSchematic/shared/util"
)

// Block é uma entrada da paleta: um bloco nomeado com a sua cor média,
// medida sobre as texturas das seis faces.
type Block struct {
	Name   string    `json:"name"`
	Colour util.RGBA `json:"colour"`
}

// Palette é o conjunto de blocos disponíveis para a atribuição de cores.
// A busca pelo bloco mais próximo é cacheada por cor quantizada, já que
// malhas grandes repetem muito as mesmas cores.
type Palette struct {
	blocks []Block
	byName map[string]int

	mu    sync.RWMutex
	cache map[uint32]int
}

// NewPalette monta uma paleta a partir da lista de blocos. A ordem é
// preservada; o índice de cada bloco é estável.
func NewPalette(list []Block) (*Palette, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("paleta vazia")
	}

	p := &Palette{
		blocks: list,
		byName: make(map[string]int, len(list)),
		cache:  make(map[uint32]int),
	}
	for i, b := range list {
		if _, dup := p.byName[b.Name]; dup {
			return nil, fmt.Errorf("bloco duplicado na paleta: %s", b.Name)
		}
		p.byName[b.Name] = i
	}
	return p, nil
}

// LoadPalette lê uma paleta de um arquivo JSON (lista de blocos).
func LoadPalette(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler paleta: %w", err)
	}

	var list []Block
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("falha ao decodificar paleta: %w", err)
	}
	return NewPalette(list)
}

// Len devolve o número de blocos da paleta.
func (p *Palette) Len() int {
	return len(p.blocks)
}

// Blocks devolve a lista de blocos na ordem da paleta.
func (p *Palette) Blocks() []Block {
	return p.blocks
}

// BlockByName devolve o bloco com o nome dado.
func (p *Palette) BlockByName(name string) (Block, bool) {
	i, ok := p.byName[name]
	if !ok {
		return Block{}, false
	}
	return p.blocks[i], true
}

// Names devolve os nomes dos blocos em ordem alfabética.
func (p *Palette) Names() []string {
	names := make([]string, 0, len(p.blocks))
	for _, b := range p.blocks {
		names = append(names, b.Name)
	}
	sort.Strings(names)
	return names
}

// NearestBlock devolve o bloco cuja cor média está mais próxima da cor
// dada, por distância euclidiana em RGB. O alfa é ignorado. Empates
// resolvem para o bloco de menor índice.
func (p *Palette) NearestBlock(colour util.RGBA) Block {
	key := quantise(colour)

	p.mu.RLock()
	if i, ok := p.cache[key]; ok {
		p.mu.RUnlock()
		return p.blocks[i]
	}
	p.mu.RUnlock()

	best := 0
	bestDist := float32(4.0)
	for i, b := range p.blocks {
		d := colour.DistSq2(b.Colour)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}

	p.mu.Lock()
	p.cache[key] = best
	p.mu.Unlock()
	return p.blocks[best]
}

// quantise reduz a cor a 6 bits por canal para servir de chave de cache.
// A perda de precisão é invisível nas cores médias dos blocos.
func quantise(c util.RGBA) uint32 {
	r := uint32(util.Clamp(c.R, 0, 1) * 63)
	g := uint32(util.Clamp(c.G, 0, 1) * 63)
	b := uint32(util.Clamp(c.B, 0, 1) * 63)
	return r<<12 | g<<6 | b
}

// DefaultPalette é a paleta embutida, usada quando nenhum arquivo de
// paleta é configurado. Cores médias medidas sobre o atlas padrão.
func DefaultPalette() *Palette {
	p, err := NewPalette(defaultBlocks)
	if err != nil {
		panic(err)
	}
	return p
}

var defaultBlocks = []Block{
	{"minecraft:stone", util.NewRGBA(0.494, 0.494, 0.494, 1.0)},
	{"minecraft:cobblestone", util.NewRGBA(0.502, 0.498, 0.502, 1.0)},
	{"minecraft:andesite", util.NewRGBA(0.533, 0.533, 0.537, 1.0)},
	{"minecraft:diorite", util.NewRGBA(0.741, 0.741, 0.745, 1.0)},
	{"minecraft:granite", util.NewRGBA(0.588, 0.408, 0.337, 1.0)},
	{"minecraft:dirt", util.NewRGBA(0.525, 0.376, 0.259, 1.0)},
	{"minecraft:grass_block", util.NewRGBA(0.471, 0.643, 0.333, 1.0)},
	{"minecraft:sand", util.NewRGBA(0.859, 0.812, 0.620, 1.0)},
	{"minecraft:red_sand", util.NewRGBA(0.749, 0.404, 0.141, 1.0)},
	{"minecraft:gravel", util.NewRGBA(0.518, 0.506, 0.502, 1.0)},
	{"minecraft:oak_planks", util.NewRGBA(0.635, 0.510, 0.318, 1.0)},
	{"minecraft:spruce_planks", util.NewRGBA(0.447, 0.333, 0.192, 1.0)},
	{"minecraft:birch_planks", util.NewRGBA(0.753, 0.686, 0.471, 1.0)},
	{"minecraft:dark_oak_planks", util.NewRGBA(0.259, 0.169, 0.078, 1.0)},
	{"minecraft:oak_log", util.NewRGBA(0.420, 0.333, 0.204, 1.0)},
	{"minecraft:oak_leaves", util.NewRGBA(0.267, 0.416, 0.133, 1.0)},
	{"minecraft:white_wool", util.NewRGBA(0.918, 0.925, 0.929, 1.0)},
	{"minecraft:light_gray_wool", util.NewRGBA(0.557, 0.557, 0.537, 1.0)},
	{"minecraft:gray_wool", util.NewRGBA(0.247, 0.267, 0.278, 1.0)},
	{"minecraft:black_wool", util.NewRGBA(0.082, 0.086, 0.102, 1.0)},
	{"minecraft:red_wool", util.NewRGBA(0.627, 0.149, 0.122, 1.0)},
	{"minecraft:orange_wool", util.NewRGBA(0.941, 0.463, 0.098, 1.0)},
	{"minecraft:yellow_wool", util.NewRGBA(0.973, 0.765, 0.157, 1.0)},
	{"minecraft:lime_wool", util.NewRGBA(0.439, 0.725, 0.102, 1.0)},
	{"minecraft:green_wool", util.NewRGBA(0.333, 0.427, 0.106, 1.0)},
	{"minecraft:cyan_wool", util.NewRGBA(0.082, 0.537, 0.553, 1.0)},
	{"minecraft:light_blue_wool", util.NewRGBA(0.227, 0.545, 0.812, 1.0)},
	{"minecraft:blue_wool", util.NewRGBA(0.208, 0.224, 0.612, 1.0)},
	{"minecraft:purple_wool", util.NewRGBA(0.475, 0.165, 0.678, 1.0)},
	{"minecraft:magenta_wool", util.NewRGBA(0.745, 0.267, 0.710, 1.0)},
	{"minecraft:pink_wool", util.NewRGBA(0.933, 0.553, 0.671, 1.0)},
	{"minecraft:brown_wool", util.NewRGBA(0.447, 0.282, 0.169, 1.0)},
	{"minecraft:terracotta", util.NewRGBA(0.596, 0.369, 0.259, 1.0)},
	{"minecraft:white_concrete", util.NewRGBA(0.812, 0.831, 0.839, 1.0)},
	{"minecraft:gray_concrete", util.NewRGBA(0.216, 0.227, 0.239, 1.0)},
	{"minecraft:red_concrete", util.NewRGBA(0.557, 0.129, 0.129, 1.0)},
	{"minecraft:blue_concrete", util.NewRGBA(0.173, 0.184, 0.561, 1.0)},
	{"minecraft:green_concrete", util.NewRGBA(0.286, 0.361, 0.137, 1.0)},
	{"minecraft:yellow_concrete", util.NewRGBA(0.945, 0.686, 0.082, 1.0)},
	{"minecraft:snow_block", util.NewRGBA(0.976, 0.996, 0.996, 1.0)},
	{"minecraft:ice", util.NewRGBA(0.569, 0.690, 0.996, 1.0)},
	{"minecraft:netherrack", util.NewRGBA(0.384, 0.149, 0.149, 1.0)},
	{"minecraft:end_stone", util.NewRGBA(0.859, 0.871, 0.624, 1.0)},
	{"minecraft:clay", util.NewRGBA(0.627, 0.647, 0.698, 1.0)},
	{"minecraft:bricks", util.NewRGBA(0.588, 0.380, 0.325, 1.0)},
	{"minecraft:sandstone", util.NewRGBA(0.851, 0.800, 0.604, 1.0)},
	{"minecraft:obsidian", util.NewRGBA(0.059, 0.043, 0.098, 1.0)},
	{"minecraft:gold_block", util.NewRGBA(0.965, 0.816, 0.259, 1.0)},
	{"minecraft:iron_block", util.NewRGBA(0.863, 0.859, 0.855, 1.0)},
	{"minecraft:coal_block", util.NewRGBA(0.063, 0.063, 0.063, 1.0)},
}
