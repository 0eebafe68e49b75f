package blocks

import (
	"testing"

	"github.com/0-zen/ObjToSchematic/shared/util"
)

func testPalette(t *testing.T) *Palette {
	t.Helper()
	p, err := NewPalette([]Block{
		{Name: "minecraft:redstone_block", Colour: util.NewRGBA(1, 0, 0, 1)},
		{Name: "minecraft:emerald_block", Colour: util.NewRGBA(0, 1, 0, 1)},
		{Name: "minecraft:lapis_block", Colour: util.NewRGBA(0, 0, 1, 1)},
	})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	return p
}

func TestNearestBlock(t *testing.T) {
	p := testPalette(t)

	tests := []struct {
		colour util.RGBA
		want   string
	}{
		{util.NewRGBA(1, 0, 0, 1), "minecraft:redstone_block"},
		{util.NewRGBA(0.9, 0.1, 0.1, 1), "minecraft:redstone_block"},
		{util.NewRGBA(0.1, 0.8, 0.2, 1), "minecraft:emerald_block"},
		{util.NewRGBA(0.2, 0.1, 0.9, 0.5), "minecraft:lapis_block"},
	}

	for _, tt := range tests {
		got := p.NearestBlock(tt.colour)
		if got.Name != tt.want {
			t.Errorf("NearestBlock(%v) = %s, esperava %s", tt.colour, got.Name, tt.want)
		}
	}
}

func TestNearestBlockCacheIsStable(t *testing.T) {
	p := testPalette(t)
	colour := util.NewRGBA(0.7, 0.2, 0.2, 1)

	first := p.NearestBlock(colour)
	second := p.NearestBlock(colour)
	if first.Name != second.Name {
		t.Errorf("resultado mudou entre chamadas: %s vs %s", first.Name, second.Name)
	}
}

func TestNewPaletteRejectsEmptyAndDuplicates(t *testing.T) {
	if _, err := NewPalette(nil); err == nil {
		t.Error("paleta vazia deveria falhar")
	}

	_, err := NewPalette([]Block{
		{Name: "minecraft:stone"},
		{Name: "minecraft:stone"},
	})
	if err == nil {
		t.Error("bloco duplicado deveria falhar")
	}
}

func TestBlockByName(t *testing.T) {
	p := testPalette(t)

	if _, ok := p.BlockByName("minecraft:lapis_block"); !ok {
		t.Error("bloco existente não foi encontrado")
	}
	if _, ok := p.BlockByName("minecraft:bedrock"); ok {
		t.Error("bloco inexistente foi encontrado")
	}
}

func TestNamesAreSorted(t *testing.T) {
	p := testPalette(t)
	names := p.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("nomes fora de ordem: %v", names)
		}
	}
}

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	if p.Len() == 0 {
		t.Fatal("paleta padrão vazia")
	}
	if _, ok := p.BlockByName("minecraft:stone"); !ok {
		t.Error("paleta padrão sem minecraft:stone")
	}
}

func TestGridAtlas(t *testing.T) {
	names := []string{"minecraft:dirt", "minecraft:stone"}
	a, err := NewGridAtlas("atlas.png", 4, names)
	if err != nil {
		t.Fatalf("NewGridAtlas: %v", err)
	}

	if a.Size != 64 {
		t.Errorf("Size = %d, esperava 64", a.Size)
	}
	if !a.HasBlock("minecraft:dirt") || a.HasBlock("minecraft:sand") {
		t.Error("HasBlock inconsistente com os nomes do atlas")
	}

	// Primeira célula da grade, mesma para as seis faces
	rect := a.FaceUV("minecraft:dirt", util.FaceUp)
	want := UVRect{MinU: 0, MinV: 0, MaxU: 0.25, MaxV: 0.25}
	if rect != want {
		t.Errorf("FaceUV = %+v, esperava %+v", rect, want)
	}
	if a.FaceUV("minecraft:dirt", util.FaceDown) != rect {
		t.Error("faces do mesmo bloco deveriam compartilhar a célula")
	}

	// Bloco desconhecido cai na célula "missing" (zero no atlas em grade)
	if a.FaceUV("minecraft:sand", util.FaceUp) != (UVRect{}) {
		t.Error("bloco desconhecido deveria cair na célula missing")
	}
}

func TestGridAtlasRejectsOverflow(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e"}
	if _, err := NewGridAtlas("atlas.png", 2, names); err == nil {
		t.Error("5 blocos em 4 células deveria falhar")
	}
}
