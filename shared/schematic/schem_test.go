package schematic

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/0-zen/ObjToSchematic/shared/pipeline"
	"github.com/0-zen/ObjToSchematic/shared/blocks"
	"github.com/0-zen/ObjToSchematic/shared/util"
	"github.com/0-zen/ObjToSchematic/shared/voxel"
)

func exportPalette(t *testing.T) *blocks.Palette {
	t.Helper()
	p, err := blocks.NewPalette([]blocks.Block{
		{Name: "minecraft:redstone_block", Colour: util.NewRGBA(1, 0, 0, 1)},
		{Name: "minecraft:lapis_block", Colour: util.NewRGBA(0, 0, 1, 1)},
	})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	return p
}

func decompress(t *testing.T, path string) []byte {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("abrindo %s: %v", path, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("arquivo não está em gzip: %v", err)
	}
	defer gz.Close()

	raw, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("descomprimindo: %v", err)
	}
	return raw
}

// shortTag monta os bytes de um TAG_Short nomeado, como aparecem no NBT.
func shortTag(name string, value int16) []byte {
	b := []byte{0x02, 0x00, byte(len(name))}
	b = append(b, name...)
	b = append(b, byte(uint16(value)>>8), byte(uint16(value)))
	return b
}

func TestExportWritesSpongeSchematic(t *testing.T) {
	vm := voxel.NewMesh(voxel.OverlapFirst, false)
	vm.AddVoxel(util.Vector3i{X: 0, Y: 0, Z: 0}, util.NewRGBA(1, 0, 0, 1))
	vm.AddVoxel(util.Vector3i{X: 2, Y: 1, Z: 0}, util.NewRGBA(0, 0, 1, 1))

	bm, err := pipeline.AssignBlocks(vm, exportPalette(t))
	if err != nil {
		t.Fatalf("AssignBlocks: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.schem")
	if err := Export(bm, path); err != nil {
		t.Fatalf("Export: %v", err)
	}

	raw := decompress(t, path)

	// Compound raiz chamado Schematic.
	root := append([]byte{0x0a, 0x00, 0x09}, "Schematic"...)
	if !bytes.HasPrefix(raw, root) {
		t.Fatalf("NBT não começa com o compound Schematic: % x", raw[:16])
	}

	// Dimensões do bounding box: X 0..2, Y 0..1, Z 0..0.
	for _, want := range [][]byte{
		shortTag("Width", 3),
		shortTag("Height", 2),
		shortTag("Length", 1),
	} {
		if !bytes.Contains(raw, want) {
			t.Errorf("NBT não contém % x", want)
		}
	}

	// A paleta precisa de ar (índice 0) e dos dois blocos usados.
	for _, name := range []string{"minecraft:air", "minecraft:redstone_block", "minecraft:lapis_block", "BlockData", "Palette"} {
		if !bytes.Contains(raw, []byte(name)) {
			t.Errorf("NBT não contém %q", name)
		}
	}
}

func TestExportRejectsEmptyMesh(t *testing.T) {
	bm := &pipeline.BlockMesh{Voxels: voxel.NewMesh(voxel.OverlapFirst, false)}
	if err := Export(bm, filepath.Join(t.TempDir(), "out.schem")); err == nil {
		t.Fatal("malha vazia deveria dar erro de exportação")
	}
}
