// Package schematic exporta o resultado da pipeline no formato Sponge
// Schematic v2 (.schem), que o WorldEdit e afins importam direto.
package schematic

import (
	"fmt"
	"log"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/0-zen/ObjToSchematic/shared/pipeline"
	"github.com/0-zen/ObjToSchematic/shared/pkg/nbt"
	"github.com/0-zen/ObjToSchematic/shared/util"
)

// DataVersion declara a versão de mundo alvo (1.17.1). Importadores
// modernos tratam isso só como dica.
const DataVersion = 2730

const airBlock = "minecraft:air"

// Export grava a malha de blocos como um arquivo .schem comprimido.
func Export(bm *pipeline.BlockMesh, path string) error {
	bounds, ok := bm.Voxels.Bounds()
	if !ok {
		return fmt.Errorf("malha de blocos vazia")
	}
	dims := bounds.Dimensions()
	if dims.X > 0xFFFF || dims.Y > 0xFFFF || dims.Z > 0xFFFF {
		return fmt.Errorf("modelo grande demais para .schem: %v", dims)
	}

	// Paleta do arquivo: ar primeiro, depois os blocos usados, em
	// ordem de primeira aparição.
	paletteIndex := map[string]int32{airBlock: 0}
	paletteOrder := []string{airBlock}
	indexOf := func(name string) int32 {
		if idx, ok := paletteIndex[name]; ok {
			return idx
		}
		idx := int32(len(paletteOrder))
		paletteIndex[name] = idx
		paletteOrder = append(paletteOrder, name)
		return idx
	}

	// BlockData é varint por bloco, na ordem Y depois Z depois X.
	blockData := make([]byte, 0, int(dims.X)*int(dims.Y)*int(dims.Z))
	appendVarint := func(v int32) {
		u := uint32(v)
		for u >= 0x80 {
			blockData = append(blockData, byte(u)|0x80)
			u >>= 7
		}
		blockData = append(blockData, byte(u))
	}

	for y := bounds.Min.Y; y <= bounds.Max.Y; y++ {
		for z := bounds.Min.Z; z <= bounds.Max.Z; z++ {
			for x := bounds.Min.X; x <= bounds.Max.X; x++ {
				pos := util.Vector3i{X: x, Y: y, Z: z}
				if block, ok := bm.BlockAt(pos); ok {
					appendVarint(indexOf(block.Name))
				} else {
					appendVarint(0)
				}
			}
		}
	}

	w := nbt.NewWriter()
	w.BeginCompound("Schematic")
	w.WriteInt("Version", 2)
	w.WriteInt("DataVersion", DataVersion)
	w.WriteShort("Width", int16(dims.X))
	w.WriteShort("Height", int16(dims.Y))
	w.WriteShort("Length", int16(dims.Z))
	w.WriteIntArray("Offset", []int32{bounds.Min.X, bounds.Min.Y, bounds.Min.Z})
	w.WriteInt("PaletteMax", int32(len(paletteOrder)))

	w.BeginCompound("Palette")
	for _, name := range paletteOrder {
		w.WriteInt(name, paletteIndex[name])
	}
	w.EndCompound()

	w.WriteByteArray("BlockData", blockData)
	w.EndCompound()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(w.Bytes()); err != nil {
		gz.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}

	log.Printf("[Schematic] Exportado %s: %v blocos em %d tipos",
		path, bm.Voxels.VoxelCount(), len(paletteOrder)-1)
	return nil
}
