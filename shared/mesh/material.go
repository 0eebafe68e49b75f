package mesh

import "github.com/0-zen/ObjToSchematic/shared/util"

// MaterialKind discrimina a união: material de cor sólida ou texturizado.
type MaterialKind int

const (
	MaterialSolid MaterialKind = iota
	MaterialTextured
)

// TextureFiltering define a interpolação de amostragem de uma textura.
type TextureFiltering int

const (
	FilterNearest TextureFiltering = iota
	FilterLinear
)

// TextureWrap define o comportamento fora do intervalo [0,1] de UV.
type TextureWrap int

const (
	WrapClamp TextureWrap = iota
	WrapRepeat
)

// Material descreve a aparência de um sub-mesh. É uma união etiquetada:
// Kind decide quais campos são válidos (Colour para Solid; Path e
// companhia para Textured). O despacho acontece uma vez por draw call.
type Material struct {
	Kind MaterialKind

	// Solid
	Colour util.RGBA

	// Textured
	Path          string
	AlphaPath     string
	AlphaFactor   float32
	Interpolation TextureFiltering
	Extension     TextureWrap

	CanBeTextured  bool
	NeedsAttention bool
}

// NewSolidMaterial cria um material de cor única.
func NewSolidMaterial(colour util.RGBA, canBeTextured bool) Material {
	return Material{
		Kind:          MaterialSolid,
		Colour:        colour,
		AlphaFactor:   1.0,
		CanBeTextured: canBeTextured,
	}
}

// NewTexturedMaterial cria um material baseado em textura.
func NewTexturedMaterial(path string, interpolation TextureFiltering, extension TextureWrap) Material {
	return Material{
		Kind:          MaterialTextured,
		Path:          path,
		AlphaFactor:   1.0,
		Interpolation: interpolation,
		Extension:     extension,
		CanBeTextured: true,
	}
}

// HasAlphaMap informa se o material usa um mapa de transparência separado.
func (m Material) HasAlphaMap() bool {
	return m.Kind == MaterialTextured && m.AlphaPath != ""
}
