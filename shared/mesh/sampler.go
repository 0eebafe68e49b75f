package mesh

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/0-zen/ObjToSchematic/shared/util"
)

// TextureSampler amostra cores de uma textura na CPU, para que o
// voxelizador possa atribuir cor por voxel sem depender da GPU.
type TextureSampler struct {
	img       image.Image
	alpha     image.Image
	width     int
	height    int
	filtering TextureFiltering
	wrap      TextureWrap
}

// NewTextureSampler decodifica a textura do material (e o mapa de alfa,
// se houver) e devolve um sampler pronto. Só faz sentido para materiais
// texturizados.
func NewTextureSampler(mat Material) (*TextureSampler, error) {
	if mat.Kind != MaterialTextured {
		return nil, fmt.Errorf("material não é texturizado")
	}

	img, err := decodeImage(mat.Path)
	if err != nil {
		return nil, fmt.Errorf("falha ao decodificar textura %s: %w", mat.Path, err)
	}

	s := &TextureSampler{
		img:       img,
		width:     img.Bounds().Dx(),
		height:    img.Bounds().Dy(),
		filtering: mat.Interpolation,
		wrap:      mat.Extension,
	}

	if mat.AlphaPath != "" {
		alpha, err := decodeImage(mat.AlphaPath)
		if err != nil {
			log.Printf("[Importer] Mapa de alfa ignorado (%s): %v", mat.AlphaPath, err)
		} else {
			s.alpha = alpha
		}
	}

	return s, nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// Sample devolve a cor no par UV dado. V cresce de baixo para cima,
// como no glTF e no OBJ, então a linha é invertida na leitura.
func (s *TextureSampler) Sample(u, v float32) util.RGBA {
	var c util.RGBA
	if s.filtering == FilterLinear {
		c = s.sampleBilinear(s.img, u, v)
	} else {
		c = s.sampleNearest(s.img, u, v)
	}

	if s.alpha != nil {
		a := s.sampleNearest(s.alpha, u, v)
		c.A = a.R
	}
	return c
}

func (s *TextureSampler) sampleNearest(img image.Image, u, v float32) util.RGBA {
	x := s.wrapCoord(int(u*float32(s.width)), s.width)
	y := s.wrapCoord(int((1.0-v)*float32(s.height)), s.height)
	return colourAt(img, x, y)
}

func (s *TextureSampler) sampleBilinear(img image.Image, u, v float32) util.RGBA {
	fx := u*float32(s.width) - 0.5
	fy := (1.0-v)*float32(s.height) - 0.5

	x0 := int(fx)
	y0 := int(fy)
	if fx < 0 {
		x0--
	}
	if fy < 0 {
		y0--
	}
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := colourAt(img, s.wrapCoord(x0, s.width), s.wrapCoord(y0, s.height))
	c10 := colourAt(img, s.wrapCoord(x0+1, s.width), s.wrapCoord(y0, s.height))
	c01 := colourAt(img, s.wrapCoord(x0, s.width), s.wrapCoord(y0+1, s.height))
	c11 := colourAt(img, s.wrapCoord(x0+1, s.width), s.wrapCoord(y0+1, s.height))

	top := lerpColour(c00, c10, tx)
	bottom := lerpColour(c01, c11, tx)
	return lerpColour(top, bottom, ty)
}

func (s *TextureSampler) wrapCoord(i, size int) int {
	if size <= 0 {
		return 0
	}
	switch s.wrap {
	case WrapRepeat:
		i %= size
		if i < 0 {
			i += size
		}
	default:
		if i < 0 {
			i = 0
		} else if i >= size {
			i = size - 1
		}
	}
	return i
}

func colourAt(img image.Image, x, y int) util.RGBA {
	b := img.Bounds()
	r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
	const inv = 1.0 / 65535.0
	return util.NewRGBA(float32(r)*inv, float32(g)*inv, float32(bl)*inv, float32(a)*inv)
}

func lerpColour(a, b util.RGBA, t float32) util.RGBA {
	return util.NewRGBA(
		util.Lerp(a.R, b.R, t),
		util.Lerp(a.G, b.G, t),
		util.Lerp(a.B, b.B, t),
		util.Lerp(a.A, b.A, t),
	)
}
