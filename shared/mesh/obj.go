package mesh

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/0-zen/ObjToSchematic/shared/util"
)

// DefaultMaterialName é o material atribuído a faces sem usemtl.
const DefaultMaterialName = "DEFAULT_UNASSIGNED"

// LoadOBJ lê um arquivo Wavefront OBJ (e seu .mtl, se houver) e devolve
// a malha de triângulos resolvida. Faces com mais de 3 vértices são
// trianguladas em leque.
func LoadOBJ(path string) (*TriMesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir OBJ: %w", err)
	}
	defer file.Close()

	var (
		positions []mgl32.Vec3
		uvs       []mgl32.Vec2
	)

	result := &TriMesh{
		Materials: map[string]Material{
			DefaultMaterialName: NewSolidMaterial(util.NewRGBA(0.8, 0.8, 0.8, 1.0), false),
		},
	}
	currentMat := DefaultMaterialName

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("linha %d: vértice malformado", lineNum)
			}
			x, _ := strconv.ParseFloat(fields[1], 32)
			y, _ := strconv.ParseFloat(fields[2], 32)
			z, _ := strconv.ParseFloat(fields[3], 32)
			positions = append(positions, mgl32.Vec3{float32(x), float32(y), float32(z)})

		case "vt":
			if len(fields) < 3 {
				continue
			}
			u, _ := strconv.ParseFloat(fields[1], 32)
			v, _ := strconv.ParseFloat(fields[2], 32)
			uvs = append(uvs, mgl32.Vec2{float32(u), float32(v)})

		case "f":
			if len(fields) < 4 {
				continue
			}
			idx := make([]int, 0, len(fields)-1)
			uvIdx := make([]int, 0, len(fields)-1)
			for _, spec := range fields[1:] {
				vi, ti, err := parseFaceVertex(spec, len(positions), len(uvs))
				if err != nil {
					return nil, fmt.Errorf("linha %d: %w", lineNum, err)
				}
				idx = append(idx, vi)
				uvIdx = append(uvIdx, ti)
			}
			// Triangulação em leque
			for i := 2; i < len(idx); i++ {
				tri := Triangle{
					V0:       positions[idx[0]],
					V1:       positions[idx[i-1]],
					V2:       positions[idx[i]],
					Material: currentMat,
				}
				if uvIdx[0] >= 0 && uvIdx[i-1] >= 0 && uvIdx[i] >= 0 {
					tri.UV0 = uvs[uvIdx[0]]
					tri.UV1 = uvs[uvIdx[i-1]]
					tri.UV2 = uvs[uvIdx[i]]
				}
				result.Triangles = append(result.Triangles, tri)
			}

		case "usemtl":
			if len(fields) >= 2 {
				currentMat = fields[1]
				if _, ok := result.Materials[currentMat]; !ok {
					result.Materials[currentMat] = NewSolidMaterial(util.NewRGBA(0.8, 0.8, 0.8, 1.0), false)
				}
			}

		case "mtllib":
			if len(fields) >= 2 {
				mtlPath := filepath.Join(filepath.Dir(path), fields[1])
				if err := loadMTL(mtlPath, result.Materials); err != nil {
					log.Printf("[Importer] AVISO: falha ao ler MTL %s: %v", mtlPath, err)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("falha ao ler OBJ: %w", err)
	}

	if len(result.Triangles) == 0 {
		return nil, fmt.Errorf("OBJ sem faces: %s", path)
	}

	log.Printf("[Importer] OBJ carregado: %s (%d triângulos, %d materiais)",
		path, len(result.Triangles), len(result.Materials))
	return result, nil
}

// parseFaceVertex resolve um spec "v", "v/vt" ou "v/vt/vn" em índices base
// zero, aceitando índices negativos (relativos ao fim).
func parseFaceVertex(spec string, numPositions, numUVs int) (vi, ti int, err error) {
	parts := strings.Split(spec, "/")
	v, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, -1, fmt.Errorf("índice de vértice inválido %q", spec)
	}
	if v < 0 {
		v += numPositions
	} else {
		v--
	}
	if v < 0 || v >= numPositions {
		return 0, -1, fmt.Errorf("índice de vértice fora do intervalo %q", spec)
	}

	ti = -1
	if len(parts) >= 2 && parts[1] != "" {
		t, err := strconv.Atoi(parts[1])
		if err == nil {
			if t < 0 {
				t += numUVs
			} else {
				t--
			}
			if t >= 0 && t < numUVs {
				ti = t
			}
		}
	}
	return v, ti, nil
}

// loadMTL lê definições de material de um arquivo .mtl para o mapa informado.
func loadMTL(path string, materials map[string]Material) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var current string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) >= 2 {
				current = fields[1]
				materials[current] = NewSolidMaterial(util.NewRGBA(0.8, 0.8, 0.8, 1.0), false)
			}

		case "Kd":
			if current == "" || len(fields) < 4 {
				continue
			}
			r, _ := strconv.ParseFloat(fields[1], 32)
			g, _ := strconv.ParseFloat(fields[2], 32)
			b, _ := strconv.ParseFloat(fields[3], 32)
			mat := materials[current]
			mat.Colour = util.NewRGBA(float32(r), float32(g), float32(b), mat.Colour.A)
			if mat.Colour.A == 0 {
				mat.Colour.A = 1.0
			}
			materials[current] = mat

		case "map_Kd":
			if current == "" || len(fields) < 2 {
				continue
			}
			texPath := filepath.Join(filepath.Dir(path), fields[len(fields)-1])
			mat := materials[current]
			mat.Kind = MaterialTextured
			mat.Path = texPath
			mat.Interpolation = FilterLinear
			mat.Extension = WrapRepeat
			mat.CanBeTextured = true
			if mat.AlphaFactor == 0 {
				mat.AlphaFactor = 1.0
			}
			materials[current] = mat

		case "map_d":
			if current == "" || len(fields) < 2 {
				continue
			}
			mat := materials[current]
			mat.AlphaPath = filepath.Join(filepath.Dir(path), fields[len(fields)-1])
			materials[current] = mat

		case "d":
			if current == "" || len(fields) < 2 {
				continue
			}
			d, _ := strconv.ParseFloat(fields[1], 32)
			mat := materials[current]
			mat.AlphaFactor = float32(d)
			mat.Colour.A = float32(d)
			materials[current] = mat
		}
	}
	return scanner.Err()
}
