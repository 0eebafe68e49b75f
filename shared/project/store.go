// Package project persiste resultados de voxelização em SQLite, para
// que reabrir o mesmo modelo com os mesmos parâmetros não pague a
// voxelização de novo. A chave de cache mistura o conteúdo do arquivo
// com os parâmetros.
package project

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/0-zen/ObjToSchematic/shared/util"
	"github.com/0-zen/ObjToSchematic/shared/voxel"
)

// VoxelisationModel é o esquema de uma voxelização cacheada. Os dados
// vão comprimidos com zstd; modelos grandes encolhem bem porque as
// posições são sequências quase contíguas.
type VoxelisationModel struct {
	CacheKey   string `gorm:"primaryKey"`
	ModelPath  string `gorm:"index"`
	TargetSize int32
	Rule       int32
	Data       []byte
	VoxelCount int
	UpdatedAt  time.Time
}

// RecentModel guarda a lista de modelos abertos recentemente.
type RecentModel struct {
	Path     string `gorm:"primaryKey"`
	OpenedAt time.Time
}

// Store é o banco local do editor.
type Store struct {
	db      *gorm.DB
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Open abre (ou cria) o banco no caminho dado e roda as migrações.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no SQLite: %w", err)
	}

	if err := db.AutoMigrate(&VoxelisationModel{}, &RecentModel{}); err != nil {
		return nil, fmt.Errorf("falha na migração do banco: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}

	log.Printf("[Project] Banco de dados aberto: %s", path)
	return &Store{db: db, encoder: enc, decoder: dec}, nil
}

// Close libera o banco e os compressores.
func (s *Store) Close() {
	s.encoder.Close()
	s.decoder.Close()
}

// CacheKey calcula a chave de cache de uma voxelização: hash do
// conteúdo do arquivo do modelo combinado com os parâmetros. Mudou o
// arquivo ou mudaram os parâmetros, muda a chave.
func CacheKey(modelPath string, targetSize int32, rule voxel.OverlapRule, ao bool) (string, error) {
	f, err := os.Open(modelPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	fmt.Fprintf(h, "|%d|%d|%t", targetSize, rule, ao)
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// meshDTO é a forma serializável de uma malha de voxels.
type meshDTO struct {
	Rule             int32
	AmbientOcclusion bool
	Positions        []util.Vector3i
	Colours          []util.RGBA
}

// SaveVoxelisation grava uma malha de voxels sob a chave dada.
func (s *Store) SaveVoxelisation(key, modelPath string, targetSize int32, vm *voxel.Mesh) error {
	dto := meshDTO{
		Rule:             int32(vm.Rule()),
		AmbientOcclusion: vm.AmbientOcclusionEnabled(),
	}
	for _, pos := range vm.Positions() {
		v, _ := vm.VoxelAt(pos)
		dto.Positions = append(dto.Positions, pos)
		dto.Colours = append(dto.Colours, v.Colour)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(dto); err != nil {
		return err
	}
	compressed := s.encoder.EncodeAll(buf.Bytes(), nil)

	model := VoxelisationModel{
		CacheKey:   key,
		ModelPath:  modelPath,
		TargetSize: targetSize,
		Rule:       dto.Rule,
		Data:       compressed,
		VoxelCount: vm.VoxelCount(),
	}
	if err := s.db.Save(&model).Error; err != nil {
		return err
	}

	log.Printf("[Project] Voxelização cacheada: %s (%d voxels, %d bytes)",
		key, model.VoxelCount, len(compressed))
	return nil
}

// LoadVoxelisation tenta carregar uma malha de voxels do cache.
func (s *Store) LoadVoxelisation(key string) (*voxel.Mesh, bool) {
	var model VoxelisationModel
	if err := s.db.First(&model, "cache_key = ?", key).Error; err != nil {
		return nil, false
	}

	raw, err := s.decoder.DecodeAll(model.Data, nil)
	if err != nil {
		log.Printf("[Project] Cache corrompido para %s: %v", key, err)
		return nil, false
	}

	var dto meshDTO
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&dto); err != nil {
		log.Printf("[Project] GOB inválido para %s: %v", key, err)
		return nil, false
	}
	if len(dto.Positions) != len(dto.Colours) {
		return nil, false
	}

	vm := voxel.NewMesh(voxel.OverlapRule(dto.Rule), dto.AmbientOcclusion)
	for i, pos := range dto.Positions {
		vm.AddVoxel(pos, dto.Colours[i])
	}

	log.Printf("[Project] Voxelização recuperada do cache: %s (%d voxels)", key, vm.VoxelCount())
	return vm, true
}

// TouchRecent registra um modelo na lista de recentes.
func (s *Store) TouchRecent(path string) {
	s.db.Save(&RecentModel{Path: path, OpenedAt: time.Now()})
}

// Recents devolve os modelos abertos recentemente, o mais novo primeiro.
func (s *Store) Recents(limit int) []string {
	var rows []RecentModel
	s.db.Order("opened_at desc").Limit(limit).Find(&rows)

	paths := make([]string, 0, len(rows))
	for _, r := range rows {
		paths = append(paths, r.Path)
	}
	return paths
}
