package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config armazena as configurações do editor.
type Config struct {
	// Janela
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int32  `json:"target_fps"`

	// Worker de voxelização. Vazio roda a pipeline dentro do processo.
	WorkerURL string `json:"worker_url"`

	// Pipeline
	TargetSize       int32   `json:"target_size"`
	VoxelSize        float32 `json:"voxel_size"`
	OverlapRule      string  `json:"overlap_rule"` // "first" ou "average"
	AmbientOcclusion bool    `json:"ambient_occlusion"`
	VoxeliserThreads int     `json:"voxeliser_threads"`

	// Assets. Vazios caem na paleta e no atlas embutidos.
	PalettePath string `json:"palette_path"`
	AtlasPath   string `json:"atlas_path"`

	// Cache de voxelizações
	CachePath string `json:"cache_path"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info"`
	ShowGrid      bool `json:"show_grid"`
	ShowAxes      bool `json:"show_axes"`
	WireframeMode bool `json:"wireframe_mode"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "ObjToSchematic",
		Fullscreen:   false,
		TargetFPS:    60,

		WorkerURL: "",

		TargetSize:       80,
		VoxelSize:        1.0,
		OverlapRule:      "average",
		AmbientOcclusion: true,
		VoxeliserThreads: 0,

		CachePath: "cache/voxelisations.db",

		ShowDebugInfo: false,
		ShowGrid:      true,
		ShowAxes:      true,
		WireframeMode: false,
	}
}

// configPath retorna o caminho do arquivo de configuração.
func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega as configurações de um arquivo JSON.
// Se o arquivo não existir, retorna as configurações padrão.
func Load() *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// Save salva as configurações em um arquivo JSON.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(), data, 0644)
}
