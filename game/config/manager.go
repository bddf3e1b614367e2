package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/wricardo/mcp-training/blockmaze/game/engine"
	"github.com/wricardo/mcp-training/blockmaze/game/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultConfigName is the level used when a session names none
const DefaultConfigName = "classic"

// levelExtensions lists the supported level file formats in lookup order
var levelExtensions = []string{".json", ".hcl"}

// Manager handles maze level loading and caching
type Manager struct {
	configDir     string
	defaultName   string
	defaultConfig *engine.MazeConfig
	configs       map[string]*engine.MazeConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.MazeConfig),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// LoadConfig loads a level by name. The name may carry a .json or .hcl
// extension; without one both are tried. Levels are cached by file name.
func (m *Manager) LoadConfig(name string) (*engine.MazeConfig, error) {
	configPath, err := m.resolvePath(name)
	if err != nil {
		return nil, err
	}
	key := filepath.Base(configPath)

	m.mu.RLock()
	if config, exists := m.configs[key]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[key]; exists {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := engine.ParseMazeConfig(configPath, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := engine.ValidateMazeConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[key] = config
	return config, nil
}

// resolvePath finds the level file for name
func (m *Manager) resolvePath(name string) (string, error) {
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}

	if ext := filepath.Ext(name); ext == ".json" || ext == ".hcl" {
		path := filepath.Join(m.configDir, name)
		if _, err := os.Stat(path); err != nil {
			return "", ErrConfigNotFound
		}
		return path, nil
	}

	for _, ext := range levelExtensions {
		path := filepath.Join(m.configDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrConfigNotFound
}

// ListConfigs returns information about all available levels
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo

	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".json" && ext != ".hcl") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ext)

		// Load by filename so a .json and .hcl pair are both listed
		config, err := m.LoadConfig(entry.Name())
		if err != nil {
			// Skip invalid configs
			continue
		}

		cols := 0
		if len(config.Layout) > 0 {
			cols = len(config.Layout[0])
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    name, // This is the identifier to use for session creation
			Name:        config.Name,
			Description: config.Description,
			Rows:        len(config.Layout),
			Cols:        cols,
			Format:      strings.TrimPrefix(ext, "."),
		})
	}

	return configs, nil
}

// GetDefault returns the default level
func (m *Manager) GetDefault() *engine.MazeConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// DefaultName returns the identifier of the default level
func (m *Manager) DefaultName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultName
}

// SetDefault sets the default level by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	m.defaultName = strings.TrimSuffix(name, filepath.Ext(name))
	return nil
}

// RefreshCache drops all cached levels and reloads the default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.MazeConfig)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// loadDefaultConfig loads the default level, falling back to the first
// valid level on disk and then to the built-in maze
func (m *Manager) loadDefaultConfig() error {
	name := DefaultConfigName
	config, err := m.LoadConfig(name)
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			m.setDefault("default", engine.DefaultMazeConfig())
			return nil
		}

		name = configs[0].ConfigID
		config, err = m.LoadConfig(configs[0].Filename)
		if err != nil {
			m.setDefault("default", engine.DefaultMazeConfig())
			return nil
		}
	}

	m.setDefault(name, config)
	return nil
}

func (m *Manager) setDefault(name string, config *engine.MazeConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultName = name
	m.defaultConfig = config
}

// SaveConfig validates a level and writes it to disk. Names ending in .hcl
// are written as HCL, everything else as JSON.
func (m *Manager) SaveConfig(name string, config *engine.MazeConfig) error {
	if err := engine.ValidateMazeConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: invalid level name %q", ErrInvalidConfig, name)
	}

	filename := name
	var data []byte
	switch filepath.Ext(name) {
	case ".hcl":
		data = EncodeHCL(config)
	case ".json":
		var err error
		if data, err = json.MarshalIndent(config, "", "  "); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	default:
		filename = name + ".json"
		var err error
		if data, err = json.MarshalIndent(config, "", "  "); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	}

	configPath := filepath.Join(m.configDir, filename)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[filename] = config
	m.mu.Unlock()

	return nil
}

// EncodeHCL renders a level in HCL syntax
func EncodeHCL(config *engine.MazeConfig) []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(config, f.Body())
	return f.Bytes()
}
