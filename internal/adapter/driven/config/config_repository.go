package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/sales-dashboard-go/internal/domain/repository"
	"github.com/diillson/sales-dashboard-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config, err := decodeConfig(fileData, fileExtension)
	if err != nil {
		return nil, err
	}

	if config.MaxRows != nil && *config.MaxRows < 0 {
		return nil, fmt.Errorf("invalid max_rows %d in %s: must be >= 0", *config.MaxRows, filePath)
	}

	normalizeConfig(config)
	return config, nil
}

func decodeConfig(data []byte, ext string) (*types.Config, error) {
	var config types.Config

	switch ext {
	case ".toml":
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return &config, nil
}

// normalizeConfig remove espaços e duplicatas dos tipos de relatório.
func normalizeConfig(config *types.Config) {
	config.DataFile = strings.TrimSpace(config.DataFile)
	config.Selection = strings.TrimSpace(config.Selection)
	config.Dir = strings.TrimSpace(config.Dir)

	if config.ReportType == nil {
		return
	}

	seen := make(map[string]bool)
	reportTypes := make([]string, 0, len(config.ReportType))
	for _, rt := range config.ReportType {
		rt = strings.ToLower(strings.TrimSpace(rt))
		if rt == "" || seen[rt] {
			continue
		}
		seen[rt] = true
		reportTypes = append(reportTypes, rt)
	}
	config.ReportType = reportTypes
}
