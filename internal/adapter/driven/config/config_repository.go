package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/repository"
	"github.com/diillson/arrivals-dashboard-go/internal/shared/types"
)

// Environment variables read by LoadEnv.
const (
	EnvData        = "ARRIVALS_DATA"
	EnvAddr        = "ARRIVALS_ADDR"
	EnvAWSProfile  = "ARRIVALS_AWS_PROFILE"
	EnvAWSRegion   = "ARRIVALS_AWS_REGION"
	EnvSQLQuery    = "ARRIVALS_SQL_QUERY"
	EnvConsistency = "ARRIVALS_CONSISTENCY"
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

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: config file %s", types.ErrUnsupportedFormat, fileExtension)
	}

	return &config, nil
}

// LoadEnv loads the given .env files (default ".env") into the process
// environment, then reads the ARRIVALS_* variables. Missing .env files are
// ignored; variables already set in the environment win over the files.
func (r *ConfigRepositoryImpl) LoadEnv(envFiles ...string) (*types.Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", f, err)
		}
	}

	return &types.Config{
		Data:        os.Getenv(EnvData),
		Addr:        os.Getenv(EnvAddr),
		AWSProfile:  os.Getenv(EnvAWSProfile),
		AWSRegion:   os.Getenv(EnvAWSRegion),
		SQLQuery:    os.Getenv(EnvSQLQuery),
		Consistency: os.Getenv(EnvConsistency),
	}, nil
}
