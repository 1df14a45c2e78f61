package repository

import (
	"github.com/diillson/arrivals-dashboard-go/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
	LoadEnv(envFiles ...string) (*types.Config, error)
}
