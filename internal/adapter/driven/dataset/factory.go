package dataset

import (
	"strings"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/repository"
	"github.com/diillson/arrivals-dashboard-go/internal/shared/types"
)

// NewDatasetRepository picks the source implementation from the data setting:
// s3:// objects, mysql:// or postgres:// queries, otherwise a local file.
func NewDatasetRepository(cfg types.Config) (repository.DatasetRepository, error) {
	switch {
	case strings.HasPrefix(cfg.Data, "s3://"):
		return NewS3Repository(cfg.Data, cfg.AWSProfile, cfg.AWSRegion, cfg.Columns)
	case strings.HasPrefix(cfg.Data, "mysql://"),
		strings.HasPrefix(cfg.Data, "postgres://"),
		strings.HasPrefix(cfg.Data, "postgresql://"):
		return NewSQLRepository(cfg.Data, cfg.SQLQuery)
	default:
		return NewCSVRepository(cfg.Data, cfg.Columns), nil
	}
}
