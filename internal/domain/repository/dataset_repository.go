package repository

import (
	"context"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
)

// DatasetRepository loads the arrivals table from its source.
type DatasetRepository interface {
	// LoadArrivals reads every record. Any missing column or unparsable value is an error.
	LoadArrivals(ctx context.Context) ([]entity.Arrival, error)
	// Source describes where the records come from, for logging.
	Source() string
}
