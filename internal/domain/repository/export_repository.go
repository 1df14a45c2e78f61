package repository

import (
	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(d entity.Dashboard, filename string, outputDir string) (string, error)
	ExportToJSON(d entity.Dashboard, filename string, outputDir string) (string, error)
	ExportToPDF(d entity.Dashboard, filename string, outputDir string) (string, error)
}
