package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/diillson/arrivals-dashboard-go/internal/adapter/driven/chart"
	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
	"github.com/diillson/arrivals-dashboard-go/internal/domain/repository"
	"github.com/diillson/arrivals-dashboard-go/internal/shared/types"
)

type MockChartRepository struct {
	mock.Mock
}

func (m *MockChartRepository) RenderView(d entity.Dashboard, view entity.ViewID, format repository.ChartFormat) ([]byte, error) {
	args := m.Called(d, view, format)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func ptr(f float64) *float64 { return &f }

func sampleDashboard() entity.Dashboard {
	return entity.Dashboard{
		Selection: entity.Selection{
			Years:  []int{2019, 2020},
			Months: []string{"January"},
			States: []string{"Selangor"},
			Gender: entity.GenderMale,
		},
		FilteredRows:       2,
		GenderByYear:       []entity.YearValue{{Year: 2019, Value: 10}, {Year: 2020, Value: 20}},
		GenderChangeByYear: []entity.YearChange{{Year: 2019, Value: 10}, {Year: 2020, Value: 20, Change: ptr(100)}},
		TotalByYear:        []entity.YearValue{{Year: 2019, Value: 15}, {Year: 2020, Value: 30}},
		CombinedByYear: []entity.YearGenderTotal{
			{Year: 2019, Male: 10, Female: 5, Total: 15},
			{Year: 2020, Male: 20, Female: 10, Total: 30},
		},
		StateShare:   []entity.LabelValue{{Label: "Selangor", Value: 45}},
		TopCountries: []entity.LabelValue{{Label: "SGP", Value: 45}},
		StateTotals:  []entity.LabelValue{{Label: "Selangor", Value: 45}},
	}
}

func TestExportToCSV(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository(nil)

	path, err := repo.ExportToCSV(sampleDashboard(), "report", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "report_"))
	assert.Equal(t, ".csv", filepath.Ext(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	var flat []string
	for _, r := range records {
		flat = append(flat, strings.Join(r, "|"))
	}
	for _, view := range entity.ViewOrder {
		assert.Contains(t, flat, entity.ViewTitles[view])
	}
	assert.Contains(t, flat, "Years|2019, 2020")
	assert.Contains(t, flat, "2019|10|N/A")
	assert.Contains(t, flat, "2020|20|+100.00%")
	assert.Contains(t, flat, "Selangor|45|100.00%")
}

func TestExportToJSON(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository(nil)

	path, err := repo.ExportToJSON(sampleDashboard(), "report", dir)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Dashboard struct {
			FilteredRows       int `json:"filtered_rows"`
			GenderChangeByYear []struct {
				Year   int      `json:"year"`
				Change *float64 `json:"percentage_change"`
			} `json:"gender_change_by_year"`
		} `json:"dashboard"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, 2, doc.Dashboard.FilteredRows)
	require.Len(t, doc.Dashboard.GenderChangeByYear, 2)
	assert.Nil(t, doc.Dashboard.GenderChangeByYear[0].Change)
	require.NotNil(t, doc.Dashboard.GenderChangeByYear[1].Change)
	assert.InDelta(t, 100.0, *doc.Dashboard.GenderChangeByYear[1].Change, 1e-9)
	assert.Contains(t, string(raw), `"percentage_change": null`)
}

func TestExportToPDF(t *testing.T) {
	t.Run("should embed rendered charts", func(t *testing.T) {
		dir := t.TempDir()
		repo := NewExportRepository(chart.NewChartRepository(640, 320))

		path, err := repo.ExportToPDF(sampleDashboard(), "report", dir)
		require.NoError(t, err)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
	})

	t.Run("should write placeholders when no chart has data", func(t *testing.T) {
		dir := t.TempDir()
		charts := new(MockChartRepository)
		charts.On("RenderView", mock.Anything, mock.Anything, repository.ChartPNG).Return(nil, types.ErrNoData)
		repo := NewExportRepository(charts)

		path, err := repo.ExportToPDF(entity.Dashboard{}, "empty", dir)
		require.NoError(t, err)
		assert.FileExists(t, path)
		charts.AssertNumberOfCalls(t, "RenderView", len(entity.ViewOrder))
	})
}

func TestGenerateFilename(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	name, err := generateFilename("", dir, "json")
	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, dir, filepath.Dir(name))
	assert.True(t, strings.HasPrefix(filepath.Base(name), "arrivals_dashboard_"))
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "N/A", FormatChange(nil))
	assert.Equal(t, "+12.50%", FormatChange(ptr(12.5)))
	assert.Equal(t, "-3.00%", FormatChange(ptr(-3)))
}
