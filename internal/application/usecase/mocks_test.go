package usecase

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
	"github.com/diillson/arrivals-dashboard-go/internal/domain/repository"
	"github.com/diillson/arrivals-dashboard-go/internal/shared/types"
)

type MockDatasetRepository struct {
	mock.Mock
}

func (m *MockDatasetRepository) LoadArrivals(ctx context.Context) ([]entity.Arrival, error) {
	args := m.Called(ctx)
	if records, ok := args.Get(0).([]entity.Arrival); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDatasetRepository) Source() string {
	return "mock"
}

type MockExportRepository struct {
	mock.Mock
}

func (m *MockExportRepository) ExportToCSV(d entity.Dashboard, filename, outputDir string) (string, error) {
	args := m.Called(d, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *MockExportRepository) ExportToJSON(d entity.Dashboard, filename, outputDir string) (string, error) {
	args := m.Called(d, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *MockExportRepository) ExportToPDF(d entity.Dashboard, filename, outputDir string) (string, error) {
	args := m.Called(d, filename, outputDir)
	return args.String(0), args.Error(1)
}

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

type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) LoadConfigFile(filePath string) (*types.Config, error) {
	args := m.Called(filePath)
	if cfg, ok := args.Get(0).(*types.Config); ok {
		return cfg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConfigRepository) LoadEnv(envFiles ...string) (*types.Config, error) {
	args := m.Called()
	if cfg, ok := args.Get(0).(*types.Config); ok {
		return cfg, args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeConsole records what was printed instead of writing to the terminal.
type fakeConsole struct {
	infos     []string
	warnings  []string
	errors    []string
	successes []string
	bars      map[string][]types.Bar
	changes   map[string][]types.ChangePoint
	printed   []string
}

func newFakeConsole() *fakeConsole {
	return &fakeConsole{bars: map[string][]types.Bar{}, changes: map[string][]types.ChangePoint{}}
}

func (c *fakeConsole) Print(a ...interface{})                 { c.printed = append(c.printed, fmt.Sprint(a...)) }
func (c *fakeConsole) Printf(format string, a ...interface{}) { c.printed = append(c.printed, fmt.Sprintf(format, a...)) }
func (c *fakeConsole) Println(a ...interface{})               { c.printed = append(c.printed, fmt.Sprintln(a...)) }

func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.successes = append(c.successes, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Status(message string) types.StatusHandle { return fakeStatus{} }

func (c *fakeConsole) CreateTable() types.TableInterface { return &fakeTable{} }

func (c *fakeConsole) DisplayBars(title string, bars []types.Bar) { c.bars[title] = bars }

func (c *fakeConsole) DisplayChangeSeries(title string, points []types.ChangePoint) {
	c.changes[title] = points
}

type fakeStatus struct{}

func (fakeStatus) Update(string) {}
func (fakeStatus) Stop()         {}

type fakeTable struct {
	rows [][]interface{}
}

func (t *fakeTable) AddColumn(name string, options ...interface{}) {}
func (t *fakeTable) AddRow(cells ...interface{})                  { t.rows = append(t.rows, cells) }
func (t *fakeTable) Render() string                               { return fmt.Sprint(t.rows) }
