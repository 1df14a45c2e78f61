package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
	"github.com/diillson/arrivals-dashboard-go/internal/domain/pipeline"
	"github.com/diillson/arrivals-dashboard-go/internal/domain/repository"
	"github.com/diillson/arrivals-dashboard-go/internal/shared/types"
)

// DatasetFactory builds the dataset source for a resolved configuration.
type DatasetFactory func(cfg types.Config) (repository.DatasetRepository, error)

// DashboardUseCase handles the main dashboard functionality.
type DashboardUseCase struct {
	newDataset DatasetFactory
	exportRepo repository.ExportRepository
	chartRepo  repository.ChartRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface

	cfg         types.Config
	datasetRepo repository.DatasetRepository

	// carregado uma única vez; depois disso somente leitura
	once    sync.Once
	records []entity.Arrival
	options entity.FilterOptions
	loadErr error
}

// NewDashboardUseCase creates a new dashboard use case.
func NewDashboardUseCase(
	newDataset DatasetFactory,
	exportRepo repository.ExportRepository,
	chartRepo repository.ChartRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *DashboardUseCase {
	return &DashboardUseCase{
		newDataset: newDataset,
		exportRepo: exportRepo,
		chartRepo:  chartRepo,
		configRepo: configRepo,
		console:    console,
		cfg:        types.DefaultConfig(),
	}
}

// ResolveConfig merges defaults, environment (.env included), the config
// file and the CLI flags, in increasing order of precedence.
func (uc *DashboardUseCase) ResolveConfig(args *types.CLIArgs) (types.Config, error) {
	cfg := types.DefaultConfig()

	envCfg, err := uc.configRepo.LoadEnv()
	if err != nil {
		return cfg, err
	}
	cfg.Merge(*envCfg)

	if args.ConfigFile != "" {
		fileCfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return cfg, err
		}
		cfg.Merge(*fileCfg)
	}

	cfg.Merge(types.Config{
		Data:        args.Data,
		Addr:        args.Addr,
		Consistency: args.Consistency,
		ReportName:  args.ReportName,
		ReportType:  args.ReportType,
		Dir:         args.Dir,
	})

	switch cfg.Consistency {
	case types.ConsistencyWarn, types.ConsistencyStrict, types.ConsistencyOff:
	default:
		return cfg, fmt.Errorf("invalid consistency mode %q (expected warn, strict or off)", cfg.Consistency)
	}
	return cfg, nil
}

// Configure selects the dataset source. It must be called before the first
// Records call; later calls have no effect on an already loaded table.
func (uc *DashboardUseCase) Configure(cfg types.Config) error {
	repo, err := uc.newDataset(cfg)
	if err != nil {
		return err
	}
	uc.cfg = cfg
	uc.datasetRepo = repo
	return nil
}

// Config returns the configuration in use.
func (uc *DashboardUseCase) Config() types.Config {
	return uc.cfg
}

// Records loads the dataset on first use and returns the cached table
// (or the cached load error) afterwards.
func (uc *DashboardUseCase) Records(ctx context.Context) ([]entity.Arrival, error) {
	uc.once.Do(func() {
		uc.records, uc.loadErr = uc.load(ctx)
		if uc.loadErr == nil {
			uc.options = pipeline.Options(uc.records)
		}
	})
	return uc.records, uc.loadErr
}

func (uc *DashboardUseCase) load(ctx context.Context) ([]entity.Arrival, error) {
	if uc.datasetRepo == nil {
		if err := uc.Configure(uc.cfg); err != nil {
			return nil, err
		}
	}

	status := uc.console.Status(fmt.Sprintf("Loading dataset from %s...", uc.datasetRepo.Source()))
	records, err := uc.datasetRepo.LoadArrivals(ctx)
	status.Stop()
	if err != nil {
		return nil, fmt.Errorf("error loading dataset: %w", err)
	}

	if err := uc.checkConsistency(records); err != nil {
		return nil, err
	}

	uc.console.LogSuccess("Loaded %d rows from %s", len(records), uc.datasetRepo.Source())
	return records, nil
}

// checkConsistency compares Male + Female with Arrivals on every row.
func (uc *DashboardUseCase) checkConsistency(records []entity.Arrival) error {
	if uc.cfg.Consistency == types.ConsistencyOff {
		return nil
	}

	inconsistent := 0
	for _, r := range records {
		if !r.GenderSplitConsistent() {
			inconsistent++
		}
	}
	if inconsistent == 0 {
		return nil
	}

	if uc.cfg.Consistency == types.ConsistencyStrict {
		return fmt.Errorf("%w: %d of %d rows", types.ErrInconsistentGenderSplit, inconsistent, len(records))
	}
	uc.console.LogWarning("%d of %d rows have male + female different from total arrivals; the combined view may differ from the total view",
		inconsistent, len(records))
	return nil
}

// Options returns the distinct filter values and the default selection.
func (uc *DashboardUseCase) Options(ctx context.Context) (entity.FilterOptions, error) {
	if _, err := uc.Records(ctx); err != nil {
		return entity.FilterOptions{}, err
	}
	return uc.options, nil
}

// BuildDashboard filters the table and computes the seven views.
func (uc *DashboardUseCase) BuildDashboard(ctx context.Context, sel entity.Selection) (entity.Dashboard, error) {
	records, err := uc.Records(ctx)
	if err != nil {
		return entity.Dashboard{}, err
	}
	return pipeline.BuildDashboard(records, sel), nil
}

// RenderChart builds the dashboard for sel and draws one of its views.
func (uc *DashboardUseCase) RenderChart(ctx context.Context, sel entity.Selection, view entity.ViewID, format repository.ChartFormat) ([]byte, error) {
	d, err := uc.BuildDashboard(ctx, sel)
	if err != nil {
		return nil, err
	}
	return uc.RenderView(d, view, format)
}

// RenderView draws one view of an already built dashboard.
func (uc *DashboardUseCase) RenderView(d entity.Dashboard, view entity.ViewID, format repository.ChartFormat) ([]byte, error) {
	return uc.chartRepo.RenderView(d, view, format)
}

// ResolveSelection starts from the default selection and replaces every
// dimension given on the command line.
func (uc *DashboardUseCase) ResolveSelection(ctx context.Context, args *types.CLIArgs) (entity.Selection, error) {
	opts, err := uc.Options(ctx)
	if err != nil {
		return entity.Selection{}, err
	}

	sel := opts.Default
	if args.Years != nil {
		sel.Years = args.Years
	}
	if args.Months != nil {
		sel.Months = args.Months
	}
	if args.States != nil {
		sel.States = args.States
	}
	if args.Gender != "" {
		g, err := entity.ParseGender(args.Gender)
		if err != nil {
			return entity.Selection{}, err
		}
		sel.Gender = g
	}
	return sel, nil
}

// RunDashboard executa o dashboard no terminal e exporta os relatórios pedidos.
func (uc *DashboardUseCase) RunDashboard(ctx context.Context, args *types.CLIArgs) error {
	cfg, err := uc.ResolveConfig(args)
	if err != nil {
		return err
	}
	if err := uc.Configure(cfg); err != nil {
		return err
	}

	sel, err := uc.ResolveSelection(ctx, args)
	if err != nil {
		return err
	}

	d, err := uc.BuildDashboard(ctx, sel)
	if err != nil {
		return err
	}

	uc.DisplayDashboard(d)

	if cfg.ReportName != "" {
		reportTypes := cfg.ReportType
		if len(reportTypes) == 0 {
			reportTypes = []string{"csv"}
		}
		uc.Export(d, cfg.ReportName, cfg.Dir, reportTypes)
	}
	return nil
}

// DisplayDashboard prints the selection summary and the seven views.
func (uc *DashboardUseCase) DisplayDashboard(d entity.Dashboard) {
	uc.console.LogInfo("Years: %v | Months: %d selected | States: %d selected | Gender: %s",
		d.Selection.Years, len(d.Selection.Months), len(d.Selection.States), d.Selection.Gender)
	uc.console.LogInfo("%d rows match the current selection", d.FilteredRows)

	uc.console.DisplayBars(entity.ViewTitles[entity.ViewGenderByYear], yearBars(d.GenderByYear))

	points := make([]types.ChangePoint, 0, len(d.GenderChangeByYear))
	for _, c := range d.GenderChangeByYear {
		points = append(points, types.ChangePoint{Label: strconv.Itoa(c.Year), Value: c.Value, Change: c.Change})
	}
	uc.console.DisplayChangeSeries(entity.ViewTitles[entity.ViewGenderChangeByYear], points)

	uc.console.DisplayBars(entity.ViewTitles[entity.ViewTotalByYear], yearBars(d.TotalByYear))

	combined := make([]types.Bar, 0, len(d.CombinedByYear))
	for _, t := range d.CombinedByYear {
		combined = append(combined, types.Bar{Label: strconv.Itoa(t.Year), Value: t.Total})
	}
	uc.console.DisplayBars(entity.ViewTitles[entity.ViewCombinedByYear], combined)

	uc.displayStateShare(d.StateShare)

	uc.console.DisplayBars(entity.ViewTitles[entity.ViewTopCountries], labelBars(d.TopCountries))
	uc.console.DisplayBars(entity.ViewTitles[entity.ViewStateTotals], labelBars(d.StateTotals))
}

func (uc *DashboardUseCase) displayStateShare(values []entity.LabelValue) {
	title := entity.ViewTitles[entity.ViewStateShare]
	if len(values) == 0 {
		uc.console.LogWarning("%s: no data for the current selection", title)
		return
	}

	table := uc.console.CreateTable()
	table.AddColumn("Migration State")
	table.AddColumn("Arrivals")
	table.AddColumn("Share")
	shares := pipeline.Shares(values)
	for i, lv := range values {
		table.AddRow(lv.Label, strconv.FormatFloat(lv.Value, 'f', -1, 64), fmt.Sprintf("%.2f%%", shares[i]))
	}
	uc.console.Println("\n" + title)
	uc.console.Print(table.Render())
}

// Export writes one report per requested type; a failing type is logged and
// does not stop the others.
func (uc *DashboardUseCase) Export(d entity.Dashboard, name, dir string, reportTypes []string) {
	for _, reportType := range reportTypes {
		switch reportType {
		case "csv":
			csvPath, err := uc.exportRepo.ExportToCSV(d, name, dir)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to CSV: %s", csvPath)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportToJSON(d, name, dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportToPDF(d, name, dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
			}
		default:
			uc.console.LogWarning("Unknown report type '%s' ignored", reportType)
		}
	}
}

func yearBars(values []entity.YearValue) []types.Bar {
	bars := make([]types.Bar, 0, len(values))
	for _, yv := range values {
		bars = append(bars, types.Bar{Label: strconv.Itoa(yv.Year), Value: yv.Value})
	}
	return bars
}

func labelBars(values []entity.LabelValue) []types.Bar {
	bars := make([]types.Bar, 0, len(values))
	for _, lv := range values {
		bars = append(bars, types.Bar{Label: lv.Label, Value: lv.Value})
	}
	return bars
}
