package main

import (
	"fmt"
	"os"

	"github.com/diillson/arrivals-dashboard-go/internal/adapter/driven/chart"
	"github.com/diillson/arrivals-dashboard-go/internal/adapter/driven/config"
	"github.com/diillson/arrivals-dashboard-go/internal/adapter/driven/dataset"
	"github.com/diillson/arrivals-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/arrivals-dashboard-go/internal/adapter/driving/cli"
	"github.com/diillson/arrivals-dashboard-go/internal/application/usecase"
	"github.com/diillson/arrivals-dashboard-go/pkg/console"
	"github.com/diillson/arrivals-dashboard-go/pkg/version"
)

func main() {
	consoleImpl := console.NewConsole()

	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version, consoleImpl)

	// Inicializa os repositórios
	chartRepo := chart.NewChartRepository(0, 0)
	exportRepo := export.NewExportRepository(chartRepo)
	configRepo := config.NewConfigRepository()

	// Inicializa o caso de uso; a fonte de dados depende da configuração resolvida
	dashboardUseCase := usecase.NewDashboardUseCase(
		dataset.NewDatasetRepository,
		exportRepo,
		chartRepo,
		configRepo,
		consoleImpl,
	)

	app.SetDashboardUseCase(dashboardUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
