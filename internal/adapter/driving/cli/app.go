package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/diillson/arrivals-dashboard-go/internal/adapter/driving/web"
	"github.com/diillson/arrivals-dashboard-go/internal/application/usecase"
	"github.com/diillson/arrivals-dashboard-go/internal/shared/types"
	"github.com/diillson/arrivals-dashboard-go/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd          *cobra.Command
	dashboardUseCase *usecase.DashboardUseCase
	console          types.ConsoleInterface
	version          string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, console types.ConsoleInterface) *CLIApp {
	app := &CLIApp{
		version: versionStr,
		console: console,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:          "arrivals-dashboard",
		Short:        "Foreign entries into Malaysia: interactive dashboard",
		Version:      formattedVersion,
		RunE:         app.runCommand,
		SilenceUsage: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "Foreign Entries Dashboard version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("data", "f", "", "Dataset source: CSV path, s3://bucket/key, mysql://dsn or postgres://dsn (default: arrivals_soe.csv)")
	rootCmd.PersistentFlags().Bool("serve", false, "Start the web dashboard instead of printing to the terminal")
	rootCmd.PersistentFlags().String("addr", "", "Listen address for --serve (default: :8501)")
	rootCmd.PersistentFlags().StringSlice("years", nil, "Years to include, comma-separated (default: all)")
	rootCmd.PersistentFlags().StringSlice("months", nil, "Month names to include, comma-separated (default: all)")
	rootCmd.PersistentFlags().StringSlice("states", nil, "Migration states to include, comma-separated (default: all)")
	rootCmd.PersistentFlags().String("gender", "", "Gender for the gender views: Male or Female (default: Male)")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().String("consistency", "", "Male + female = total check at load time: warn, strict or off (default: warn)")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
// Flags that were not given stay zero so that config file and environment
// values are not overridden by flag defaults.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()

	configFile, _ := flags.GetString("config-file")
	data, _ := flags.GetString("data")
	serve, _ := flags.GetBool("serve")
	addr, _ := flags.GetString("addr")
	gender, _ := flags.GetString("gender")
	reportName, _ := flags.GetString("report-name")
	dir, _ := flags.GetString("dir")
	consistency, _ := flags.GetString("consistency")

	args := &types.CLIArgs{
		ConfigFile:  configFile,
		Data:        data,
		Serve:       serve,
		Addr:        addr,
		Gender:      gender,
		ReportName:  reportName,
		Consistency: strings.ToLower(consistency),
	}

	if flags.Changed("years") {
		raw, _ := flags.GetStringSlice("years")
		args.Years = make([]int, 0, len(raw))
		for _, r := range raw {
			y, err := strconv.Atoi(strings.TrimSpace(r))
			if err != nil {
				return nil, fmt.Errorf("invalid year %q in --years", r)
			}
			args.Years = append(args.Years, y)
		}
	}
	if flags.Changed("months") {
		args.Months = listFlag(flags.GetStringSlice("months"))
	}
	if flags.Changed("states") {
		args.States = listFlag(flags.GetStringSlice("states"))
	}
	// sem a flag, o tipo vem da configuração (csv por padrão)
	if flags.Changed("report-type") {
		args.ReportType, _ = flags.GetStringSlice("report-type")
	}

	if dir != "" {
		// Convert to absolute path
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	return args, nil
}

// listFlag trims the values of a slice flag; the result is never nil.
func listFlag(values []string, _ error) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	// Exibe o banner de boas-vindas
	displayWelcomeBanner(app.version)

	// Verifica a versão mais recente disponível
	go version.CheckLatestVersion(app.version)

	// Analisa os argumentos da linha de comando
	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cliArgs.Serve {
		return app.serve(ctx, cliArgs)
	}
	return app.dashboardUseCase.RunDashboard(ctx, cliArgs)
}

// serve loads the dataset up front and refuses to start when it fails.
func (app *CLIApp) serve(ctx context.Context, cliArgs *types.CLIArgs) error {
	uc := app.dashboardUseCase

	cfg, err := uc.ResolveConfig(cliArgs)
	if err != nil {
		return err
	}
	if err := uc.Configure(cfg); err != nil {
		return err
	}
	if _, err := uc.Records(ctx); err != nil {
		return err
	}

	return web.NewServer(cfg.Addr, uc, app.console).ListenAndServe(ctx)
}

// SetDashboardUseCase sets the dashboard use case for the CLI app.
func (app *CLIApp) SetDashboardUseCase(useCase *usecase.DashboardUseCase) {
	app.dashboardUseCase = useCase
}
