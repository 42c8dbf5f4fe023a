package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/diillson/sales-dashboard-go/internal/adapter/driving/http"
	"github.com/diillson/sales-dashboard-go/internal/application/usecase"
	"github.com/diillson/sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/sales-dashboard-go/internal/shared/types"
	"github.com/diillson/sales-dashboard-go/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd          *cobra.Command
	dashboardUseCase *usecase.DashboardUseCase
	console          types.ConsoleInterface
	version          string
	checkVersion     bool
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version:      versionStr,
		checkVersion: true,
	}

	rootCmd := &cobra.Command{
		Use:           "sales-dashboard",
		Short:         "Sales Dashboard CLI",
		Long:          "Average of a sales metric per product, rendered in the terminal, as report files or as a web dashboard.",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "Sales Dashboard version: %s\n" .Version}}`)

	// Flags compartilhadas por todos os subcomandos
	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("data-file", "f", types.DefaultDataFile, "Path or s3://bucket/key of the sales CSV")
	flags.StringP("selection", "s", types.DefaultSelection, "Field to average per product: cost, markup, revenue, contributionMargin, contributionMarginPct")
	flags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf, xlsx, html, png")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.IntP("max-rows", "m", 20, "Maximum dataset rows shown in the terminal (0 shows all)")
	flags.StringP("profile", "p", "", "AWS profile used for s3:// data files")
	flags.StringP("region", "r", "", "AWS region used for s3:// data files")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive dashboard over HTTP",
		RunE:  app.serveCommand,
	}
	serveCmd.Flags().StringP("listen", "l", types.DefaultListen, "Address the dashboard listens on")
	serveCmd.Flags().Int("page-size", http.DefaultPageSize, "Rows per page in the dashboard table")

	fieldsCmd := &cobra.Command{
		Use:   "fields",
		Short: "List the selectable fields",
		RunE:  app.fieldsCommand,
	}

	rootCmd.AddCommand(serveCmd, fieldsCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetArgs substitui os argumentos da linha de comando (usado nos testes).
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// parseArgs lê as flags de cmd para um CLIArgs e aplica o arquivo de configuração.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()

	configFile, _ := flags.GetString("config-file")
	dataFile, _ := flags.GetString("data-file")
	selection, _ := flags.GetString("selection")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	maxRows, _ := flags.GetInt("max-rows")
	profile, _ := flags.GetString("profile")
	region, _ := flags.GetString("region")

	args := &types.CLIArgs{
		ConfigFile: configFile,
		DataFile:   dataFile,
		Selection:  selection,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		MaxRows:    maxRows,
		Profile:    profile,
		Region:     region,
	}
	if flags.Lookup("listen") != nil {
		args.Listen, _ = flags.GetString("listen")
	}

	isSet := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}
	if err := app.dashboardUseCase.ApplyConfigFile(args, isSet); err != nil {
		return nil, err
	}

	if args.MaxRows < 0 {
		return nil, fmt.Errorf("invalid --max-rows %d: must be >= 0", args.MaxRows)
	}

	// Converte para caminho absoluto
	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		args.Dir = cwd
	} else {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(cmd.OutOrStdout())
	if app.checkVersion {
		go version.CheckLatestVersion(app.version)
	}

	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.dashboardUseCase.RunDashboard(ctx, cliArgs)
}

// serveCommand carrega o dataset uma vez e serve o dashboard até receber um sinal.
func (app *CLIApp) serveCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(cmd.OutOrStdout())

	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	// Falha cedo se a seleção padrão for inválida
	if _, err := entity.ParseSelection(cliArgs.Selection); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataset, err := app.dashboardUseCase.LoadDataset(ctx, cliArgs)
	if err != nil {
		return err
	}

	pageSize, _ := cmd.Flags().GetInt("page-size")
	server := http.NewServer(app.dashboardUseCase, dataset, app.console, cliArgs.Selection).WithPageSize(pageSize)
	return server.Run(ctx, cliArgs.Listen)
}

func (app *CLIApp) fieldsCommand(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, sel := range entity.AllSelections() {
		fmt.Fprintf(out, "%-24s %s\n", sel.String(), sel.Label())
	}
	return nil
}

// SetDashboardUseCase sets the dashboard use case for the CLI app.
func (app *CLIApp) SetDashboardUseCase(useCase *usecase.DashboardUseCase) {
	app.dashboardUseCase = useCase
}

// SetConsole define o console usado pelo servidor HTTP.
func (app *CLIApp) SetConsole(console types.ConsoleInterface) {
	app.console = console
}
