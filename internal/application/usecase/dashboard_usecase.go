package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/pterm/pterm"

	"github.com/diillson/sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/sales-dashboard-go/internal/domain/repository"
	"github.com/diillson/sales-dashboard-go/internal/shared/types"
)

// DashboardUseCase handles the main dashboard functionality.
type DashboardUseCase struct {
	datasetRepo repository.DatasetRepository
	exportRepo  repository.ExportRepository
	configRepo  repository.ConfigRepository
	console     types.ConsoleInterface
}

// NewDashboardUseCase creates a new dashboard use case.
func NewDashboardUseCase(
	datasetRepo repository.DatasetRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *DashboardUseCase {
	return &DashboardUseCase{
		datasetRepo: datasetRepo,
		exportRepo:  exportRepo,
		configRepo:  configRepo,
		console:     console,
	}
}

// ApplyConfigFile carrega o arquivo de configuração (se houver) e mescla com os
// argumentos. Flags definidas explicitamente sempre vencem.
func (uc *DashboardUseCase) ApplyConfigFile(args *types.CLIArgs, isSet func(flag string) bool) error {
	if args.ConfigFile != "" {
		cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return err
		}
		MergeConfig(args, cfg, isSet)
		uc.console.LogInfo("Loaded configuration from %s", args.ConfigFile)
	}

	if args.DataFile == "" {
		args.DataFile = types.DefaultDataFile
	}
	if args.Selection == "" {
		args.Selection = types.DefaultSelection
	}
	if args.Listen == "" {
		args.Listen = types.DefaultListen
	}
	return nil
}

// MergeConfig copia os valores do arquivo para os campos cujas flags não foram definidas.
func MergeConfig(args *types.CLIArgs, cfg *types.Config, isSet func(flag string) bool) {
	if cfg == nil {
		return
	}
	if isSet == nil {
		isSet = func(string) bool { return false }
	}

	if !isSet("data-file") && cfg.DataFile != "" {
		args.DataFile = cfg.DataFile
	}
	if !isSet("selection") && cfg.Selection != "" {
		args.Selection = cfg.Selection
	}
	if !isSet("report-name") && cfg.ReportName != "" {
		args.ReportName = cfg.ReportName
	}
	if !isSet("report-type") && cfg.ReportType != nil {
		args.ReportType = cfg.ReportType
	}
	if !isSet("dir") && cfg.Dir != "" {
		args.Dir = cfg.Dir
	}
	if !isSet("max-rows") && cfg.MaxRows != nil {
		args.MaxRows = *cfg.MaxRows
	}
	if !isSet("listen") && cfg.Listen != "" {
		args.Listen = cfg.Listen
	}
	if !isSet("profile") && cfg.Profile != "" {
		args.Profile = cfg.Profile
	}
	if !isSet("region") && cfg.Region != "" {
		args.Region = cfg.Region
	}
}

// LoadDataset carrega o dataset uma única vez, com spinner de status.
func (uc *DashboardUseCase) LoadDataset(ctx context.Context, args *types.CLIArgs) (*entity.Dataset, error) {
	status := uc.console.Status(fmt.Sprintf("Loading dataset from %s...", args.DataFile))
	dataset, err := uc.datasetRepo.LoadDataset(ctx, types.DatasetSource{
		Path:    args.DataFile,
		Profile: args.Profile,
		Region:  args.Region,
	})
	status.Stop()
	if err != nil {
		return nil, err
	}

	uc.console.LogSuccess("Loaded %d rows from %s", dataset.Len(), dataset.Source())
	if missing := missingColumns(dataset); len(missing) > 0 {
		uc.console.LogWarning("Dataset has no column for: %s", strings.Join(missing, ", "))
	}
	return dataset, nil
}

// RenderChart valida a seleção na fronteira e executa a agregação.
func (uc *DashboardUseCase) RenderChart(dataset *entity.Dataset, selection string) (entity.ChartDescription, error) {
	sel, err := entity.ParseSelection(selection)
	if err != nil {
		return entity.ChartDescription{}, err
	}
	return Aggregate(dataset, sel)
}

// RunDashboard executa a funcionalidade principal do dashboard.
func (uc *DashboardUseCase) RunDashboard(ctx context.Context, args *types.CLIArgs) error {
	dataset, err := uc.LoadDataset(ctx, args)
	if err != nil {
		return err
	}

	uc.DisplayDataset(dataset, args.MaxRows)

	chart, err := uc.RenderChart(dataset, args.Selection)
	if err != nil {
		return err
	}
	uc.DisplayChart(chart)

	if args.ReportName != "" {
		uc.ExportChart(chart, args)
	}
	return nil
}

// DisplayDataset exibe as linhas do dataset em uma tabela. maxRows 0 exibe todas.
func (uc *DashboardUseCase) DisplayDataset(dataset *entity.Dataset, maxRows int) {
	table := uc.console.CreateTable()
	table.AddColumn("Product")
	for _, sel := range entity.AllSelections() {
		table.AddColumn(sel.Label())
	}

	limit := dataset.Len()
	if maxRows > 0 && maxRows < limit {
		limit = maxRows
	}

	for i := 0; i < limit; i++ {
		row := dataset.Row(i)
		cells := []interface{}{pterm.FgMagenta.Sprint(row.Product)}
		for _, sel := range entity.AllSelections() {
			if !dataset.HasColumn(sel) {
				cells = append(cells, "-")
				continue
			}
			v, _ := row.Value(sel)
			cells = append(cells, formatValue(v))
		}
		table.AddRow(cells...)
	}

	uc.console.Print(table.Render())
	uc.console.Println()
	if limit < dataset.Len() {
		uc.console.LogInfo("Showing %d of %d rows. Use --max-rows 0 to show all.", limit, dataset.Len())
	}
}

// DisplayChart exibe o histograma da média por produto.
func (uc *DashboardUseCase) DisplayChart(chart entity.ChartDescription) {
	if len(chart.Points) == 0 {
		uc.console.LogWarning("No rows to aggregate for %s", chart.Selection)
		return
	}

	bars := make([]types.HistogramBar, 0, len(chart.Points))
	for _, p := range chart.Points {
		bars = append(bars, types.HistogramBar{Label: p.Product, Value: p.Mean})
	}
	uc.console.DisplayHistogram(chart.Title(), bars)
}

// ExportChart exporta o gráfico para cada tipo de relatório solicitado e
// retorna os caminhos gerados. Falhas são registradas, não interrompem os demais.
func (uc *DashboardUseCase) ExportChart(chart entity.ChartDescription, args *types.CLIArgs) []string {
	var paths []string

	for _, reportType := range args.ReportType {
		reportType = strings.ToLower(strings.TrimSpace(reportType))

		var (
			path string
			err  error
		)
		switch reportType {
		case "csv":
			path, err = uc.exportRepo.ExportToCSV(chart, args.ReportName, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportToJSON(chart, args.ReportName, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportToPDF(chart, args.ReportName, args.Dir)
		case "xlsx":
			path, err = uc.exportRepo.ExportToXLSX(chart, args.ReportName, args.Dir)
		case "html":
			path, err = uc.exportRepo.ExportToHTML(chart, args.ReportName, args.Dir)
		case "png":
			path, err = uc.exportRepo.ExportToPNG(chart, args.ReportName, args.Dir)
		default:
			err = fmt.Errorf("%w: %s", types.ErrUnsupportedReportType, reportType)
		}

		if err != nil {
			uc.console.LogError("Failed to export chart to %s: %s", strings.ToUpper(reportType), err)
			continue
		}
		uc.console.LogSuccess("Successfully exported chart to %s: %s", strings.ToUpper(reportType), path)
		paths = append(paths, path)
	}

	return paths
}

func missingColumns(dataset *entity.Dataset) []string {
	var missing []string
	for _, sel := range entity.AllSelections() {
		if !dataset.HasColumn(sel) {
			missing = append(missing, sel.String())
		}
	}
	return missing
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return pterm.FgRed.Sprint("NaN")
	}
	return fmt.Sprintf("%.2f", v)
}
