package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/diillson/sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/sales-dashboard-go/internal/shared/types"
)

type MockDatasetRepository struct {
	mock.Mock
}

func (m *MockDatasetRepository) LoadDataset(ctx context.Context, source types.DatasetSource) (*entity.Dataset, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Dataset), args.Error(1)
}

type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) LoadConfigFile(filePath string) (*types.Config, error) {
	args := m.Called(filePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Config), args.Error(1)
}

type MockExportRepository struct {
	mock.Mock
}

func (m *MockExportRepository) ExportToCSV(chart entity.ChartDescription, filename, outputDir string) (string, error) {
	args := m.Called(chart, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *MockExportRepository) ExportToJSON(chart entity.ChartDescription, filename, outputDir string) (string, error) {
	args := m.Called(chart, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *MockExportRepository) ExportToPDF(chart entity.ChartDescription, filename, outputDir string) (string, error) {
	args := m.Called(chart, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *MockExportRepository) ExportToXLSX(chart entity.ChartDescription, filename, outputDir string) (string, error) {
	args := m.Called(chart, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *MockExportRepository) ExportToHTML(chart entity.ChartDescription, filename, outputDir string) (string, error) {
	args := m.Called(chart, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *MockExportRepository) ExportToPNG(chart entity.ChartDescription, filename, outputDir string) (string, error) {
	args := m.Called(chart, filename, outputDir)
	return args.String(0), args.Error(1)
}

// fakeConsole grava as mensagens em vez de imprimir.
type fakeConsole struct {
	infos, warnings, errors, successes []string
	printed                            []string
	histogramTitle                     string
	histogram                          []types.HistogramBar
	table                              *fakeTable
}

func (c *fakeConsole) Print(a ...interface{})                 { c.printed = append(c.printed, fmt.Sprint(a...)) }
func (c *fakeConsole) Printf(format string, a ...interface{}) { c.printed = append(c.printed, fmt.Sprintf(format, a...)) }
func (c *fakeConsole) Println(a ...interface{})               { c.printed = append(c.printed, fmt.Sprint(a...)) }
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
func (c *fakeConsole) Status(string) types.StatusHandle { return fakeStatus{} }
func (c *fakeConsole) CreateTable() types.TableInterface {
	c.table = &fakeTable{}
	return c.table
}
func (c *fakeConsole) DisplayHistogram(title string, bars []types.HistogramBar) {
	c.histogramTitle = title
	c.histogram = bars
}

type fakeStatus struct{}

func (fakeStatus) Update(string) {}
func (fakeStatus) Stop()         {}

type fakeTable struct {
	columns []string
	rows    [][]interface{}
}

func (t *fakeTable) AddColumn(name string, _ ...interface{}) { t.columns = append(t.columns, name) }
func (t *fakeTable) AddRow(cells ...interface{})             { t.rows = append(t.rows, cells) }
func (t *fakeTable) Render() string                          { return "table" }

func newTestUseCase() (*DashboardUseCase, *MockDatasetRepository, *MockExportRepository, *MockConfigRepository, *fakeConsole) {
	datasetRepo := &MockDatasetRepository{}
	exportRepo := &MockExportRepository{}
	configRepo := &MockConfigRepository{}
	console := &fakeConsole{}
	return NewDashboardUseCase(datasetRepo, exportRepo, configRepo, console), datasetRepo, exportRepo, configRepo, console
}

func TestRunDashboard_RendersTableAndHistogram(t *testing.T) {
	uc, datasetRepo, exportRepo, _, console := newTestUseCase()
	args := &types.CLIArgs{DataFile: "data/sales.csv", Selection: "revenue"}

	datasetRepo.On("LoadDataset", mock.Anything, types.DatasetSource{Path: "data/sales.csv"}).
		Return(revenueDataset(), nil)

	require.NoError(t, uc.RunDashboard(context.Background(), args))

	assert.Equal(t, "Average Revenue by Product", console.histogramTitle)
	assert.Equal(t, []types.HistogramBar{{Label: "A", Value: 20}, {Label: "B", Value: 5}}, console.histogram)
	require.NotNil(t, console.table)
	assert.Len(t, console.table.rows, 3)
	assert.Len(t, console.table.columns, 6)
	exportRepo.AssertNotCalled(t, "ExportToCSV", mock.Anything, mock.Anything, mock.Anything)
	datasetRepo.AssertExpectations(t)
}

func TestRunDashboard_MissingFileFailsFast(t *testing.T) {
	uc, datasetRepo, _, _, console := newTestUseCase()
	args := &types.CLIArgs{DataFile: "missing.csv", Selection: "revenue"}

	datasetRepo.On("LoadDataset", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: missing.csv", types.ErrFileNotFound))

	err := uc.RunDashboard(context.Background(), args)
	assert.ErrorIs(t, err, types.ErrFileNotFound)
	assert.Nil(t, console.table)
	assert.Nil(t, console.histogram)
}

func TestRunDashboard_UnknownSelection(t *testing.T) {
	uc, datasetRepo, _, _, _ := newTestUseCase()
	args := &types.CLIArgs{DataFile: "data/sales.csv", Selection: "nonexistentField"}

	datasetRepo.On("LoadDataset", mock.Anything, mock.Anything).Return(revenueDataset(), nil)

	err := uc.RunDashboard(context.Background(), args)
	assert.ErrorIs(t, err, types.ErrFieldNotFound)
}

func TestRunDashboard_ExportsRequestedReports(t *testing.T) {
	uc, datasetRepo, exportRepo, _, console := newTestUseCase()
	args := &types.CLIArgs{
		DataFile:   "data/sales.csv",
		Selection:  "revenue",
		ReportName: "sales",
		ReportType: []string{"csv", "PDF", "docx", "png"},
		Dir:        "/tmp/out",
	}

	datasetRepo.On("LoadDataset", mock.Anything, mock.Anything).Return(revenueDataset(), nil)
	exportRepo.On("ExportToCSV", mock.Anything, "sales", "/tmp/out").Return("/tmp/out/sales.csv", nil)
	exportRepo.On("ExportToPDF", mock.Anything, "sales", "/tmp/out").Return("", errors.New("disk full"))
	exportRepo.On("ExportToPNG", mock.Anything, "sales", "/tmp/out").Return("/tmp/out/sales.png", nil)

	require.NoError(t, uc.RunDashboard(context.Background(), args))

	exportRepo.AssertExpectations(t)
	assert.Len(t, console.successes, 3) // load + csv + png
	require.Len(t, console.errors, 2)
	assert.Contains(t, console.errors[0], "disk full")
	assert.Contains(t, console.errors[1], types.ErrUnsupportedReportType.Error())
}

func TestDisplayDataset_LimitsRowsAndMarksMissingColumns(t *testing.T) {
	uc, _, _, _, console := newTestUseCase()
	ds := entity.NewDataset("mem", []entity.Row{
		{Product: "A", Revenue: 1},
		{Product: "B", Revenue: 2},
		{Product: "C", Revenue: 3},
	}, []entity.Selection{entity.SelectionRevenue})

	uc.DisplayDataset(ds, 2)

	require.Len(t, console.table.rows, 2)
	assert.Equal(t, "-", console.table.rows[0][1])
	assert.Equal(t, "1.00", console.table.rows[0][3])
	require.Len(t, console.infos, 1)
	assert.Contains(t, console.infos[0], "Showing 2 of 3 rows")
}

func TestDisplayChart_Empty(t *testing.T) {
	uc, _, _, _, console := newTestUseCase()

	uc.DisplayChart(entity.ChartDescription{Selection: entity.SelectionCost})

	assert.Nil(t, console.histogram)
	assert.Len(t, console.warnings, 1)
}

func TestLoadDataset_WarnsAboutMissingColumns(t *testing.T) {
	uc, datasetRepo, _, _, console := newTestUseCase()
	ds := entity.NewDataset("mem", nil, []entity.Selection{entity.SelectionRevenue})
	datasetRepo.On("LoadDataset", mock.Anything, types.DatasetSource{Path: "s3://b/k", Profile: "p", Region: "r"}).Return(ds, nil)

	got, err := uc.LoadDataset(context.Background(), &types.CLIArgs{DataFile: "s3://b/k", Profile: "p", Region: "r"})
	require.NoError(t, err)
	assert.Same(t, ds, got)
	require.Len(t, console.warnings, 1)
	assert.Contains(t, console.warnings[0], "cost, markup, contributionMargin, contributionMarginPct")
}

func TestApplyConfigFile(t *testing.T) {
	uc, _, _, configRepo, _ := newTestUseCase()
	configRepo.On("LoadConfigFile", "dashboard.toml").Return(&types.Config{
		DataFile:   "from-config.csv",
		Selection:  "markup",
		ReportName: "cfg",
		ReportType: []string{"json"},
		MaxRows:    intPtr(5),
		Listen:     ":9000",
	}, nil)

	args := &types.CLIArgs{ConfigFile: "dashboard.toml", Selection: "cost", ReportType: []string{"csv"}}
	explicit := map[string]bool{"selection": true}

	require.NoError(t, uc.ApplyConfigFile(args, func(flag string) bool { return explicit[flag] }))

	assert.Equal(t, "from-config.csv", args.DataFile)
	assert.Equal(t, "cost", args.Selection)
	assert.Equal(t, "cfg", args.ReportName)
	assert.Equal(t, []string{"json"}, args.ReportType)
	assert.Equal(t, 5, args.MaxRows)
	assert.Equal(t, ":9000", args.Listen)
}

func intPtr(v int) *int {
	return &v
}

func TestApplyConfigFile_ExplicitZeroOverridesDefaults(t *testing.T) {
	uc, _, _, configRepo, _ := newTestUseCase()
	configRepo.On("LoadConfigFile", "dashboard.yaml").Return(&types.Config{
		ReportType: []string{},
		MaxRows:    intPtr(0),
	}, nil)

	args := &types.CLIArgs{ConfigFile: "dashboard.yaml", ReportType: []string{"csv"}, MaxRows: 20}
	require.NoError(t, uc.ApplyConfigFile(args, nil))

	assert.Equal(t, 0, args.MaxRows)
	assert.Empty(t, args.ReportType)
}

func TestApplyConfigFile_AbsentKeysKeepFlagDefaults(t *testing.T) {
	uc, _, _, configRepo, _ := newTestUseCase()
	configRepo.On("LoadConfigFile", "dashboard.yaml").Return(&types.Config{Selection: "cost"}, nil)

	args := &types.CLIArgs{ConfigFile: "dashboard.yaml", ReportType: []string{"csv"}, MaxRows: 20}
	require.NoError(t, uc.ApplyConfigFile(args, nil))

	assert.Equal(t, 20, args.MaxRows)
	assert.Equal(t, []string{"csv"}, args.ReportType)
}

func TestApplyConfigFile_Defaults(t *testing.T) {
	uc, _, _, configRepo, _ := newTestUseCase()
	args := &types.CLIArgs{}

	require.NoError(t, uc.ApplyConfigFile(args, nil))

	assert.Equal(t, types.DefaultDataFile, args.DataFile)
	assert.Equal(t, types.DefaultSelection, args.Selection)
	assert.Equal(t, types.DefaultListen, args.Listen)
	configRepo.AssertNotCalled(t, "LoadConfigFile", mock.Anything)
}

func TestApplyConfigFile_Error(t *testing.T) {
	uc, _, _, configRepo, _ := newTestUseCase()
	configRepo.On("LoadConfigFile", "bad.yaml").Return(nil, errors.New("error parsing YAML file"))

	err := uc.ApplyConfigFile(&types.CLIArgs{ConfigFile: "bad.yaml"}, nil)
	assert.ErrorContains(t, err, "error parsing YAML file")
}

func TestRenderChart(t *testing.T) {
	uc, _, _, _, _ := newTestUseCase()

	chart, err := uc.RenderChart(revenueDataset(), "revenue")
	require.NoError(t, err)
	assert.Len(t, chart.Points, 2)

	_, err = uc.RenderChart(revenueDataset(), "nonexistentField")
	assert.ErrorIs(t, err, types.ErrFieldNotFound)
}
