package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/diillson/sales-dashboard-go/internal/domain/entity"
)

func sampleChart() entity.ChartDescription {
	return entity.ChartDescription{
		Selection:   entity.SelectionRevenue,
		XAxis:       "product",
		YAxis:       "Revenue",
		Aggregation: entity.AggregationAverage,
		Points: []entity.ChartPoint{
			{Product: "A", Mean: 20, Count: 2},
			{Product: "B", Mean: 5, Count: 1},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	path, err := repo.ExportToCSV(sampleChart(), "sales", dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "sales_"))
	assert.Equal(t, ".csv", filepath.Ext(path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"product", "avg(revenue)", "count"},
		{"A", "20", "2"},
		{"B", "5", "1"},
	}, records)
}

func TestExportToJSON_NaNBecomesNull(t *testing.T) {
	repo := NewExportRepository()
	chart := sampleChart()
	chart.Points = append(chart.Points, entity.ChartPoint{Product: "C", Mean: math.NaN(), Count: 1})

	path, err := repo.ExportToJSON(chart, "sales", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Title  string `json:"title"`
		Points []struct {
			Product string   `json:"product"`
			Mean    *float64 `json:"mean"`
		} `json:"points"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Average Revenue by Product", decoded.Title)
	require.Len(t, decoded.Points, 3)
	assert.Equal(t, 20.0, *decoded.Points[0].Mean)
	assert.Nil(t, decoded.Points[2].Mean)
}

func TestExportToPDF(t *testing.T) {
	repo := NewExportRepository()

	path, err := repo.ExportToPDF(sampleChart(), "sales", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportToXLSX(t *testing.T) {
	repo := NewExportRepository()

	path, err := repo.ExportToXLSX(sampleChart(), "sales", t.TempDir())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Product", "Average Revenue", "Rows"}, rows[0])
	assert.Equal(t, "A", rows[1][0])
	assert.Equal(t, "20", rows[1][1])
}

func TestExportToHTML(t *testing.T) {
	repo := NewExportRepository()

	path, err := repo.ExportToHTML(sampleChart(), "sales", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Average Revenue by Product")
}

func TestExportToPNG(t *testing.T) {
	repo := NewExportRepository()

	path, err := repo.ExportToPNG(sampleChart(), "sales", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestRenderPNG_SingleZeroBar(t *testing.T) {
	chart := sampleChart()
	chart.Points = []entity.ChartPoint{{Product: "A", Mean: 0, Count: 1}}

	var buf bytes.Buffer
	require.NoError(t, RenderPNG(chart, &buf))
	assert.NotZero(t, buf.Len())
}

func TestRenderPNG_Empty(t *testing.T) {
	chart := sampleChart()
	chart.Points = nil

	var buf bytes.Buffer
	assert.Error(t, RenderPNG(chart, &buf))
}

func TestGenerateFilename_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	name, err := generateFilename("report", dir, "csv")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(name))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestExportToPNG_EmptyChartLeavesNoFile(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()
	chart := sampleChart()
	chart.Points = nil

	_, err := repo.ExportToPNG(chart, "empty", dir)
	require.Error(t, err)

	files, err := filepath.Glob(filepath.Join(dir, "empty_*"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestExportToPDF_InfiniteMeans(t *testing.T) {
	repo := NewExportRepository()
	chart := sampleChart()
	chart.Points = append(chart.Points,
		entity.ChartPoint{Product: "C", Mean: math.Inf(1), Count: 2},
		entity.ChartPoint{Product: "D", Mean: math.NaN(), Count: 1},
	)

	var path string
	require.NotPanics(t, func() {
		var err error
		path, err = repo.ExportToPDF(chart, "inf", t.TempDir())
		require.NoError(t, err)
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "20.00", FormatNumber(20))
	assert.Equal(t, "NaN", FormatNumber(math.NaN()))
	assert.Equal(t, "+Inf", FormatNumber(math.Inf(1)))
	assert.Equal(t, "-Inf", FormatNumber(math.Inf(-1)))
}
