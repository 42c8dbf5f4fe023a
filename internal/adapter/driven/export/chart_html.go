package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/diillson/sales-dashboard-go/internal/domain/entity"
)

const (
	colorBar           = "#3b82f6"
	colorTextSecondary = "#6b7280"
)

// NewBarChart monta o histograma interativo (go-echarts) para a descrição do gráfico.
func NewBarChart(chart entity.ChartDescription) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: chart.Title(),
			Width:     "100%",
			Height:    "480px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    chart.Title(),
			Subtitle: fmt.Sprintf("%s(%s) grouped by %s", chart.Aggregation, chart.Selection, chart.XAxis),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      chart.XAxis,
			Type:      "category",
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      chart.YAxis,
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
		}),
	)

	data := make([]opts.BarData, 0, len(chart.Points))
	for _, p := range chart.Points {
		var value interface{} = p.Mean
		if !isFinite(p.Mean) {
			value = "-"
		}
		data = append(data, opts.BarData{Name: p.Product, Value: value})
	}

	bar.SetXAxis(chart.Categories())
	bar.AddSeries(chart.Selection.Label(), data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorBar}),
	)
	return bar
}

// RenderHTML escreve a página HTML do gráfico no writer.
func RenderHTML(chart entity.ChartDescription, w io.Writer) error {
	return NewBarChart(chart).Render(w)
}

func (r *ExportRepositoryImpl) ExportToHTML(chart entity.ChartDescription, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "html")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := RenderHTML(chart, &buf); err != nil {
		return "", fmt.Errorf("error rendering HTML chart: %w", err)
	}

	if err := os.WriteFile(outputFilename, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("error writing HTML file: %w", err)
	}

	return filepath.Abs(outputFilename)
}
