package export

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/diillson/sales-dashboard-go/internal/domain/entity"
)

// RenderPNG desenha o histograma como imagem PNG.
func RenderPNG(desc entity.ChartDescription, w io.Writer) error {
	if len(desc.Points) == 0 {
		return fmt.Errorf("no data to plot for %s", desc.Selection)
	}

	bars := make([]chart.Value, 0, len(desc.Points))
	minValue, maxValue := 0.0, 0.0
	for _, p := range desc.Points {
		value := p.Mean
		if !isFinite(value) {
			value = 0
		}
		minValue = math.Min(minValue, value)
		maxValue = math.Max(maxValue, value)
		bars = append(bars, chart.Value{Label: p.Product, Value: value})
	}

	// go-chart recusa faixa zero; garante uma faixa mínima quando tudo é 0.
	if maxValue-minValue == 0 {
		maxValue = 1
	}
	padding := (maxValue - minValue) * 0.05

	graph := chart.BarChart{
		Title: desc.Title(),
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Height:       512,
		Width:        int(math.Max(640, float64(len(bars))*80)),
		BarWidth:     50,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: chart.YAxis{
			Name: desc.YAxis,
			Range: &chart.ContinuousRange{
				Min: minValue,
				Max: maxValue + padding,
			},
		},
		Bars: bars,
	}

	return graph.Render(chart.PNG, w)
}

func (r *ExportRepositoryImpl) ExportToPNG(desc entity.ChartDescription, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "png")
	if err != nil {
		return "", err
	}

	// Renderiza em memória antes de criar o arquivo
	var buf bytes.Buffer
	if err := RenderPNG(desc, &buf); err != nil {
		return "", fmt.Errorf("error rendering PNG chart: %w", err)
	}

	if err := os.WriteFile(outputFilename, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("error writing PNG file: %w", err)
	}

	return filepath.Abs(outputFilename)
}
