package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/diillson/sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/sales-dashboard-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Funções de Exportação do Gráfico ---

func (r *ExportRepositoryImpl) ExportToCSV(chart entity.ChartDescription, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	headers := []string{"product", fmt.Sprintf("%s(%s)", chart.Aggregation, chart.Selection), "count"}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, p := range chart.Points {
		record := []string{
			p.Product,
			strconv.FormatFloat(p.Mean, 'f', -1, 64),
			strconv.Itoa(p.Count),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("error closing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// jsonPoint espelha ChartPoint, mas representa NaN como null.
type jsonPoint struct {
	Product string   `json:"product"`
	Mean    *float64 `json:"mean"`
	Count   int      `json:"count"`
}

func (r *ExportRepositoryImpl) ExportToJSON(chart entity.ChartDescription, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	points := make([]jsonPoint, 0, len(chart.Points))
	for _, p := range chart.Points {
		jp := jsonPoint{Product: p.Product, Count: p.Count}
		if isFinite(p.Mean) {
			mean := p.Mean
			jp.Mean = &mean
		}
		points = append(points, jp)
	}

	payload := struct {
		Title       string      `json:"title"`
		Selection   string      `json:"selection"`
		XAxis       string      `json:"x_axis"`
		YAxis       string      `json:"y_axis"`
		Aggregation string      `json:"aggregation"`
		Points      []jsonPoint `json:"points"`
	}{
		Title:       chart.Title(),
		Selection:   chart.Selection.String(),
		XAxis:       chart.XAxis,
		YAxis:       chart.YAxis,
		Aggregation: chart.Aggregation,
		Points:      points,
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("error closing JSON file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(chart entity.ChartDescription, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}
	barColor := [3]int{59, 130, 246}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", chart.Title())), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	drawTitle := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)
	}

	// Tabela com a média por produto
	drawTitle("Summary")
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(90, 7, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, tr(fmt.Sprintf("Average %s", chart.Selection.Label())), "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Rows", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	maxMean := 0.0
	for _, p := range chart.Points {
		pdf.CellFormat(90, 6, tr(truncate(p.Product, 50)), "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, FormatNumber(p.Mean), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, strconv.Itoa(p.Count), "", 1, "R", false, 0, "")
		if isFinite(p.Mean) && math.Abs(p.Mean) > maxMean {
			maxMean = math.Abs(p.Mean)
		}
	}
	pdf.Ln(8)

	// Histograma desenhado com retângulos
	drawTitle("Histogram")
	const labelWidth, barMaxWidth, barHeight = 50.0, 120.0, 6.0
	pdf.SetFont("Arial", "", 9)
	for _, p := range chart.Points {
		if pdf.GetY() > 270 {
			pdf.AddPage()
		}
		y := pdf.GetY()
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.CellFormat(labelWidth, barHeight, tr(truncate(p.Product, 28)), "", 0, "L", false, 0, "")

		width := 0.0
		if maxMean > 0 && isFinite(p.Mean) {
			width = math.Abs(p.Mean) / maxMean * barMaxWidth
		}
		if width > 0 {
			pdf.SetFillColor(barColor[0], barColor[1], barColor[2])
			pdf.Rect(pdf.GetX(), y+1, width, barHeight-2, "F")
		}
		pdf.SetX(pdf.GetX() + width + 2)
		pdf.CellFormat(20, barHeight, FormatNumber(p.Mean), "", 1, "L", false, 0, "")
	}

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by Sales Dashboard (Go) | %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// FormatNumber formata um valor com duas casas decimais; NaN e ±Inf saem como "NaN", "+Inf" e "-Inf".
func FormatNumber(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", v)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
