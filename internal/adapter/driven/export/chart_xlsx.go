package export

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/diillson/sales-dashboard-go/internal/domain/entity"
)

const xlsxSheet = "Chart"

// ExportToXLSX grava a tabela produto/média e um gráfico de colunas nativo do Excel.
func (r *ExportRepositoryImpl) ExportToXLSX(chart entity.ChartDescription, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return "", fmt.Errorf("error preparing XLSX sheet: %w", err)
	}

	header := []interface{}{"Product", fmt.Sprintf("Average %s", chart.Selection.Label()), "Rows"}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return "", fmt.Errorf("error writing XLSX header: %w", err)
	}

	for i, p := range chart.Points {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		var mean interface{} = p.Mean
		if !isFinite(p.Mean) {
			mean = FormatNumber(p.Mean)
		}
		row := []interface{}{p.Product, mean, p.Count}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return "", fmt.Errorf("error writing XLSX row: %w", err)
		}
	}

	if len(chart.Points) > 0 {
		last := len(chart.Points) + 1
		err := f.AddChart(xlsxSheet, "E2", &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$B$1", xlsxSheet),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", xlsxSheet, last),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", xlsxSheet, last),
			}},
			Title:  []excelize.RichTextRun{{Text: chart.Title()}},
			Legend: excelize.ChartLegend{Position: "none"},
		})
		if err != nil {
			return "", fmt.Errorf("error adding XLSX chart: %w", err)
		}
	}

	if err := f.SaveAs(outputFilename); err != nil {
		return "", fmt.Errorf("error writing XLSX file: %w", err)
	}

	return filepath.Abs(outputFilename)
}
