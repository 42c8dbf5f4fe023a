package repository

import (
	"github.com/diillson/sales-dashboard-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(chart entity.ChartDescription, filename, outputDir string) (string, error)
	ExportToJSON(chart entity.ChartDescription, filename, outputDir string) (string, error)
	ExportToPDF(chart entity.ChartDescription, filename, outputDir string) (string, error)

	// Formatos com gráfico
	ExportToXLSX(chart entity.ChartDescription, filename, outputDir string) (string, error)
	ExportToHTML(chart entity.ChartDescription, filename, outputDir string) (string, error)
	ExportToPNG(chart entity.ChartDescription, filename, outputDir string) (string, error)
}
