package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/diillson/sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/sales-dashboard-go/internal/shared/types"
)

const productColumn = "product"

// columnTypes força os tipos das colunas conhecidas; células numéricas
// malformadas viram NaN em vez de derrubar a carga.
func columnTypes() map[string]series.Type {
	typesByColumn := map[string]series.Type{productColumn: series.String}
	for _, sel := range entity.AllSelections() {
		typesByColumn[sel.String()] = series.Float
	}
	return typesByColumn
}

// parseDataset lê um CSV com cabeçalho e monta o Dataset na ordem do arquivo.
func parseDataset(source string, r io.Reader) (*entity.Dataset, error) {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing dataset %s: %w", source, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("error parsing dataset %s: file is empty", source)
	}

	for i, record := range records {
		for j, cell := range record {
			records[i][j] = strings.TrimSpace(cell)
		}
	}
	records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")

	header := records[0]
	if indexOf(header, productColumn) < 0 {
		return nil, fmt.Errorf("%w: %s (columns: %s)", types.ErrMissingProductColumn, source, strings.Join(header, ", "))
	}

	var present []entity.Selection
	for _, sel := range entity.AllSelections() {
		if indexOf(header, sel.String()) >= 0 {
			present = append(present, sel)
		}
	}
	if present == nil {
		present = []entity.Selection{}
	}

	// Somente cabeçalho: dataset vazio, o gota não aceita DataFrame sem linhas.
	if len(records) == 1 {
		return entity.NewDataset(source, nil, present), nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.WithTypes(columnTypes()),
		dataframe.NaNValues([]string{}),
	)
	if err := df.Error(); err != nil {
		return nil, fmt.Errorf("error parsing dataset %s: %w", source, err)
	}

	products := df.Col(productColumn).Records()
	rows := make([]entity.Row, df.Nrow())
	for i := range rows {
		rows[i].Product = products[i]
	}

	for _, sel := range present {
		values := df.Col(sel.String()).Float()
		for i := range rows {
			setField(&rows[i], sel, values[i])
		}
	}

	return entity.NewDataset(source, rows, present), nil
}

func setField(row *entity.Row, sel entity.Selection, v float64) {
	switch sel {
	case entity.SelectionCost:
		row.Cost = v
	case entity.SelectionMarkup:
		row.Markup = v
	case entity.SelectionRevenue:
		row.Revenue = v
	case entity.SelectionContributionMargin:
		row.ContributionMargin = v
	case entity.SelectionContributionMarginPct:
		row.ContributionMarginPct = v
	}
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}
