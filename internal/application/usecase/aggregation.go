package usecase

import (
	"fmt"
	"math"

	"github.com/diillson/sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/sales-dashboard-go/internal/shared/types"
)

// Aggregate agrupa as linhas por produto e calcula a média do campo selecionado.
// É uma função pura: o mesmo dataset e seleção sempre produzem o mesmo gráfico.
// Os produtos aparecem na ordem em que surgem no dataset.
func Aggregate(dataset *entity.Dataset, selection entity.Selection) (entity.ChartDescription, error) {
	if dataset == nil {
		return entity.ChartDescription{}, fmt.Errorf("aggregate: nil dataset")
	}
	if _, ok := (entity.Row{}).Value(selection); !ok || !dataset.HasColumn(selection) {
		return entity.ChartDescription{}, fmt.Errorf("%w: %q", types.ErrFieldNotFound, selection)
	}

	type group struct {
		mean  float64
		count int
	}

	order := []string{}
	groups := make(map[string]*group)

	for i := 0; i < dataset.Len(); i++ {
		row := dataset.Row(i)
		value, _ := row.Value(selection)

		g, ok := groups[row.Product]
		if !ok {
			g = &group{}
			groups[row.Product] = g
			order = append(order, row.Product)
		}
		g.count++
		g.mean = updateMean(g.mean, value, g.count)
	}

	points := make([]entity.ChartPoint, 0, len(order))
	for _, product := range order {
		g := groups[product]
		points = append(points, entity.ChartPoint{
			Product: product,
			Mean:    g.mean,
			Count:   g.count,
		})
	}

	return entity.ChartDescription{
		Selection:   selection,
		XAxis:       "product",
		YAxis:       selection.Label(),
		Aggregation: entity.AggregationAverage,
		Points:      points,
	}, nil
}

// updateMean acumula a média de forma incremental, sem somar tudo antes de dividir,
// para que valores finitos grandes não estourem para Inf. Com Inf na entrada o
// resultado segue a aritmética da soma: Inf com finitos dá Inf, +Inf com -Inf dá NaN.
func updateMean(mean, value float64, n int) float64 {
	if math.IsInf(mean, 0) || math.IsInf(value, 0) {
		return mean + value
	}
	return mean + (value-mean)/float64(n)
}
