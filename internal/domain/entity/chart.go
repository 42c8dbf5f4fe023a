package entity

// AggregationAverage é a única agregação suportada pelo gráfico.
const AggregationAverage = "avg"

// ChartPoint pairs a product with the mean of the selected field.
type ChartPoint struct {
	Product string  `json:"product"`
	Mean    float64 `json:"mean"`
	Count   int     `json:"count"`
}

// ChartDescription is the histogram consumed by the chart renderers.
type ChartDescription struct {
	Selection   Selection    `json:"selection"`
	XAxis       string       `json:"x_axis"`
	YAxis       string       `json:"y_axis"`
	Aggregation string       `json:"aggregation"`
	Points      []ChartPoint `json:"points"`
}

// Title retorna o título padrão do gráfico.
func (c ChartDescription) Title() string {
	return "Average " + c.Selection.Label() + " by Product"
}

// Categories returns the product axis in chart order.
func (c ChartDescription) Categories() []string {
	out := make([]string, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Product
	}
	return out
}

// Values returns the mean values in chart order.
func (c ChartDescription) Values() []float64 {
	out := make([]float64, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Mean
	}
	return out
}
