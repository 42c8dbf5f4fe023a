package entity

// Row represents one sales record.
type Row struct {
	Product               string  `json:"product"`
	Cost                  float64 `json:"cost"`
	Markup                float64 `json:"markup"`
	Revenue               float64 `json:"revenue"`
	ContributionMargin    float64 `json:"contributionMargin"`
	ContributionMarginPct float64 `json:"contributionMarginPct"`
}

// Value retorna o valor numérico do campo selecionado.
func (r Row) Value(sel Selection) (float64, bool) {
	switch sel {
	case SelectionCost:
		return r.Cost, true
	case SelectionMarkup:
		return r.Markup, true
	case SelectionRevenue:
		return r.Revenue, true
	case SelectionContributionMargin:
		return r.ContributionMargin, true
	case SelectionContributionMarginPct:
		return r.ContributionMarginPct, true
	}
	return 0, false
}
