package entity

import (
	"fmt"
	"strings"

	"github.com/diillson/sales-dashboard-go/internal/shared/types"
)

// Selection is the numeric field chosen for aggregation.
type Selection string

const (
	SelectionCost                  Selection = "cost"
	SelectionMarkup                Selection = "markup"
	SelectionRevenue               Selection = "revenue"
	SelectionContributionMargin    Selection = "contributionMargin"
	SelectionContributionMarginPct Selection = "contributionMarginPct"
)

// Ordem em que os campos aparecem no dropdown.
var allSelections = []Selection{
	SelectionCost,
	SelectionMarkup,
	SelectionRevenue,
	SelectionContributionMargin,
	SelectionContributionMarginPct,
}

var selectionLabels = map[Selection]string{
	SelectionCost:                  "Cost",
	SelectionMarkup:                "Markup",
	SelectionRevenue:               "Revenue",
	SelectionContributionMargin:    "Contribution Margin",
	SelectionContributionMarginPct: "Contribution Margin %",
}

// AllSelections returns the selectable fields in display order.
func AllSelections() []Selection {
	out := make([]Selection, len(allSelections))
	copy(out, allSelections)
	return out
}

// ParseSelection valida o nome do campo na fronteira, antes da agregação.
func ParseSelection(name string) (Selection, error) {
	name = strings.TrimSpace(name)
	for _, sel := range allSelections {
		if string(sel) == name {
			return sel, nil
		}
	}
	return "", fmt.Errorf("%w: %q", types.ErrFieldNotFound, name)
}

// Label retorna o rótulo legível usado nos eixos dos gráficos.
func (s Selection) Label() string {
	if label, ok := selectionLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s Selection) String() string {
	return string(s)
}
