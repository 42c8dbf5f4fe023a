package http

import (
	"errors"
	"html/template"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/diillson/sales-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/sales-dashboard-go/internal/shared/types"
)

// errorResponse é o corpo JSON devolvido em falhas da API.
type errorResponse struct {
	Error string `json:"error"`
}

// rowView espelha entity.Row com NaN representado como null.
type rowView struct {
	Product               string   `json:"product"`
	Cost                  *float64 `json:"cost"`
	Markup                *float64 `json:"markup"`
	Revenue               *float64 `json:"revenue"`
	ContributionMargin    *float64 `json:"contributionMargin"`
	ContributionMarginPct *float64 `json:"contributionMarginPct"`
}

type pointView struct {
	Product string   `json:"product"`
	Mean    *float64 `json:"mean"`
	Count   int      `json:"count"`
}

type chartView struct {
	Title       string      `json:"title"`
	Selection   string      `json:"selection"`
	XAxis       string      `json:"x_axis"`
	YAxis       string      `json:"y_axis"`
	Aggregation string      `json:"aggregation"`
	Points      []pointView `json:"points"`
}

type fieldView struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func newRowView(row entity.Row, dataset *entity.Dataset) rowView {
	value := func(sel entity.Selection) *float64 {
		if !dataset.HasColumn(sel) {
			return nil
		}
		v, _ := row.Value(sel)
		return finite(v)
	}
	return rowView{
		Product:               row.Product,
		Cost:                  value(entity.SelectionCost),
		Markup:                value(entity.SelectionMarkup),
		Revenue:               value(entity.SelectionRevenue),
		ContributionMargin:    value(entity.SelectionContributionMargin),
		ContributionMarginPct: value(entity.SelectionContributionMarginPct),
	}
}

func newChartView(chart entity.ChartDescription) chartView {
	points := make([]pointView, 0, len(chart.Points))
	for _, p := range chart.Points {
		points = append(points, pointView{Product: p.Product, Mean: finite(p.Mean), Count: p.Count})
	}
	return chartView{
		Title:       chart.Title(),
		Selection:   chart.Selection.String(),
		XAxis:       chart.XAxis,
		YAxis:       chart.YAxis,
		Aggregation: chart.Aggregation,
		Points:      points,
	}
}

// writeError mapeia ErrFieldNotFound para 400 e o resto para 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, types.ErrFieldNotFound) {
		status = http.StatusBadRequest
	}
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: err.Error()})
}

// handleHealth handles GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "ok",
		"rows":   s.dataset.Len(),
	})
}

// handleFields handles GET /api/fields
func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	fields := make([]fieldView, 0, 5)
	for _, sel := range entity.AllSelections() {
		fields = append(fields, fieldView{Name: sel.String(), Label: sel.Label()})
	}
	render.JSON(w, r, fields)
}

// handleDataset handles GET /api/dataset
func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	rows := make([]rowView, 0, s.dataset.Len())
	for i := 0; i < s.dataset.Len(); i++ {
		rows = append(rows, newRowView(s.dataset.Row(i), s.dataset))
	}
	render.JSON(w, r, rows)
}

// handleChart handles GET /api/chart?selection=
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	chart, err := s.renderer.RenderChart(s.dataset, s.selection(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, newChartView(chart))
}

// handleChartHTML handles GET /chart?selection=
func (s *Server) handleChartHTML(w http.ResponseWriter, r *http.Request) {
	chart, err := s.renderer.RenderChart(s.dataset, s.selection(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := export.RenderHTML(chart, w); err != nil {
		s.console.LogError("Failed to render chart: %s", err)
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Sales Dashboard</title>
<style>
body { font-family: sans-serif; margin: 24px; }
table { border-collapse: collapse; margin-top: 16px; }
th, td { border: 1px solid #ddd; padding: 4px 8px; text-align: right; }
th:first-child, td:first-child { text-align: left; }
.pager a { margin: 0 4px; }
iframe { border: 0; width: 100%; height: 520px; }
.error { color: #b91c1c; }
</style>
</head>
<body>
<h1>Sales Dashboard</h1>
<form method="get" action="/">
<label for="selection">Field</label>
<select id="selection" name="selection" onchange="this.form.submit()">
{{- range .Fields}}
<option value="{{.Name}}"{{if eq .Name $.Selection}} selected{{end}}>{{.Label}}</option>
{{- end}}
</select>
<noscript><button type="submit">Plot</button></noscript>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{else}}<iframe src="/chart?selection={{.Selection}}"></iframe>{{end}}
<table>
<tr><th>Product</th>{{range .Fields}}<th>{{.Label}}</th>{{end}}</tr>
{{- range .Rows}}
<tr><td>{{.Product}}</td>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</table>
<p class="pager">
{{- if gt .Page 1}}<a href="/?selection={{.Selection}}&amp;page={{.PrevPage}}">&laquo; Prev</a> {{end -}}
Page {{.Page}} of {{.Pages}}
{{- if lt .Page .Pages}} <a href="/?selection={{.Selection}}&amp;page={{.NextPage}}">Next &raquo;</a>{{end}}
</p>
</body>
</html>
`))

type indexRow struct {
	Product string
	Cells   []string
}

// pageBounds devolve o intervalo [start, end) da página pedida, limitada às páginas existentes.
func pageBounds(total, page, size int) (start, end, current, pages int) {
	pages = (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	current = page
	if current < 1 {
		current = 1
	}
	if current > pages {
		current = pages
	}
	start = (current - 1) * size
	end = start + size
	if end > total {
		end = total
	}
	return start, end, current, pages
}

// handleIndex handles GET /?selection=&page=
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	selection := s.selection(r)
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	start, end, page, pages := pageBounds(s.dataset.Len(), page, s.pageSize)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var errMsg string
	if _, err := entity.ParseSelection(selection); err != nil {
		errMsg = err.Error()
		w.WriteHeader(http.StatusBadRequest)
	}

	fields := make([]fieldView, 0, 5)
	for _, sel := range entity.AllSelections() {
		fields = append(fields, fieldView{Name: sel.String(), Label: sel.Label()})
	}

	rows := make([]indexRow, 0, end-start)
	for i := start; i < end; i++ {
		view := newRowView(s.dataset.Row(i), s.dataset)
		cells := make([]string, 0, 5)
		for _, v := range []*float64{view.Cost, view.Markup, view.Revenue, view.ContributionMargin, view.ContributionMarginPct} {
			if v == nil {
				cells = append(cells, "-")
				continue
			}
			cells = append(cells, export.FormatNumber(*v))
		}
		rows = append(rows, indexRow{Product: view.Product, Cells: cells})
	}

	err := indexTemplate.Execute(w, map[string]interface{}{
		"Fields":    fields,
		"Selection": selection,
		"Error":     errMsg,
		"Rows":      rows,
		"Page":      page,
		"Pages":     pages,
		"PrevPage":  page - 1,
		"NextPage":  page + 1,
	})
	if err != nil {
		s.console.LogError("Failed to render dashboard page: %s", err)
	}
}
