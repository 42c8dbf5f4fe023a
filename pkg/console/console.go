package console

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/diillson/sales-dashboard-go/internal/shared/types"
	"github.com/pterm/pterm"
)

// histogramWidth é o comprimento máximo, em caracteres, da maior barra.
const histogramWidth = 40

// Console é uma implementação do ConsoleInterface.
type Console struct {
	out io.Writer
}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWithWriter cria um Console que escreve no writer informado.
func NewConsoleWithWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Fprint(c.out, a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.WithWriter(c.out).Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.WithWriter(c.out).Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.WithWriter(c.out).Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.WithWriter(c.out).Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.WithWriter(c.out).Start(message)
	return &statusHandle{spinner: spinner}
}

// Cores predefinidas para uso consistente (rótulos do histograma e banner)
var (
	BrightMagenta = color.New(color.FgMagenta, color.Bold).SprintFunc()
	BrightGreen   = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightCyan    = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// DisplayHistogram exibe a média por produto como barras horizontais.
func (c *Console) DisplayHistogram(title string, bars []types.HistogramBar) {
	fmt.Fprintln(c.out, "\n"+RenderHistogram(title, bars))
}

// RenderHistogram monta o painel com uma barra por produto, escalada pelo maior valor absoluto.
func RenderHistogram(title string, bars []types.HistogramBar) string {
	maxValue := 0.0
	for _, b := range bars {
		if isFinite(b.Value) && math.Abs(b.Value) > maxValue {
			maxValue = math.Abs(b.Value)
		}
	}

	tableData := pterm.TableData{
		{"Product", "Average", ""},
	}

	for _, b := range bars {
		if math.IsNaN(b.Value) {
			tableData = append(tableData, []string{BrightMagenta(b.Label), pterm.FgRed.Sprint("NaN"), ""})
			continue
		}

		barLength := 0
		if maxValue > 0 && isFinite(b.Value) {
			barLength = int(math.Round(math.Abs(b.Value) / maxValue * histogramWidth))
		}
		bar := strings.Repeat("█", barLength)

		// Valores negativos em vermelho
		barColor := pterm.FgBlue.Sprint(bar)
		if b.Value < 0 {
			barColor = pterm.FgRed.Sprint(bar)
		}

		tableData = append(tableData, []string{
			BrightMagenta(b.Label),
			fmt.Sprintf("%.2f", b.Value),
			barColor,
		})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	return pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
