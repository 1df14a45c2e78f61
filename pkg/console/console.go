package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/pterm/pterm"

	"github.com/diillson/arrivals-dashboard-go/internal/shared/types"
)

const barWidth = 40

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

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
	// Convertemos cada célula para string
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	// Use o pterm para criar uma tabela visualmente agradável
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

// DisplayBars exibe um painel de barras horizontais, escaladas pelo maior valor.
func (c *Console) DisplayBars(title string, bars []types.Bar) {
	if len(bars) == 0 {
		pterm.Warning.Printfln("%s: no data for the current selection", title)
		return
	}

	maxValue := 0.0
	for _, b := range bars {
		maxValue = math.Max(maxValue, b.Value)
	}

	tableData := pterm.TableData{{"", "Value", ""}}
	for _, b := range bars {
		tableData = append(tableData, []string{
			b.Label,
			formatCount(b.Value),
			pterm.FgBlue.Sprint(strings.Repeat("█", barLength(b.Value, maxValue))),
		})
	}

	c.printPanel(title, tableData)
}

// barLength scales value against top. Negative values draw no bar.
func barLength(value, top float64) int {
	if top <= 0 || value <= 0 {
		return 0
	}
	return int((value / top) * barWidth)
}

// DisplayChangeSeries exibe a variação percentual período a período.
// Crescimento em verde, queda em vermelho, N/A quando indefinido.
func (c *Console) DisplayChangeSeries(title string, points []types.ChangePoint) {
	if len(points) == 0 {
		pterm.Warning.Printfln("%s: no data for the current selection", title)
		return
	}

	tableData := pterm.TableData{{"", "Value", "Change"}}
	for _, p := range points {
		tableData = append(tableData, []string{p.Label, formatCount(p.Value), formatChange(p.Change)})
	}

	c.printPanel(title, tableData)
}

func (c *Console) printPanel(title string, tableData pterm.TableData) {
	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	panel := pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)
	fmt.Println("\n" + panel)
}

func formatCount(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func formatChange(change *float64) string {
	if change == nil {
		return pterm.FgGray.Sprint("N/A")
	}
	switch {
	case math.Abs(*change) < 0.01:
		return pterm.FgYellow.Sprint("0%")
	case *change > 999:
		return pterm.FgGreen.Sprint(">+999%")
	case *change < -999:
		return pterm.FgRed.Sprint(">-999%")
	case *change > 0:
		return pterm.FgGreen.Sprintf("+%.2f%%", *change)
	default:
		return pterm.FgRed.Sprintf("%.2f%%", *change)
	}
}
