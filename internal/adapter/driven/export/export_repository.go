package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
	"github.com/diillson/arrivals-dashboard-go/internal/domain/repository"
	"github.com/diillson/arrivals-dashboard-go/internal/shared/types"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	charts repository.ChartRepository
}

// NewExportRepository cria uma nova implementação do ExportRepository.
// charts is used for the images embedded in PDF reports; nil leaves them out.
func NewExportRepository(charts repository.ChartRepository) repository.ExportRepository {
	return &ExportRepositoryImpl{charts: charts}
}

// jsonReport is the document written by ExportToJSON.
type jsonReport struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Dashboard   entity.Dashboard `json:"dashboard"`
}

func (r *ExportRepositoryImpl) ExportToCSV(d entity.Dashboard, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	writer.Write([]string{"Selection"})
	for _, row := range selectionRows(d) {
		writer.Write(row)
	}

	for _, view := range entity.ViewOrder {
		headers, rows := viewTable(d, view)
		writer.Write([]string{})
		writer.Write([]string{entity.ViewTitles[view]})
		writer.Write(headers)
		for _, row := range rows {
			writer.Write(row)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(d entity.Dashboard, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(jsonReport{GeneratedAt: time.Now().UTC(), Dashboard: d}); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(d entity.Dashboard, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawHeader := func(title string) {
		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 12, tr("  "+title), "", 1, "L", true, 0, "")
		pdf.Ln(6)
	}

	drawSection := func(title string, content string) {
		if content == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(6)
	}

	drawTable := func(headers []string, rows [][]string) {
		if len(headers) == 0 {
			return
		}
		colWidth := 190.0 / float64(len(headers))
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		for _, h := range headers {
			pdf.CellFormat(colWidth, 7, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, row := range rows {
			if pdf.GetY() > 270 {
				pdf.AddPage()
			}
			for i, cell := range row {
				align := "R"
				if i == 0 {
					align = "L"
				}
				pdf.CellFormat(colWidth, 6, tr(cell), "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by Foreign Entries Dashboard (Go) | %s", time.Now().Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	drawHeader("Foreign Entries Dashboard")
	var summary strings.Builder
	for _, row := range selectionRows(d) {
		summary.WriteString(row[0] + ": " + row[1] + "\n")
	}
	drawSection("Selection", strings.TrimSpace(summary.String()))

	for _, view := range entity.ViewOrder {
		pdf.AddPage()
		drawHeader(entity.ViewTitles[view])

		if err := r.drawChart(pdf, d, view); err != nil {
			if !errors.Is(err, types.ErrNoData) {
				return "", err
			}
			drawSection("Chart", "No data for the current selection")
		}

		headers, rows := viewTable(d, view)
		drawTable(headers, rows)
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// drawChart embeds the PNG rendering of view at the current position.
func (r *ExportRepositoryImpl) drawChart(pdf *gofpdf.Fpdf, d entity.Dashboard, view entity.ViewID) error {
	if r.charts == nil {
		return types.ErrNoData
	}
	img, err := r.charts.RenderView(d, view, repository.ChartPNG)
	if err != nil {
		return err
	}

	name := "chart-" + string(view)
	pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(img))
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("error embedding %s chart: %w", view, err)
	}
	pdf.ImageOptions(name, 10, pdf.GetY(), 190, 0, true, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	pdf.Ln(6)
	return nil
}

func selectionRows(d entity.Dashboard) [][]string {
	years := make([]string, 0, len(d.Selection.Years))
	for _, y := range d.Selection.Years {
		years = append(years, strconv.Itoa(y))
	}
	return [][]string{
		{"Years", strings.Join(years, ", ")},
		{"Months", strings.Join(d.Selection.Months, ", ")},
		{"States", strings.Join(d.Selection.States, ", ")},
		{"Gender", string(d.Selection.Gender)},
		{"Filtered rows", strconv.Itoa(d.FilteredRows)},
	}
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if base == "" {
		base = "arrivals_dashboard"
	}
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
