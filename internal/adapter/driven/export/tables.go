package export

import (
	"fmt"
	"strconv"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
	"github.com/diillson/arrivals-dashboard-go/internal/domain/pipeline"
)

// viewTable devolve cabeçalho e linhas de uma view, já formatados.
func viewTable(d entity.Dashboard, view entity.ViewID) ([]string, [][]string) {
	gender := d.Selection.Gender
	if gender == "" {
		gender = entity.GenderMale
	}

	switch view {
	case entity.ViewGenderByYear:
		return []string{"Year", gender.ColumnLabel()}, yearValueRows(d.GenderByYear)
	case entity.ViewGenderChangeByYear:
		rows := make([][]string, 0, len(d.GenderChangeByYear))
		for _, c := range d.GenderChangeByYear {
			rows = append(rows, []string{strconv.Itoa(c.Year), formatCount(c.Value), FormatChange(c.Change)})
		}
		return []string{"Year", gender.ColumnLabel(), "Percentage Change"}, rows
	case entity.ViewTotalByYear:
		return []string{"Year", "Total_Arrivals"}, yearValueRows(d.TotalByYear)
	case entity.ViewCombinedByYear:
		rows := make([][]string, 0, len(d.CombinedByYear))
		for _, t := range d.CombinedByYear {
			rows = append(rows, []string{strconv.Itoa(t.Year), formatCount(t.Male), formatCount(t.Female), formatCount(t.Total)})
		}
		return []string{"Year", "Male", "Female", "Total_Arrivals"}, rows
	case entity.ViewStateShare:
		shares := pipeline.Shares(d.StateShare)
		rows := make([][]string, 0, len(d.StateShare))
		for i, lv := range d.StateShare {
			rows = append(rows, []string{lv.Label, formatCount(lv.Value), fmt.Sprintf("%.2f%%", shares[i])})
		}
		return []string{"Migration State", "Arrivals", "Share"}, rows
	case entity.ViewTopCountries:
		return []string{"Country", "Arrivals"}, labelValueRows(d.TopCountries)
	case entity.ViewStateTotals:
		return []string{"Migration State", "Arrivals"}, labelValueRows(d.StateTotals)
	}
	return nil, nil
}

func yearValueRows(values []entity.YearValue) [][]string {
	rows := make([][]string, 0, len(values))
	for _, yv := range values {
		rows = append(rows, []string{strconv.Itoa(yv.Year), formatCount(yv.Value)})
	}
	return rows
}

func labelValueRows(values []entity.LabelValue) [][]string {
	rows := make([][]string, 0, len(values))
	for _, lv := range values {
		rows = append(rows, []string{lv.Label, formatCount(lv.Value)})
	}
	return rows
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatChange renders a percentage change, N/A when undefined.
func FormatChange(change *float64) string {
	if change == nil {
		return "N/A"
	}
	return fmt.Sprintf("%+.2f%%", *change)
}
