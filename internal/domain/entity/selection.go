package entity

import (
	"fmt"
	"strings"

	"github.com/diillson/arrivals-dashboard-go/internal/shared/types"
)

// Gender selects which gender-specific arrivals column a view uses.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Genders lists the selectable genders in display order.
var Genders = []Gender{GenderMale, GenderFemale}

// ParseGender accepts "Male" or "Female", case-insensitively.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	}
	return "", fmt.Errorf("%w: %q (expected Male or Female)", types.ErrUnknownGender, s)
}

// ColumnLabel is the label of the gender-specific arrivals column.
func (g Gender) ColumnLabel() string {
	return "Arrivals: Gender " + string(g)
}

// Selection holds the four filter values of one interaction.
// A nil or empty slice selects nothing for that dimension.
type Selection struct {
	Years  []int    `json:"years"`
	Months []string `json:"months"`
	States []string `json:"states"`
	Gender Gender   `json:"gender"`
}

// FilterOptions are the values offered by the filter controls.
type FilterOptions struct {
	Years   []int     `json:"years"`
	Months  []string  `json:"months"`
	States  []string  `json:"states"`
	Genders []Gender  `json:"genders"`
	Default Selection `json:"default"`
}
