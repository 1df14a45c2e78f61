package web

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
)

// filteredMarker is sent by the page form so that a form with every box
// unticked still means "nothing selected" rather than "use the defaults".
const filteredMarker = "filtered"

// parseSelection reads year (repeated or comma-separated), month and state
// (repeated) and gender from the query. Without any year, month, state or filtered key the
// default selection applies; otherwise a missing dimension is empty.
// Gender defaults to the default selection's gender on its own.
func parseSelection(q url.Values, def entity.Selection) (entity.Selection, error) {
	sel := entity.Selection{Gender: def.Gender}

	if !hasAny(q, "year", "month", "state", filteredMarker) {
		sel = def
	} else {
		sel.Months = listParam(q, "month", false)
		sel.States = listParam(q, "state", false)
		sel.Years = []int{}
		for _, raw := range listParam(q, "year", true) {
			y, err := strconv.Atoi(raw)
			if err != nil {
				return entity.Selection{}, fmt.Errorf("invalid year %q", raw)
			}
			sel.Years = append(sel.Years, y)
		}
	}

	if g := strings.TrimSpace(q.Get("gender")); g != "" {
		gender, err := entity.ParseGender(g)
		if err != nil {
			return entity.Selection{}, err
		}
		sel.Gender = gender
	}
	return sel, nil
}

// selectionQuery is the inverse of parseSelection.
func selectionQuery(sel entity.Selection) url.Values {
	q := url.Values{}
	q.Set(filteredMarker, "1")
	for _, y := range sel.Years {
		q.Add("year", strconv.Itoa(y))
	}
	for _, m := range sel.Months {
		q.Add("month", m)
	}
	for _, s := range sel.States {
		q.Add("state", s)
	}
	if sel.Gender != "" {
		q.Set("gender", string(sel.Gender))
	}
	return q
}

func hasAny(q url.Values, keys ...string) bool {
	for _, k := range keys {
		if _, ok := q[k]; ok {
			return true
		}
	}
	return false
}

// listParam collects the non-empty values of key. State names may contain
// commas, so only numeric keys are split.
func listParam(q url.Values, key string, splitCommas bool) []string {
	out := []string{}
	for _, v := range q[key] {
		parts := []string{v}
		if splitCommas {
			parts = strings.Split(v, ",")
		}
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
