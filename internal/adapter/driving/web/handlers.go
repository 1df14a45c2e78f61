package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
	"github.com/diillson/arrivals-dashboard-go/internal/domain/repository"
	"github.com/diillson/arrivals-dashboard-go/internal/shared/types"
)

const noDataMessage = "No data for the current selection"

// viewPanel is one rendered chart of the page or of a websocket reply.
type viewPanel struct {
	ID     entity.ViewID `json:"id"`
	Title  string        `json:"title"`
	SVG    string        `json:"svg,omitempty"`
	NoData bool          `json:"no_data"`
}

// dashboardReply is the websocket answer to a selection message.
type dashboardReply struct {
	Type      string           `json:"type"`
	Dashboard entity.Dashboard `json:"dashboard"`
	Charts    []viewPanel      `json:"charts"`
	Error     string           `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.svc.Options(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, status, err := s.dashboardFromQuery(r)
	if err != nil {
		s.writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	view, ok := entity.ParseViewID(vars["view"])
	if !ok {
		http.NotFound(w, r)
		return
	}

	format := repository.ChartFormat(vars["format"])
	contentType, ok := chartContentTypes[format]
	if !ok {
		s.writeError(w, http.StatusBadRequest, types.ErrUnsupportedFormat)
		return
	}

	d, status, err := s.dashboardFromQuery(r)
	if err != nil {
		s.writeError(w, status, err)
		return
	}

	img, err := s.svc.RenderView(d, view, format)
	if errors.Is(err, types.ErrNoData) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(img)
}

var chartContentTypes = map[repository.ChartFormat]string{
	repository.ChartSVG: "image/svg+xml",
	repository.ChartPNG: "image/png",
}

// pageData feeds templates/index.html.
type pageData struct {
	Options   entity.FilterOptions
	Dashboard entity.Dashboard
	Panels    []viewPanel
	Years     []choice
	Months    []choice
	States    []choice
	Genders   []choice
	Query     string
}

type choice struct {
	Value    string
	Selected bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	opts, err := s.svc.Options(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	sel, err := parseSelection(r.URL.Query(), opts.Default)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	d, err := s.svc.BuildDashboard(r.Context(), sel)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	panels, err := s.renderPanels(d)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	data := pageData{
		Options:   opts,
		Dashboard: d,
		Panels:    panels,
		Years:     yearChoices(opts.Years, sel.Years),
		Months:    choices(opts.Months, sel.Months),
		States:    choices(opts.States, sel.States),
		Genders:   genderChoices(opts.Genders, sel.Gender),
		Query:     selectionQuery(sel).Encode(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.ExecuteTemplate(w, "index.html", data); err != nil {
		s.console.LogError("error rendering page: %v", err)
	}
}

// renderPanels draws every view as SVG; views without data get a placeholder.
func (s *Server) renderPanels(d entity.Dashboard) ([]viewPanel, error) {
	panels := make([]viewPanel, 0, len(entity.ViewOrder))
	for _, view := range entity.ViewOrder {
		panel := viewPanel{ID: view, Title: entity.ViewTitles[view]}
		img, err := s.svc.RenderView(d, view, repository.ChartSVG)
		switch {
		case errors.Is(err, types.ErrNoData):
			panel.NoData = true
		case err != nil:
			return nil, err
		default:
			panel.SVG = string(img)
		}
		panels = append(panels, panel)
	}
	return panels, nil
}

// dashboardFromQuery resolves the query selection and builds the dashboard.
// The returned status is meaningful only with a non-nil error.
func (s *Server) dashboardFromQuery(r *http.Request) (entity.Dashboard, int, error) {
	opts, err := s.svc.Options(r.Context())
	if err != nil {
		return entity.Dashboard{}, http.StatusInternalServerError, err
	}
	sel, err := parseSelection(r.URL.Query(), opts.Default)
	if err != nil {
		return entity.Dashboard{}, http.StatusBadRequest, err
	}
	d, err := s.svc.BuildDashboard(r.Context(), sel)
	if err != nil {
		return entity.Dashboard{}, http.StatusInternalServerError, err
	}
	return d, http.StatusOK, nil
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.console.LogError("%v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func choices(all, selected []string) []choice {
	set := make(map[string]bool, len(selected))
	for _, v := range selected {
		set[v] = true
	}
	out := make([]choice, 0, len(all))
	for _, v := range all {
		out = append(out, choice{Value: v, Selected: set[v]})
	}
	return out
}

func yearChoices(all, selected []int) []choice {
	set := make(map[int]bool, len(selected))
	for _, y := range selected {
		set[y] = true
	}
	out := make([]choice, 0, len(all))
	for _, y := range all {
		out = append(out, choice{Value: strconv.Itoa(y), Selected: set[y]})
	}
	return out
}

func genderChoices(all []entity.Gender, selected entity.Gender) []choice {
	out := make([]choice, 0, len(all))
	for _, g := range all {
		out = append(out, choice{Value: string(g), Selected: g == selected})
	}
	return out
}

// safeSVG marks chart output as trusted markup for html/template.
func safeSVG(svg string) template.HTML {
	return template.HTML(svg)
}
