// Package web serves the dashboard: the entry form, the result card with
// diet/activity guidance, the recent-history table, and the trend chart.
package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/coreybb/glucolog/chart"
	"github.com/coreybb/glucolog/datastore"
	"github.com/coreybb/glucolog/guidance"
	"github.com/coreybb/glucolog/models"
	"github.com/coreybb/glucolog/webutil"
	"github.com/google/uuid"
)

const (
	pageTitle       = "Daily Sugar Guidance"
	historyTimeFmt  = "2006-01-02 15:04"
	filterParamAll  = "all"
	noTrendDataNote = "Add more daily entries to see your sugar trend."
)

// PageHandler holds dependencies for the HTML dashboard handlers.
type PageHandler struct {
	Repo         *datastore.ReadingRepository
	Renderer     *chart.TrendRenderer
	ChartWindow  int
	PreviewLimit int

	tmpl *template.Template
}

// NewPageHandler parses the embedded templates and creates a PageHandler.
func NewPageHandler(repo *datastore.ReadingRepository, renderer *chart.TrendRenderer, chartWindow, previewLimit int) (*PageHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard templates: %w", err)
	}
	return &PageHandler{
		Repo:         repo,
		Renderer:     renderer,
		ChartWindow:  chartWindow,
		PreviewLimit: previewLimit,
		tmpl:         tmpl,
	}, nil
}

// Template data types

type typeOption struct {
	Value    string
	Label    string
	Selected bool
}

type historyItem struct {
	When        string
	TypeLabel   string
	Value       float64
	Status      guidance.Status
	StatusClass string
}

type resultView struct {
	Value       float64
	TypeLabel   string
	Status      guidance.Status
	StatusClass string
	Emergency   bool
	Meaning     string
	DietDo      []string
	DietAvoid   []string
	Activity    string
	Focus       string
	Insight     string
}

type dashboardData struct {
	Title          string
	FormError      string
	FormValue      string
	TypeOptions    []typeOption
	FilterOptions  []typeOption
	Result         *resultView
	History        []historyItem
	ChartAvailable bool
	ChartQuery     string
	ChartNote      string
}

// HandleDashboard renders the dashboard page. The optional "type" query
// parameter filters the trend chart section.
func (h *PageHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) error {
	filter := r.URL.Query().Get("type")

	data, err := h.buildDashboard(r, filter, models.ReadingTypeFasting, "")
	if err != nil {
		return err
	}
	return h.render(w, data)
}

// HandleSubmit processes the entry form: validates the input, classifies
// the value, appends it to the history file, and re-renders the page with
// the result card and trend insight. Invalid input re-renders the form
// with a message and appends nothing.
func (h *PageHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return webutil.ErrBadRequestWrap("Invalid form submission", err)
	}

	rawValue := strings.TrimSpace(r.PostFormValue("value"))
	rawType := r.PostFormValue("reading_type")

	rt, err := models.ParseReadingType(rawType)
	if err != nil {
		return h.renderFormError(w, r, "Invalid input: please select a valid reading type.", models.ReadingTypeFasting, rawValue)
	}

	value, err := strconv.ParseFloat(rawValue, 64)
	if err != nil {
		return h.renderFormError(w, r, "Invalid input: blood sugar must be a number.", rt, rawValue)
	}

	reading := models.Reading{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Type:      rt,
		Value:     value,
	}
	if err := reading.Validate(); err != nil {
		return h.renderFormError(w, r, "Invalid input: blood sugar must be between 1 and 600 mg/dL.", rt, rawValue)
	}

	if err := h.Repo.Append(r.Context(), &reading); err != nil {
		return fmt.Errorf("failed to store reading: %w", err)
	}

	history, err := h.Repo.All(r.Context())
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	status := guidance.ClassifyReading(reading)
	advice := guidance.AdviceFor(status, rt)
	result := &resultView{
		Value:       reading.Value,
		TypeLabel:   rt.DisplayLabel(),
		Status:      status,
		StatusClass: statusClass(status),
		Emergency:   status.IsEmergency(),
		Meaning:     advice.Meaning,
		DietDo:      advice.DietDo,
		DietAvoid:   advice.DietAvoid,
		Activity:    advice.Activity,
		Focus:       advice.Focus,
		Insight:     guidance.Insight(history),
	}

	data, err := h.buildDashboard(r, "", rt, "")
	if err != nil {
		return err
	}
	data.Result = result
	return h.render(w, data)
}

// HandleTrendChart serves the trend chart PNG. The optional "type" query
// parameter restricts the chart to one reading type.
func (h *PageHandler) HandleTrendChart(w http.ResponseWriter, r *http.Request) error {
	readings, err := h.chartReadings(r, r.URL.Query().Get("type"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := h.Renderer.Render(readings, &buf); err != nil {
		if errors.Is(err, chart.ErrNotEnoughData) {
			return webutil.ErrNotFound("No data available to show trends")
		}
		return fmt.Errorf("failed to render trend chart: %w", err)
	}

	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypePNG)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	return nil
}

// renderFormError re-renders the dashboard with a validation message.
func (h *PageHandler) renderFormError(w http.ResponseWriter, r *http.Request, msg string, selected models.ReadingType, formValue string) error {
	data, err := h.buildDashboard(r, "", selected, formValue)
	if err != nil {
		return err
	}
	data.FormError = msg

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeHTMLUTF8)
	w.WriteHeader(http.StatusUnprocessableEntity)
	_, _ = buf.WriteTo(w)
	return nil
}

// buildDashboard assembles the page data shared by every render: the form
// options, the recent-history table, and the trend chart section.
func (h *PageHandler) buildDashboard(r *http.Request, chartFilter string, selected models.ReadingType, formValue string) (dashboardData, error) {
	history, err := h.Repo.Recent(r.Context(), h.PreviewLimit)
	if err != nil {
		return dashboardData{}, fmt.Errorf("failed to load recent history: %w", err)
	}

	items := make([]historyItem, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		reading := history[i]
		status := guidance.ClassifyReading(reading)
		items = append(items, historyItem{
			When:        reading.Timestamp.Format(historyTimeFmt),
			TypeLabel:   reading.Type.DisplayLabel(),
			Value:       reading.Value,
			Status:      status,
			StatusClass: statusClass(status),
		})
	}

	chartReadings, err := h.chartReadings(r, chartFilter)
	if err != nil {
		return dashboardData{}, err
	}

	data := dashboardData{
		Title:          pageTitle,
		FormValue:      formValue,
		TypeOptions:    typeOptions(selected),
		FilterOptions:  filterOptions(chartFilter),
		History:        items,
		ChartAvailable: len(chartReadings) >= chart.MinPoints,
		ChartNote:      noTrendDataNote,
	}
	if chartFilter != "" && chartFilter != filterParamAll {
		data.ChartQuery = "?type=" + chartFilter
	}
	return data, nil
}

// chartReadings loads the chart window, applying the optional type filter.
func (h *PageHandler) chartReadings(r *http.Request, filter string) ([]models.Reading, error) {
	if filter == "" || filter == filterParamAll {
		readings, err := h.Repo.Recent(r.Context(), h.ChartWindow)
		if err != nil {
			return nil, fmt.Errorf("failed to load chart window: %w", err)
		}
		return readings, nil
	}

	rt, err := models.ParseReadingType(filter)
	if err != nil {
		return nil, webutil.ErrBadRequestWrap("Invalid reading type filter", err)
	}
	readings, err := h.Repo.RecentByType(r.Context(), rt, h.ChartWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart window: %w", err)
	}
	return readings, nil
}

func (h *PageHandler) render(w http.ResponseWriter, data dashboardData) error {
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeHTMLUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
	return nil
}

func typeOptions(selected models.ReadingType) []typeOption {
	opts := make([]typeOption, 0, len(models.AllReadingTypes))
	for _, rt := range models.AllReadingTypes {
		opts = append(opts, typeOption{
			Value:    string(rt),
			Label:    rt.DisplayLabel(),
			Selected: rt == selected,
		})
	}
	return opts
}

func filterOptions(current string) []typeOption {
	opts := []typeOption{{
		Value:    filterParamAll,
		Label:    "All",
		Selected: current == "" || current == filterParamAll,
	}}
	for _, rt := range models.AllReadingTypes {
		opts = append(opts, typeOption{
			Value:    string(rt),
			Label:    rt.DisplayLabel(),
			Selected: current == string(rt),
		})
	}
	return opts
}

// statusClass maps a status to the CSS badge class used on the page.
func statusClass(status guidance.Status) string {
	switch status.Severity() {
	case 0:
		return "status-normal"
	case 1:
		return "status-borderline"
	default:
		return "status-alert"
	}
}
