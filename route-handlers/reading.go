package routehandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/coreybb/glucolog/datastore"
	"github.com/coreybb/glucolog/guidance"
	"github.com/coreybb/glucolog/models"
	"github.com/coreybb/glucolog/webutil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Holds dependencies for reading route handlers.
type ReadingHandler struct {
	Repo         *datastore.ReadingRepository
	DefaultLimit int
}

// Creates a new ReadingHandler. defaultLimit bounds list responses when the
// client does not pass an explicit limit.
func NewReadingHandler(repo *datastore.ReadingRepository, defaultLimit int) *ReadingHandler {
	return &ReadingHandler{Repo: repo, DefaultLimit: defaultLimit}
}

// createReadingRequest is the JSON body for POST /api/readings.
type createReadingRequest struct {
	ReadingType string  `json:"reading_type"`
	Value       float64 `json:"value"`
}

// readingView is a stored reading decorated with its classification.
type readingView struct {
	models.Reading
	Status guidance.Status `json:"status"`
}

// createReadingResponse echoes the stored reading together with the
// guidance the dashboard would show for it.
type createReadingResponse struct {
	models.Reading
	Status  guidance.Status `json:"status"`
	Advice  guidance.Advice `json:"advice"`
	Insight string          `json:"insight"`
}

func (h *ReadingHandler) HandleGetReadings(w http.ResponseWriter, r *http.Request) error {
	limit := h.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return webutil.ErrBadRequest("Invalid limit: must be a positive integer")
		}
		limit = parsed
	}

	var (
		readings []models.Reading
		err      error
	)
	if raw := r.URL.Query().Get("type"); raw != "" {
		rt, parseErr := models.ParseReadingType(raw)
		if parseErr != nil {
			return webutil.ErrBadRequestWrap("Invalid reading type", parseErr)
		}
		readings, err = h.Repo.RecentByType(r.Context(), rt, limit)
	} else {
		readings, err = h.Repo.Recent(r.Context(), limit)
	}
	if err != nil {
		return fmt.Errorf("failed to retrieve readings: %w", err)
	}

	// Newest first for API consumers; the repo returns file order.
	views := make([]readingView, 0, len(readings))
	for i := len(readings) - 1; i >= 0; i-- {
		views = append(views, readingView{
			Reading: readings[i],
			Status:  guidance.ClassifyReading(readings[i]),
		})
	}
	webutil.RespondWithJSON(w, http.StatusOK, views)
	return nil
}

func (h *ReadingHandler) HandleGetReading(w http.ResponseWriter, r *http.Request) error {
	readingID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(readingID); err != nil {
		return webutil.ErrBadRequest("Invalid reading ID format")
	}

	reading, err := h.Repo.GetByID(r.Context(), readingID)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return webutil.ErrNotFound("Reading not found")
		}
		return fmt.Errorf("failed to retrieve reading %s: %w", readingID, err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, readingView{
		Reading: *reading,
		Status:  guidance.ClassifyReading(*reading),
	})
	return nil
}

func (h *ReadingHandler) HandleCreateReading(w http.ResponseWriter, r *http.Request) error {
	var req createReadingRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	rt, err := models.ParseReadingType(req.ReadingType)
	if err != nil {
		return webutil.ErrBadRequestWrap("Invalid reading type", err)
	}

	reading := models.Reading{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Type:      rt,
		Value:     req.Value,
	}
	if err := reading.Validate(); err != nil {
		return webutil.ErrBadRequestWrap("Invalid reading value", err)
	}

	if err := h.Repo.Append(r.Context(), &reading); err != nil {
		return fmt.Errorf("failed to store reading: %w", err)
	}

	// The insight compares the reading just stored against the previous one.
	history, err := h.Repo.All(r.Context())
	if err != nil {
		return fmt.Errorf("failed to load history for insight: %w", err)
	}

	status := guidance.ClassifyReading(reading)
	webutil.RespondWithJSON(w, http.StatusCreated, createReadingResponse{
		Reading: reading,
		Status:  status,
		Advice:  guidance.AdviceFor(status, reading.Type),
		Insight: guidance.Insight(history),
	})
	return nil
}

func (h *ReadingHandler) HandleGetInsight(w http.ResponseWriter, r *http.Request) error {
	history, err := h.Repo.All(r.Context())
	if err != nil {
		return fmt.Errorf("failed to load history for insight: %w", err)
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"insight": guidance.Insight(history),
	})
	return nil
}
