package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"portion-vision/logging"
	"portion-vision/stats-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Stats service.StatsInterface
}

func NewHandler(svc service.StatsInterface) *Handler {
	return &Handler{Stats: svc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/stats/popular", h.getPopular).Methods("GET")
	r.HandleFunc("/api/stats/calories", h.getCalories).Methods("GET")
	r.HandleFunc("/api/stats/daily", h.getDaily).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "stats-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getPopular(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := h.Stats.Popular(r.Context(), r.URL.Query().Get("meal"), limit)
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("popular items lookup failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getCalories(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.Calories(r.Context(), r.URL.Query().Get("meal"))
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("calorie stats lookup failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) getDaily(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.Daily(r.Context(), r.URL.Query().Get("date"))
	if errors.Is(err, service.ErrInvalidDate) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("daily stats lookup failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
