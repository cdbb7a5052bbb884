package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"portion-vision/logging"
	"portion-vision/plate-svc/internal/domain"
	"portion-vision/plate-svc/internal/ocr"
	"portion-vision/plate-svc/internal/service"

	"github.com/gorilla/mux"
)

const uploadOverhead = 1 << 20

type Handler struct {
	Plates   service.RecommendationServiceInterface
	Profiles service.ProfileServiceInterface
	Menus    service.MenuServiceInterface
	Foods    service.FoodServiceInterface
	MCP      http.Handler
}

func NewHandler(
	plates service.RecommendationServiceInterface,
	profiles service.ProfileServiceInterface,
	menus service.MenuServiceInterface,
	foods service.FoodServiceInterface,
	mcp http.Handler,
) *Handler {
	return &Handler{Plates: plates, Profiles: profiles, Menus: menus, Foods: foods, MCP: mcp}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/recommend", h.recommend).Methods("POST")
	r.HandleFunc("/api/classify", h.classify).Methods("POST")
	r.HandleFunc("/api/estimate", h.estimate).Methods("POST")

	r.HandleFunc("/api/foods", h.listFoods).Methods("GET")
	r.HandleFunc("/api/foods/search", h.searchFoods).Methods("GET")

	r.HandleFunc("/api/profiles/{id}", h.saveProfile).Methods("PUT")
	r.HandleFunc("/api/profiles/{id}", h.getProfile).Methods("GET")
	r.HandleFunc("/api/profiles/{id}/recommendations", h.profileHistory).Methods("GET")

	r.HandleFunc("/api/menu/ocr", h.importMenu).Methods("POST")
	r.HandleFunc("/api/menu/today", h.setMenu).Methods("PUT")
	r.HandleFunc("/api/menu/today", h.getMenu).Methods("GET")

	r.HandleFunc("/api/recommendations/{id}", h.getRecommendation).Methods("GET")
	r.HandleFunc("/api/recommendations/{id}/qrcode", h.getQRCode).Methods("GET")

	if h.MCP != nil {
		r.Handle("/mcp", h.MCP).Methods("GET", "POST")
	}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "plate-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request) {
	var req domain.RecommendRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	result, err := h.Plates.Recommend(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) classify(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	writeJSON(w, http.StatusOK, h.Foods.Classify(payload.Name))
}

func (h *Handler) estimate(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if nested, ok := payload["profile"].(map[string]any); ok {
		payload = nested
	}
	writeJSON(w, http.StatusOK, h.Profiles.Estimate(payload))
}

func (h *Handler) listFoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Foods.List())
}

func (h *Handler) searchFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.Foods.Search(r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

func (h *Handler) saveProfile(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	view, err := h.Profiles.Save(r.Context(), mux.Vars(r)["id"], payload)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	view, err := h.Profiles.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) profileHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	history, err := h.Plates.History(r.Context(), mux.Vars(r)["id"], limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *Handler) importMenu(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, ocr.MaxImageBytes+uploadOverhead)

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Please upload a JPEG, PNG, or WEBP image")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, ocr.MaxImageBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read uploaded image")
		return
	}

	menu, err := h.Menus.ImportImage(r.Context(), header.Filename, image)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

func (h *Handler) setMenu(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		MenuItems []string `json:"menuItems"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	menu, err := h.Menus.SetToday(r.Context(), payload.MenuItems, service.SourceManual)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.Menus.Today(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

func (h *Handler) getRecommendation(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Plates.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) getQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Plates.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// fail maps service errors to status codes. Anything unrecognised is logged
// and reported as a 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": verr})
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrMenuNotFound),
		errors.Is(err, service.ErrRecommendationNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmptyQuery), errors.Is(err, ocr.ErrInvalidImage):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ocr.ErrOCRUnavailable):
		logging.FromContext(r.Context()).WithError(err).Warn("menu extraction failed")
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error": "Could not read the menu image, please try again",
			"retry": true,
		})
	default:
		logging.FromContext(r.Context()).WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeBody treats an empty body as an empty object.
func decodeBody(r *http.Request, target any) error {
	err := json.NewDecoder(r.Body).Decode(target)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
