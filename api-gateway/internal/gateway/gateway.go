package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"portion-vision/logging"

	"github.com/gorilla/mux"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	PlateSvcURL string
	StatsSvcURL string
	FrontendDir string
}

type Gateway struct {
	config Config
	client HTTPClient
}

// plate-svc owns every /api prefix not listed under stats.
var plateRoutes = []string{
	"/api/recommend",
	"/api/recommendations",
	"/api/classify",
	"/api/estimate",
	"/api/foods",
	"/api/profiles",
	"/api/menu",
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	if config.FrontendDir == "" {
		config.FrontendDir = "./frontend"
	}
	return &Gateway{
		config: config,
		client: client,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	log := logging.FromContext(r.Context()).WithField("upstream", targetURL)
	log.Debugf("PROXY: %s %s", r.Method, r.URL.Path)

	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		log.WithError(err).Error("Failed to create request")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}
	if id := logging.RequestID(r.Context()); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.WithError(err).Warn("Failed to reach upstream")
		http.Error(w, "Upstream service unavailable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.WithError(err).Warn("Failed to copy response")
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	// the first frontend posted menu photos straight to /ocr
	if path == "/ocr" && r.Method == http.MethodPost {
		r.URL.Path = "/api/menu/ocr"
		logging.FromContext(r.Context()).Debugf("[GATEWAY] Rewrote %s to %s", path, r.URL.Path)
		g.ProxyRequest(w, r, g.config.PlateSvcURL)
		return
	}

	if path == "/mcp" {
		g.ProxyRequest(w, r, g.config.PlateSvcURL)
		return
	}

	if path == "/api/stats" || strings.HasPrefix(path, "/api/stats/") {
		g.ProxyRequest(w, r, g.config.StatsSvcURL)
		return
	}

	for _, prefix := range plateRoutes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			g.ProxyRequest(w, r, g.config.PlateSvcURL)
			return
		}
	}

	if strings.HasPrefix(path, "/api/") {
		logging.FromContext(r.Context()).Infof("[GATEWAY] Unmatched API route: %s", path)
		http.Error(w, "API route not found", http.StatusNotFound)
		return
	}

	if path == "/plate.html" {
		http.ServeFile(w, r, filepath.Join(g.config.FrontendDir, "plate.html"))
		return
	}
	http.ServeFile(w, r, filepath.Join(g.config.FrontendDir, "index.html"))
}

func (g *Gateway) SetupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(g.config.FrontendDir))))
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}
