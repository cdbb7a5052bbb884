package main

import (
	"net/http"
	"time"

	"portion-vision/api-gateway/internal/gateway"
	"portion-vision/config"
	"portion-vision/logging"

	"github.com/rs/cors"
)

func main() {
	config.LoadEnv()
	log := logging.New("api-gateway")

	cfg := gateway.Config{
		PlateSvcURL: config.GetEnv("PLATE_SVC_URL", "http://localhost:8081"),
		StatsSvcURL: config.GetEnv("STATS_SVC_URL", "http://localhost:8083"),
		FrontendDir: config.GetEnv("FRONTEND_DIR", "./frontend"),
	}

	gw := gateway.NewGateway(cfg, &http.Client{Timeout: 60 * time.Second})

	r := gw.SetupRoutes()
	r.Use(logging.Middleware(log))

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080", "http://127.0.0.1:8080", "*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	addr := ":" + config.GetEnv("PORT", "8080")
	log.Infof("API Gateway starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
