package main

import (
	"net/http"
	"time"

	"portion-vision/config"
	"portion-vision/logging"
	httpapi "portion-vision/plate-svc/internal/api/http"
	"portion-vision/plate-svc/internal/engine"
	"portion-vision/plate-svc/internal/knowledge"
	"portion-vision/plate-svc/internal/mcp"
	"portion-vision/plate-svc/internal/ocr"
	"portion-vision/plate-svc/internal/service"
	"portion-vision/plate-svc/internal/storage"
)

const (
	menuCacheTTL = 24 * time.Hour
	ocrTimeout   = 30 * time.Second
)

func main() {
	config.LoadEnv()
	log := logging.New("plate-svc")

	base, err := knowledge.Load(config.GetEnv("KNOWLEDGE_BASE_PATH", "data/foodDatabase.json"))
	if err != nil {
		log.WithError(err).Warn("knowledge base unavailable, classifying with keyword fallbacks")
	}
	log.WithField("foods", base.Len()).Info("knowledge base loaded")

	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	rdb := config.MustInitRedis()
	defer rdb.Close()
	cache := &storage.RedisCache{Client: rdb, TTL: menuCacheTTL}

	writer := config.NewKafkaWriter("plates")
	defer writer.Close()
	publisher := &storage.KafkaPublisher{Writer: writer}

	extractor := ocr.NewClient(config.GetEnv("OCR_URL", "http://localhost:8090/extract"), &http.Client{Timeout: ocrTimeout})
	qr := service.DefaultQRGenerator{BaseURL: config.GetEnv("PUBLIC_BASE_URL", "http://localhost")}

	classifier := engine.NewClassifier(base)
	foods := service.NewFoodService(base, classifier)
	profiles := service.NewProfileService(repo)
	menus := service.NewMenuService(repo, cache, extractor)
	plates := service.NewRecommendationService(engine.NewRecommender(classifier), repo, menus, repo, publisher, qr)

	handler := httpapi.NewHandler(plates, profiles, menus, foods, mcp.NewServer(foods, profiles, plates))
	httpapi.StartServer(":"+config.GetEnv("PORT", "8081"), httpapi.NewRouter(handler, log), log)
}
