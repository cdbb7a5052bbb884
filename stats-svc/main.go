package main

import (
	"context"
	"os/signal"
	"syscall"

	"portion-vision/config"
	"portion-vision/logging"
	httpapi "portion-vision/stats-svc/internal/api/http"
	"portion-vision/stats-svc/internal/service"
	"portion-vision/stats-svc/internal/storage"
)

func main() {
	config.LoadEnv()
	log := logging.New("stats-svc")

	rdb := config.MustInitRedis()
	defer rdb.Close()
	store := storage.NewStore(rdb)

	reader := config.NewKafkaReader("plates", "stats-svc-consumer")
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := service.NewConsumer(reader, store, log)
	go consumer.Start(ctx)

	handler := httpapi.NewHandler(service.NewStatsService(store))
	httpapi.StartServer(":"+config.GetEnv("PORT", "8083"), httpapi.NewRouter(handler, log), log)
}
