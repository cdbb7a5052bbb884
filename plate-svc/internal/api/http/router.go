package httpapi

import (
	"net/http"

	"portion-vision/logging"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func NewRouter(handler *Handler, log logrus.FieldLogger) http.Handler {
	r := mux.NewRouter()
	r.Use(logging.Middleware(log))
	handler.RegisterRoutes(r)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}

func StartServer(addr string, handler http.Handler, log logrus.FieldLogger) {
	log.Infof("Plate Service starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
