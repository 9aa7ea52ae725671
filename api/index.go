package handler

import (
	"net/http"
	"sync"

	"hotelops/config"
	"hotelops/di"
	"hotelops/shared/logger"
)

var (
	once    sync.Once
	handler http.HandlerFunc
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)
		logger.SetOutput(cfg)

		handler = di.InitializeService().Adaptor()
	})

	handler(w, r)
}
