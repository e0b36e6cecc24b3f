package handler

import (
	"net/http"
	"shareit/config"
	"shareit/di"
	"shareit/shared/logger"
	"sync"
)

var (
	app     http.Handler
	appOnce sync.Once
)

// Handler is the serverless entrypoint; the application is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	appOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.SetLogLevel(cfg)
		logger.UseJSON(cfg)

		app = di.InitializeService()
	})

	app.ServeHTTP(w, r)
}
