package handler

import (
	"net/http"
	"sync"

	"icpac/config"
	"icpac/di"
	"icpac/shared/logger"
)

var (
	once    sync.Once
	service http.Handler
)

// Handler is the serverless entrypoint; the dependency graph is built on the first request
// and reused by warm invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg.Server.Env)
		logger.SetLogLevel(cfg)

		service = di.InitializeService().Handler()
	})

	r.RequestURI = r.URL.String()

	service.ServeHTTP(w, r)
}
