package health

import (
	"context"
	"net/http"
	"time"

	"icpac/infras/otel"
	"icpac/infras/postgres"
	"icpac/shared/constant"
	"icpac/transport/http/response"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const checkTimeout = 2 * time.Second

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

type Status struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

type Handler struct {
	checks map[string]Check
	otel   otel.Otel
}

func New(checks map[string]Check, otel otel.Otel) Handler {
	return Handler{
		checks: checks,
		otel:   otel,
	}
}

// Postgres pings both the read and the write pool.
func Postgres(conn *postgres.Connection) Check {
	return func(ctx context.Context) error {
		if err := conn.Read.PingContext(ctx); err != nil {
			return err //nolint:wrapcheck
		}

		return conn.Write.PingContext(ctx) //nolint:wrapcheck
	}
}

func Redis(client *goRedis.Client) Check {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err() //nolint:wrapcheck
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Health reports the reachability of the service's dependencies.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Status]
// @Failure 503 {object} response.Data[Status]
// @Router /health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Health")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	res := Status{Status: "ok", Dependencies: make(map[string]string, len(handler.checks))}
	code := http.StatusOK

	for name, check := range handler.checks {
		if err := check(ctx); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("dependency", name).Msg("health check failed")

			res.Dependencies[name] = err.Error()
			res.Status = "unhealthy"
			code = http.StatusServiceUnavailable

			continue
		}

		res.Dependencies[name] = "ok"
	}

	response.WithJSON(w, code, res)
}
