package di

import (
	"icpac/infras/postgres"
	"icpac/internal/handlers/health"

	goRedis "github.com/redis/go-redis/v9"
)

func healthChecks(conn *postgres.Connection, client *goRedis.Client) map[string]health.Check {
	return map[string]health.Check{
		"postgres": health.Postgres(conn),
		"redis":    health.Redis(client),
	}
}
