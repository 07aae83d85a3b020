package router

import (
	"icpac/internal/handlers/auth"
	"icpac/internal/handlers/availability"
	"icpac/internal/handlers/booking"
	"icpac/internal/handlers/health"
	"icpac/internal/handlers/room"
	"icpac/internal/handlers/user"
	"icpac/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Room         room.Handler
	User         user.Handler
	Booking      booking.Handler
	Availability availability.Handler
	Health       health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

// SetupRoutes mounts /health at the root and the API under /v1 behind the auth chain.
func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Health.Router(router)

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		routerGroup.Route("/rooms", func(rooms chi.Router) {
			r.DomainHandlers.Room.Router(rooms)
			r.DomainHandlers.Availability.RoomRouter(rooms)
		})
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
