package router

import (
	"github.com/go-chi/chi/v5"

	"lagoon/internal/handlers/admin"
	"lagoon/internal/handlers/auth"
	"lagoon/internal/handlers/booking"
	"lagoon/internal/handlers/contact"
	"lagoon/internal/handlers/health"
	"lagoon/internal/handlers/image"
	"lagoon/internal/handlers/testimonial"
	"lagoon/internal/handlers/user"
)

type DomainHandlers struct {
	Health      health.Handler
	Auth        auth.Handler
	Booking     booking.Handler
	Contact     contact.Handler
	Testimonial testimonial.Handler
	Image       image.Handler
	Admin       admin.Handler
	User        user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Contact.Router(routerGroup)
		r.DomainHandlers.Testimonial.Router(routerGroup)
		r.DomainHandlers.Image.Router(routerGroup)
		r.DomainHandlers.Admin.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
