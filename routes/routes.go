package routes

import (
	"help-app-api/auth"
	"help-app-api/handlers"
	"help-app-api/middleware"
	"help-app-api/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, issuer *auth.Issuer) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.AuthRequired(issuer)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/signup", h.Signup)
		public.POST("/auth/login", h.Login)

		public.GET("/services", h.ListServices)
		public.GET("/services/:id", h.GetService)

		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	authed := r.Group("/api")
	authed.Use(requireAuth)
	{
		authed.GET("/auth/me", h.Me)
		authed.POST("/auth/logout", h.Logout)

		authed.POST("/services", h.CreateService)

		authed.POST("/bookings", h.CreateBooking)
		authed.GET("/bookings", h.ListBookings)
		authed.PATCH("/bookings/:id", h.UpdateBookingStatus)
	}

	// ── Client routes ──────────────────────────────────────────────
	client := r.Group("/api")
	client.Use(requireAuth, middleware.RoleRequired(models.RoleClient))
	{
		client.POST("/reviews", h.CreateReview)
	}
}
