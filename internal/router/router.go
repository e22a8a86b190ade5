// Package router registers the HTTP routes of the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/handler"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/middleware"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes.  Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access
// token of any role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout accepts either a bearer token (revoke all sessions) or a
	// refresh_token body (revoke one session); no middleware needed.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleClient, model.RoleOwner, model.RoleAdmin))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints: room
// listings, room details, comments and the availability probe.  The
// response cache middleware is applied here and only here; responses
// on these routes are the same for every caller, so they are the one
// surface an identity-free cache key is safe on.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	g.GET("/rooms", p.ListRooms)
	g.GET("/rooms/:id", p.GetRoom)
	g.GET("/rooms/:id/comments", p.ListComments)
	// Availability runs the same normalization and overlap predicate
	// as a booking, read-only.
	g.GET("/rooms/:id/availability", p.CheckAvailability)
}

// RegisterClient registers the client-facing reservation and feedback
// routes under JWT + role middleware.
func RegisterClient(e *echo.Echo, h *handler.ClientHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleClient, model.RoleAdmin))

	g.POST("/rooms/:id/reservations", h.CreateReservation)
	g.GET("/reservations", h.ListMyReservations)
	g.DELETE("/reservations/:id", h.CancelMyReservation)
	g.PUT("/rooms/:id/rating", h.RateRoom)
	g.POST("/rooms/:id/comments", h.CommentRoom)
}

// RegisterOwner registers room management and reservation moderation
// for owners.
func RegisterOwner(e *echo.Echo, h *handler.OwnerHandler, jwtSecret string) {
	g := e.Group("/v1/owner")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleOwner, model.RoleAdmin))

	g.POST("/rooms", h.CreateRoom)
	g.GET("/rooms", h.ListMyRooms)
	g.PUT("/rooms/:id", h.UpdateRoom)
	g.DELETE("/rooms/:id", h.DeleteRoom)
	g.GET("/rooms/:id/reservations", h.ListRoomReservations)
	g.POST("/reservations/:id/confirm", h.ConfirmReservation)
	g.POST("/reservations/:id/cancel", h.CancelReservation)
}

// RegisterAdmin registers the moderation surface, restricted to the
// ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.GET("/users", h.ListUsers)
	g.DELETE("/users/:id", h.DeactivateUser)
	g.DELETE("/rooms/:id", h.DeleteRoom)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.GET("/reservations", h.ListReservations)
}
