// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
	"github.com/zeidalqadri/owlwritey-sub000/internal/handler"
	"github.com/zeidalqadri/owlwritey-sub000/internal/middleware"
)

const (
	roleAdmin     = string(charter.RoleAdministrator)
	roleOwner     = string(charter.RoleVesselOwner)
	roleOperator  = string(charter.RoleVesselOperator)
	roleRequester = string(charter.RoleRequester)
)

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterBrowse registers the read-only planning endpoints available to
// every authenticated role: vessel details, availability and quoting.
func RegisterBrowse(e *echo.Echo, jwtSecret string, v *handler.VesselHandler, av *handler.AvailabilityHandler) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.GET("/vessels/:id", v.Get)
	g.GET("/vessels/:id/availability", av.Availability)
	g.GET("/vessels/:id/quote", av.Quote)
}

// RegisterCharter registers the authenticated charter surface. Routes are
// grouped by the role that drives them: owners manage vessels and decide on
// requests, requesters file and cancel reservations, operators run the
// charters, administrators see everything.
func RegisterCharter(
	e *echo.Echo,
	jwtSecret string,
	vessels *handler.VesselHandler,
	assignments *handler.AssignmentHandler,
	reservations *handler.ReservationHandler,
	owner *handler.OwnerReservationHandler,
	operator *handler.OperatorReservationHandler,
) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))

	// Vessel management: owners and administrators.
	mgmt := auth.Group("", middleware.RequireRole(roleOwner, roleAdmin))
	mgmt.POST("/vessels", vessels.Create)
	mgmt.GET("/vessels/mine", vessels.ListMine)
	mgmt.PUT("/vessels/:id", vessels.Update)
	mgmt.DELETE("/vessels/:id", vessels.Delete)
	mgmt.GET("/vessels/:id/operators", assignments.List)
	mgmt.POST("/vessels/:id/operators", assignments.Assign)
	mgmt.DELETE("/vessels/:id/operators/:operator_id", assignments.Remove)
	mgmt.GET("/vessels/:id/reservations", owner.ListForVessel)
	mgmt.POST("/reservations/:id/approve", owner.Approve)
	mgmt.POST("/reservations/:id/reject", owner.Reject)

	// Requester surface. Any authenticated role may file a request; owners
	// and operators charter vessels for their own projects too.
	auth.POST("/reservations", reservations.Create)
	auth.GET("/reservations", reservations.ListMine)
	auth.GET("/reservations/:id", reservations.Get)
	auth.POST("/reservations/:id/cancel", reservations.Cancel)

	// Operator surface.
	ops := auth.Group("/operator", middleware.RequireRole(roleOperator, roleAdmin))
	ops.GET("/reservations", operator.WorkQueue)
	ops.POST("/reservations/:id/activate", operator.Activate)
	ops.POST("/reservations/:id/complete", operator.Complete)

	// Administration.
	admin := auth.Group("/admin", middleware.RequireRole(roleAdmin))
	admin.GET("/vessels", vessels.ListAll)
}
