package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/bizmatch/miniapp-backend/internal/handler"    // import the handlers that implement business logic
	"github.com/bizmatch/miniapp-backend/internal/middleware" // import middleware for session authentication
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The health endpoint can be used by load balancers or monitoring
	// systems to verify that the service is up and running.
	e.GET("/api/health", handler.Health)
}

// RegisterAuth registers the Telegram authentication endpoint.  The route is
// public by nature — it is how a client obtains a session token — but it is
// wrapped in the rate limiter so that signature guessing gets throttled.
// Pass a nil limiter to register the route without one.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/telegram", a.TelegramAuth)
}

// RegisterAPI registers every protected endpoint under /api.  All handlers
// on this group execute the SessionAuth middleware before being invoked, so
// a request only reaches them carrying verified session claims.  The request
// feed optionally runs behind the response cache middleware; pass nil to
// skip caching.
func RegisterAPI(e *echo.Echo, u *handler.UserHandler, r *handler.RequestHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	api := e.Group("/api")
	// Apply the SessionAuth middleware to the protected group using the
	// provided secret.
	api.Use(middleware.SessionAuth(jwtSecret))

	// Profile endpoints operate on the caller's own row only.
	api.GET("/user/profile", u.Profile)
	api.PUT("/user/activity", u.UpdateActivity)

	// Request board: list is the hottest read path and may be cached; the
	// write paths always hit the database directly.
	if cache != nil {
		api.GET("/requests", r.List, cache)
	} else {
		api.GET("/requests", r.List)
	}
	api.POST("/requests", r.Create)
	api.PUT("/requests/:id/match", r.Match)
}
