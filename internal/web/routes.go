package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is one entry of the navigation table. Guarded routes are wrapped
// by exactly one session guard; JSON routes answer 401 instead of
// redirecting.
type Route struct {
	Method  string
	Path    string
	Name    string
	Guarded bool
	JSON    bool
	CORS    bool
	Handler gin.HandlerFunc
}

// routes returns the static route table, relative to the base path
func (s *Server) routes() []Route {
	return []Route{
		// Open
		{Method: http.MethodGet, Path: "/", Name: "login", Handler: s.loginPage},
		{Method: http.MethodPost, Path: "/", Name: "login", Handler: s.login},
		{Method: http.MethodGet, Path: "/order-complete", Name: "order-complete", Handler: s.orderComplete},
		{Method: http.MethodPost, Path: "/logout", Name: "logout", Handler: s.logout},
		{Method: http.MethodGet, Path: "/health", Name: "health", Handler: s.healthCheck},
		{Method: http.MethodOptions, Path: "/display/feed", Name: "display-feed", CORS: true, Handler: func(c *gin.Context) { c.Status(http.StatusNoContent) }},

		// Menu
		{Method: http.MethodGet, Path: "/menu", Name: "menu", Guarded: true, Handler: s.menuPage},
		{Method: http.MethodPost, Path: "/menu/checkout", Name: "menu", Guarded: true, Handler: s.checkout},

		// Admin
		{Method: http.MethodGet, Path: "/admin", Name: "admin", Guarded: true, Handler: s.adminPage},
		{Method: http.MethodPost, Path: "/admin/orders/:id/status", Name: "admin", Guarded: true, Handler: s.adminUpdateOrderStatus},
		{Method: http.MethodPost, Path: "/admin/orders/:id/delete", Name: "admin", Guarded: true, Handler: s.adminDeleteOrder},
		{Method: http.MethodPost, Path: "/admin/orders/clear", Name: "admin", Guarded: true, Handler: s.adminClearOrders},
		{Method: http.MethodPost, Path: "/admin/menu", Name: "admin", Guarded: true, Handler: s.adminCreateMenuItem},
		{Method: http.MethodPost, Path: "/admin/menu/:id", Name: "admin", Guarded: true, Handler: s.adminUpdateMenuItem},
		{Method: http.MethodPost, Path: "/admin/menu/:id/delete", Name: "admin", Guarded: true, Handler: s.adminDeleteMenuItem},
		{Method: http.MethodPost, Path: "/admin/toads/:id", Name: "admin", Guarded: true, Handler: s.adminUpdateToad},

		// Display
		{Method: http.MethodGet, Path: "/display", Name: "display", Guarded: true, Handler: s.displayPage},
		{Method: http.MethodGet, Path: "/display/feed", Name: "display-feed", Guarded: true, JSON: true, CORS: true, Handler: s.displayFeed},
	}
}
