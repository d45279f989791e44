package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/jpkrishna28/mls-point-locator/internal/handler"
)

// Register wires every route of the dashboard onto the Echo instance.
// gate is the session middleware guarding all data endpoints; cache is the
// Redis response cache applied to the GET lookup routes (it may be a
// pass-through when Redis is unavailable).
func Register(e *echo.Echo, a *handler.AuthHandler, f *handler.FacilityHandler, r *handler.ReportHandler, gate, cache echo.MiddlewareFunc) {
	// Public surface: liveness probe and the login/logout pair. Logout is
	// deliberately outside the gate so an expired session can still clear
	// its cookie.
	e.GET("/healthz", handler.Health)
	e.GET("/login", a.LoginStatus)
	e.POST("/login", a.Login)
	e.GET("/logout", a.Logout)

	// Everything else requires a live session; the gate rejects with a 401
	// failure envelope rather than silently serving data.
	g := e.Group("", gate)

	g.GET("/", f.Index)
	g.GET("/dashboard", f.Index)
	g.GET("/user", a.User)

	// Lookup routes answer from the in-memory mirror; the shared response
	// cache is safe because every session sees the same table.
	g.POST("/filtered_data", f.FilteredData)
	g.GET("/districts", f.Districts, cache)
	g.GET("/mandals/:district", f.Mandals, cache)
	g.GET("/mls_points/:district/:mandal", f.MLSPoints, cache)
	g.GET("/search_mls/:term", f.SearchMLS, cache)

	g.GET("/view_details/:code", f.ViewDetails)
	g.GET("/edit_details/:code", f.EditDetails)
	g.POST("/update_details/:code", f.UpdateDetails)

	g.GET("/download_pdf/:code", r.DownloadPDF)
}
