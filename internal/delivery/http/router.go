package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"pixdrop/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	eventController *controllers.EventController,
	uploadController *controllers.UploadController,
	photoController *controllers.PhotoController,
	oauthController *controllers.OAuthController,
	adminController *controllers.AdminController,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("GET /api/events", eventController.List)
	mux.HandleFunc("POST /api/events", eventController.Create)
	mux.HandleFunc("GET /api/events/{identifier}", eventController.Get)
	mux.HandleFunc("DELETE /api/events/{id}", eventController.Delete)

	// Photos
	mux.HandleFunc("POST /api/upload", uploadController.Upload)
	mux.HandleFunc("GET /api/photos", photoController.List)

	// OAuth bootstrap
	mux.HandleFunc("GET /api/oauth/authorize", oauthController.Authorize)
	mux.HandleFunc("GET /api/oauth/callback", oauthController.Callback)

	// Admin
	mux.HandleFunc("GET /api/admin/status", adminController.Status)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
