package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"hootroost/app/controllers"
	"hootroost/app/middleware"
	"hootroost/app/repositories"
	"hootroost/app/services"
)

// SetupRoutes defines the application's routes over store and returns a router.
// Every hoot route requires a bearer token accepted by verifier.
func SetupRoutes(store repositories.Store, verifier middleware.TokenVerifier) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.ContentTypeJSON)

	router.NotFoundHandler = middleware.Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, "not found")
	}))
	router.MethodNotAllowedHandler = middleware.Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}))

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")

	presenter := services.NewPresenter(store.Users())
	hootController := controllers.NewHootController(services.NewHootService(store.Hoots()), presenter)
	commentController := controllers.NewCommentController(services.NewCommentService(store.Hoots()), presenter)

	// Routes stay on the root router so a wrong method on a known path
	// reaches MethodNotAllowedHandler; mux subrouters report those as 404.
	authed := middleware.Authenticate(verifier, store.Users())
	handle := func(path string, h http.HandlerFunc, method string) {
		router.Handle(path, authed(h)).Methods(method)
	}

	// Hoot endpoints
	handle("/hoots", hootController.Index, "GET")
	handle("/hoots", hootController.Create, "POST")
	handle("/hoots/{hootId}", hootController.Show, "GET")
	handle("/hoots/{hootId}", hootController.Update, "PUT")
	handle("/hoots/{hootId}", hootController.Delete, "DELETE")

	// Comment endpoints
	handle("/hoots/{hootId}/comments", commentController.Create, "POST")
	handle("/hoots/{hootId}/comments/{commentId}", commentController.Update, "PUT")
	handle("/hoots/{hootId}/comments/{commentId}", commentController.Delete, "DELETE")

	return router
}
