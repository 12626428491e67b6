package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Handler builds the full middleware chain around the router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})

	r.HandleFunc("/register", s.register).Methods(http.MethodPost)
	r.HandleFunc("/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	protected := r.PathPrefix("/books").Subrouter()
	protected.Use(s.authGate)
	protected.HandleFunc("", s.listBooks).Methods(http.MethodGet)
	protected.HandleFunc("", s.createBook).Methods(http.MethodPost)
	// {id} is parsed by the handlers so a malformed id gets the same 404
	// body as a missing or foreign row.
	protected.HandleFunc("/{id}", s.updateBook).Methods(http.MethodPut)
	protected.HandleFunc("/{id}", s.deleteBook).Methods(http.MethodDelete)

	c := cors.New(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{requestIDHeader},
	})

	return s.recoverer(s.requestLogger(c.Handler(r)))
}
