package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/booktracker/internal/common"
	"github.com/dmitrijs2005/booktracker/internal/server/auth"
	"github.com/dmitrijs2005/booktracker/internal/server/models"
	"github.com/dmitrijs2005/booktracker/internal/server/services"
	"github.com/gorilla/mux"
)

type bookRequest struct {
	Title          string        `json:"title"`
	Author         string        `json:"author"`
	Recommendation *string       `json:"recommendation"`
	PublishedYear  publishedYear `json:"published_year"`
}

func (b bookRequest) input() services.BookInput {
	return services.BookInput{
		Title:          b.Title,
		Author:         b.Author,
		Recommendation: b.Recommendation,
		PublishedYear:  b.PublishedYear.value,
	}
}

type bookResponse struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	Recommendation *string `json:"recommendation"`
	PublishedYear  *int    `json:"published_year"`
	UserID         int64   `json:"user_id"`
}

type bookCreatedResponse struct {
	Message string `json:"message"`
	BookID  int64  `json:"bookId"`
}

func toBookResponse(b *models.Book) bookResponse {
	return bookResponse{
		ID:             b.ID,
		Title:          b.Title,
		Author:         b.Author,
		Recommendation: b.Recommendation,
		PublishedYear:  b.PublishedYear,
		UserID:         b.UserID,
	}
}

// bookID returns the {id} path value, or 0 when it is not a positive integer.
func bookID(r *http.Request) int64 {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func (s *Server) listBooks(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	list, err := s.books.List(r.Context(), id.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	out := make([]bookResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBookResponse(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createBook(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	var req bookRequest
	if !decodeBody(w, r, &req) {
		return
	}

	bookID, err := s.books.Create(r.Context(), id.UserID, req.input())
	if err != nil {
		s.writeBookError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, bookCreatedResponse{Message: msgBookAdded, BookID: bookID})
}

func (s *Server) updateBook(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	var req bookRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.books.Update(r.Context(), id.UserID, bookID(r), req.input()); err != nil {
		s.writeBookError(w, err, msgBookUpdateMissing)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msgBookUpdated})
}

func (s *Server) deleteBook(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	if err := s.books.Delete(r.Context(), id.UserID, bookID(r)); err != nil {
		s.writeBookError(w, err, msgBookDeleteMissing)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msgBookDeleted})
}

func (s *Server) writeBookError(w http.ResponseWriter, err error, notFound string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, msgBookRequired)
	case errors.Is(err, common.ErrorNotFound) && notFound != "":
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, conflictMessage(err))
	default:
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
