package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/booktracker/internal/common"
	"github.com/dmitrijs2005/booktracker/internal/server/services"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
	Token   string       `json:"token"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, messageResponse{Message: msgRegistered})
	case errors.Is(err, services.ErrPasswordTooLong):
		writeError(w, http.StatusBadRequest, msgPasswordTooLong)
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, msgRegisterRequired)
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, msgUserExists)
	default:
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.users.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, loginResponse{
			Message: msgLoggedIn,
			User:    userResponse{ID: res.User.ID, Username: res.User.UserName, Email: res.User.Email},
			Token:   res.Token,
		})
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, msgLoginRequired)
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, msgLoginFailed)
	default:
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Warn(r.Context(), "health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
