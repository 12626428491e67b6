package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/booktracker/internal/common"
)

const (
	msgInternal         = "Internal server error."
	msgInvalidBody      = "Invalid request body."
	msgNotFound         = "Not found."
	msgMethodNotAllowed = "Method not allowed."

	msgTokenRequired = "Authentication token required."
	msgTokenInvalid  = "Invalid or expired token."

	msgRegisterRequired = "All fields are required."
	msgPasswordTooLong  = "Password must be at most 72 bytes."
	msgUserExists       = "Username or Email already exists."
	msgRegistered       = "User registered successfully!"

	msgLoginRequired = "Email and password are required."
	msgLoginFailed   = "Invalid email or password."
	msgLoggedIn      = "Login successful!"

	msgBookRequired      = "Title and Author are required."
	msgBookAdded         = "Book added successfully!"
	msgBookUpdated       = "Book updated successfully!"
	msgBookDeleted       = "Book deleted successfully!"
	msgBookUpdateMissing = "Book not found or unauthorized to update."
	msgBookDeleteMissing = "Book not found or unauthorized to delete."
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// decodeBody reads a single JSON value into dst. Trailing data is rejected.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// conflictMessage names the field of a uniqueness violation, e.g.
// "Recommendation value already exists.".
func conflictMessage(err error) string {
	var ce *common.ConflictError
	if !errors.As(err, &ce) || ce.Field == "" {
		return "Value already exists."
	}
	field := strings.ReplaceAll(ce.Field, "_", " ")
	return strings.ToUpper(field[:1]) + field[1:] + " value already exists."
}
