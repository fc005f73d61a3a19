package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"hive-social-network/database"
	"hive-social-network/logging"
	"hive-social-network/middleware"
	"hive-social-network/models"
	"hive-social-network/social"
	"hive-social-network/validation"
)

const maxBodyBytes = 1 << 20

// requestError is a malformed request caught before the engine is called.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(format string, args ...interface{}) error {
	return &requestError{status: http.StatusBadRequest, message: fmt.Sprintf(format, args...)}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.MessageResponse{Message: message})
}

// respondError is the single place where errors become HTTP responses.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := classify(err)
	log := logging.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("Request rejected")
	}
	respondMessage(w, status, message)
}

func classify(err error) (int, string) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return reqErr.status, reqErr.message
	}
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Error()
	}
	var dup *database.DuplicateKeyError
	if errors.As(err, &dup) {
		return http.StatusConflict, fmt.Sprintf("This %s is already in use", dup.Field)
	}

	switch social.KindOf(err) {
	case social.ErrValidation:
		return http.StatusBadRequest, err.Error()
	case social.ErrUnauthenticated:
		return http.StatusUnauthorized, err.Error()
	case social.ErrForbidden:
		return http.StatusForbidden, err.Error()
	case social.ErrNotFound:
		return http.StatusNotFound, err.Error()
	case social.ErrConflict:
		return http.StatusConflict, err.Error()
	}
	return http.StatusInternalServerError, "Internal server error"
}

// decodeJSON reads the request body into dst. An empty body leaves dst at
// its zero value.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &requestError{status: http.StatusRequestEntityTooLarge, message: "Request body too large"}
		}
		return badRequest("Invalid JSON body")
	}
	return nil
}

// validateBody checks a request body that goes to the engine as loose
// arguments rather than as a request struct.
func validateBody(v interface{}) error {
	if verr := validation.ValidateStruct(v); verr != nil {
		return verr
	}
	return nil
}

// pathID returns the named URL parameter after checking it is a valid id.
// what names the entity in the error message.
func pathID(r *http.Request, name, what string) (string, error) {
	id := chi.URLParam(r, name)
	if _, err := uuid.Parse(id); err != nil {
		return "", badRequest("Invalid %s ID format", what)
	}
	return id, nil
}

// actor returns the user resolved by the identity middleware.
func actor(r *http.Request) (*models.User, error) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		return nil, &social.Error{Kind: social.ErrUnauthenticated, Message: "Missing user identifier"}
	}
	return u, nil
}
