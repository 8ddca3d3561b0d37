package handler

import (
	"errors"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/usecase"
	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/view"
	"github.com/vasapolrittideah/recipe-forum/shared/validation"
)

const msgLoginRequired = "Please log in to continue."

// handleError is the single terminal path for failed requests. Anything
// unrecognised is logged and shown as a 500 page carrying the error message.
func (h *ForumHTTPHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *validation.Error

	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		h.render(w, r, http.StatusUnauthorized, view.PageIndex, view.LoginData{
			Base:   h.base(r, "Log In"),
			Error1: msgLoginRequired,
		})
	case errors.As(err, &validationErr):
		h.logger.Warn().
			Err(err).
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Str("path", r.URL.Path).
			Msg("validation failed")

		h.render(w, r, http.StatusBadRequest, view.PageError, view.ErrorData{
			Base:    h.base(r, "Validation failed"),
			Heading: "Validation failed",
			Message: validationErr.Error(),
		})
	default:
		h.logger.Error().
			Err(err).
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")

		h.render(w, r, http.StatusInternalServerError, view.PageError, view.ErrorData{
			Base:    h.base(r, "Server Error"),
			Heading: "Server Error",
			Message: err.Error(),
		})
	}
}
