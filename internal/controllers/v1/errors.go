package v1

import (
	"errors"
	"net/http"

	"github.com/spendiq/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no category matching your query"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, errAIUnavailable) {
		return http.StatusBadGateway
	}

	return http.StatusBadRequest
}

var errAIUnavailable = errors.New("the assistant is currently unavailable, please try again later")

// Chat errors
var (
	errChatMessageEmpty = errors.New("the message must not be empty")
)

// Settings errors
var (
	errUnknownSettingsField = errors.New("the request body contains fields that do not exist in the settings")
)
