package handlers

import (
	"errors"
	"net/http"

	"account_ledger/internal/service"

	"github.com/gin-gonic/gin"
)

// Error categories returned in the "code" field of error bodies.
const (
	codeValidation         = "validation_error"
	codeDuplicateUsername  = "duplicate_username"
	codeDuplicateAccountID = "duplicate_account_id"
	codeInvalidCredentials = "invalid_credentials"
	codeUnauthenticated    = "unauthenticated"
	codeNotFound           = "not_found"
	codeSessionNotFound    = "session_not_found"
	codeTooManyRequests    = "too_many_requests"
	codeBadRequest         = "bad_request"
	codeServerError        = "server_error"
)

const (
	msgServerError     = "Server error"
	msgUnauthenticated = "You must be logged in to do that."
	msgAccountNotFound = "Account not found"
	msgUserExists      = "User already exists"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error" example:"Account not found"`
	Code  string `json:"code" example:"not_found"`
}

func writeError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, Code: code})
}

// Centralized error logging and response for service failures. Known
// domain errors map to their category; anything else is logged and
// reported as a generic server error.
func (h *Handler) fail(c *gin.Context, err error, logKey string, kv ...interface{}) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		// create/update report validation failures as 500
		writeError(c, http.StatusInternalServerError, codeValidation, ve.Error())
	case errors.Is(err, service.ErrDuplicateAccountID):
		writeError(c, http.StatusInternalServerError, codeDuplicateAccountID, err.Error())
	case errors.Is(err, service.ErrAccountNotFound):
		writeError(c, http.StatusNotFound, codeNotFound, msgAccountNotFound)
	default:
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
		writeError(c, http.StatusInternalServerError, codeServerError, msgServerError)
	}
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		writeError(c, http.StatusBadRequest, codeBadRequest, "invalid body: "+err.Error())
		return false
	}
	return true
}
