// Package controllers holds the Gin HTTP handlers. Each controller is a
// struct constructed with the storage port (and any services) it needs, so
// tests can wire an in-memory store without touching package globals.
package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/cognitonow/beauty-book-next/middleware"
	"github.com/cognitonow/beauty-book-next/models"
	"github.com/cognitonow/beauty-book-next/store"
)

// respondSuccess writes the success envelope.
func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError writes the error envelope.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondValidationError writes a 400 with per-field details when the binding
// error carries them.
func respondValidationError(c *gin.Context, err error) {
	var details interface{} = err.Error()

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = fmt.Sprintf("failed on the %q rule", fe.Tag())
		}
		details = fields
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": details,
		},
	})
}

// respondStoreError maps the store's sentinel errors onto HTTP statuses.
// Handlers that need a more specific 404 or 409 code check the sentinels
// themselves before falling through to this.
func respondStoreError(c *gin.Context, err error, notFoundCode, notFoundMessage string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, notFoundCode, notFoundMessage)
	case errors.Is(err, store.ErrDuplicate):
		respondError(c, http.StatusConflict, "CONFLICT", "The record already exists")
	case errors.Is(err, store.ErrConflict):
		respondError(c, http.StatusConflict, "CONFLICT", "The record was modified concurrently, retry the request")
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("storage operation failed")
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "An internal error occurred")
	}
}

// respondGateError maps the booking lifecycle gate's errors onto HTTP statuses.
func respondGateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotParticipant), errors.Is(err, models.ErrWrongCaller):
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You are not permitted to perform this operation")
	case errors.Is(err, models.ErrInvalidTransition):
		respondError(c, http.StatusBadRequest, "INVALID_STATUS", err.Error())
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("booking transition failed")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// callerID extracts the verified subject the auth middleware stored, writing
// a 401 if it is missing.
func callerID(c *gin.Context) (string, bool) {
	id, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return "", false
	}
	return id, true
}
