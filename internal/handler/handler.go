package handler

import (
	"errors"
	"net/http"

	"vendorhub/internal/service"
	"vendorhub/pkg/response"

	"github.com/gin-gonic/gin"
)

// statusForError maps service-level errors to HTTP status codes so every
// handler reports failures the same way.
func statusForError(err error) int {
	var insufficientStock *service.InsufficientStockError
	var persistence *service.PersistenceError

	switch {
	case errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrVendorNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrRequestFinalized):
		return http.StatusConflict
	case errors.As(err, &insufficientStock):
		return http.StatusConflict
	case errors.As(err, &persistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func abortWithError(c *gin.Context, err error) {
	status := statusForError(err)
	c.JSON(status, response.Error(status, err.Error()))
}

// currentUserID returns the authenticated user's id as set by the auth
// middleware, or "" on unauthenticated routes.
func currentUserID(c *gin.Context) string {
	v, ok := c.Get("userID")
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}
