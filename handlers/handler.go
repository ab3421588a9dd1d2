package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler carries the injected database handle. All route handlers are
// methods on it so tests can swap in an in-memory database.
type Handler struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// apiError carries an HTTP status through a transaction so multi-step
// workflows can abort with the right code.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string { return e.message }

func badRequest(msg string) *apiError {
	return &apiError{status: http.StatusBadRequest, message: msg}
}

func forbidden(msg string) *apiError {
	return &apiError{status: http.StatusForbidden, message: msg}
}

func notFound(msg string) *apiError {
	return &apiError{status: http.StatusNotFound, message: msg}
}

func conflict(msg string) *apiError {
	return &apiError{status: http.StatusConflict, message: msg}
}

func unprocessable(msg string) *apiError {
	return &apiError{status: http.StatusUnprocessableEntity, message: msg}
}

// fail writes the JSON error response for err, falling back to a
// generic 500 for anything that is not an apiError.
func fail(c *gin.Context, err error) {
	var ae *apiError
	if errors.As(err, &ae) {
		c.JSON(ae.status, gin.H{"error": ae.message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
