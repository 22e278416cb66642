package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// errorResponse writes an error body with the given status.
func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// notFoundResponse creates 404 error response.
func notFoundResponse(c *gin.Context) {
	errorResponse(c, http.StatusNotFound, "Request not found")
}
