// Package handler provides HTTP handlers for team request endpoints.
package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/teamup/internal/teamrequest/model"
	"github.com/festy23/teamup/internal/teamrequest/service"
)

// Handler handles HTTP requests for team request endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team request handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// List handles GET /api/requests.
func (h *Handler) List(c *gin.Context) {
	requests, err := h.service.List(c.Request.Context())
	if err != nil {
		h.storeError(c, "list", "", err, "Failed to fetch requests")
		return
	}

	c.JSON(http.StatusOK, requests)
}

// Create handles POST /api/requests.
func (h *Handler) Create(c *gin.Context) {
	var req model.WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidRequest) {
			errorResponse(c, http.StatusBadRequest, validationMessage(err))
			return
		}
		h.storeError(c, "create", "", err, "Failed to create request")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/requests/:id.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")

	// An empty body still resolves to 404 or 403 before field validation.
	var req model.WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		errorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrRequestNotFound):
			notFoundResponse(c)
		case errors.Is(err, model.ErrForbidden):
			h.logger.Warnw("fingerprint mismatch", "operation", "update", "id", id)
			errorResponse(c, http.StatusForbidden, "Not authorized to update this request")
		case errors.Is(err, model.ErrInvalidRequest):
			errorResponse(c, http.StatusBadRequest, validationMessage(err))
		default:
			h.storeError(c, "update", id, err, "Failed to update request")
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/requests/:id. The body may be empty, in which
// case the ownership check fails with 403 for any existing request.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	var req model.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		errorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.service.Delete(c.Request.Context(), id, req.OwnerFingerprint)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrRequestNotFound):
			notFoundResponse(c)
		case errors.Is(err, model.ErrForbidden):
			h.logger.Warnw("fingerprint mismatch", "operation", "delete", "id", id)
			errorResponse(c, http.StatusForbidden, "Not authorized to delete this request")
		default:
			h.storeError(c, "delete", id, err, "Failed to delete request")
		}
		return
	}

	c.JSON(http.StatusOK, model.MessageResponse{Message: "Request deleted successfully"})
}

// storeError logs err with context and answers 500 with a generic message.
func (h *Handler) storeError(c *gin.Context, operation, id string, err error, message string) {
	h.logger.Errorw("team request operation failed",
		"operation", operation,
		"id", id,
		"error", err,
	)
	if errors.Is(err, model.ErrStoreUnavailable) {
		message = "Database connection error"
	}
	errorResponse(c, http.StatusInternalServerError, message)
}

// validationMessage strips the sentinel prefix, leaving e.g. "title is required".
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), model.ErrInvalidRequest.Error()+": ")
	if msg == "" || msg == err.Error() {
		return "Invalid request body"
	}
	return msg
}
