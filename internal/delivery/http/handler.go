package http

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papercheck/backend/internal/domain"
	"github.com/papercheck/backend/internal/usecase"
)

const defaultMaxUploadBytes = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service        *usecase.ValidationService
	maxUploadBytes int64
}

// NewHandler creates a new HTTP handler
func NewHandler(service *usecase.ValidationService, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// ValidateRequest is the body of POST /api/v1/validations
type ValidateRequest struct {
	Fragments []string                `json:"fragments" binding:"required"`
	Reference *domain.ReferenceRecord `json:"reference" binding:"required"`
}

// ValidateExtractionRequest is the body of POST /api/v1/extractions/:id/validations
type ValidateExtractionRequest struct {
	Reference *domain.ReferenceRecord `json:"reference" binding:"required"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "papercheck-backend",
		"version": "1.0.0",
	})
}

// Validate checks already extracted fragments against a reference record
func (h *Handler) Validate(c *gin.Context) {
	if !h.requireService(c) {
		return
	}

	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	report, err := h.service.ValidateFragments(c.Request.Context(), req.Fragments, *req.Reference)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Extract runs OCR on an uploaded paper image
func (h *Handler) Extract(c *gin.Context) {
	if !h.requireService(c) {
		return
	}

	if c.Request.ContentLength > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image exceeds upload limit"})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image exceeds upload limit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image file in field 'image'"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable image upload"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable image upload"})
		return
	}

	// The declared part Content-Type is client controlled, so sniff the bytes
	contentType := http.DetectContentType(image)
	if !allowedImageTypes[contentType] {
		h.respondError(c, domain.ErrUnsupportedMedia)
		return
	}

	extraction, err := h.service.Extract(c.Request.Context(), image, contentType)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, extraction)
}

// GetExtraction returns a previously cached extraction
func (h *Handler) GetExtraction(c *gin.Context) {
	if !h.requireService(c) {
		return
	}

	extraction, err := h.service.GetExtraction(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, extraction)
}

// ValidateExtraction validates the fragments of a cached extraction
func (h *Handler) ValidateExtraction(c *gin.Context) {
	if !h.requireService(c) {
		return
	}

	var req ValidateExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	report, err := h.service.ValidateExtraction(c.Request.Context(), c.Param("id"), *req.Reference)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) requireService(c *gin.Context) bool {
	if h.service == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "validation service not configured",
		})
		return false
	}
	return true
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrExtractionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Extraction not found or expired"})
	case errors.Is(err, domain.ErrUnsupportedMedia):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Only JPEG and PNG images are supported"})
	case errors.Is(err, domain.ErrNoTextDetected):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No paper or readable text detected in image"})
	case errors.Is(err, domain.ErrOCRFailure):
		log.Printf("[HTTP] OCR failure: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "OCR service temporarily unavailable"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Request timed out"})
	default:
		log.Printf("[HTTP] Unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
