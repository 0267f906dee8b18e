package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"telinput/internal/telinput/service"
	"telinput/internal/telinput/transport"
	"telinput/platform/httpkit"
	"telinput/platform/validator"
)

// Handler handles HTTP requests for the telephone field.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new telinput handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// bindJSON decodes and validates the request body, writing the error response itself.
func (h *Handler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return false
	}
	return true
}

// Parse converts typed input to its E.164 model value.
// POST /api/v1/phone/parse
func (h *Handler) Parse(c *gin.Context) {
	var req transport.ParseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.Parse(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Format renders a value for display.
// POST /api/v1/phone/format
func (h *Handler) Format(c *gin.Context) {
	var req transport.FormatRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.Format(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Validate checks a value for a region.
// POST /api/v1/phone/validate
func (h *Handler) Validate(c *gin.Context) {
	var req transport.ValidateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.Validate(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// LiveFormat reformats the field while typing.
// POST /api/v1/phone/live-format
func (h *Handler) LiveFormat(c *gin.Context) {
	var req transport.LiveFormatRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.LiveFormat(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Field runs selection, commit, formatting and validation in one call.
// POST /api/v1/phone/field
func (h *Handler) Field(c *gin.Context) {
	var req transport.FieldRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.Field(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListRegions returns the region dropdown options.
// GET /api/v1/phone/regions
func (h *Handler) ListRegions(c *gin.Context) {
	var req transport.RegionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Regions(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
