package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plm-dev/enlistment-api/internal/service"
	appErrors "github.com/plm-dev/enlistment-api/pkg/errors"
	"github.com/plm-dev/enlistment-api/pkg/response"
)

// EnlistmentHandler exposes the finalize endpoint and the SER export.
type EnlistmentHandler struct {
	enlistments *service.EnlistmentService
	ser         *service.SERService
	semester    string
}

// NewEnlistmentHandler constructs EnlistmentHandler.
func NewEnlistmentHandler(enlistments *service.EnlistmentService, ser *service.SERService, semester string) *EnlistmentHandler {
	return &EnlistmentHandler{enlistments: enlistments, ser: ser, semester: semester}
}

// Finalize godoc
// @Summary Finalize the one-time enlistment
// @Tags Enlistments
// @Accept json
// @Produce json
// @Param payload body service.FinalizeRequest true "Selections"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /enlistments [post]
func (h *EnlistmentHandler) Finalize(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.enlistments.Finalize(c.Request.Context(), claims.StudentID, h.semester, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Current godoc
// @Summary The student's finalized enlistment
// @Tags Enlistments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /enlistments/current [get]
func (h *EnlistmentHandler) Current(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	record, err := h.enlistments.StudyPlan(c.Request.Context(), claims.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// ExportSER godoc
// @Summary Printable Student Enlistment Record
// @Tags Enlistments
// @Produce application/pdf
// @Param format query string false "pdf or csv" default(pdf)
// @Success 200 {file} binary
// @Router /enlistments/current/ser [get]
func (h *EnlistmentHandler) ExportSER(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	format := c.DefaultQuery("format", service.SERFormatPDF)
	payload, contentType, err := h.ser.Export(c.Request.Context(), claims.StudentID, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="ser.`+format+`"`)
	c.Data(http.StatusOK, contentType, payload)
}
