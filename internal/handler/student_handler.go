package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plm-dev/enlistment-api/internal/service"
	appErrors "github.com/plm-dev/enlistment-api/pkg/errors"
	"github.com/plm-dev/enlistment-api/pkg/response"
)

// StudentHandler exposes the dashboard views of the authenticated student.
type StudentHandler struct {
	students    *service.StudentService
	enlistments *service.EnlistmentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService, enlistments *service.EnlistmentService) *StudentHandler {
	return &StudentHandler{students: students, enlistments: enlistments}
}

// Me godoc
// @Summary Current student profile with enlistment status
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me [get]
func (h *StudentHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	profile, err := h.students.Profile(c.Request.Context(), claims.StudentID)
	if err != nil {
		// A token referencing a provisioned-then-removed student tears the
		// session down rather than serving a dangling profile.
		var appErr *appErrors.Error
		if errors.As(err, &appErr) && appErr.Code == appErrors.ErrNotFound.Code {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "session no longer valid"))
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}

// StudyPlan godoc
// @Summary Finalized enlistment with subject schedule
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/study-plan [get]
func (h *StudentHandler) StudyPlan(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	record, err := h.enlistments.StudyPlan(c.Request.Context(), claims.StudentID)
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) && appErr.Code == appErrors.ErrNotEnlisted.Code {
			// Not an error on the dashboard: render an empty study plan.
			response.JSON(c, http.StatusOK, nil, map[string]interface{}{"enlisted": false})
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, map[string]interface{}{"enlisted": true})
}
