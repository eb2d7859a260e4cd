package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plm-dev/enlistment-api/internal/filter"
	"github.com/plm-dev/enlistment-api/internal/service"
	appErrors "github.com/plm-dev/enlistment-api/pkg/errors"
	"github.com/plm-dev/enlistment-api/pkg/response"
)

// SubjectHandler exposes the eligible-subjects listing and subject details.
type SubjectHandler struct {
	eligibility *service.EligibilityService
	subjects    *service.SubjectService
	semester    string
}

// NewSubjectHandler constructs SubjectHandler.
func NewSubjectHandler(eligibility *service.EligibilityService, subjects *service.SubjectService, semester string) *SubjectHandler {
	return &SubjectHandler{eligibility: eligibility, subjects: subjects, semester: semester}
}

// Eligible godoc
// @Summary Subjects the student may enlist in this semester
// @Tags Subjects
// @Produce json
// @Param search query string false "Case-insensitive text match"
// @Param year query int false "Exact year level facet"
// @Param units query int false "Exact units facet"
// @Success 200 {object} response.Envelope
// @Router /subjects/eligible [get]
func (h *SubjectHandler) Eligible(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	eligible, err := h.eligibility.Resolve(c.Request.Context(), claims.StudentID, h.semester)
	if err != nil {
		response.Error(c, err)
		return
	}

	criteria := filter.Criteria{Search: c.Query("search")}
	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		criteria.YearLevel = year
	}
	if units, err := strconv.Atoi(c.Query("units")); err == nil {
		criteria.Units = units
	}
	filtered := filter.Apply(eligible, criteria)

	response.JSON(c, http.StatusOK, filtered, map[string]interface{}{
		"semester": h.semester,
		"total":    len(eligible),
		"matched":  len(filtered),
	})
}

// Details godoc
// @Summary Subject details with requisites and sections
// @Tags Subjects
// @Produce json
// @Param code path string true "Subject code"
// @Success 200 {object} response.Envelope
// @Router /subjects/{code} [get]
func (h *SubjectHandler) Details(c *gin.Context) {
	details, err := h.subjects.Details(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details)
}
