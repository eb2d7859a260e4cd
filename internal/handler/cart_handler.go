package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plm-dev/enlistment-api/internal/models"
	"github.com/plm-dev/enlistment-api/internal/service"
	appErrors "github.com/plm-dev/enlistment-api/pkg/errors"
	"github.com/plm-dev/enlistment-api/pkg/response"
)

// CartHandler exposes the selection cart endpoints.
type CartHandler struct {
	carts    *service.CartService
	maxUnits int
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(carts *service.CartService, maxUnits int) *CartHandler {
	return &CartHandler{carts: carts, maxUnits: maxUnits}
}

// AddCartItemRequest is the payload for adding a subject/section pair.
type AddCartItemRequest struct {
	SubjectCode string `json:"subject_code" binding:"required"`
	SectionID   string `json:"section_id" binding:"required"`
}

func (h *CartHandler) cartMeta(cart models.Cart) map[string]interface{} {
	return map[string]interface{}{
		"total_units": cart.TotalUnits(),
		"max_units":   h.maxUnits,
	}
}

// Get godoc
// @Summary Current selection cart
// @Tags Cart
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	cart, err := h.carts.Get(c.Request.Context(), claims.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cart, h.cartMeta(cart))
}

// Add godoc
// @Summary Add a subject/section pair to the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param payload body AddCartItemRequest true "Selection"
// @Success 200 {object} response.Envelope
// @Router /cart/items [post]
func (h *CartHandler) Add(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	cart, err := h.carts.Add(c.Request.Context(), claims.StudentID, req.SubjectCode, req.SectionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cart, h.cartMeta(cart))
}

// Remove godoc
// @Summary Remove a subject/section pair from the cart
// @Tags Cart
// @Produce json
// @Param code path string true "Subject code"
// @Param sectionId path string true "Section ID"
// @Success 200 {object} response.Envelope
// @Router /cart/items/{code}/{sectionId} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	cart, err := h.carts.Remove(c.Request.Context(), claims.StudentID, c.Param("code"), c.Param("sectionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cart, h.cartMeta(cart))
}

// Clear godoc
// @Summary Empty the cart
// @Tags Cart
// @Produce json
// @Success 204
// @Router /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.carts.Clear(c.Request.Context(), claims.StudentID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
