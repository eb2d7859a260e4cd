package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/plm-dev/enlistment-api/internal/middleware"
	"github.com/plm-dev/enlistment-api/internal/service"
)

// Handlers bundles the API surface for route registration.
type Handlers struct {
	Auth        *AuthHandler
	Students    *StudentHandler
	Subjects    *SubjectHandler
	Cart        *CartHandler
	Enlistments *EnlistmentHandler
}

// RegisterRoutes mounts the API under the given prefix. Every route except
// login sits behind the JWT session gate.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, auth *service.AuthService) {
	api := r.Group(prefix)

	api.POST("/auth/login", h.Auth.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(auth))

	protected.GET("/me", h.Students.Me)
	protected.GET("/me/study-plan", h.Students.StudyPlan)

	protected.GET("/subjects/eligible", h.Subjects.Eligible)
	protected.GET("/subjects/:code", h.Subjects.Details)

	protected.GET("/cart", h.Cart.Get)
	protected.DELETE("/cart", h.Cart.Clear)
	protected.POST("/cart/items", h.Cart.Add)
	protected.DELETE("/cart/items/:code/:sectionId", h.Cart.Remove)

	protected.POST("/enlistments", h.Enlistments.Finalize)
	protected.GET("/enlistments/current", h.Enlistments.Current)
	protected.GET("/enlistments/current/ser", h.Enlistments.ExportSER)
}
