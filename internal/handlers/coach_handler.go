package handlers

import (
	"net/http"

	"careerlift_backend/internal/middleware"
	"careerlift_backend/internal/models"
	"careerlift_backend/internal/services"
	"careerlift_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CoachHandler struct {
	*BaseHandler
	coachService *services.CoachService
}

func NewCoachHandler(base *BaseHandler, coachService *services.CoachService) *CoachHandler {
	return &CoachHandler{
		BaseHandler:  base,
		coachService: coachService,
	}
}

func (h *CoachHandler) RegisterRoutes(r *gin.RouterGroup) {
	coaches := r.Group("/coaches")
	coaches.Use(middleware.AuthMiddleware())
	{
		coaches.GET("", h.ListCoaches)
		coaches.GET("/:profileId", h.GetProfile)
	}

	own := r.Group("/coaches")
	own.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleCoach))
	{
		own.GET("/me/profile", h.GetOwnProfile)
		own.PUT("/me/profile", h.UpdateProfile)
	}
}

func (h *CoachHandler) ListCoaches(c *gin.Context) {
	limit := ParseQueryInt(c, "limit", 20)
	if limit <= 0 {
		limit = 20
	}

	coaches, err := h.coachService.ListCoaches(limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"coaches": coaches, "total": len(coaches)})
}

func (h *CoachHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profileID, ok := RequireParam(c, "profileId")
	if !ok {
		return
	}

	profile, err := h.coachService.GetProfile(userID, profileID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *CoachHandler) GetOwnProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.coachService.GetOwnProfile(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *CoachHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCoachProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.coachService.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
