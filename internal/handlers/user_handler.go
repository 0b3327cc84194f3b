package handlers

import (
	"net/http"

	"careerlift_backend/internal/middleware"
	"careerlift_backend/internal/models"
	"careerlift_backend/internal/services"
	"careerlift_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// UserHandler - управление ролями и правами пользователей
type UserHandler struct {
	*BaseHandler
	accessService *services.AccessService
}

func NewUserHandler(base *BaseHandler, accessService *services.AccessService) *UserHandler {
	return &UserHandler{
		BaseHandler:   base,
		accessService: accessService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me/permissions", h.GetMyPermissions)
		users.POST("/me/role-change", h.RequestRoleChange)
		users.GET("/me/access", h.CheckResourceAccess)
	}

	admin := r.Group("/admin/users")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.PUT("/:userId/role", h.AssignRole)
		admin.GET("/:userId/permissions", h.GetUserPermissions)
	}
}

func (h *UserHandler) GetMyPermissions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	perms, err := h.accessService.GetUserPermissions(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, perms)
}

func (h *UserHandler) GetUserPermissions(c *gin.Context) {
	targetID, ok := RequireParam(c, "userId")
	if !ok {
		return
	}

	perms, err := h.accessService.GetUserPermissions(targetID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, perms)
}

// RequestRoleChange - самостоятельный запрос смены роли (seeker -> coach)
func (h *UserHandler) RequestRoleChange(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RoleChangeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.accessService.RequestRoleChange(userID, models.UserRole(req.RequestedRole), req.Reason)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AssignRole - прямое назначение роли админом
func (h *UserHandler) AssignRole(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	targetID, ok := RequireParam(c, "userId")
	if !ok {
		return
	}

	var req dto.AssignRoleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.accessService.AssignRole(adminID, targetID, models.UserRole(req.Role))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CheckResourceAccess - точечная проверка доступа к ресурсу.
// Удобно для фронта: ?type=resume&id=...&action=edit
func (h *UserHandler) CheckResourceAccess(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resourceType := c.Query("type")
	resourceID := c.Query("id")
	action := c.DefaultQuery("action", services.ActionView)

	decision := h.accessService.CanAccessResource(userID, resourceType, resourceID, action)
	c.JSON(http.StatusOK, decision)
}
