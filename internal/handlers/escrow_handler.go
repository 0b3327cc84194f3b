package handlers

import (
	"net/http"

	"careerlift_backend/internal/middleware"
	"careerlift_backend/internal/services"
	"careerlift_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// EscrowHandler - эскроу-операции по задачам верификации
type EscrowHandler struct {
	*BaseHandler
	escrowService *services.EscrowService
}

func NewEscrowHandler(base *BaseHandler, escrowService *services.EscrowService) *EscrowHandler {
	return &EscrowHandler{
		BaseHandler:   base,
		escrowService: escrowService,
	}
}

func (h *EscrowHandler) RegisterRoutes(r *gin.RouterGroup) {
	escrow := r.Group("/tasks/:taskId/escrow")
	escrow.Use(middleware.AuthMiddleware())
	{
		escrow.GET("", h.GetEscrowStatus)
		escrow.POST("/hold", h.HoldEscrow)
		escrow.POST("/release", h.ReleaseEscrow)
		escrow.POST("/refund", h.RefundEscrow)
	}
}

func (h *EscrowHandler) GetEscrowStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	taskID, ok := RequireParam(c, "taskId")
	if !ok {
		return
	}

	status, err := h.escrowService.GetEscrowStatus(userID, taskID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *EscrowHandler) HoldEscrow(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	taskID, ok := RequireParam(c, "taskId")
	if !ok {
		return
	}

	var req dto.HoldEscrowRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	status, err := h.escrowService.HoldPaymentInEscrow(userID, taskID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, status)
}

func (h *EscrowHandler) ReleaseEscrow(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	taskID, ok := RequireParam(c, "taskId")
	if !ok {
		return
	}

	status, err := h.escrowService.ReleaseEscrow(userID, taskID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *EscrowHandler) RefundEscrow(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	taskID, ok := RequireParam(c, "taskId")
	if !ok {
		return
	}

	status, err := h.escrowService.RefundEscrow(userID, taskID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
