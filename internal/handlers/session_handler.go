package handlers

import (
	"net/http"

	"careerlift_backend/internal/auth"
	"careerlift_backend/internal/middleware"
	"careerlift_backend/internal/services"
	"careerlift_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	*BaseHandler
	sessionService *services.SessionService
	accessService  *services.AccessService
}

func NewSessionHandler(base *BaseHandler, sessionService *services.SessionService, accessService *services.AccessService) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    base,
		sessionService: sessionService,
		accessService:  accessService,
	}
}

func (h *SessionHandler) RegisterRoutes(r *gin.RouterGroup) {
	sessions := r.Group("/sessions")
	sessions.Use(middleware.AuthMiddleware())
	{
		sessions.GET("/my", h.ListMySessions)
		sessions.GET("/:sessionId", h.GetSession)
		sessions.POST("/:sessionId/cancel", h.CancelSession)
	}

	book := r.Group("/sessions")
	book.Use(middleware.AuthMiddleware(), middleware.RequirePermission(h.accessService, auth.PermBookSessions))
	{
		book.POST("", h.BookSession)
	}
}

func (h *SessionHandler) BookSession(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.BookSessionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	session, err := h.sessionService.BookSession(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	sessionID, ok := RequireParam(c, "sessionId")
	if !ok {
		return
	}

	session, err := h.sessionService.GetSession(userID, sessionID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) ListMySessions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	sessions, err := h.sessionService.ListMySessions(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions, "total": len(sessions)})
}

func (h *SessionHandler) CancelSession(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	sessionID, ok := RequireParam(c, "sessionId")
	if !ok {
		return
	}

	if err := h.sessionService.CancelSession(userID, sessionID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session cancelled"})
}
