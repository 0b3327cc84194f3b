package handlers

import (
	"net/http"

	"careerlift_backend/internal/middleware"
	"careerlift_backend/internal/services"
	"careerlift_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	*BaseHandler
	resumeService *services.ResumeService
}

func NewResumeHandler(base *BaseHandler, resumeService *services.ResumeService) *ResumeHandler {
	return &ResumeHandler{
		BaseHandler:   base,
		resumeService: resumeService,
	}
}

func (h *ResumeHandler) RegisterRoutes(r *gin.RouterGroup) {
	resumes := r.Group("/resumes")
	resumes.Use(middleware.AuthMiddleware())
	{
		resumes.POST("", h.CreateResume)
		resumes.GET("/my", h.ListMyResumes)
		resumes.GET("/:resumeId", h.GetResume)
		resumes.PUT("/:resumeId", h.UpdateResume)
		resumes.DELETE("/:resumeId", h.DeleteResume)
	}
}

func (h *ResumeHandler) CreateResume(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateResumeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resume, err := h.resumeService.CreateResume(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resume)
}

func (h *ResumeHandler) GetResume(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resumeID, ok := RequireParam(c, "resumeId")
	if !ok {
		return
	}

	resume, err := h.resumeService.GetResume(userID, resumeID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resume)
}

func (h *ResumeHandler) ListMyResumes(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resumes, err := h.resumeService.ListUserResumes(userID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resumes": resumes, "total": len(resumes)})
}

func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resumeID, ok := RequireParam(c, "resumeId")
	if !ok {
		return
	}

	var req dto.UpdateResumeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resume, err := h.resumeService.UpdateResume(userID, resumeID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resume)
}

func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resumeID, ok := RequireParam(c, "resumeId")
	if !ok {
		return
	}

	if err := h.resumeService.DeleteResume(userID, resumeID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resume deleted"})
}
