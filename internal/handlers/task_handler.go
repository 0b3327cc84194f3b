package handlers

import (
	"net/http"

	"careerlift_backend/internal/auth"
	"careerlift_backend/internal/middleware"
	"careerlift_backend/internal/services"
	"careerlift_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// TaskHandler - задачи верификации резюме и торги по ним
type TaskHandler struct {
	*BaseHandler
	marketplaceService *services.MarketplaceService
	accessService      *services.AccessService
}

func NewTaskHandler(base *BaseHandler, marketplaceService *services.MarketplaceService, accessService *services.AccessService) *TaskHandler {
	return &TaskHandler{
		BaseHandler:        base,
		marketplaceService: marketplaceService,
		accessService:      accessService,
	}
}

func (h *TaskHandler) RegisterRoutes(r *gin.RouterGroup) {
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	{
		tasks.GET("/open", h.ListOpenTasks)
		tasks.GET("/my", h.ListMyTasks)
		tasks.GET("/:taskId", h.GetTask)
		tasks.POST("/:taskId/complete", h.CompleteTask)
		tasks.POST("/:taskId/dispute", h.DisputeTask)
	}

	// Гарды по правам дублируют сервисные проверки на границе роутинга
	seeker := r.Group("/tasks")
	seeker.Use(middleware.AuthMiddleware(), middleware.RequirePermission(h.accessService, auth.PermCreateVerificationTask))
	{
		seeker.POST("", h.CreateTask)
	}

	accept := r.Group("/tasks")
	accept.Use(middleware.AuthMiddleware(), middleware.RequirePermission(h.accessService, auth.PermAcceptBids))
	{
		accept.GET("/:taskId/bids", h.ListTaskBids)
	}

	coach := r.Group("/tasks")
	coach.Use(middleware.AuthMiddleware(), middleware.RequirePermission(h.accessService, auth.PermBidOnTasks))
	{
		coach.POST("/:taskId/bids", h.CreateBid)
		coach.POST("/:taskId/start", h.StartTask)
	}

	bids := r.Group("/bids")
	bids.Use(middleware.AuthMiddleware())
	{
		bids.GET("/my", h.ListMyBids)
		bids.POST("/:bidId/accept", h.AcceptBid)
	}
}

// --- Tasks ---

func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	task, err := h.marketplaceService.CreateTask(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) ListOpenTasks(c *gin.Context) {
	limit := ParseQueryInt(c, "limit", 20)
	if limit <= 0 {
		limit = 20
	}

	tasks, err := h.marketplaceService.ListOpenTasks(limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "total": len(tasks)})
}

func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	tasks, err := h.marketplaceService.ListSeekerTasks(userID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "total": len(tasks)})
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	taskID, ok := RequireParam(c, "taskId")
	if !ok {
		return
	}

	task, err := h.marketplaceService.GetTask(userID, taskID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) StartTask(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	taskID, ok := RequireParam(c, "taskId")
	if !ok {
		return
	}

	if err := h.marketplaceService.StartTask(userID, taskID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task started"})
}

func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	taskID, ok := RequireParam(c, "taskId")
	if !ok {
		return
	}

	if err := h.marketplaceService.CompleteTask(userID, taskID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task completed"})
}

func (h *TaskHandler) DisputeTask(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	taskID, ok := RequireParam(c, "taskId")
	if !ok {
		return
	}

	if err := h.marketplaceService.DisputeTask(userID, taskID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task disputed"})
}

// --- Bids ---

func (h *TaskHandler) CreateBid(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	taskID, ok := RequireParam(c, "taskId")
	if !ok {
		return
	}

	var req dto.CreateBidRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	bid, err := h.marketplaceService.CreateBid(userID, taskID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bid)
}

func (h *TaskHandler) ListTaskBids(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	taskID, ok := RequireParam(c, "taskId")
	if !ok {
		return
	}

	bids, err := h.marketplaceService.ListTaskBids(userID, taskID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bids": bids, "total": len(bids)})
}

func (h *TaskHandler) ListMyBids(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bids, err := h.marketplaceService.ListCoachBids(userID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bids": bids, "total": len(bids)})
}

func (h *TaskHandler) AcceptBid(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bidID, ok := RequireParam(c, "bidId")
	if !ok {
		return
	}

	result, err := h.marketplaceService.AcceptBid(userID, bidID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
