package handlers

import (
	"net/http"

	"juakali_backend/internal/middleware"
	"juakali_backend/internal/models"
	"juakali_backend/internal/services"
	"juakali_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	userService services.UserService
	jobService  services.JobService
}

func NewAdminHandler(base *BaseHandler, userService services.UserService, jobService services.JobService) *AdminHandler {
	return &AdminHandler{
		BaseHandler: base,
		userService: userService,
		jobService:  jobService,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:userId/status", h.UpdateUserStatus)
		admin.DELETE("/users/:userId", h.DeleteUser)
		admin.GET("/jobs", h.ListJobs)
	}
}

// --- Admin handlers ---

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var criteria dto.AdminUserCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}
	criteria.Page, criteria.PageSize = ParsePagination(c)

	response, err := h.userService.ListUsers(h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	var req dto.UpdateUserStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.userService.UpdateUserStatus(h.GetDB(c), c.Param("userId"), req.Status); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User status updated"})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(h.GetDB(c), c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (h *AdminHandler) ListJobs(c *gin.Context) {
	var criteria dto.JobCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}
	criteria.Page, criteria.PageSize = ParsePagination(c)

	response, err := h.jobService.ListJobs(h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
