package handlers

import (
	"net/http"

	"juakali_backend/internal/middleware"
	"juakali_backend/internal/models"
	"juakali_backend/internal/services"
	"juakali_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ArtisanHandler struct {
	*BaseHandler
	artisanService services.ArtisanService
}

func NewArtisanHandler(base *BaseHandler, artisanService services.ArtisanService) *ArtisanHandler {
	return &ArtisanHandler{
		BaseHandler:    base,
		artisanService: artisanService,
	}
}

func (h *ArtisanHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public directory
	artisans := r.Group("/artisans")
	{
		artisans.GET("", h.ListArtisans)
		artisans.GET("/:artisanId", h.GetArtisan)
	}

	// Artisan self-service
	me := r.Group("/artisans")
	me.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleArtisan))
	{
		me.GET("/me", h.GetMyProfile)
		me.PUT("/me", h.UpdateMyProfile)
	}
}

// --- Artisan handlers ---

func (h *ArtisanHandler) ListArtisans(c *gin.Context) {
	var criteria dto.ArtisanCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}
	criteria.Page, criteria.PageSize = ParsePagination(c)

	response, err := h.artisanService.ListArtisans(h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ArtisanHandler) GetArtisan(c *gin.Context) {
	profile, err := h.artisanService.GetProfile(h.GetDB(c), c.Param("artisanId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ArtisanHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.artisanService.GetProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ArtisanHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateArtisanProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.artisanService.UpdateProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
