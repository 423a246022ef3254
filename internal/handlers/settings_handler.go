package handlers

import (
	"net/http"

	"matchboxd_backend/internal/services"
	"matchboxd_backend/internal/services/dto"
	"matchboxd_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// SettingsHandler serves the authenticated profile update endpoint. The
// request is multipart so the avatar upload rides along with text fields.
type SettingsHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewSettingsHandler(v *validator.Validator, profileService services.ProfileService) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler:    NewBaseHandler(v),
		profileService: profileService,
	}
}

func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/settings", h.Update)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	resp, err := h.profileService.Update(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
